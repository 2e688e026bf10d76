/*
 * @module service/audit/readiness_scorer
 * @description 数据就绪评分器，基于完整性、基数、类型一致性三大支柱计算0-100评分与等级
 * @architecture 审计引擎层 - 从100起步逐项扣分，各项封顶，最终下限为0
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 完整性扣分 -> 常量列扣分 -> 混合类型扣分 -> 取整定级
 * @rules 空数据集（0单元格）短路返回{0, F, Empty Dataset}；等级由最终整数分经固定阈值决定
 * @dependencies dataaudit-service/service/models, github.com/spf13/cast
 * @refs service/audit/audit_service.go
 */

package audit

import (
	"fmt"
	"math"

	"github.com/spf13/cast"

	"dataaudit-service/service/models"
)

// mixedTypeThreshold 文本列被判定为"数字存成文本"的可转换比例阈值
const mixedTypeThreshold = 0.8

// CalculateReadinessScore 计算数据集就绪评分
func CalculateReadinessScore(ds *models.Dataset) models.ReadinessScore {
	totalCells := ds.TotalCells()
	if totalCells == 0 {
		return models.ReadinessScore{Score: 0, Grade: "F", Penalties: []string{"Empty Dataset"}}
	}

	score := 100.0
	penalties := make([]string, 0, 3)

	// 支柱1：完整性（扣分上限40）
	missingRatio := float64(ds.MissingTotal()) / float64(totalCells)
	pCompleteness := math.Min(40, missingRatio*100*1.5)
	score -= pCompleteness
	if pCompleteness > 5 {
		penalties = append(penalties,
			fmt.Sprintf("-%.1f pts: High missing values (%.1f%%)", pCompleteness, missingRatio*100))
	}

	// 支柱2：基数/常量列（每列扣5分）
	constantCols := 0
	for i := range ds.Columns {
		if ds.Columns[i].UniqueCount() <= 1 {
			constantCols++
		}
	}
	if constantCols > 0 {
		pConst := 5 * constantCols
		score -= float64(pConst)
		penalties = append(penalties,
			fmt.Sprintf("-%d pts: %d Constant columns found (No info gain)", pConst, constantCols))
	}

	// 支柱3：类型解释（数字存成文本的列每列扣5分）
	badTypes := 0
	for i := range ds.Columns {
		if ds.Columns[i].Type != models.ColumnTypeText {
			continue
		}
		if NumericRate(&ds.Columns[i]) > mixedTypeThreshold {
			badTypes++
		}
	}
	if badTypes > 0 {
		pTypes := 5 * badTypes
		score -= float64(pTypes)
		penalties = append(penalties,
			fmt.Sprintf("-%d pts: %d columns have mixed types (Numbers stored as text)", pTypes, badTypes))
	}

	final := int(math.Round(score))
	if final < 0 {
		final = 0
	}

	return models.ReadinessScore{Score: final, Grade: gradeOf(final), Penalties: penalties}
}

// gradeOf 评分到等级的固定阈值映射
func gradeOf(score int) string {
	switch {
	case score < 40:
		return "F"
	case score < 60:
		return "D"
	case score < 75:
		return "C"
	case score < 90:
		return "B"
	default:
		return "A"
	}
}

// NumericRate 文本列非缺失值中可转换为数值的比例
func NumericRate(col *models.Column) float64 {
	nonMissing := 0
	numeric := 0
	for _, v := range col.Values {
		if v.Null {
			continue
		}
		nonMissing++
		if _, err := cast.ToFloat64E(v.Str); err == nil {
			numeric++
		}
	}
	if nonMissing == 0 {
		return 0
	}
	return float64(numeric) / float64(nonMissing)
}
