/*
 * @module service/audit/dashboard_readiness
 * @description 看板就绪评估器，基于时间/类别/PII/重复四个单位权重分量计算0-1评分
 * @architecture 审计引擎层 - 消费列分类结果的纯函数
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 分类结果分组 -> 四分量累加 -> 除4归一 -> 解释分档
 * @rules 无时间列/类别列时对应分量省略（贡献0）；PII为扁平惩罚而非逐列
 * @dependencies dataaudit-service/service/models, sort
 * @refs service/audit/profiler.go
 */

package audit

import (
	"sort"

	"dataaudit-service/service/models"
)

// 看板就绪解释分档文本
const (
	dashboardExcellent = "Excellent dashboard readiness — consistent and structured."
	dashboardModerate  = "Moderate readiness — review temporal and categorical consistency."
	dashboardLow       = "Low readiness — dashboarding may require additional preparation."
)

// EvaluateDashboardReadiness 基于列分类评估看板就绪度
func EvaluateDashboardReadiness(ds *models.Dataset, classification map[string]models.SemanticKind) models.DashboardReadiness {
	var temporalCols, catCols, piiCols []string
	for i := range ds.Columns {
		name := ds.Columns[i].Name
		switch classification[name] {
		case models.KindTemporal:
			temporalCols = append(temporalCols, name)
		case models.KindCategorical:
			catCols = append(catCols, name)
		case models.KindPII:
			piiCols = append(piiCols, name)
		}
	}
	sort.Strings(temporalCols)
	sort.Strings(catCols)
	sort.Strings(piiCols)

	score := 0.0
	rows := ds.RowCount()

	// 分量1：时间一致性
	if len(temporalCols) > 0 {
		temporalQuality := 1.0
		for _, name := range temporalCols {
			col := ds.Column(name)
			if rows > 0 && float64(col.MissingCount())/float64(rows) > 0.2 {
				temporalQuality = 0.5
			}
		}
		score += temporalQuality
	}

	// 分量2：类别多样性
	if len(catCols) > 0 && rows > 0 {
		sum := 0.0
		for _, name := range catCols {
			uniqueRatio := float64(ds.Column(name).UniqueCount()) / float64(rows)
			switch {
			case uniqueRatio >= 0.01 && uniqueRatio <= 0.5:
				sum += 1.0
			case uniqueRatio < 0.01:
				sum += 0.5
			default:
				sum += 0.7
			}
		}
		score += sum / float64(len(catCols))
	}

	// 分量3：PII状况（扁平惩罚）
	if len(piiCols) == 0 {
		score += 0.8
	} else {
		score += 0.4
	}

	// 分量4：重复完整性
	dupRatio := 0.0
	if rows > 0 {
		dupRatio = float64(ds.DuplicateRowCount()) / float64(rows)
	}
	score += 1 - dupRatio

	readiness := round2(score / 4)

	interp := dashboardLow
	switch {
	case readiness >= 0.85:
		interp = dashboardExcellent
	case readiness >= 0.6:
		interp = dashboardModerate
	}

	return models.DashboardReadiness{
		Score:              readiness,
		Interpretation:     interp,
		TemporalColumns:    temporalCols,
		CategoricalColumns: catCols,
		PIIColumns:         piiCols,
	}
}
