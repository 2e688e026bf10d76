/*
 * @module service/audit/profiler
 * @description 列画像器，按名称与声明类型启发式分类列语义，并统计基数与缺失率
 * @architecture 审计引擎层 - 无状态纯函数
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 列遍历 -> 语义分类 -> 基数/缺失统计 -> 画像输出
 * @rules 分类按固定优先级短路：Temporal > PII > Numeric > Categorical；零行时缺失率为0.0
 * @dependencies dataaudit-service/service/models, math, strings
 * @refs service/audit/audit_service.go
 */

package audit

import (
	"math"
	"strings"

	"dataaudit-service/service/models"
)

// ProfilerConfig 分类关键词配置表，测试可替换
type ProfilerConfig struct {
	TemporalKeywords []string
	PIIKeywords      []string
}

// DefaultProfilerConfig 默认分类关键词
func DefaultProfilerConfig() ProfilerConfig {
	return ProfilerConfig{
		TemporalKeywords: []string{"date", "time", "year", "month"},
		PIIKeywords:      []string{"name", "email", "id", "phone", "address", "mobile", "user"},
	}
}

// ClassifyColumn 单列语义分类，优先级固定且首个命中即返回
func ClassifyColumn(col *models.Column, cfg ProfilerConfig) models.SemanticKind {
	lower := strings.ToLower(col.Name)

	if col.Type == models.ColumnTypeTemporal || containsAny(lower, cfg.TemporalKeywords) {
		return models.KindTemporal
	}
	if containsAny(lower, cfg.PIIKeywords) {
		return models.KindPII
	}
	if col.Type == models.ColumnTypeNumeric {
		return models.KindNumeric
	}
	return models.KindCategorical
}

// Profile 生成全部列画像
func Profile(ds *models.Dataset, cfg ProfilerConfig) map[string]models.ColumnProfile {
	profile := make(map[string]models.ColumnProfile, len(ds.Columns))
	rows := ds.RowCount()

	for i := range ds.Columns {
		col := &ds.Columns[i]
		missing := col.MissingCount()

		pct := 0.0
		if rows > 0 {
			pct = round1(float64(missing) / float64(rows) * 100)
		}

		profile[col.Name] = models.ColumnProfile{
			Name:         col.Name,
			DeclaredType: col.Type,
			Kind:         ClassifyColumn(col, cfg),
			UniqueCount:  col.UniqueCount(),
			MissingCount: missing,
			MissingPct:   pct,
		}
	}
	return profile
}

// Classify 仅返回列名到语义类别的映射，供看板评估使用
func Classify(ds *models.Dataset, cfg ProfilerConfig) map[string]models.SemanticKind {
	out := make(map[string]models.SemanticKind, len(ds.Columns))
	for i := range ds.Columns {
		out[ds.Columns[i].Name] = ClassifyColumn(&ds.Columns[i], cfg)
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
