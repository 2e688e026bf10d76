/*
 * @module service/models/audit_models
 * @description 审计报告模型，定义列画像、PII扫描、异常检测、就绪评分等报告结构
 * @architecture 数据模型层 - 报告实体按需创建，调用方持有后即丢弃
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 审计执行 -> 报告组装 -> 展示层消费 -> 丢弃
 * @rules 所有评分字段有界：就绪评分0-100，看板评分0.0-1.0
 * @dependencies time
 * @refs service/audit, api/controllers
 */

package models

import "time"

// SemanticKind 列的语义类别
type SemanticKind string

const (
	KindNumeric     SemanticKind = "Numeric"
	KindCategorical SemanticKind = "Categorical"
	KindTemporal    SemanticKind = "Temporal"
	KindPII         SemanticKind = "PII"
)

// ColumnProfile 单列画像
type ColumnProfile struct {
	Name         string       `json:"name"`
	DeclaredType ColumnType   `json:"declared_type"`
	Kind         SemanticKind `json:"kind"`
	UniqueCount  int          `json:"unique"`
	MissingCount int          `json:"missing"`
	MissingPct   float64      `json:"missing_pct"`
}

// OutlierReport 双方法异常检测报告
type OutlierReport struct {
	IQROutliers  map[string]int `json:"iqr_outliers"`
	MLAnomalies  int            `json:"ml_anomalies"`
	MLIndices    []int          `json:"ml_indices"`
	MLError      string         `json:"ml_error,omitempty"`
	EvaluatedRows int           `json:"evaluated_rows"`
}

// ReadinessScore 数据就绪评分
type ReadinessScore struct {
	Score     int      `json:"score"`
	Grade     string   `json:"grade"`
	Penalties []string `json:"penalties"`
}

// ModelSuitability 单个建模类别的适配结论
type ModelSuitability struct {
	Score       int    `json:"score"`
	Description string `json:"desc"`
}

// DashboardReadiness 看板就绪评估
type DashboardReadiness struct {
	Score              float64  `json:"dashboard_readiness_score"`
	Interpretation     string   `json:"interpretation"`
	TemporalColumns    []string `json:"temporal_columns"`
	CategoricalColumns []string `json:"categorical_columns"`
	PIIColumns         []string `json:"pii_columns"`
}

// ColumnQuality 全局体检中的单列统计
type ColumnQuality struct {
	Type        ColumnType `json:"type"`
	Nulls       int        `json:"nulls"`
	NullPercent float64    `json:"null_percent"`
	Outliers    int        `json:"outliers"`
}

// QualityIssues 附加质量问题清单
type QualityIssues struct {
	ConstantColumns        []string `json:"constant_columns"`
	HighCardinalityColumns []string `json:"high_cardinality_columns"`
}

// Shape 数据集形状
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// AuditReport 聚合审计报告，由编排器一次性组装
type AuditReport struct {
	ID               string                      `json:"id"`
	GeneratedAt      time.Time                   `json:"generated_at"`
	Shape            Shape                       `json:"shape"`
	Duplicates       int                         `json:"duplicates"`
	Profile          map[string]ColumnProfile    `json:"profile"`
	Classification   map[string]SemanticKind     `json:"column_classification"`
	TypeConformity   map[string]string           `json:"type_conformity"`
	PIIFindings      map[string]string           `json:"pii_findings"`
	Outliers         OutlierReport               `json:"outliers"`
	ColumnQuality    map[string]ColumnQuality    `json:"columns"`
	QualityIssues    QualityIssues               `json:"additional_quality_issues"`
	Readiness        ReadinessScore              `json:"readiness"`
	ModelSuitability map[string]ModelSuitability `json:"model_suitability"`
	Dashboard        DashboardReadiness          `json:"dashboard_readiness"`
}
