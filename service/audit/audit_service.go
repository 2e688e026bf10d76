/*
 * @module service/audit/audit_service
 * @description 审计编排器，组合列画像、PII扫描、异常检测与各项评分为单份聚合报告
 * @architecture 审计引擎层 - 编排器模式，各评估器独立无共享可变状态
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 数据集快照 -> 各评估器独立执行 -> 聚合报告组装
 * @rules 评估器间无执行顺序依赖；单个评估器的软错误不阻断整体审计
 * @dependencies dataaudit-service/service/models, github.com/google/uuid, log/slog
 * @refs service/audit/*, api/controllers/audit_controller.go
 */

package audit

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dataaudit-service/service/models"
)

// conformityNumericThreshold 文本列判定为"数字存成文本"的一致性阈值
const conformityNumericThreshold = 0.9

// Service 审计编排服务
type Service struct {
	profilerCfg ProfilerConfig
	scannerCfg  ScannerConfig
}

// NewService 以默认配置表创建审计服务
func NewService() *Service {
	return &Service{
		profilerCfg: DefaultProfilerConfig(),
		scannerCfg:  DefaultScannerConfig(),
	}
}

// NewServiceWithConfig 以自定义配置表创建审计服务，供测试替换关键词/模式表
func NewServiceWithConfig(profilerCfg ProfilerConfig, scannerCfg ScannerConfig) *Service {
	return &Service{profilerCfg: profilerCfg, scannerCfg: scannerCfg}
}

// ProfilerConfig 返回当前分类配置
func (s *Service) ProfilerConfig() ProfilerConfig { return s.profilerCfg }

// ScannerConfig 返回当前扫描配置
func (s *Service) ScannerConfig() ScannerConfig { return s.scannerCfg }

// RunFullAudit 执行全量审计并组装聚合报告
func (s *Service) RunFullAudit(ds *models.Dataset) *models.AuditReport {
	start := time.Now()

	classification := Classify(ds, s.profilerCfg)
	outliers := DetectAnomalies(ds)

	report := &models.AuditReport{
		ID:          uuid.NewString(),
		GeneratedAt: start,
		Shape:       models.Shape{Rows: ds.RowCount(), Columns: ds.ColumnCount()},
		Duplicates:  ds.DuplicateRowCount(),
		Profile:     Profile(ds, s.profilerCfg),
		Classification:   classification,
		TypeConformity:   TypeConformity(ds),
		PIIFindings:      ScanForPII(ds, s.scannerCfg),
		Outliers:         outliers,
		ColumnQuality:    s.columnQuality(ds),
		QualityIssues:    ExtraQualityIssues(ds),
		Readiness:        CalculateReadinessScore(ds),
		ModelSuitability: AssessModelSuitability(ds),
		Dashboard:        EvaluateDashboardReadiness(ds, classification),
	}

	slog.Info("审计完成",
		"report_id", report.ID,
		"rows", report.Shape.Rows,
		"columns", report.Shape.Columns,
		"readiness_score", report.Readiness.Score,
		"pii_flags", len(report.PIIFindings),
		"duration", time.Since(start).String(),
	)
	return report
}

// columnQuality 全局体检：逐列缺失与IQR离群统计
func (s *Service) columnQuality(ds *models.Dataset) map[string]models.ColumnQuality {
	out := make(map[string]models.ColumnQuality, len(ds.Columns))
	rows := ds.RowCount()

	for i := range ds.Columns {
		col := &ds.Columns[i]
		nulls := col.MissingCount()

		pct := 0.0
		if rows > 0 {
			pct = round1(float64(nulls) / float64(rows) * 100)
		}

		outliers := 0
		if col.Type == models.ColumnTypeNumeric {
			var values []float64
			for _, v := range col.Values {
				if !v.Null {
					values = append(values, v.Num)
				}
			}
			outliers = iqrOutlierCount(values)
		}

		out[col.Name] = models.ColumnQuality{
			Type:        col.Type,
			Nulls:       nulls,
			NullPercent: pct,
			Outliers:    outliers,
		}
	}
	return out
}

// TypeConformity 类型一致性判定
func TypeConformity(ds *models.Dataset) map[string]string {
	out := make(map[string]string, len(ds.Columns))
	for i := range ds.Columns {
		col := &ds.Columns[i]
		switch col.Type {
		case models.ColumnTypeNumeric:
			out[col.Name] = "Numeric"
		case models.ColumnTypeTemporal:
			out[col.Name] = "Date/Time"
		case models.ColumnTypeText:
			if NumericRate(col) > conformityNumericThreshold {
				out[col.Name] = "Mostly numeric but stored as text"
			} else {
				out[col.Name] = "Categorical/Text"
			}
		default:
			out[col.Name] = "Other / Unsupported type"
		}
	}
	return out
}

// ExtraQualityIssues 附加质量检查：常量列与高基数文本列
func ExtraQualityIssues(ds *models.Dataset) models.QualityIssues {
	issues := models.QualityIssues{}
	rows := ds.RowCount()

	for i := range ds.Columns {
		col := &ds.Columns[i]
		if col.UniqueCount() <= 1 {
			issues.ConstantColumns = append(issues.ConstantColumns, col.Name)
		}
		if col.Type == models.ColumnTypeText && rows > 0 &&
			float64(col.UniqueCount()) > float64(rows)*0.5 {
			issues.HighCardinalityColumns = append(issues.HighCardinalityColumns, col.Name)
		}
	}
	return issues
}
