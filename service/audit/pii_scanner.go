/*
 * @module service/audit/pii_scanner
 * @description PII扫描器，基于列名关键词和抽样内容正则两阶段识别敏感数据
 * @architecture 审计引擎层 - 规则表驱动，两阶段短路
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 列名关键词检查 -> 文本列内容抽样 -> 有序正则匹配 -> 首个命中标记
 * @rules 每列至多产生一个标记；内容抽样上限20个非缺失值以限定大数据集成本
 * @dependencies dataaudit-service/service/models, regexp, strings
 * @refs service/audit/audit_service.go
 */

package audit

import (
	"regexp"
	"strings"

	"dataaudit-service/service/models"
)

// SensitiveKeywordLabel 列名关键词阶段命中时的标记
const SensitiveKeywordLabel = "Potential Sensitive Keyword"

// contentSampleLimit 内容阶段抽样上限
const contentSampleLimit = 20

// PatternDetector 命名内容模式检测器，匹配语义为"包含"（非锚定）
type PatternDetector struct {
	Label   string
	Pattern *regexp.Regexp
}

// ScannerConfig PII扫描配置表，测试可替换
type ScannerConfig struct {
	NameKeywords []string
	Detectors    []PatternDetector
}

// DefaultScannerConfig 默认关键词与模式表，检测器顺序即优先级
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		NameKeywords: []string{"password", "secret", "dob", "birth", "social", "tax", "credit"},
		Detectors: []PatternDetector{
			{Label: "Email", Pattern: regexp.MustCompile(`(?i)[^@]+@[^@]+\.[^@]+`)},
			{Label: "Phone", Pattern: regexp.MustCompile(`(?i)(\+\d{1,2}\s)?\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}`)},
			{Label: "SSN/ID", Pattern: regexp.MustCompile(`(?i)\b\d{3}-\d{2}-\d{4}\b`)},
			{Label: "Credit Card", Pattern: regexp.MustCompile(`(?i)\b(?:\d[ -]*?){13,16}\b`)},
			{Label: "IPv4", Pattern: regexp.MustCompile(`(?i)\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)},
		},
	}
}

// ScanForPII 扫描全部列，返回列名到检出类别的映射
func ScanForPII(ds *models.Dataset, cfg ScannerConfig) map[string]string {
	report := make(map[string]string)

	for i := range ds.Columns {
		col := &ds.Columns[i]

		// 阶段1：列名关键词，命中则跳过内容检查
		if containsAny(strings.ToLower(col.Name), cfg.NameKeywords) {
			report[col.Name] = SensitiveKeywordLabel
			continue
		}

		// 阶段2：仅文本列，抽样前20个非缺失值
		if col.Type != models.ColumnTypeText {
			continue
		}
		sample := sampleText(col, contentSampleLimit)
		if label, ok := matchSample(sample, cfg.Detectors); ok {
			report[col.Name] = label
		}
	}
	return report
}

// sampleText 取前limit个非缺失值的文本表示
func sampleText(col *models.Column, limit int) []string {
	sample := make([]string, 0, limit)
	for _, v := range col.Values {
		if v.Null {
			continue
		}
		sample = append(sample, v.Render(col.Type))
		if len(sample) >= limit {
			break
		}
	}
	return sample
}

// matchSample 按检测器顺序匹配样本，首个命中即返回
func matchSample(sample []string, detectors []PatternDetector) (string, bool) {
	for _, d := range detectors {
		for _, s := range sample {
			if d.Pattern.MatchString(s) {
				return d.Label, true
			}
		}
	}
	return "", false
}
