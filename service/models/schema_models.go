/*
 * @module service/models/schema_models
 * @description 目标模式配置模型，定义外部加载的目标任务模式与映射推荐结构
 * @architecture 数据模型层 - 只读配置输入
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 模式配置加载 -> 映射推荐 -> 导出门控
 * @rules 一个源列至多绑定一个目标列（先到先得，按模式声明顺序）
 * @dependencies gopkg.in/yaml.v3
 * @refs service/bridge
 */

package models

// TargetColumn 目标模式中的单个目标列
type TargetColumn struct {
	Name     string `json:"name" yaml:"name"`
	Required bool   `json:"required" yaml:"required"`
	Regex    string `json:"regex,omitempty" yaml:"regex,omitempty"`
}

// TargetSchema 外部任务的目标模式配置
type TargetSchema struct {
	TargetName  string         `json:"target_name" yaml:"target_name"`
	Description string         `json:"description" yaml:"description"`
	URL         string         `json:"url,omitempty" yaml:"url,omitempty"`
	Columns     []TargetColumn `json:"columns" yaml:"columns"`
}

// RequiredColumns 必需目标列
func (s *TargetSchema) RequiredColumns() []TargetColumn {
	var cols []TargetColumn
	for _, c := range s.Columns {
		if c.Required {
			cols = append(cols, c)
		}
	}
	return cols
}

// MappingRecommendation 模式映射推荐结果
// Mappings 的键为目标列名，值为源列名，未匹配时为空串
type MappingRecommendation struct {
	Mappings      map[string]string `json:"mappings"`
	RequiredFound int               `json:"required_found"`
	RequiredTotal int               `json:"required_total"`
}

// RequiredCoverage 必需列覆盖率，用于下游导出门控
func (m *MappingRecommendation) RequiredCoverage() float64 {
	if m.RequiredTotal == 0 {
		return 1.0
	}
	return float64(m.RequiredFound) / float64(m.RequiredTotal)
}
