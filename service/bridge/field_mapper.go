/*
 * @module service/bridge/field_mapper
 * @description 模式映射推荐器，将数据集列对齐到目标模式（精确名称优先，正则兜底）
 * @architecture 桥接服务层 - 按模式声明顺序先到先得
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 目标列遍历 -> 未用源列精确匹配 -> 大小写不敏感正则匹配 -> 已用集合更新
 * @rules 一个源列至多绑定一个目标列；单个坏正则仅跳过该目标列，不中断整体推荐
 * @dependencies dataaudit-service/service/models, regexp, log/slog
 * @refs service/bridge/schema_service.go
 */

package bridge

import (
	"log/slog"
	"regexp"
	"strings"

	"dataaudit-service/service/models"
)

// RecommendMappings 为目标模式的每个目标列推荐源列
// 精确匹配与正则匹配都只在未被占用的源列中进行
func RecommendMappings(ds *models.Dataset, schema *models.TargetSchema) models.MappingRecommendation {
	rec := models.MappingRecommendation{
		Mappings: make(map[string]string, len(schema.Columns)),
	}

	sourceCols := ds.ColumnNames()
	used := make(map[string]struct{})

	for _, target := range schema.Columns {
		match := ""

		// 策略1：精确名称匹配（大小写敏感）
		for _, col := range sourceCols {
			if _, taken := used[col]; taken {
				continue
			}
			if col == target.Name {
				match = col
				break
			}
		}

		// 策略2：正则匹配（大小写不敏感，剥离内联标记后编译）
		if match == "" && target.Regex != "" {
			if pattern, err := compileInsensitive(target.Regex); err != nil {
				slog.Warn("模式正则无效，跳过该目标列", "target", target.Name, "regex", target.Regex, "error", err)
			} else {
				for _, col := range sourceCols {
					if _, taken := used[col]; taken {
						continue
					}
					if pattern.MatchString(col) {
						match = col
						break
					}
				}
			}
		}

		rec.Mappings[target.Name] = match
		if match != "" {
			used[match] = struct{}{}
		}

		if target.Required {
			rec.RequiredTotal++
			if match != "" {
				rec.RequiredFound++
			}
		}
	}
	return rec
}

// compileInsensitive 剥离内联(?i)标记后以大小写不敏感方式编译
func compileInsensitive(expr string) (*regexp.Regexp, error) {
	clean := strings.ReplaceAll(expr, "(?i)", "")
	return regexp.Compile("(?i)" + clean)
}
