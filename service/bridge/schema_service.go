/*
 * @module service/bridge/schema_service
 * @description 目标模式配置加载与发现，按任务从磁盘读取YAML模式文件
 * @architecture 桥接服务层 - 外部协作者，引擎调用前完成全部I/O
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 目录扫描 -> YAML解析 -> 结构校验 -> 只读模式对象
 * @rules 配置缺失或格式错误仅阻断映射推荐，不影响其他审计步骤
 * @dependencies gopkg.in/yaml.v3, os, path/filepath
 * @refs service/bridge/field_mapper.go, api/controllers/bridge_controller.go
 */

package bridge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"dataaudit-service/service/models"
)

// LoadSchemaConfig 从YAML文件加载目标模式配置
func LoadSchemaConfig(path string) (*models.TargetSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取模式配置失败: %w", err)
	}

	var schema models.TargetSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("解析模式配置失败: %w", err)
	}
	if schema.TargetName == "" {
		return nil, fmt.Errorf("模式配置缺少target_name: %s", path)
	}
	if len(schema.Columns) == 0 {
		return nil, fmt.Errorf("模式配置缺少columns: %s", path)
	}
	return &schema, nil
}

// ListSchemas 列出目录下的模式配置文件名，按名称排序
func ListSchemas(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("扫描模式目录失败: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yml" || ext == ".yaml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
