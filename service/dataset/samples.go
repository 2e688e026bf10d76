/*
 * @module service/dataset/samples
 * @description 样例数据文件发现，扫描磁盘目录列出可加载的样例文件
 * @architecture 数据接入层 - 外部协作者
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 目录扫描 -> 后缀过滤 -> 排序列表
 * @rules 仅列出受支持后缀（.csv/.xls/.xlsx）的文件
 * @dependencies os, path/filepath, sort
 * @refs service/dataset/loader.go
 */

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListSamples 列出目录下受支持的样例文件名，按名称排序
func ListSamples(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("扫描样例目录失败: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xls", ".xlsx":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
