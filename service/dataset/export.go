/*
 * @module service/dataset/export
 * @description 数据集CSV导出，将内存数据集渲染为带表头的CSV字节流
 * @architecture 数据接入层 - 外部协作者，只读消费报告/数据集
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 表头写出 -> 逐行值渲染 -> 缓冲刷新
 * @rules 缺失值导出为空单元格；导出不修改数据集
 * @dependencies encoding/csv, bytes
 * @refs service/bridge/wrangler.go
 */

package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"dataaudit-service/service/models"
)

// ExportCSV 将数据集渲染为CSV字节流
func ExportCSV(ds *models.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.ColumnNames()); err != nil {
		return nil, fmt.Errorf("CSV表头写出失败: %w", err)
	}

	rows := ds.RowCount()
	record := make([]string, ds.ColumnCount())
	for row := 0; row < rows; row++ {
		for ci := range ds.Columns {
			record[ci] = ds.Columns[ci].Values[row].Render(ds.Columns[ci].Type)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("CSV行写出失败: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV导出失败: %w", err)
	}
	return buf.Bytes(), nil
}
