/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数，提供数据集夹具工厂
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 夹具构建 -> 测试执行 -> 断言验证
 * @rules 夹具构建器只产生确定性数据，保证测试可复现
 * @dependencies dataaudit-service/service/models, time
 * @refs service/audit, service/bridge
 */

package testutil

import (
	"time"

	"dataaudit-service/service/models"
)

// NumericColumn 构建数值列，NaN占位用nil表示缺失
func NumericColumn(name string, values ...interface{}) models.Column {
	col := models.Column{Name: name, Type: models.ColumnTypeNumeric}
	for _, v := range values {
		if v == nil {
			col.Values = append(col.Values, models.NullValue())
			continue
		}
		switch n := v.(type) {
		case int:
			col.Values = append(col.Values, models.NumberValue(float64(n)))
		case float64:
			col.Values = append(col.Values, models.NumberValue(n))
		}
	}
	return col
}

// TextColumn 构建文本列，nil表示缺失
func TextColumn(name string, values ...interface{}) models.Column {
	col := models.Column{Name: name, Type: models.ColumnTypeText}
	for _, v := range values {
		if v == nil {
			col.Values = append(col.Values, models.NullValue())
		} else {
			col.Values = append(col.Values, models.TextValue(v.(string)))
		}
	}
	return col
}

// TemporalColumn 构建时间列，nil表示缺失，字符串按 2006-01-02 解析
func TemporalColumn(name string, values ...interface{}) models.Column {
	col := models.Column{Name: name, Type: models.ColumnTypeTemporal}
	for _, v := range values {
		if v == nil {
			col.Values = append(col.Values, models.NullValue())
			continue
		}
		ts, err := time.Parse("2006-01-02", v.(string))
		if err != nil {
			panic(err)
		}
		col.Values = append(col.Values, models.TimeValue(ts))
	}
	return col
}

// Dataset 由列组装数据集
func Dataset(cols ...models.Column) *models.Dataset {
	return &models.Dataset{Columns: cols}
}

// SequenceColumn 构建 1..n 的数值列
func SequenceColumn(name string, n int) models.Column {
	col := models.Column{Name: name, Type: models.ColumnTypeNumeric}
	for i := 1; i <= n; i++ {
		col.Values = append(col.Values, models.NumberValue(float64(i)))
	}
	return col
}
