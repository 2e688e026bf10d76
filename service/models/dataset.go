/*
 * @module service/models/dataset
 * @description 数据集模型，定义列式内存数据集和封闭的标量值变体类型
 * @architecture 数据模型层 - 不可变快照，所有审计组件只读访问
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 数据加载 -> 类型推断 -> 审计读取（不修改）
 * @rules 数据集在一次审计期间不可变，行数/列数为派生值而非存储值
 * @dependencies time, strings, fmt
 * @refs service/dataset, service/audit
 */

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ColumnType 列存储类型，封闭变体
type ColumnType string

const (
	ColumnTypeNumeric  ColumnType = "numeric"  // 数值类型
	ColumnTypeText     ColumnType = "text"     // 文本类型
	ColumnTypeTemporal ColumnType = "temporal" // 时间类型
	ColumnTypeBoolean  ColumnType = "boolean"  // 布尔类型
)

// Value 标量值，具体含义由所属列的声明类型决定
// Null 为真时其余字段无意义
type Value struct {
	Null bool      `json:"null,omitempty"`
	Num  float64   `json:"num,omitempty"`
	Str  string    `json:"str,omitempty"`
	Time time.Time `json:"time,omitempty"`
	Bool bool      `json:"bool,omitempty"`
}

// NullValue 创建缺失值
func NullValue() Value { return Value{Null: true} }

// NumberValue 创建数值
func NumberValue(f float64) Value { return Value{Num: f} }

// TextValue 创建文本值
func TextValue(s string) Value { return Value{Str: s} }

// TimeValue 创建时间值
func TimeValue(t time.Time) Value { return Value{Time: t} }

// BoolValue 创建布尔值
func BoolValue(b bool) Value { return Value{Bool: b} }

// Render 按列类型渲染为字符串，缺失值返回空串
func (v Value) Render(t ColumnType) string {
	if v.Null {
		return ""
	}
	switch t {
	case ColumnTypeNumeric:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case ColumnTypeTemporal:
		return v.Time.Format(time.RFC3339)
	case ColumnTypeBoolean:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return v.Str
	}
}

// Column 命名列，值顺序即行顺序
type Column struct {
	Name   string     `json:"name"`
	Type   ColumnType `json:"type"`
	Values []Value    `json:"values"`
}

// MissingCount 缺失值数量
func (c *Column) MissingCount() int {
	count := 0
	for _, v := range c.Values {
		if v.Null {
			count++
		}
	}
	return count
}

// UniqueCount 非缺失的去重值数量
func (c *Column) UniqueCount() int {
	seen := make(map[string]struct{}, len(c.Values))
	for _, v := range c.Values {
		if v.Null {
			continue
		}
		seen[c.valueKey(v)] = struct{}{}
	}
	return len(seen)
}

// valueKey 值的去重键
func (c *Column) valueKey(v Value) string {
	switch c.Type {
	case ColumnTypeNumeric:
		return fmt.Sprintf("n:%v", v.Num)
	case ColumnTypeTemporal:
		return "t:" + v.Time.Format(time.RFC3339Nano)
	case ColumnTypeBoolean:
		return fmt.Sprintf("b:%t", v.Bool)
	default:
		return "s:" + v.Str
	}
}

// Dataset 有序命名列的集合，审计期间不可变
type Dataset struct {
	Columns []Column `json:"columns"`
}

// RowCount 行数（派生值）
func (d *Dataset) RowCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// ColumnCount 列数（派生值）
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// TotalCells 单元格总数
func (d *Dataset) TotalCells() int {
	return d.RowCount() * d.ColumnCount()
}

// Column 按名称查找列，未找到返回nil
func (d *Dataset) Column(name string) *Column {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i]
		}
	}
	return nil
}

// ColumnNames 按声明顺序返回列名
func (d *Dataset) ColumnNames() []string {
	names := make([]string, 0, len(d.Columns))
	for i := range d.Columns {
		names = append(names, d.Columns[i].Name)
	}
	return names
}

// NumericColumns 返回数值列的索引
func (d *Dataset) NumericColumns() []int {
	var idx []int
	for i := range d.Columns {
		if d.Columns[i].Type == ColumnTypeNumeric {
			idx = append(idx, i)
		}
	}
	return idx
}

// MissingTotal 全表缺失单元格数量
func (d *Dataset) MissingTotal() int {
	total := 0
	for i := range d.Columns {
		total += d.Columns[i].MissingCount()
	}
	return total
}

// rowKey 整行的去重键
func (d *Dataset) rowKey(row int) string {
	var b strings.Builder
	for i := range d.Columns {
		v := d.Columns[i].Values[row]
		if v.Null {
			b.WriteString("\x00|")
			continue
		}
		b.WriteString(d.Columns[i].valueKey(v))
		b.WriteString("|")
	}
	return b.String()
}

// DuplicateRowCount 重复行数量（与pandas duplicated语义一致：首次出现不计）
func (d *Dataset) DuplicateRowCount() int {
	seen := make(map[string]struct{}, d.RowCount())
	dups := 0
	for row := 0; row < d.RowCount(); row++ {
		key := d.rowKey(row)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// Clone 深拷贝数据集，用于写时复制的转换工具
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{Columns: make([]Column, len(d.Columns))}
	for i := range d.Columns {
		col := Column{
			Name:   d.Columns[i].Name,
			Type:   d.Columns[i].Type,
			Values: make([]Value, len(d.Columns[i].Values)),
		}
		copy(col.Values, d.Columns[i].Values)
		out.Columns[i] = col
	}
	return out
}
