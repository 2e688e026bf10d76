/*
 * @module service/bridge/wrangler
 * @description 行级转换工具：列拆分、缺失填充、列匿名化、重命名导出，全部写时复制
 * @architecture 桥接服务层 - 纯函数，返回新数据集快照，审计引擎的不可变约定端到端保持
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 输入快照克隆 -> 转换应用 -> 新快照返回
 * @rules 任何转换不得修改输入数据集；匿名化哈希必须确定且不可逆
 * @dependencies dataaudit-service/service/models, crypto/sha256, strings
 * @refs service/bridge/field_mapper.go, api/controllers/bridge_controller.go
 */

package bridge

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"dataaudit-service/service/models"
)

// FillMethod 缺失填充方法
type FillMethod string

const (
	FillStatic  FillMethod = "static"
	FillForward FillMethod = "ffill"
	FillMean    FillMethod = "mean"
)

// AnonymizeMethod 匿名化技术
type AnonymizeMethod string

const (
	AnonymizeMask AnonymizeMethod = "mask"
	AnonymizeHash AnonymizeMethod = "hash"
	AnonymizeBins AnonymizeMethod = "bins"
)

// maskPlaceholder 掩码替换值
const maskPlaceholder = "*****"

// binWidth 数值泛化的固定桶宽
const binWidth = 10

// SplitColumn 按分隔符将列拆分为N个命名部分，缺失部分补null
func SplitColumn(ds *models.Dataset, colName, delimiter string, newNames []string) (*models.Dataset, error) {
	src := ds.Column(colName)
	if src == nil {
		return nil, fmt.Errorf("列不存在: %s", colName)
	}
	if delimiter == "" {
		return nil, fmt.Errorf("分隔符不能为空")
	}

	out := ds.Clone()
	rows := ds.RowCount()

	for part, name := range newNames {
		values := make([]models.Value, rows)
		for row := 0; row < rows; row++ {
			v := src.Values[row]
			if v.Null {
				values[row] = models.NullValue()
				continue
			}
			pieces := strings.Split(v.Render(src.Type), delimiter)
			if part < len(pieces) {
				values[row] = models.TextValue(pieces[part])
			} else {
				values[row] = models.NullValue()
			}
		}
		out.Columns = append(out.Columns, models.Column{
			Name:   name,
			Type:   models.ColumnTypeText,
			Values: values,
		})
	}
	return out, nil
}

// FillMissing 填充指定列的缺失值
// 均值填充仅对数值列生效，其他列原样返回
func FillMissing(ds *models.Dataset, colName string, method FillMethod, staticValue string) (*models.Dataset, error) {
	if ds.Column(colName) == nil {
		return nil, fmt.Errorf("列不存在: %s", colName)
	}

	out := ds.Clone()
	col := out.Column(colName)

	switch method {
	case FillStatic:
		for i := range col.Values {
			if col.Values[i].Null {
				col.Values[i] = staticFill(col.Type, staticValue)
			}
		}

	case FillForward:
		var last models.Value
		hasLast := false
		for i := range col.Values {
			if col.Values[i].Null {
				if hasLast {
					col.Values[i] = last
				}
				continue
			}
			last = col.Values[i]
			hasLast = true
		}

	case FillMean:
		if col.Type != models.ColumnTypeNumeric {
			return out, nil
		}
		sum, n := 0.0, 0
		for _, v := range col.Values {
			if !v.Null {
				sum += v.Num
				n++
			}
		}
		if n == 0 {
			return out, nil
		}
		mean := sum / float64(n)
		for i := range col.Values {
			if col.Values[i].Null {
				col.Values[i] = models.NumberValue(mean)
			}
		}

	default:
		return nil, fmt.Errorf("不支持的填充方法: %s", method)
	}
	return out, nil
}

// staticFill 按列类型解释静态填充值，解释失败时退化为文本列
func staticFill(t models.ColumnType, raw string) models.Value {
	if t == models.ColumnTypeNumeric {
		var f float64
		if _, err := fmt.Sscanf(raw, "%g", &f); err == nil {
			return models.NumberValue(f)
		}
	}
	return models.TextValue(raw)
}

// AnonymizeColumn 对指定列应用匿名化技术
// 数值泛化仅对数值列生效；列不存在时原样返回克隆
func AnonymizeColumn(ds *models.Dataset, colName string, method AnonymizeMethod) (*models.Dataset, error) {
	out := ds.Clone()
	col := out.Column(colName)
	if col == nil {
		return out, nil
	}

	switch method {
	case AnonymizeMask:
		for i := range col.Values {
			col.Values[i] = models.TextValue(maskPlaceholder)
		}
		col.Type = models.ColumnTypeText

	case AnonymizeHash:
		for i := range col.Values {
			if col.Values[i].Null {
				continue
			}
			digest := sha256.Sum256([]byte(col.Values[i].Render(col.Type)))
			col.Values[i] = models.TextValue(hex.EncodeToString(digest[:]))
		}
		col.Type = models.ColumnTypeText

	case AnonymizeBins:
		if col.Type != models.ColumnTypeNumeric {
			return out, nil
		}
		generalizeNumeric(col)

	default:
		return nil, fmt.Errorf("不支持的匿名化技术: %s", method)
	}
	return out, nil
}

// generalizeNumeric 将精确数值替换为固定宽度的区间标签（如24 -> "20-30"）
func generalizeNumeric(col *models.Column) {
	minV := math.Inf(1)
	hasValue := false
	for _, v := range col.Values {
		if !v.Null {
			hasValue = true
			if v.Num < minV {
				minV = v.Num
			}
		}
	}
	if !hasValue {
		return
	}

	base := int(math.Floor(minV))
	for i := range col.Values {
		if col.Values[i].Null {
			continue
		}
		offset := int(math.Floor((col.Values[i].Num - float64(base)) / binWidth))
		lo := base + offset*binWidth
		col.Values[i] = models.TextValue(fmt.Sprintf("%d-%d", lo, lo+binWidth))
	}
	col.Type = models.ColumnTypeText
}

// RenameAndExport 按映射重命名源列并按目标模式顺序投影
// mapping 的键为目标列名，值为源列名；空值表示该目标列缺失，跳过
func RenameAndExport(ds *models.Dataset, schema *models.TargetSchema, mapping map[string]string) *models.Dataset {
	out := &models.Dataset{}

	for _, target := range schema.Columns {
		source := mapping[target.Name]
		if source == "" {
			continue
		}
		src := ds.Column(source)
		if src == nil {
			continue
		}
		col := models.Column{
			Name:   target.Name,
			Type:   src.Type,
			Values: make([]models.Value, len(src.Values)),
		}
		copy(col.Values, src.Values)
		out.Columns = append(out.Columns, col)
	}
	return out
}
