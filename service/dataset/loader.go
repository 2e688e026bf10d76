/*
 * @module service/dataset/loader
 * @description 数据集加载器，按文件后缀分发到CSV或电子表格读取器，并推断列类型
 * @architecture 数据接入层 - 外部协作者，引擎调用前完成全部I/O
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 后缀分发 -> 首选编码解码 -> 失败回退编码（可回绕流先回绕） -> 列类型推断
 * @rules CSV先按UTF-8解码，失败回退Latin-1；其他后缀返回不支持格式错误；读取失败统一包装为加载错误
 * @dependencies encoding/csv, golang.org/x/text/encoding/charmap, github.com/xuri/excelize/v2
 * @refs service/models/dataset.go, api/controllers
 */

package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"dataaudit-service/service/models"
)

// ErrUnsupportedFormat 不支持的文件格式
var ErrUnsupportedFormat = errors.New("不支持的文件格式")

// missingMarkers 视为缺失值的原始文本
var missingMarkers = map[string]struct{}{
	"":     {},
	"null": {},
	"NULL": {},
	"nil":  {},
	"NaN":  {},
	"N/A":  {},
}

// temporalLayouts 时间类型推断使用的布局，按常见程度排序
var temporalLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// Load 从流加载数据集，按filename后缀分发读取器
func Load(r io.Reader, filename string) (*models.Dataset, error) {
	lower := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lower, ".csv"):
		ds, err := loadCSV(r)
		if err != nil {
			return nil, fmt.Errorf("数据加载失败 %s: %w", filename, err)
		}
		return ds, nil

	case strings.HasSuffix(lower, ".xls"), strings.HasSuffix(lower, ".xlsx"):
		ds, err := loadExcel(r)
		if err != nil {
			return nil, fmt.Errorf("数据加载失败 %s: %w", filename, err)
		}
		return ds, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// LoadFile 从磁盘路径加载数据集
func LoadFile(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("数据加载失败 %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, path)
}

// loadCSV 读取CSV：UTF-8优先，解码失败时回退Latin-1
func loadCSV(r io.Reader) (*models.Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取失败: %w", err)
	}

	if !utf8.Valid(raw) {
		// 回退编码前先回绕可回绕的流
		if seeker, ok := r.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err == nil {
				if reread, err := io.ReadAll(r); err == nil {
					raw = reread
				}
			}
		}
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("编码回退失败: %w", err)
		}
		raw = decoded
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV解析失败: %w", err)
	}
	if len(records) == 0 {
		return &models.Dataset{}, nil
	}
	return fromRecords(records[0], records[1:]), nil
}

// loadExcel 读取电子表格首个工作表
func loadExcel(r io.Reader) (*models.Dataset, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("电子表格打开失败: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return &models.Dataset{}, nil
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("工作表读取失败: %w", err)
	}
	if len(rows) == 0 {
		return &models.Dataset{}, nil
	}
	return fromRecords(rows[0], rows[1:]), nil
}

// fromRecords 由表头与数据行构建数据集，逐列推断封闭类型标签
func fromRecords(header []string, rows [][]string) *models.Dataset {
	ds := &models.Dataset{Columns: make([]models.Column, len(header))}

	for ci, name := range header {
		raws := make([]string, len(rows))
		for ri, row := range rows {
			if ci < len(row) {
				raws[ri] = strings.TrimSpace(row[ci])
			}
		}

		colType := inferType(raws)
		values := make([]models.Value, len(raws))
		for ri, raw := range raws {
			values[ri] = parseValue(raw, colType)
		}

		ds.Columns[ci] = models.Column{
			Name:   strings.TrimSpace(name),
			Type:   colType,
			Values: values,
		}
	}
	return ds
}

// inferType 列类型推断：全部可解析为数值则数值，否则时间、布尔，兜底文本
func inferType(raws []string) models.ColumnType {
	numeric, temporal, boolean, seen := true, true, true, false

	for _, raw := range raws {
		if isMissing(raw) {
			continue
		}
		seen = true
		if numeric {
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				numeric = false
			}
		}
		if temporal && !parsesAsTime(raw) {
			temporal = false
		}
		if boolean {
			switch strings.ToLower(raw) {
			case "true", "false":
			default:
				boolean = false
			}
		}
		if !numeric && !temporal && !boolean {
			return models.ColumnTypeText
		}
	}

	if !seen {
		return models.ColumnTypeText
	}
	switch {
	case numeric:
		return models.ColumnTypeNumeric
	case temporal:
		return models.ColumnTypeTemporal
	case boolean:
		return models.ColumnTypeBoolean
	default:
		return models.ColumnTypeText
	}
}

// parseValue 按推断类型解析单元格
func parseValue(raw string, t models.ColumnType) models.Value {
	if isMissing(raw) {
		return models.NullValue()
	}
	switch t {
	case models.ColumnTypeNumeric:
		f, _ := strconv.ParseFloat(raw, 64)
		return models.NumberValue(f)
	case models.ColumnTypeTemporal:
		for _, layout := range temporalLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return models.TimeValue(ts)
			}
		}
		return models.NullValue()
	case models.ColumnTypeBoolean:
		return models.BoolValue(strings.EqualFold(raw, "true"))
	default:
		return models.TextValue(raw)
	}
}

func parsesAsTime(raw string) bool {
	for _, layout := range temporalLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return true
		}
	}
	return false
}

func isMissing(raw string) bool {
	_, ok := missingMarkers[raw]
	return ok
}
