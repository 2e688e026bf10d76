/*
 * @module service/audit/outlier_detector
 * @description 双方法异常检测器：逐列IQR统计法 + 多变量隔离森林
 * @architecture 审计引擎层 - 两种方法独立完成，互不阻断
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 数值列筛选 -> 缺失行剔除 -> IQR逐列统计 -> 隔离森林联合评分
 * @rules 含缺失数值的行整行剔除而非填补；模型训练失败降级为软错误，IQR结果仍然返回
 * @dependencies dataaudit-service/service/models, sort
 * @refs service/audit/iforest.go
 */

package audit

import (
	"fmt"
	"sort"

	"dataaudit-service/service/models"
)

// iforestSeed 隔离森林固定随机种子，保证逐字节可复现
const iforestSeed = 42

// iforestContamination 预期污染率，约5%的行视为异常
const iforestContamination = 0.05

// DetectAnomalies 对数据集执行双方法异常检测
// 无数值列或剔除缺失后为空时返回空报告，不报错
func DetectAnomalies(ds *models.Dataset) models.OutlierReport {
	report := models.OutlierReport{IQROutliers: make(map[string]int)}

	numericIdx := ds.NumericColumns()
	if len(numericIdx) == 0 {
		return report
	}

	// 剔除任一数值列缺失的行，保留原始行号
	rowIdx, frame := filterCompleteRows(ds, numericIdx)
	report.EvaluatedRows = len(rowIdx)
	if len(rowIdx) == 0 {
		return report
	}

	// 方法1：隔离森林（多变量）
	forest := newIsolationForest(iforestSeed)
	anomalies, err := forest.FitPredict(frame, iforestContamination)
	if err != nil {
		report.MLError = fmt.Sprintf("隔离森林训练失败: %v", err)
		report.MLAnomalies = 0
	} else {
		indices := make([]int, 0, len(anomalies))
		for _, local := range anomalies {
			indices = append(indices, rowIdx[local])
		}
		sort.Ints(indices)
		report.MLIndices = indices
		report.MLAnomalies = len(indices)
	}

	// 方法2：IQR（逐列单变量）
	for j, ci := range numericIdx {
		count := iqrOutlierCount(columnOf(frame, j))
		if count > 0 {
			report.IQROutliers[ds.Columns[ci].Name] = count
		}
	}

	return report
}

// filterCompleteRows 返回数值列均非缺失的行号及对应数值矩阵（行×数值列）
func filterCompleteRows(ds *models.Dataset, numericIdx []int) ([]int, [][]float64) {
	var rowIdx []int
	var frame [][]float64

	for row := 0; row < ds.RowCount(); row++ {
		complete := true
		vec := make([]float64, len(numericIdx))
		for j, ci := range numericIdx {
			v := ds.Columns[ci].Values[row]
			if v.Null {
				complete = false
				break
			}
			vec[j] = v.Num
		}
		if complete {
			rowIdx = append(rowIdx, row)
			frame = append(frame, vec)
		}
	}
	return rowIdx, frame
}

func columnOf(frame [][]float64, j int) []float64 {
	col := make([]float64, len(frame))
	for i := range frame {
		col[i] = frame[i][j]
	}
	return col
}

// iqrOutlierCount 统计落在[Q1-1.5·IQR, Q3+1.5·IQR]之外的值数量
func iqrOutlierCount(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	count := 0
	for _, v := range values {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}

// quantile 线性插值分位数，输入必须已排序
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
