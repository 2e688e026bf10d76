/*
 * @module service/audit/model_suitability
 * @description 模型适配评估器，按建模类别对数据集做固定扣分制评估
 * @architecture 审计引擎层 - 每个类别独立起步100分，固定扣分，下限为0
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 结构信号提取 -> 各类别独立扣分 -> 结论文本附加
 * @rules 遗传/优化类在无数值列时直接置0；聚类类按数值占比与完整性加权
 * @dependencies dataaudit-service/service/models, math
 * @refs service/audit/audit_service.go
 */

package audit

import (
	"math"

	"dataaudit-service/service/models"
)

// 建模类别名称
const (
	FamilyRegression     = "Regression"
	FamilyClassification = "Classification"
	FamilyClustering     = "Clustering"
	FamilyGenetic        = "Genetic / Optimization"
)

// AssessModelSuitability 按建模类别评估数据集适配度
func AssessModelSuitability(ds *models.Dataset) map[string]models.ModelSuitability {
	report := make(map[string]models.ModelSuitability, 4)

	numCols := len(ds.NumericColumns())
	catCols := 0
	for i := range ds.Columns {
		if ds.Columns[i].Type == models.ColumnTypeText {
			catCols++
		}
	}
	missingRatio := meanMissingRatio(ds)
	rows := ds.RowCount()

	// 回归：需要数值特征与目标
	regScore := 100
	if numCols < 2 {
		regScore -= 50
	}
	if missingRatio > 0.1 {
		regScore -= 20
	}
	if rows < 50 {
		regScore -= 30
	}
	report[FamilyRegression] = models.ModelSuitability{
		Score:       clampScore(regScore),
		Description: "Requires numeric features and targets. Sensitive to outliers and missing data.",
	}

	// 分类：需要类别型目标
	clfScore := 100
	if catCols == 0 {
		clfScore -= 40
	}
	if missingRatio > 0.2 {
		clfScore -= 20
	}
	if rows < 50 {
		clfScore -= 30
	}
	report[FamilyClassification] = models.ModelSuitability{
		Score:       clampScore(clfScore),
		Description: "Requires labeled data. Sensitive to class imbalance (check target distribution).",
	}

	// 聚类：数值占比与完整性加权
	numericRatio := 0.0
	if ds.ColumnCount() > 0 {
		numericRatio = float64(numCols) / float64(ds.ColumnCount())
	}
	cluScore := int(math.Round(round2(0.7*numericRatio+0.3*(1-missingRatio)) * 100))
	report[FamilyClustering] = models.ModelSuitability{
		Score:       clampScore(cluScore),
		Description: "Clustering algorithms prefer numeric data and consistent scaling.",
	}

	// 遗传/优化：需要清晰的数值搜索空间
	gaScore := 100
	if numCols == 0 {
		gaScore = 0
	} else {
		if hasInfiniteValues(ds) {
			gaScore -= 50
		}
		if numCols > 100 {
			gaScore -= 20
		}
	}
	report[FamilyGenetic] = models.ModelSuitability{
		Score:       clampScore(gaScore),
		Description: "Requires defined numeric search spaces. High dimensionality and Infinite values are fatal.",
	}

	return report
}

// meanMissingRatio 各列缺失率的均值（与pandas df.isnull().mean().mean()一致）
func meanMissingRatio(ds *models.Dataset) float64 {
	if ds.ColumnCount() == 0 || ds.RowCount() == 0 {
		return 0
	}
	sum := 0.0
	for i := range ds.Columns {
		sum += float64(ds.Columns[i].MissingCount()) / float64(ds.RowCount())
	}
	return sum / float64(ds.ColumnCount())
}

// hasInfiniteValues 数值列中是否存在无穷值
func hasInfiniteValues(ds *models.Dataset) bool {
	for _, ci := range ds.NumericColumns() {
		for _, v := range ds.Columns[ci].Values {
			if !v.Null && math.IsInf(v.Num, 0) {
				return true
			}
		}
	}
	return false
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
