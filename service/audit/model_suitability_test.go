/*
 * @module service/audit/model_suitability_test
 * @description 模型适配评估器单元测试：固定扣分路径与下限钳制
 * @architecture 单元测试
 */

package audit

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataaudit-service/service/models"
	"dataaudit-service/testutil"
)

// buildWideDataset 构造 n 行的两数值列+一文本列数据集
func buildWideDataset(n int) *models.Dataset {
	cat := models.Column{Name: "category", Type: models.ColumnTypeText}
	for i := 0; i < n; i++ {
		cat.Values = append(cat.Values, models.TextValue(fmt.Sprintf("c%d", i%5)))
	}
	return testutil.Dataset(
		testutil.SequenceColumn("x", n),
		testutil.SequenceColumn("y", n),
		cat,
	)
}

func TestAssessModelSuitabilityHealthyDataset(t *testing.T) {
	report := AssessModelSuitability(buildWideDataset(60))
	require.Len(t, report, 4)

	assert.Equal(t, 100, report[FamilyRegression].Score)
	assert.Equal(t, 100, report[FamilyClassification].Score)
	assert.Equal(t, 100, report[FamilyGenetic].Score)
	// numeric_ratio = 2/3: round2(0.7*2/3 + 0.3) = 0.77
	assert.Equal(t, 77, report[FamilyClustering].Score)
}

func TestAssessModelSuitabilityRegressionPenalties(t *testing.T) {
	t.Run("数值列不足", func(t *testing.T) {
		cat := models.Column{Name: "cat", Type: models.ColumnTypeText}
		for i := 0; i < 60; i++ {
			cat.Values = append(cat.Values, models.TextValue(fmt.Sprintf("c%d", i%3)))
		}
		ds := testutil.Dataset(testutil.SequenceColumn("only", 60), cat)

		report := AssessModelSuitability(ds)
		assert.Equal(t, 50, report[FamilyRegression].Score)
	})

	t.Run("样本量不足", func(t *testing.T) {
		report := AssessModelSuitability(buildWideDataset(10))
		assert.Equal(t, 70, report[FamilyRegression].Score)
		assert.Equal(t, 70, report[FamilyClassification].Score)
	})
}

func TestAssessModelSuitabilityClassificationNeedsCategorical(t *testing.T) {
	ds := testutil.Dataset(
		testutil.SequenceColumn("x", 60),
		testutil.SequenceColumn("y", 60),
	)

	report := AssessModelSuitability(ds)
	assert.Equal(t, 60, report[FamilyClassification].Score)
}

func TestAssessModelSuitabilityGenetic(t *testing.T) {
	t.Run("无数值列直接置0", func(t *testing.T) {
		ds := testutil.Dataset(testutil.TextColumn("cat", "a", "b", "c"))
		report := AssessModelSuitability(ds)
		assert.Equal(t, 0, report[FamilyGenetic].Score)
	})

	t.Run("无穷值重扣", func(t *testing.T) {
		col := testutil.SequenceColumn("x", 60)
		col.Values[3] = models.NumberValue(math.Inf(1))
		ds := testutil.Dataset(col, testutil.SequenceColumn("y", 60))

		report := AssessModelSuitability(ds)
		assert.Equal(t, 50, report[FamilyGenetic].Score)
	})
}

func TestAssessModelSuitabilityScoreClampedAtZero(t *testing.T) {
	// 单数值列(-50) + 高缺失(-20) + 小样本(-30) = 0
	ds := testutil.Dataset(
		testutil.NumericColumn("x", 1, nil, nil, nil),
	)

	report := AssessModelSuitability(ds)
	assert.Equal(t, 0, report[FamilyRegression].Score)
	assert.GreaterOrEqual(t, report[FamilyClustering].Score, 0)
}

func TestMeanMissingRatio(t *testing.T) {
	ds := testutil.Dataset(
		testutil.NumericColumn("a", 1, nil, nil, nil), // 0.75
		testutil.NumericColumn("b", 1, 2, 3, 4),       // 0.00
	)
	assert.InDelta(t, 0.375, meanMissingRatio(ds), 1e-9)
}
