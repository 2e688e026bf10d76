/*
 * @module service/audit/dashboard_readiness_test
 * @description 看板就绪评估器单元测试：四分量合成、分档与列清单排序
 * @architecture 单元测试
 */

package audit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"dataaudit-service/service/models"
	"dataaudit-service/testutil"
)

func TestDashboardReadinessExcellent(t *testing.T) {
	// 时间列无缺失(1.0) + 类别唯一率0.5(1.0) + 无PII(0.8) + 无重复(1.0) = 3.8/4
	ds := testutil.Dataset(
		testutil.TemporalColumn("day",
			"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
			"2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10"),
		testutil.TextColumn("region", "a", "a", "b", "b", "c", "c", "d", "d", "e", "e"),
	)
	classification := map[string]models.SemanticKind{
		"day":    models.KindTemporal,
		"region": models.KindCategorical,
	}

	result := EvaluateDashboardReadiness(ds, classification)
	assert.InDelta(t, 0.95, result.Score, 1e-9)
	assert.Equal(t, dashboardExcellent, result.Interpretation)
	assert.Equal(t, []string{"day"}, result.TemporalColumns)
	assert.Equal(t, []string{"region"}, result.CategoricalColumns)
	assert.Empty(t, result.PIIColumns)
}

func TestDashboardReadinessTemporalMissingHalvesComponent(t *testing.T) {
	// 时间列缺失30%>20%，分量降为0.5：(0.5+1.0+0.8+1.0)/4 = 0.83
	ds := testutil.Dataset(
		testutil.TemporalColumn("day",
			nil, "2024-01-02", nil, "2024-01-04", nil,
			"2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10"),
		testutil.TextColumn("region", "a", "a", "b", "b", "c", "c", "d", "d", "e", "e"),
	)
	classification := map[string]models.SemanticKind{
		"day":    models.KindTemporal,
		"region": models.KindCategorical,
	}

	result := EvaluateDashboardReadiness(ds, classification)
	assert.InDelta(t, 0.83, result.Score, 1e-9)
	assert.Equal(t, dashboardModerate, result.Interpretation)
}

func TestDashboardReadinessPIIPenaltyIsFlat(t *testing.T) {
	// 仅数值+PII：时间/类别分量省略，(0.4+1.0)/4 = 0.35
	ds := testutil.Dataset(
		testutil.SequenceColumn("amount", 10),
		testutil.TextColumn("email",
			"a0@x.com", "a1@x.com", "a2@x.com", "a3@x.com", "a4@x.com",
			"a5@x.com", "a6@x.com", "a7@x.com", "a8@x.com", "a9@x.com"),
	)
	classification := map[string]models.SemanticKind{
		"amount": models.KindNumeric,
		"email":  models.KindPII,
	}

	result := EvaluateDashboardReadiness(ds, classification)
	assert.InDelta(t, 0.35, result.Score, 1e-9)
	assert.Equal(t, dashboardLow, result.Interpretation)
	assert.Equal(t, []string{"email"}, result.PIIColumns)
}

func TestDashboardReadinessCategoricalCardinalityBands(t *testing.T) {
	t.Run("唯一率过高降为0.7", func(t *testing.T) {
		// 10行全不同，unique_ratio=1.0：(0.7+0.8+1.0)/4 = 0.63
		vals := make([]interface{}, 0, 10)
		for i := 0; i < 10; i++ {
			vals = append(vals, fmt.Sprintf("v%d", i))
		}
		ds := testutil.Dataset(testutil.TextColumn("tag", vals...))
		result := EvaluateDashboardReadiness(ds, map[string]models.SemanticKind{"tag": models.KindCategorical})
		assert.InDelta(t, 0.63, result.Score, 1e-9)
	})

	t.Run("唯一率过低降为0.5", func(t *testing.T) {
		// 200行单一取值，unique_ratio=0.005<0.01，但常量列重复率极高
		col := models.Column{Name: "flag", Type: models.ColumnTypeText}
		seq := models.Column{Name: "id", Type: models.ColumnTypeNumeric}
		for i := 0; i < 200; i++ {
			col.Values = append(col.Values, models.TextValue("same"))
			seq.Values = append(seq.Values, models.NumberValue(float64(i)))
		}
		ds := testutil.Dataset(col, seq)
		// (0.5+0.8+1.0)/4 = 0.58
		result := EvaluateDashboardReadiness(ds, map[string]models.SemanticKind{
			"flag": models.KindCategorical,
			"id":   models.KindNumeric,
		})
		assert.InDelta(t, 0.58, result.Score, 1e-9)
	})
}

func TestDashboardReadinessDuplicatesReduceScore(t *testing.T) {
	// 4行2对重复：dup_ratio=0.5，(1.0+0.8+0.5)/4 = 0.58
	ds := testutil.Dataset(testutil.TextColumn("region", "a", "a", "b", "b"))
	result := EvaluateDashboardReadiness(ds, map[string]models.SemanticKind{"region": models.KindCategorical})
	assert.InDelta(t, 0.58, result.Score, 1e-9)
	assert.Equal(t, dashboardLow, result.Interpretation)
}

func TestDashboardReadinessColumnListsSorted(t *testing.T) {
	ds := testutil.Dataset(
		testutil.TemporalColumn("updated", "2024-02-01"),
		testutil.TemporalColumn("created", "2024-01-01"),
	)
	classification := map[string]models.SemanticKind{
		"updated": models.KindTemporal,
		"created": models.KindTemporal,
	}

	result := EvaluateDashboardReadiness(ds, classification)
	assert.Equal(t, []string{"created", "updated"}, result.TemporalColumns)
}
