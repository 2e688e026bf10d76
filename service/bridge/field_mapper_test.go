/*
 * @module service/bridge/field_mapper_test
 * @description 映射推荐器单元测试：匹配优先级、源列唯一绑定与坏正则降级
 * @architecture 单元测试
 */

package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dataaudit-service/service/models"
	"dataaudit-service/testutil"
)

func mapperDataset(names ...string) *models.Dataset {
	ds := &models.Dataset{}
	for _, name := range names {
		ds.Columns = append(ds.Columns, testutil.TextColumn(name, "x"))
	}
	return ds
}

func TestRecommendMappingsExactMatchFirst(t *testing.T) {
	ds := mapperDataset("timestamp", "ts_backup")
	schema := &models.TargetSchema{
		TargetName: "events",
		Columns: []models.TargetColumn{
			{Name: "timestamp", Required: true, Regex: "ts"},
		},
	}

	rec := RecommendMappings(ds, schema)
	// 精确同名优先于正则命中的 ts_backup
	assert.Equal(t, "timestamp", rec.Mappings["timestamp"])
	assert.Equal(t, 1, rec.RequiredFound)
	assert.Equal(t, 1, rec.RequiredTotal)
}

func TestRecommendMappingsExactMatchIsCaseSensitive(t *testing.T) {
	ds := mapperDataset("Email")
	schema := &models.TargetSchema{
		TargetName: "contacts",
		Columns: []models.TargetColumn{
			{Name: "email", Regex: "^email$"},
		},
	}

	// 精确匹配大小写敏感失败后，正则按大小写不敏感兜底命中
	rec := RecommendMappings(ds, schema)
	assert.Equal(t, "Email", rec.Mappings["email"])
}

func TestRecommendMappingsSourceColumnBoundOnce(t *testing.T) {
	ds := mapperDataset("amount")
	schema := &models.TargetSchema{
		TargetName: "ledger",
		Columns: []models.TargetColumn{
			{Name: "debit", Regex: "amount"},
			{Name: "credit", Regex: "amount"},
		},
	}

	rec := RecommendMappings(ds, schema)
	assert.Equal(t, "amount", rec.Mappings["debit"])
	assert.Equal(t, "", rec.Mappings["credit"])
}

func TestRecommendMappingsBadRegexSkipsTargetOnly(t *testing.T) {
	ds := mapperDataset("customer_id", "region")
	schema := &models.TargetSchema{
		TargetName: "crm",
		Columns: []models.TargetColumn{
			{Name: "id", Required: true, Regex: "customer_(id"},
			{Name: "area", Regex: "region"},
		},
	}

	rec := RecommendMappings(ds, schema)
	assert.Equal(t, "", rec.Mappings["id"])
	assert.Equal(t, "region", rec.Mappings["area"])
	assert.Equal(t, 0, rec.RequiredFound)
	assert.Equal(t, 1, rec.RequiredTotal)
}

func TestRecommendMappingsStripsInlineCaseFlag(t *testing.T) {
	ds := mapperDataset("CUSTOMER_NAME")
	schema := &models.TargetSchema{
		TargetName: "crm",
		Columns: []models.TargetColumn{
			{Name: "name", Regex: "(?i)customer"},
		},
	}

	rec := RecommendMappings(ds, schema)
	assert.Equal(t, "CUSTOMER_NAME", rec.Mappings["name"])
}

func TestRecommendMappingsUnmatchedTargetEmpty(t *testing.T) {
	ds := mapperDataset("region")
	schema := &models.TargetSchema{
		TargetName: "crm",
		Columns: []models.TargetColumn{
			{Name: "revenue", Required: true, Regex: "sales|income"},
		},
	}

	rec := RecommendMappings(ds, schema)
	assert.Equal(t, "", rec.Mappings["revenue"])
	assert.Equal(t, 0, rec.RequiredFound)
}

func TestRequiredCoverage(t *testing.T) {
	rec := models.MappingRecommendation{RequiredFound: 1, RequiredTotal: 2}
	assert.InDelta(t, 0.5, rec.RequiredCoverage(), 1e-9)

	none := models.MappingRecommendation{}
	assert.InDelta(t, 1.0, none.RequiredCoverage(), 1e-9)
}
