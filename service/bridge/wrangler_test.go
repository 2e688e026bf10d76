/*
 * @module service/bridge/wrangler_test
 * @description 行级转换工具单元测试：拆分/填充/匿名化的语义与写时复制纯度
 * @architecture 单元测试
 */

package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataaudit-service/service/models"
	"dataaudit-service/testutil"
)

func TestSplitColumn(t *testing.T) {
	ds := testutil.Dataset(
		testutil.TextColumn("full_name", "张 伟", "李娜", nil),
	)

	out, err := SplitColumn(ds, "full_name", " ", []string{"first", "last"})
	require.NoError(t, err)
	require.Equal(t, 3, out.ColumnCount())

	first := out.Column("first")
	last := out.Column("last")
	assert.Equal(t, "张", first.Values[0].Str)
	assert.Equal(t, "伟", last.Values[0].Str)
	// 无分隔符的值：第一部分为整串，第二部分补null
	assert.Equal(t, "李娜", first.Values[1].Str)
	assert.True(t, last.Values[1].Null)
	// 缺失值所有部分均为null
	assert.True(t, first.Values[2].Null)
	assert.True(t, last.Values[2].Null)
}

func TestSplitColumnErrors(t *testing.T) {
	ds := testutil.Dataset(testutil.TextColumn("a", "x"))

	_, err := SplitColumn(ds, "missing", "-", []string{"p"})
	assert.Error(t, err)

	_, err = SplitColumn(ds, "a", "", []string{"p"})
	assert.Error(t, err)
}

func TestFillMissing(t *testing.T) {
	t.Run("静态填充数值列", func(t *testing.T) {
		ds := testutil.Dataset(testutil.NumericColumn("amount", 1, nil, 3))
		out, err := FillMissing(ds, "amount", FillStatic, "7.5")
		require.NoError(t, err)
		assert.Equal(t, 7.5, out.Column("amount").Values[1].Num)
	})

	t.Run("静态填充解释失败退化为文本", func(t *testing.T) {
		ds := testutil.Dataset(testutil.NumericColumn("amount", 1, nil))
		out, err := FillMissing(ds, "amount", FillStatic, "unknown")
		require.NoError(t, err)
		assert.Equal(t, "unknown", out.Column("amount").Values[1].Str)
	})

	t.Run("前向填充保留前导缺失", func(t *testing.T) {
		ds := testutil.Dataset(testutil.TextColumn("city", nil, "北京", nil, "上海", nil))
		out, err := FillMissing(ds, "city", FillForward, "")
		require.NoError(t, err)

		col := out.Column("city")
		assert.True(t, col.Values[0].Null)
		assert.Equal(t, "北京", col.Values[2].Str)
		assert.Equal(t, "上海", col.Values[4].Str)
	})

	t.Run("均值填充", func(t *testing.T) {
		ds := testutil.Dataset(testutil.NumericColumn("score", 2, nil, 4))
		out, err := FillMissing(ds, "score", FillMean, "")
		require.NoError(t, err)
		assert.Equal(t, 3.0, out.Column("score").Values[1].Num)
	})

	t.Run("均值填充对文本列无操作", func(t *testing.T) {
		ds := testutil.Dataset(testutil.TextColumn("note", "a", nil))
		out, err := FillMissing(ds, "note", FillMean, "")
		require.NoError(t, err)
		assert.True(t, out.Column("note").Values[1].Null)
	})

	t.Run("未知方法报错", func(t *testing.T) {
		ds := testutil.Dataset(testutil.NumericColumn("x", 1))
		_, err := FillMissing(ds, "x", FillMethod("interpolate"), "")
		assert.Error(t, err)
	})

	t.Run("列不存在报错", func(t *testing.T) {
		ds := testutil.Dataset(testutil.NumericColumn("x", 1))
		_, err := FillMissing(ds, "y", FillStatic, "0")
		assert.Error(t, err)
	})
}

func TestAnonymizeColumn(t *testing.T) {
	t.Run("掩码", func(t *testing.T) {
		ds := testutil.Dataset(testutil.TextColumn("email", "a@x.com", nil))
		out, err := AnonymizeColumn(ds, "email", AnonymizeMask)
		require.NoError(t, err)

		col := out.Column("email")
		assert.Equal(t, maskPlaceholder, col.Values[0].Str)
		assert.Equal(t, maskPlaceholder, col.Values[1].Str)
		assert.Equal(t, models.ColumnTypeText, col.Type)
	})

	t.Run("哈希确定且跳过缺失", func(t *testing.T) {
		ds := testutil.Dataset(testutil.TextColumn("email", "a@x.com", "a@x.com", "b@x.com", nil))
		out, err := AnonymizeColumn(ds, "email", AnonymizeHash)
		require.NoError(t, err)

		col := out.Column("email")
		assert.Len(t, col.Values[0].Str, 64)
		assert.Equal(t, col.Values[0].Str, col.Values[1].Str)
		assert.NotEqual(t, col.Values[0].Str, col.Values[2].Str)
		assert.True(t, col.Values[3].Null)
	})

	t.Run("数值泛化", func(t *testing.T) {
		ds := testutil.Dataset(testutil.NumericColumn("age", 24, 31, 45, nil))
		out, err := AnonymizeColumn(ds, "age", AnonymizeBins)
		require.NoError(t, err)

		col := out.Column("age")
		assert.Equal(t, "24-34", col.Values[0].Str)
		assert.Equal(t, "24-34", col.Values[1].Str)
		assert.Equal(t, "44-54", col.Values[2].Str)
		assert.True(t, col.Values[3].Null)
		assert.Equal(t, models.ColumnTypeText, col.Type)
	})

	t.Run("数值泛化对文本列无操作", func(t *testing.T) {
		ds := testutil.Dataset(testutil.TextColumn("note", "a"))
		out, err := AnonymizeColumn(ds, "note", AnonymizeBins)
		require.NoError(t, err)
		assert.Equal(t, "a", out.Column("note").Values[0].Str)
	})

	t.Run("列不存在返回克隆", func(t *testing.T) {
		ds := testutil.Dataset(testutil.TextColumn("a", "x"))
		out, err := AnonymizeColumn(ds, "missing", AnonymizeHash)
		require.NoError(t, err)
		assert.Equal(t, 1, out.ColumnCount())
	})

	t.Run("未知技术报错", func(t *testing.T) {
		ds := testutil.Dataset(testutil.TextColumn("a", "x"))
		_, err := AnonymizeColumn(ds, "a", AnonymizeMethod("scramble"))
		assert.Error(t, err)
	})
}

func TestWranglersDoNotMutateInput(t *testing.T) {
	ds := testutil.Dataset(
		testutil.TextColumn("name", "a-b", nil),
		testutil.NumericColumn("amount", 1, nil),
	)
	snapshot := ds.Clone()

	_, _ = SplitColumn(ds, "name", "-", []string{"p1", "p2"})
	_, _ = FillMissing(ds, "amount", FillMean, "")
	_, _ = AnonymizeColumn(ds, "name", AnonymizeHash)

	assert.Equal(t, snapshot, ds)
}

func TestRenameAndExport(t *testing.T) {
	ds := testutil.Dataset(
		testutil.TextColumn("region", "north"),
		testutil.NumericColumn("amt", 10),
	)
	schema := &models.TargetSchema{
		TargetName: "ledger",
		Columns: []models.TargetColumn{
			{Name: "revenue"},
			{Name: "area"},
			{Name: "quarter"},
		},
	}
	mapping := map[string]string{"revenue": "amt", "area": "region", "quarter": ""}

	out := RenameAndExport(ds, schema, mapping)
	// 按模式声明顺序投影，未匹配的目标列跳过
	require.Equal(t, 2, out.ColumnCount())
	assert.Equal(t, []string{"revenue", "area"}, out.ColumnNames())
	assert.Equal(t, 10.0, out.Column("revenue").Values[0].Num)
	assert.Equal(t, models.ColumnTypeNumeric, out.Column("revenue").Type)
}
