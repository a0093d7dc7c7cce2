package rerolltable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOrder = ColumnOrder{
	Weapons:  []string{"大剣", "太刀", "片手剣"},
	Elements: []string{"火", "水", "雷"},
}

func tablePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "out", "reroll_table.csv")
}

func TestLoadMissingFile(t *testing.T) {
	tbl, err := Open(tablePath(t), testOrder)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Columns())
	assert.Equal(t, []string{RowKeyHeader}, tbl.Header())
}

func TestUpdateSaveLoadRoundTrip(t *testing.T) {
	path := tablePath(t)
	tbl := New(path, testOrder)
	require.NoError(t, tbl.Update("太刀", "水", []string{"闘獣の力+甲虫の知らせ", "", "攻撃+体力"}, 0))
	require.NoError(t, tbl.Update("大剣", "火", []string{"見切り"}, 2))

	got, err := Open(path, testOrder)
	require.NoError(t, err)

	assert.Equal(t, []string{"大剣_火", "太刀_水"}, got.Columns())
	assert.Equal(t, []int{1, 2, 3}, got.Rows())

	v, ok := got.Cell(1, "太刀_水")
	assert.True(t, ok)
	assert.Equal(t, "闘獣の力+甲虫の知らせ", v)

	_, ok = got.Cell(2, "太刀_水")
	assert.False(t, ok)

	v, _ = got.Cell(3, "大剣_火")
	assert.Equal(t, "見切り", v)

	assert.Equal(t, map[int]string{1: "闘獣の力+甲虫の知らせ", 3: "攻撃+体力"}, got.Column("太刀", "水"))
}

func TestUpdateRespectsWatermark(t *testing.T) {
	path := tablePath(t)
	tbl := New(path, testOrder)
	locked := []string{"a", "b", "c", "d", "e"}
	require.NoError(t, tbl.Update("太刀", "水", locked, 0))

	require.NoError(t, tbl.Update("太刀", "水", []string{"x1", "x2", "x3"}, 5))
	require.NoError(t, tbl.Update("太刀", "水", []string{"y1", "y2", "y3"}, 5))

	got, err := Open(path, testOrder)
	require.NoError(t, err)
	col := got.Column("太刀", "水")
	for i, want := range locked {
		assert.Equal(t, want, col[i+1], "row %d", i+1)
	}
	assert.Equal(t, "y1", col[6])
	assert.Equal(t, "y2", col[7])
	assert.Equal(t, "y3", col[8])
	assert.Len(t, col, 8)
}

func TestUpdateRejectsNegativeWatermark(t *testing.T) {
	tbl := New(tablePath(t), testOrder)
	err := tbl.Update("太刀", "水", []string{"a"}, -1)
	assert.ErrorIs(t, err, ErrNegativeWatermark)
	assert.Equal(t, 0, tbl.Len())
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	path := tablePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := "\ufeff回数,太刀_水,大剣_火\n" +
		"1,a+b,\n" +
		"x,bad,row\n" +
		"-2,neg,\n" +
		"3,,c\n" +
		"4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := Open(path, testOrder)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, tbl.Rows())
	v, _ := tbl.Cell(1, "太刀_水")
	assert.Equal(t, "a+b", v)
	v, _ = tbl.Cell(3, "大剣_火")
	assert.Equal(t, "c", v)

	require.NoError(t, tbl.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "回数,大剣_火,太刀_水\n1,,a+b\n3,c,\n4,,\n", string(data))
}

func TestColumnOrderUnknownLast(t *testing.T) {
	columns := []string{"謎_火", "太刀_謎", "太刀_火", "大剣_雷", "nounderscore", "大剣_火"}
	testOrder.Sort(columns)
	assert.Equal(t, []string{"大剣_火", "大剣_雷", "太刀_火", "太刀_謎", "謎_火", "nounderscore"}, columns)
}

func TestColumnOrderIndependentOfInsertion(t *testing.T) {
	a := tablePath(t)
	b := tablePath(t)

	ta := New(a, testOrder)
	require.NoError(t, ta.Update("片手剣", "雷", []string{"1"}, 0))
	require.NoError(t, ta.Update("大剣", "水", []string{"2"}, 0))

	tb := New(b, testOrder)
	require.NoError(t, tb.Update("大剣", "水", []string{"2"}, 0))
	require.NoError(t, tb.Update("片手剣", "雷", []string{"1"}, 0))

	da, err := os.ReadFile(a)
	require.NoError(t, err)
	db, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, string(da), string(db))
}

func TestSplitColumn(t *testing.T) {
	w, e, ok := SplitColumn("太刀_水")
	assert.True(t, ok)
	assert.Equal(t, "太刀", w)
	assert.Equal(t, "水", e)

	_, _, ok = SplitColumn("太刀")
	assert.False(t, ok)
}

func TestLoadEmptyFileAndDuplicateHeaders(t *testing.T) {
	path := tablePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	tbl, err := Open(path, testOrder)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{RowKeyHeader}, tbl.Header())

	// 重复列名合并为一列，后出现的值覆盖
	require.NoError(t, os.WriteFile(path, []byte("回数,太刀_水,太刀_水\n1,a,b\n"), 0o644))
	require.NoError(t, tbl.Load())
	assert.Equal(t, []string{"太刀_水"}, tbl.Columns())
	v, _ := tbl.Cell(1, "太刀_水")
	assert.Equal(t, "b", v)
}

func TestLoadSkipsEmptyHeaderColumn(t *testing.T) {
	path := tablePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("回数,太刀_水, ,大剣_火\n1,a,lost,b\n"), 0o644))

	tbl, err := Open(path, testOrder)
	require.NoError(t, err)
	assert.Equal(t, []string{"大剣_火", "太刀_水"}, tbl.Columns())
	assert.NotContains(t, tbl.Columns(), "")

	v, _ := tbl.Cell(1, "太刀_水")
	assert.Equal(t, "a", v)
	v, _ = tbl.Cell(1, "大剣_火")
	assert.Equal(t, "b", v)

	require.NoError(t, tbl.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "回数,大剣_火,太刀_水\n1,b,a\n", string(data))
}

func TestLoadDuplicateCountReplacesRow(t *testing.T) {
	path := tablePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("回数,太刀_水,大剣_火\n1,a,b\n2,c,\n1,,d\n"), 0o644))

	tbl, err := Open(path, testOrder)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, tbl.Rows())

	// 后出现的行整行生效，前一行的 太刀_水 不保留
	_, ok := tbl.Cell(1, "太刀_水")
	assert.False(t, ok)
	v, _ := tbl.Cell(1, "大剣_火")
	assert.Equal(t, "d", v)
	v, _ = tbl.Cell(2, "太刀_水")
	assert.Equal(t, "c", v)
}

func TestUpdateSaveFailureKeepsState(t *testing.T) {
	// 目标路径是目录，写入必然失败
	path := filepath.Join(t.TempDir(), "reroll_table.csv")
	require.NoError(t, os.MkdirAll(path, 0o755))

	tbl := New(path, testOrder)
	err := tbl.Update("太刀", "水", []string{"闘獣の力+甲虫の知らせ", "攻撃"}, 0)
	require.Error(t, err)

	v, ok := tbl.Cell(1, "太刀_水")
	assert.True(t, ok)
	assert.Equal(t, "闘獣の力+甲虫の知らせ", v)
	assert.Equal(t, map[int]string{1: "闘獣の力+甲虫の知らせ", 2: "攻撃"}, tbl.Column("太刀", "水"))
	assert.Equal(t, []string{"太刀_水"}, tbl.Columns())
}
