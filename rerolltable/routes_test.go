package rerolltable

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ocsin1/artian-reroller/matcher"
)

func seededTable(t *testing.T) *Table {
	t.Helper()
	tbl := New(tablePath(t), testOrder)
	require.NoError(t, tbl.Update("太刀", "水", []string{
		"闘獣の力+甲虫の知らせ",
		"攻撃+体力",
		"闘獣の刀+甲虫の知らせ",
		"",
		"甲虫の知らせ",
	}, 0))
	require.NoError(t, tbl.Update("大剣", "火", []string{
		"攻撃",
		"甲虫の知らせ+闘獣の力",
	}, 2))
	return tbl
}

func TestFindTargetCombinations(t *testing.T) {
	tbl := seededTable(t)
	targets := []matcher.Combination{{"闘獣の力", "甲虫の知らせ"}}

	routes := tbl.FindTargetCombinations(targets, 0, matcher.DefaultThreshold)
	require.Len(t, routes, 3)

	assert.Equal(t, Route{
		Count:         1,
		WeaponElement: "太刀_水",
		MatchedCombo:  targets[0],
		RawSkills:     "闘獣の力+甲虫の知らせ",
		IsExactMatch:  true,
	}, routes[0])

	assert.Equal(t, 3, routes[1].Count)
	assert.Equal(t, "太刀_水", routes[1].WeaponElement)
	assert.False(t, routes[1].IsExactMatch)

	assert.Equal(t, 4, routes[2].Count)
	assert.Equal(t, "大剣_火", routes[2].WeaponElement)
	assert.True(t, routes[2].IsExactMatch)
}

func TestFindTargetCombinationsMinCount(t *testing.T) {
	tbl := seededTable(t)
	targets := []matcher.Combination{{"甲虫の知らせ"}}

	for _, minCount := range []int{0, 1, 3, 5, 10} {
		for _, r := range tbl.FindTargetCombinations(targets, minCount, matcher.DefaultThreshold) {
			assert.Greater(t, r.Count, minCount)
		}
	}
	assert.Empty(t, tbl.FindTargetCombinations(targets, 10, matcher.DefaultThreshold))
}

func TestFindTargetCombinationsFirstComboWins(t *testing.T) {
	tbl := seededTable(t)
	targets := []matcher.Combination{{"甲虫の知らせ"}, {"闘獣の力", "甲虫の知らせ"}}

	routes := tbl.FindTargetCombinations(targets, 0, matcher.DefaultThreshold)
	require.NotEmpty(t, routes)
	for _, r := range routes {
		assert.Equal(t, matcher.Combination{"甲虫の知らせ"}, r.MatchedCombo)
	}
	assert.Len(t, routes, 4)
}

func TestFindTargetCombinationsNoTargets(t *testing.T) {
	tbl := seededTable(t)
	assert.Empty(t, tbl.FindTargetCombinations(nil, 0, matcher.DefaultThreshold))
}

func TestRouteFinder(t *testing.T) {
	tbl := seededTable(t)
	f := NewRouteFinder([]matcher.Combination{{"闘獣の力", "甲虫の知らせ"}}, 2, 5)
	assert.Equal(t, matcher.DefaultThreshold, f.Threshold)

	routes := f.Find(tbl)
	require.Len(t, routes, 2)
	assert.Equal(t, []int{3, 4}, []int{routes[0].Count, routes[1].Count})

	filtered := FilterColumn(routes, "大剣", "")
	require.Len(t, filtered, 1)
	assert.Equal(t, "大剣", filtered[0].Weapon())
	assert.Equal(t, "火", filtered[0].Element())

	assert.Empty(t, FilterColumn(routes, "", "雷"))
	assert.Len(t, FilterColumn(routes, "", ""), 2)
}

func TestExportXLSX(t *testing.T) {
	tbl := seededTable(t)
	routes := tbl.FindTargetCombinations([]matcher.Combination{{"闘獣の力", "甲虫の知らせ"}}, 0, matcher.DefaultThreshold)
	path := filepath.Join(t.TempDir(), "export", "table.xlsx")
	require.NoError(t, ExportXLSX(tbl, path, routes))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TableSheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"回数", "大剣_火", "太刀_水"}, rows[0])
	assert.Equal(t, "闘獣の力+甲虫の知らせ", rows[1][2])

	routeRows, err := f.GetRows(RoutesSheet)
	require.NoError(t, err)
	require.Len(t, routeRows, len(routes)+1)
	assert.Equal(t, routeHeader, routeRows[0])
	assert.Equal(t, "1", routeRows[1][0])
	assert.Equal(t, "○", routeRows[1][4])
}

func TestWatchCallsOnChange(t *testing.T) {
	path := tablePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 20*time.Millisecond, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// watcher needs a moment to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, New(path, testOrder).Update("太刀", "水", []string{"a"}, 0))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestRouteFinderAppliesCorrections(t *testing.T) {
	tbl := New(tablePath(t), testOrder)
	require.NoError(t, tbl.Update("大剣", "火", []string{"鬪獸の力+甲虫の知らせ"}, 0))
	targets := []matcher.Combination{{"闘獣の力", "甲虫の知らせ"}}

	assert.Empty(t, NewRouteFinder(targets, 0, matcher.DefaultThreshold).Find(tbl))

	routes := NewRouteFinder(targets, 0, matcher.DefaultThreshold).
		WithCorrections(matcher.Corrections{"鬪獸": "闘獣"}).
		Find(tbl)
	require.Len(t, routes, 1)
	assert.Equal(t, 1, routes[0].Count)
	assert.False(t, routes[0].IsExactMatch)
}
