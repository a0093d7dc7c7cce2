package rerolltable

import (
	"sort"
	"strings"
)

// unknownRank puts names missing from the canonical lists after every known one.
const unknownRank = 999

// ColumnOrder holds the canonical weapon and element orderings used to lay out
// the data columns.
type ColumnOrder struct {
	Weapons  []string
	Elements []string
}

// ColumnName is the identifier of one weapon+element column.
func ColumnName(weapon, element string) string {
	return weapon + "_" + element
}

// SplitColumn returns the weapon and element parts of a column identifier.
func SplitColumn(column string) (weapon, element string, ok bool) {
	parts := strings.Split(column, "_")
	if len(parts) < 2 {
		return column, "", false
	}
	return parts[0], parts[1], true
}

func (o ColumnOrder) rank(column string) (int, int) {
	weapon, element, ok := SplitColumn(column)
	if !ok {
		return unknownRank, unknownRank
	}
	return indexOr(o.Weapons, weapon), indexOr(o.Elements, element)
}

// Sort orders columns by weapon priority, then element priority. Columns with
// equal rank fall back to their name so the result never depends on insertion
// order.
func (o ColumnOrder) Sort(columns []string) {
	sort.SliceStable(columns, func(i, j int) bool {
		wi, ei := o.rank(columns[i])
		wj, ej := o.rank(columns[j])
		if wi != wj {
			return wi < wj
		}
		if ei != ej {
			return ei < ej
		}
		return columns[i] < columns[j]
	})
}

func indexOr(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return unknownRank
}
