package rerolltable

import (
	"sort"

	"github.com/ocsin1/artian-reroller/matcher"
)

// Route is one historical attempt whose stored skills satisfied a target.
type Route struct {
	Count         int                 `json:"count"`
	WeaponElement string              `json:"weapon_element"`
	MatchedCombo  matcher.Combination `json:"matched_combo"`
	RawSkills     string              `json:"raw_skills"`
	IsExactMatch  bool                `json:"is_exact_match"`
}

// Weapon and Element split WeaponElement back into its parts.
func (r Route) Weapon() string {
	w, _, _ := SplitColumn(r.WeaponElement)
	return w
}

func (r Route) Element() string {
	_, e, _ := SplitColumn(r.WeaponElement)
	return e
}

// FindTargetCombinations scans every row with key > minCount. Each non-empty
// cell is checked against targets in list order and yields at most one Route.
// The result is ascending by count; cells of the same count keep column order.
func (t *Table) FindTargetCombinations(targets []matcher.Combination, minCount int, threshold float64) []Route {
	return t.FindRoutes(targets, minCount, &matcher.Matcher{Threshold: threshold})
}

// FindRoutes is FindTargetCombinations scored by m, so stored cells get the
// same correction pass live OCR text gets.
func (t *Table) FindRoutes(targets []matcher.Combination, minCount int, m *matcher.Matcher) []Route {
	var routes []Route
	if len(targets) == 0 {
		return routes
	}

	t.order.Sort(t.columns)
	for _, count := range t.Rows() {
		if count <= minCount {
			continue
		}
		row := t.rows[count]
		for _, column := range t.columns {
			raw, ok := row[column]
			if !ok || raw == "" {
				continue
			}
			match, ok := m.EvaluateAny(targets, matcher.SplitSkills(raw))
			if !ok {
				continue
			}
			routes = append(routes, Route{
				Count:         count,
				WeaponElement: column,
				MatchedCombo:  match.Combination,
				RawSkills:     raw,
				IsExactMatch:  match.Result.Exact,
			})
		}
	}

	sort.SliceStable(routes, func(i, j int) bool { return routes[i].Count < routes[j].Count })
	return routes
}

// RouteFinder is the query the user currently has configured: which
// combinations they want and which attempts are already locked in.
type RouteFinder struct {
	Targets     []matcher.Combination
	MinCount    int
	Threshold   float64
	Corrections matcher.Corrections
}

func NewRouteFinder(targets []matcher.Combination, minCount int, threshold float64) *RouteFinder {
	if minCount < 0 {
		minCount = 0
	}
	return &RouteFinder{
		Targets:   targets,
		MinCount:  minCount,
		Threshold: matcher.New(threshold).Threshold,
	}
}

// WithCorrections sets the OCR misreading table applied to stored cells.
func (f *RouteFinder) WithCorrections(c matcher.Corrections) *RouteFinder {
	f.Corrections = c
	return f
}

// Find runs the configured query against t.
func (f *RouteFinder) Find(t *Table) []Route {
	m := &matcher.Matcher{Threshold: f.Threshold, Corrections: f.Corrections}
	return t.FindRoutes(f.Targets, f.MinCount, m)
}

// FilterColumn keeps the routes of one weapon and/or element. An empty
// argument matches anything.
func FilterColumn(routes []Route, weapon, element string) []Route {
	if weapon == "" && element == "" {
		return routes
	}
	var out []Route
	for _, r := range routes {
		if weapon != "" && r.Weapon() != weapon {
			continue
		}
		if element != "" && r.Element() != element {
			continue
		}
		out = append(out, r)
	}
	return out
}
