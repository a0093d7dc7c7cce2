package reroll

import (
	"sort"
	"unicode/utf8"

	"github.com/ocsin1/artian-reroller/matcher"
)

// ResolveName picks the known weapon or element name shown in texts. A literal
// hit beats a fuzzy one, and longer names are tried first so "ガンランス" is
// not read as "ランス".
func ResolveName(texts, known []string, threshold float64) (string, bool) {
	names := append([]string(nil), known...)
	sort.SliceStable(names, func(i, j int) bool {
		return utf8.RuneCountInString(names[i]) > utf8.RuneCountInString(names[j])
	})

	for _, name := range names {
		for _, t := range texts {
			if name != "" && matcher.IsExactMatch(name, t) {
				return name, true
			}
		}
	}
	for _, name := range names {
		for _, t := range texts {
			if name != "" && t != "" && matcher.IsFuzzyMatch(name, t, threshold) {
				return name, true
			}
		}
	}
	return "", false
}
