package matcher

import (
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the Ratcliff/Obershelp ratio of a and b, computed over runes.
// It is difflib.SequenceMatcher(None, a, b).ratio() including autojunk, so
// thresholds tuned against that scorer keep their meaning here.
// Identical strings always score 1, even long repetitive ones that autojunk
// would otherwise blank out.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return difflib.NewMatcher(runeSeq(a), runeSeq(b)).Ratio()
}

// runeSeq - difflib 按元素比较，每个 rune 作为一个元素
func runeSeq(s string) []string {
	seq := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		seq = append(seq, string(r))
	}
	return seq
}
