// Package matcher decides whether noisy OCR skill text matches the skills a
// reroll session is waiting for.
package matcher

import (
	"strings"
	"unicode/utf8"
)

// DefaultThreshold is the similarity a window must reach to count as a match.
const DefaultThreshold = 0.65

// IsExactMatch reports whether target occurs literally inside candidate.
func IsExactMatch(target, candidate string) bool {
	return strings.Contains(candidate, target)
}

// IsFuzzyMatch reports whether candidate is an acceptable reading of target.
//
// A literal substring always matches. A candidate shorter than target is scored
// as a whole; otherwise every target-sized window of candidate is scored and the
// first one reaching threshold wins.
func IsFuzzyMatch(target, candidate string, threshold float64) bool {
	if IsExactMatch(target, candidate) {
		return true
	}

	tLen := utf8.RuneCountInString(target)
	cLen := utf8.RuneCountInString(candidate)
	if cLen < tLen {
		return Similarity(target, candidate) >= threshold
	}

	rc := []rune(candidate)
	for i := 0; i+tLen <= cLen; i++ {
		if Similarity(target, string(rc[i:i+tLen])) >= threshold {
			return true
		}
	}
	return false
}
