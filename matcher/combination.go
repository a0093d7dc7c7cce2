package matcher

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// SkillDelimiter joins the skills of one attempt inside a table cell.
const SkillDelimiter = "+"

// MaxCombinationSkills - 一个组合最多两个技能（系列技能 + 组技能）
const MaxCombinationSkills = 2

var (
	ErrEmptyCombination = errors.New("combination has no skills")
	ErrTooManySkills    = errors.Newf("combination has more than %d skills", MaxCombinationSkills)
)

// Combination is a set of skill names that must all appear in one attempt.
// Order carries no meaning when matching.
type Combination []string

// NewCombination trims the given skills and drops empty slots.
func NewCombination(skills ...string) (Combination, error) {
	c := make(Combination, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		c = append(c, s)
	}
	if len(c) == 0 {
		return nil, ErrEmptyCombination
	}
	if len(c) > MaxCombinationSkills {
		return nil, errors.WithDetailf(ErrTooManySkills, "got %v", []string(c))
	}
	return c, nil
}

// ParseCombination reads a combination written as "skillA+skillB".
func ParseCombination(s string) (Combination, error) {
	return NewCombination(strings.Split(s, SkillDelimiter)...)
}

// String renders the combination the way it is stored in a table cell.
func (c Combination) String() string {
	return strings.Join(c, SkillDelimiter)
}

// Result is the outcome of evaluating one combination against one attempt.
// Exact is only meaningful when Satisfied is true.
type Result struct {
	Satisfied bool
	Exact     bool
}

// Evaluate checks every skill of c against detected. Each target takes the first
// detected entry that fuzzy-matches it; the result is exact only when every one
// of those entries also contains its target literally.
func Evaluate(c Combination, detected []string, threshold float64) Result {
	exact := true
	checked := 0
	for _, target := range c {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		checked++

		found := false
		for _, d := range detected {
			if IsFuzzyMatch(target, d, threshold) {
				found = true
				exact = exact && IsExactMatch(target, d)
				break
			}
		}
		if !found {
			return Result{}
		}
	}
	if checked == 0 {
		return Result{}
	}
	return Result{Satisfied: true, Exact: exact}
}

// Match is the combination that satisfied an attempt.
type Match struct {
	Index       int
	Combination Combination
	Result      Result
}

// EvaluateAny returns the first combination, in priority order, that detected
// satisfies.
func EvaluateAny(cs []Combination, detected []string, threshold float64) (Match, bool) {
	for i, c := range cs {
		if r := Evaluate(c, detected, threshold); r.Satisfied {
			return Match{Index: i, Combination: c, Result: r}, true
		}
	}
	return Match{}, false
}

// SplitSkills turns a stored cell back into a detected skill set.
func SplitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, SkillDelimiter)
}

// JoinSkills is the inverse of SplitSkills.
func JoinSkills(skills []string) string {
	return strings.Join(skills, SkillDelimiter)
}

// Matcher binds a threshold and the OCR corrections to the evaluation
// functions.
type Matcher struct {
	Threshold   float64
	Corrections Corrections
}

// New returns a Matcher; a threshold outside [0,1] falls back to DefaultThreshold.
func New(threshold float64) *Matcher {
	if threshold < 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Matcher{Threshold: threshold}
}

// WithCorrections sets the misreading table used as a second pass.
func (m *Matcher) WithCorrections(c Corrections) *Matcher {
	m.Corrections = c
	return m
}

// Evaluate matches the raw text first, then the corrected text. A match that
// needed a correction is never reported as exact.
func (m *Matcher) Evaluate(c Combination, detected []string) Result {
	if r := Evaluate(c, detected, m.Threshold); r.Satisfied {
		return r
	}
	fixed, changed := m.Corrections.Lines(detected)
	if !changed {
		return Result{}
	}
	r := Evaluate(c, fixed, m.Threshold)
	r.Exact = false
	return r
}

// EvaluateAny walks cs in priority order; each combination gets its raw and
// corrected pass before the next one is tried.
func (m *Matcher) EvaluateAny(cs []Combination, detected []string) (Match, bool) {
	fixed, changed := m.Corrections.Lines(detected)
	for i, c := range cs {
		if r := Evaluate(c, detected, m.Threshold); r.Satisfied {
			return Match{Index: i, Combination: c, Result: r}, true
		}
		if !changed {
			continue
		}
		if r := Evaluate(c, fixed, m.Threshold); r.Satisfied {
			r.Exact = false
			return Match{Index: i, Combination: c, Result: r}, true
		}
	}
	return Match{}, false
}
