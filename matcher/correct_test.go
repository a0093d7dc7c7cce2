package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectionsApplyLongestFirst(t *testing.T) {
	c := Corrections{"ab": "X", "a": "Y"}
	assert.Equal(t, "YX", c.Apply("aab"))
	assert.Equal(t, "", c.Apply(""))

	var empty Corrections
	assert.Equal(t, "aab", empty.Apply("aab"))
}

func TestCorrectionsLines(t *testing.T) {
	c := Corrections{"鬪獸": "闘獣"}

	out, changed := c.Lines([]string{"鬪獸の力", "甲虫の知らせ"})
	assert.True(t, changed)
	assert.Equal(t, []string{"闘獣の力", "甲虫の知らせ"}, out)

	_, changed = c.Lines([]string{"攻撃"})
	assert.False(t, changed)
}

func TestMatcherCorrectionPass(t *testing.T) {
	combo := Combination{"闘獣の力", "甲虫の知らせ"}
	detected := []string{"鬪獸の力", "甲虫の知らせ"}

	// 2 of 4 runes agree, below the default threshold
	assert.False(t, New(DefaultThreshold).Evaluate(combo, detected).Satisfied)

	m := New(DefaultThreshold).WithCorrections(Corrections{"鬪獸": "闘獣"})
	r := m.Evaluate(combo, detected)
	assert.True(t, r.Satisfied)
	assert.False(t, r.Exact)

	match, ok := m.EvaluateAny([]Combination{{"攻撃"}, combo}, detected)
	assert.True(t, ok)
	assert.Equal(t, 1, match.Index)
	assert.False(t, match.Result.Exact)

	// raw hits stay exact
	r = m.Evaluate(combo, []string{"闘獣の力", "甲虫の知らせ"})
	assert.True(t, r.Exact)
}

func TestMatcherCorrectionKeepsPriority(t *testing.T) {
	m := New(DefaultThreshold).WithCorrections(Corrections{"XYZW": "甲虫の知らせ"})
	combos := []Combination{{"闘獣の力", "甲虫の知らせ"}, {"闘獣の力"}}

	// combo 0 needs the correction, combo 1 matches raw; list order decides
	match, ok := m.EvaluateAny(combos, []string{"闘獣の力", "XYZW"})
	assert.True(t, ok)
	assert.Equal(t, 0, match.Index)
	assert.Equal(t, combos[0], match.Combination)
	assert.False(t, match.Result.Exact)
}
