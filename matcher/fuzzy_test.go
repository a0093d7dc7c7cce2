package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFuzzyMatch(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		candidate string
		want      bool
	}{
		{"substring", "力", "闘獣の力", true},
		{"identical", "闘獣の力", "闘獣の力", true},
		{"dropped rune", "甲虫の知らせ", "甲虫の知せ", true},
		{"unrelated", "甲虫の知らせ", "全く無関係", false},
		{"misread inside longer line", "闘獣の力", "【闘獣の刀】Lv1", true},
		{"window below threshold", "闘獣の力", "闘争本能", false},
		{"empty candidate", "闘獣の力", "", false},
		{"empty target", "", "闘獣の力", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFuzzyMatch(tt.target, tt.candidate, DefaultThreshold))
		})
	}
}

func TestIsFuzzyMatchSelf(t *testing.T) {
	for _, s := range []string{"", "力", "甲虫の知らせ", "切れ味レベル+1"} {
		for _, th := range []float64{0, 0.5, DefaultThreshold, 1.0} {
			assert.True(t, IsFuzzyMatch(s, s, th), "IsFuzzyMatch(%q, %q, %v)", s, s, th)
		}
	}
}

func TestIsFuzzyMatchThresholdBoundary(t *testing.T) {
	// "闘獣の力" vs "闘獣の刀" scores exactly 0.75.
	assert.True(t, IsFuzzyMatch("闘獣の力", "闘獣の刀", 0.75))
	assert.False(t, IsFuzzyMatch("闘獣の力", "闘獣の刀", 0.76))
}

func TestIsExactMatch(t *testing.T) {
	assert.True(t, IsExactMatch("闘獣の力", "闘獣の力Lv2"))
	assert.False(t, IsExactMatch("闘獣の力", "闘獣の刀"))
}
