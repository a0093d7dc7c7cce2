package matcher

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Corrections - 相近/误识替换（键为误识，值为正确），仅作用于 OCR 文本，不改目标技能
type Corrections map[string]string

// Apply rewrites every known misreading in s. Longer keys are replaced first,
// ties broken by key, so the result does not depend on map order.
func (c Corrections) Apply(s string) string {
	if len(c) == 0 || s == "" {
		return s
	}
	for _, k := range c.keys() {
		s = strings.ReplaceAll(s, k, c[k])
	}
	return s
}

// Lines applies the corrections to every line and reports whether anything
// changed.
func (c Corrections) Lines(lines []string) ([]string, bool) {
	if len(c) == 0 {
		return lines, false
	}
	out := make([]string, len(lines))
	changed := false
	for i, l := range lines {
		out[i] = c.Apply(l)
		changed = changed || out[i] != l
	}
	return out, changed
}

func (c Corrections) keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})
	return keys
}
