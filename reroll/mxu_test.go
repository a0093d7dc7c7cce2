package reroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLines(t *testing.T) {
	out := renderLines(
		uiLine{color: colorInfo, text: "ターゲット：", bold: true},
		uiLine{color: colorTarget, text: "闘獣の力+甲虫の知らせ", small: true},
	)
	assert.Equal(t,
		`<div style="color: #00bfff; font-weight: 900;">ターゲット：</div>`+
			`<div style="color: #47b5ff; font-weight: 500; font-size: 12px;">闘獣の力+甲虫の知らせ</div>`,
		out)

	// OCR 文本需转义
	assert.Equal(t, `<div style="color: #e8a100; font-weight: 500;">a&lt;b&gt; &amp; c</div>`,
		uiLine{color: colorWarn, text: "a<b> & c"}.html())

	assert.Empty(t, renderLines())
}
