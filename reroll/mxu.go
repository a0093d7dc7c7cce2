package reroll

import (
	"fmt"
	"html"
	"strings"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
)

const nodeLogMXU = "LogMXU"

const (
	colorInfo   = "#00bfff"
	colorTarget = "#47b5ff"
	colorHit    = "#ff7000"
	colorWarn   = "#e8a100"
	colorDone   = "#11cf00"
	colorError  = "#ff3b3b"
)

// uiLine is one styled line of the UI log. OCR text ends up in here, so the
// text is escaped when rendered.
type uiLine struct {
	color string
	text  string
	bold  bool
	small bool
}

func (l uiLine) html() string {
	weight := 500
	if l.bold {
		weight = 900
	}
	style := fmt.Sprintf("color: %s; font-weight: %d;", l.color, weight)
	if l.small {
		style += " font-size: 12px;"
	}
	return fmt.Sprintf(`<div style="%s">%s</div>`, style, html.EscapeString(l.text))
}

func renderLines(lines ...uiLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.html())
	}
	return b.String()
}

// notify pushes lines to the UI log through the LogMXU node's focus message.
func notify(ctx *maa.Context, lines ...uiLine) {
	if len(lines) == 0 {
		return
	}
	ctx.RunTask(nodeLogMXU, map[string]any{
		nodeLogMXU: map[string]any{
			"focus": map[string]any{
				"Node.Action.Starting": renderLines(lines...),
			},
		},
	})
}

func notifyf(ctx *maa.Context, color, format string, args ...any) {
	notify(ctx, uiLine{color: color, text: fmt.Sprintf(format, args...)})
}
