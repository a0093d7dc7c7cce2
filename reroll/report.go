package reroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

// RenderReport builds the markdown summary of a session.
func RenderReport(name string, s *Session, at time.Time) string {
	opts := s.Options()
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "- **実行日時**: %s\n", at.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **セッションID**: %s\n", s.ID)
	fmt.Fprintf(&b, "- **武器 / 属性**: %s / %s\n", opts.Weapon, opts.Element)
	fmt.Fprintf(&b, "- **確定済み回数**: %d\n", opts.Confirmed)
	fmt.Fprintf(&b, "- **開始時ポイント合計**: %d\n", s.TotalPoints())
	fmt.Fprintf(&b, "- **最大試行回数**: %d\n", s.Budget())
	if s.Stopped() {
		b.WriteString("- **中断**: あり\n")
	}
	b.WriteString("- **ターゲットの組み合わせ**:\n")
	if len(opts.Targets) == 0 {
		b.WriteString("  - (なし)\n")
	}
	for _, c := range opts.Targets {
		fmt.Fprintf(&b, "  - %s\n", c)
	}
	b.WriteString("\n")

	b.WriteString("## 開始時の素材状況\n\n")
	b.WriteString("| 行 | 単価 | 所持数 | 小計 |\n")
	b.WriteString("| :--- | :--- | :--- | :--- |\n")
	materials := s.Materials()
	for _, m := range materials {
		fmt.Fprintf(&b, "| %d | %d | %d | %d |\n", m.Row, m.Value, m.Count, m.Subtotal())
	}
	if len(materials) == 0 {
		b.WriteString("| - | - | - | - |\n")
	}
	b.WriteString("\n")

	b.WriteString("## リロール履歴\n\n")
	b.WriteString("| 回数 | 時刻 | 検出スキル | ターゲット一致 |\n")
	b.WriteString("| :--- | :--- | :--- | :--- |\n")
	for _, a := range s.History() {
		skills := "(なし)"
		if len(a.Skills) > 0 {
			skills = strings.ReplaceAll(strings.Join(a.Skills, ", "), "\n", " ")
		}
		mark := "-"
		if a.Matched {
			mark = "**あり**"
			if !a.Exact {
				mark += " (OCR誤認識の可能性)"
			}
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", a.Row, a.Time.Format("15:04:05"), skills, mark)
	}
	return b.String()
}

// WriteReport writes {dir}/{name}.md and returns its path.
func WriteReport(dir, name string, s *Session) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create report dir %s", dir)
	}
	path := filepath.Join(dir, name+".md")
	if err := os.WriteFile(path, []byte(RenderReport(name, s, time.Now())), 0o644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("<Reroll> failed to generate report")
		return "", errors.Wrapf(err, "write report %s", path)
	}
	log.Info().Str("path", path).Msg("<Reroll> report written")
	return path, nil
}
