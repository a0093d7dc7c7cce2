package reroll

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReport(t *testing.T) {
	s := newTestSession(Options{Confirmed: 2, Targets: targets})
	s.SetMaterials([]MaterialRow{{Row: 1, Value: 500, Count: 9}})
	_, err := s.Begin(0)
	require.NoError(t, err)
	s.Record([]string{"攻撃"})
	s.Record([]string{"闘獣の力", "甲虫の知らせ"})
	s.Record([]string{"闘獣の刀", "甲虫の知らせ"})

	out := RenderReport("report", s, time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC))

	assert.True(t, strings.HasPrefix(out, "# report\n\n"))
	assert.Contains(t, out, "- **実行日時**: 2025-03-01 12:30:00\n")
	assert.Contains(t, out, "- **武器 / 属性**: 太刀 / 水\n")
	assert.Contains(t, out, "- **開始時ポイント合計**: 4500\n")
	assert.Contains(t, out, "- **最大試行回数**: 3\n")
	assert.Contains(t, out, "  - 闘獣の力+甲虫の知らせ\n")
	assert.Contains(t, out, "## 開始時の素材状況\n")
	assert.Contains(t, out, "| 1 | 500 | 9 | 4500 |\n")
	assert.Contains(t, out, "## リロール履歴\n")
	assert.Contains(t, out, "| 攻撃 | - |\n")
	assert.Contains(t, out, "| 闘獣の力, 甲虫の知らせ | **あり** |\n")
	assert.Contains(t, out, "| 闘獣の刀, 甲虫の知らせ | **あり** (OCR誤認識の可能性) |\n")
	assert.Contains(t, out, "| 3 | ")
	assert.NotContains(t, out, "中断")
}

func TestRenderReportEmpty(t *testing.T) {
	s := newTestSession(Options{})
	s.RequestStop()
	out := RenderReport("report", s, time.Now())
	assert.Contains(t, out, "  - (なし)\n")
	assert.Contains(t, out, "| - | - | - | - |\n")
	assert.Contains(t, out, "- **中断**: あり\n")
}

func TestWriteReport(t *testing.T) {
	s := newTestSession(Options{})
	dir := filepath.Join(t.TempDir(), "session")
	path, err := WriteReport(dir, "summary", s)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# summary\n"))
}
