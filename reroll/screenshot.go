package reroll

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/ocsin1/artian-reroller/matcher"
)

const maxScreenshotSkillRunes = 50

var unsafeNameChars = strings.NewReplacer("/", " ", "\\", " ", ":", " ")

// ScreenshotName is "{prefix}{attempt}回目 {skills}.jpg". Path separators and
// colons become spaces and the skill part is cut to 50 runes plus "...".
func ScreenshotName(prefix string, attempt int, skills []string) string {
	safe := []rune(unsafeNameChars.Replace(matcher.JoinSkills(skills)))
	name := string(safe)
	if len(safe) > maxScreenshotSkillRunes {
		name = string(safe[:maxScreenshotSkillRunes]) + "..."
	}
	return fmt.Sprintf("%s%d回目 %s.jpg", prefix, attempt, name)
}

// SaveScreenshot encodes img as JPEG into dir/name.
func SaveScreenshot(dir, name string, img image.Image) (string, error) {
	if img == nil {
		return "", errors.New("no image to save")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create screenshot dir %s", dir)
	}
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path, imaging.JPEGQuality(90)); err != nil {
		log.Error().Err(err).Str("path", path).Msg("<Reroll> failed to save screenshot")
		return "", errors.Wrapf(err, "save screenshot %s", path)
	}
	log.Info().Str("path", path).Msg("<Reroll> screenshot saved")
	return path, nil
}
