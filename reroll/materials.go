package reroll

import (
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

// DefaultPointsPerAttempt is what one reroll costs.
const DefaultPointsPerAttempt = 1500

var ErrNoMaterials = errors.New("could not read any materials")

// 素材单价只有这两种
var knownUnitValues = map[int]bool{250: true, 500: true}

var numberRe = regexp.MustCompile(`\d+`)

// MaterialRow is one line of the material list: unit value times count.
type MaterialRow struct {
	Row   int
	Value int
	Count int
}

func (m MaterialRow) Subtotal() int { return m.Value * m.Count }

// ParseMaterialRow takes the OCR lines of one material row. The first integer
// is the unit value and the second the count; anything after is ignored.
func ParseMaterialRow(row int, texts []string) (MaterialRow, bool) {
	var numbers []int
	for _, t := range texts {
		for _, s := range numberRe.FindAllString(t, -1) {
			n, err := strconv.Atoi(s)
			if err != nil {
				continue
			}
			numbers = append(numbers, n)
		}
	}
	if len(numbers) < 2 {
		log.Warn().Int("row", row).Ints("numbers", numbers).Strs("texts", texts).Msg("<Reroll> could not detect 2 numbers in material row")
		return MaterialRow{}, false
	}

	m := MaterialRow{Row: row, Value: numbers[0], Count: numbers[1]}
	if !knownUnitValues[m.Value] {
		log.Warn().Int("row", row).Int("value", m.Value).Msg("<Reroll> unexpected point value")
	}
	log.Info().Int("row", row).Int("value", m.Value).Int("count", m.Count).Int("subtotal", m.Subtotal()).Msg("<Reroll> material row")
	return m, true
}

// AvailableAttempts is how many rerolls the rows pay for.
func AvailableAttempts(rows []MaterialRow, pointsPerAttempt int) (int, error) {
	if pointsPerAttempt <= 0 {
		pointsPerAttempt = DefaultPointsPerAttempt
	}
	points := totalPoints(rows)
	if points == 0 {
		return 0, ErrNoMaterials
	}
	return points / pointsPerAttempt, nil
}

func totalPoints(rows []MaterialRow) int {
	total := 0
	for _, r := range rows {
		total += r.Subtotal()
	}
	return total
}
