// Package ocr holds the screen-region math and image preprocessing shared by
// the MaaFramework actions and the offline tesseract reader.
package ocr

import (
	"image"
	"math"

	"github.com/cockroachdb/errors"
)

// Region is a rectangle in fractions of the window size.
type Region struct {
	Left, Top, Right, Bottom float64
}

// RegionFrom converts a [left, top, right, bottom] config entry.
func RegionFrom(v []float64) (Region, error) {
	if len(v) != 4 {
		return Region{}, errors.Newf("region needs 4 values, got %d", len(v))
	}
	r := Region{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}
	if r.Left >= r.Right || r.Top >= r.Bottom {
		return Region{}, errors.Newf("empty region %v", v)
	}
	return r, nil
}

// Rect maps r onto bounds, clamped to it.
func (r Region) Rect(bounds image.Rectangle) image.Rectangle {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	rect := image.Rect(
		bounds.Min.X+int(math.Round(r.Left*w)),
		bounds.Min.Y+int(math.Round(r.Top*h)),
		bounds.Min.X+int(math.Round(r.Right*w)),
		bounds.Min.Y+int(math.Round(r.Bottom*h)),
	)
	return rect.Intersect(bounds)
}
