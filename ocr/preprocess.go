package ocr

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// DefaultScale upsamples small UI text before recognition.
const DefaultScale = 2.0

// Preprocess crops region out of img, upscales it and boosts contrast.
func Preprocess(img image.Image, region Region, scale float64) image.Image {
	if scale <= 0 {
		scale = 1
	}
	src := region.Rect(img.Bounds())
	if src.Empty() {
		return image.NewGray(image.Rect(0, 0, 1, 1))
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(src.Dx())*scale), int(float64(src.Dy())*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)

	gray := imaging.Grayscale(dst)
	gray = imaging.AdjustContrast(gray, 20)
	return imaging.Sharpen(gray, 0.7)
}

// NormalizeLines splits OCR output into trimmed, non-empty lines.
func NormalizeLines(text string) []string {
	var out []string
	for _, l := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
