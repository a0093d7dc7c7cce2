// Package tesseract runs the offline OCR pass through gosseract.
package tesseract

import (
	"bytes"
	"image"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"

	"github.com/ocsin1/artian-reroller/ocr"
)

// Recognizer wraps one tesseract client. Not safe for concurrent use.
type Recognizer struct {
	client *gosseract.Client
}

func NewRecognizer(lang string) (*Recognizer, error) {
	if lang == "" {
		lang = "jpn"
	}
	c := gosseract.NewClient()
	if err := c.SetLanguage(lang); err != nil {
		c.Close()
		return nil, errors.Wrapf(err, "set ocr language %s", lang)
	}
	return &Recognizer{client: c}, nil
}

func (r *Recognizer) Close() error {
	return r.client.Close()
}

// Lines recognizes img and returns its non-empty lines.
func (r *Recognizer) Lines(img image.Image) ([]string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(err, "encode ocr input")
	}
	if err := r.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, errors.Wrap(err, "set ocr image")
	}
	text, err := r.client.Text()
	if err != nil {
		return nil, errors.Wrap(err, "ocr")
	}
	lines := ocr.NormalizeLines(text)
	log.Debug().Strs("lines", lines).Msg("<OCR> recognized")
	return lines, nil
}

// Region is Preprocess followed by Lines.
func (r *Recognizer) Region(img image.Image, region ocr.Region) ([]string, error) {
	return r.Lines(ocr.Preprocess(img, region, ocr.DefaultScale))
}
