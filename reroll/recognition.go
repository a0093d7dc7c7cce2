package reroll

import (
	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/ocsin1/artian-reroller/ocr"
)

// skillDetail is the detail JSON RerollSkillRecognition hands to RerollCheckAction.
type skillDetail struct {
	Skills []string `json:"skills"`
}

// RerollSkillRecognition OCRs the configured skill area of the current frame.
// It hits once at least one line is readable, so the pipeline can wait on the
// reroll result screen.
type RerollSkillRecognition struct {
	agent *Agent
}

func (r *RerollSkillRecognition) Run(ctx *maa.Context, arg *maa.CustomRecognitionArg) (*maa.CustomRecognitionResult, bool) {
	if arg.Img == nil {
		return nil, false
	}
	coords := r.agent.cfg.Coordinates.SkillArea
	lines := readRegion(ctx, arg.Img, NodeSkillOCR, coords)
	if len(lines) == 0 {
		return nil, false
	}

	detail, err := sonic.MarshalString(skillDetail{Skills: lines})
	if err != nil {
		log.Error().Err(err).Msg("<Reroll> encode skill detail")
		return nil, false
	}

	box := arg.Roi
	if region, err := ocr.RegionFrom(coords); err == nil {
		rect := region.Rect(arg.Img.Bounds())
		box = maa.Rect{rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy()}
	}
	log.Debug().Strs("skills", lines).Msg("<Reroll> skill area recognized")
	return &maa.CustomRecognitionResult{
		Box:    box,
		Detail: detail,
	}, true
}

// skillsFromDetail accepts either a built-in OCR result or the detail of
// RerollSkillRecognition.
func skillsFromDetail(detail *maa.RecognitionDetail) []string {
	if lines := ocrTexts(detail); len(lines) > 0 {
		return lines
	}
	if detail == nil || !detail.Hit || detail.DetailJson == "" {
		return nil
	}
	return parseSkillDetail(detail.DetailJson)
}

func parseSkillDetail(raw string) []string {
	var d skillDetail
	if err := sonic.UnmarshalString(raw, &d); err != nil {
		log.Debug().Err(err).Msg("<Reroll> detail is not a skill detail")
		return nil
	}
	return d.Skills
}
