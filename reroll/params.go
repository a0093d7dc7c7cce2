package reroll

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/ocsin1/artian-reroller/config"
	"github.com/ocsin1/artian-reroller/matcher"
)

// initParams is the custom_action_param of RerollInitAction. Unset fields fall
// back to config.
type initParams struct {
	Weapon        string     `json:"weapon"`
	Element       string     `json:"element"`
	Confirmed     *int       `json:"confirmed_count"`
	MaxAttempts   *int       `json:"max_attempts"`
	StopOnMatch   *bool      `json:"stop_on_match"`
	ReturnToTitle *bool      `json:"return_to_title"`
	Threshold     *float64   `json:"match_threshold"`
	Targets       [][]string `json:"target_combinations"`
}

func parseInitParams(raw string) (initParams, error) {
	var p initParams
	if strings.TrimSpace(raw) == "" {
		return p, nil
	}
	if err := sonic.UnmarshalString(raw, &p); err != nil {
		return p, errors.Wrap(err, "parse custom_action_param")
	}
	return p, nil
}

// optionsFrom merges params over cfg. Weapon and element may still be empty
// here; the init action reads them from the screen before validate.
func optionsFrom(cfg *config.Config, p initParams) (Options, error) {
	opts := Options{
		Weapon:           strings.TrimSpace(p.Weapon),
		Element:          strings.TrimSpace(p.Element),
		Confirmed:        cfg.Reroll.ConfirmedCount,
		MaxAttempts:      cfg.Reroll.MaxAttempts,
		StopOnMatch:      cfg.Reroll.StopOnMatch,
		ReturnToTitle:    cfg.Reroll.ReturnToTitle,
		PointsPerAttempt: cfg.Reroll.PointsPerAttempt,
		Threshold:        cfg.Reroll.MatchThreshold,
		Targets:          cfg.Combinations(),
		Corrections:      cfg.Corrections(),
	}
	if p.Confirmed != nil {
		opts.Confirmed = *p.Confirmed
	}
	if opts.Confirmed < 0 {
		return opts, errors.Newf("confirmed_count must not be negative, got %d", opts.Confirmed)
	}
	if p.MaxAttempts != nil {
		opts.MaxAttempts = *p.MaxAttempts
	}
	if p.StopOnMatch != nil {
		opts.StopOnMatch = *p.StopOnMatch
	}
	if p.ReturnToTitle != nil {
		opts.ReturnToTitle = *p.ReturnToTitle
	}
	if p.Threshold != nil {
		opts.Threshold = *p.Threshold
	}
	if p.Targets != nil {
		opts.Targets = opts.Targets[:0:0]
		for _, skills := range p.Targets {
			c, err := matcher.NewCombination(skills...)
			if err != nil {
				if errors.Is(err, matcher.ErrEmptyCombination) {
					continue
				}
				return opts, errors.Wrapf(err, "target %v", skills)
			}
			opts.Targets = append(opts.Targets, c)
		}
	}
	return opts, nil
}

// validate checks what is only known once the screen has been read.
func (o Options) validate() error {
	if o.Weapon == "" || o.Element == "" {
		return errors.WithHint(
			errors.Newf("weapon and element are required (got %q, %q)", o.Weapon, o.Element),
			`pass {"weapon": "...", "element": "..."} as custom_action_param or check coordinates.weapon_name / weapon_element`,
		)
	}
	return nil
}
