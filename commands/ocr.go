package commands

import (
	"fmt"
	"image"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ocsin1/artian-reroller/matcher"
	"github.com/ocsin1/artian-reroller/ocr"
	"github.com/ocsin1/artian-reroller/ocr/tesseract"
	"github.com/ocsin1/artian-reroller/reroll"
)

func newOCRCmd(a *app) *cobra.Command {
	var lang string
	var materials, weapon bool
	cmd := &cobra.Command{
		Use:   "ocr <screenshot>",
		Short: "Read skills (or materials) from a saved screenshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imaging.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "open %s", args[0])
			}
			rec, err := tesseract.NewRecognizer(lang)
			if err != nil {
				return err
			}
			defer rec.Close()
			out := cmd.OutOrStdout()

			if weapon {
				return printWeaponInfo(cmd, a, rec, img)
			}
			if materials {
				var rows []reroll.MaterialRow
				for i, coords := range a.cfg.Coordinates.MaterialRows {
					region, err := ocr.RegionFrom(coords)
					if err != nil {
						return errors.Wrapf(err, "material row %d", i+1)
					}
					texts, err := rec.Region(img, region)
					if err != nil {
						return err
					}
					if m, ok := reroll.ParseMaterialRow(i+1, texts); ok {
						rows = append(rows, m)
						fmt.Fprintf(out, "row %d: %d x %d = %d\n", m.Row, m.Value, m.Count, m.Subtotal())
					}
				}
				n, err := reroll.AvailableAttempts(rows, a.cfg.Reroll.PointsPerAttempt)
				if err != nil {
					return err
				}
				pterm.Success.Printfln("%d attempts available", n)
				return nil
			}

			region, err := ocr.RegionFrom(a.cfg.Coordinates.SkillArea)
			if err != nil {
				return errors.Wrap(err, "skill area")
			}
			lines, err := rec.Region(img, region)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, strings.Join(lines, matcher.SkillDelimiter))
			m, ok := a.cfg.NewMatcher().EvaluateAny(a.cfg.Combinations(), lines)
			fmt.Fprintln(out, describeMatch(m, ok))
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "jpn", "Tesseract language")
	cmd.Flags().BoolVar(&materials, "materials", false, "Read the material rows instead of the skill area")
	cmd.Flags().BoolVar(&weapon, "weapon", false, "Read the weapon name and element instead of the skill area")
	return cmd
}

func printWeaponInfo(cmd *cobra.Command, a *app, rec *tesseract.Recognizer, img image.Image) error {
	out := cmd.OutOrStdout()
	fields := []struct {
		label  string
		coords []float64
		known  []string
	}{
		{"weapon", a.cfg.Coordinates.WeaponName, a.cfg.Game.Weapons},
		{"element", a.cfg.Coordinates.WeaponElement, a.cfg.Game.Elements},
	}
	for _, f := range fields {
		region, err := ocr.RegionFrom(f.coords)
		if err != nil {
			return errors.Wrapf(err, "%s region", f.label)
		}
		texts, err := rec.Region(img, region)
		if err != nil {
			return err
		}
		name, ok := reroll.ResolveName(texts, f.known, a.cfg.Reroll.MatchThreshold)
		if !ok {
			pterm.Warning.Printfln("%s not recognized in %v", f.label, texts)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", f.label, name)
	}
	return nil
}
