package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ocsin1/artian-reroller/rerolltable"
)

type routesOptions struct {
	weapon    string
	element   string
	confirmed int
	watch     bool
	json      bool
}

func newRoutesCmd(a *app) *cobra.Command {
	o := &routesOptions{}
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List attempts that produced a target combination",
		Long: `Scan the reroll table for every attempt above the confirmed count whose
skills satisfy one of the configured target combinations.

Examples:
  reroller routes
  reroller routes --weapon 太刀 --element 水 --confirmed 12
  reroller routes --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(cmd, a, o)
		},
	}
	cmd.Flags().StringVarP(&o.weapon, "weapon", "w", "", "Only this weapon")
	cmd.Flags().StringVarP(&o.element, "element", "e", "", "Only this element")
	cmd.Flags().IntVar(&o.confirmed, "confirmed", -1, "Confirmed count (default: reroll.confirmed_count)")
	cmd.Flags().BoolVar(&o.watch, "watch", false, "Re-run whenever the table file changes")
	cmd.Flags().BoolVarP(&o.json, "json", "j", false, "Output routes as JSON")
	return cmd
}

func runRoutes(cmd *cobra.Command, a *app, o *routesOptions) error {
	confirmed := o.confirmed
	if confirmed < 0 {
		confirmed = a.cfg.Reroll.ConfirmedCount
	}
	finder := rerolltable.NewRouteFinder(a.cfg.Combinations(), confirmed, a.cfg.Reroll.MatchThreshold).
		WithCorrections(a.cfg.Corrections())
	if len(finder.Targets) == 0 {
		pterm.Warning.Println("No target combinations configured")
	}

	show := func() error {
		t, err := rerolltable.Open(a.cfg.TablePath(), a.cfg.ColumnOrder())
		if err != nil {
			return err
		}
		routes := rerolltable.FilterColumn(finder.Find(t), o.weapon, o.element)
		if o.json {
			return writeRoutesJSON(cmd.OutOrStdout(), routes)
		}
		return renderRoutes(routes)
	}

	if err := show(); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	pterm.Info.Printfln("Watching %s (Ctrl+C to stop)", a.cfg.TablePath())
	return rerolltable.Watch(ctx, a.cfg.TablePath(), rerolltable.DefaultDebounce, func() {
		if err := show(); err != nil {
			log.Error().Err(err).Msg("<Routes> reload failed")
		}
	})
}

func writeRoutesJSON(w io.Writer, routes []rerolltable.Route) error {
	if routes == nil {
		routes = []rerolltable.Route{}
	}
	out, err := sonic.ConfigStd.MarshalIndent(routes, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode routes")
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func routeTable(routes []rerolltable.Route) pterm.TableData {
	data := pterm.TableData{{"回数", "武器", "属性", "組み合わせ", "スキル", "一致"}}
	for _, r := range routes {
		mark := "○"
		if !r.IsExactMatch {
			mark = "OCR?"
		}
		data = append(data, []string{
			strconv.Itoa(r.Count),
			r.Weapon(),
			r.Element(),
			r.MatchedCombo.String(),
			r.RawSkills,
			mark,
		})
	}
	return data
}

func renderRoutes(routes []rerolltable.Route) error {
	if len(routes) == 0 {
		pterm.Info.Println("No routes found")
		return nil
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(routeTable(routes)).Render(); err != nil {
		return errors.Wrap(err, "render routes")
	}
	pterm.Success.Printfln("%d routes", len(routes))
	return nil
}
