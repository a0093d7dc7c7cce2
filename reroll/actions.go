package reroll

import (
	"fmt"
	"image"
	"strings"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/ocsin1/artian-reroller/config"
	"github.com/ocsin1/artian-reroller/ocr"
	"github.com/ocsin1/artian-reroller/rerolltable"
	"github.com/ocsin1/artian-reroller/window"
)

// RerollInitAction - read materials, resolve the budget and open the table
type RerollInitAction struct {
	agent *Agent
}

func (a *RerollInitAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	log.Info().Msg("<Reroll> ========== Init ==========")
	cfg := a.agent.cfg

	params, err := parseInitParams(arg.CustomActionParam)
	if err != nil {
		log.Error().Err(err).Msg("<Reroll> Step1 failed: param parse")
		return false
	}
	opts, err := optionsFrom(cfg, params)
	if err != nil {
		log.Error().Err(err).Msg("<Reroll> Step1 failed: options")
		return false
	}

	// 2. focus
	if err := window.Focus(cfg.Game.WindowTitle); err != nil {
		log.Warn().Err(err).Str("title", cfg.Game.WindowTitle).Msg("<Reroll> Step2: focus skipped")
	} else {
		a.agent.delay(cfg.Delays.AfterClick)
	}

	// 3. weapon / element / materials
	img, ok := screencap(ctx)
	if ok {
		opts = readWeaponInfo(ctx, img, cfg, opts)
	}
	if err := opts.validate(); err != nil {
		log.Error().Err(err).Msg("<Reroll> Step3 failed: weapon")
		notifyf(ctx, colorError, "武器と属性を指定してください")
		return false
	}
	log.Info().Str("weapon", opts.Weapon).Str("element", opts.Element).Int("confirmed", opts.Confirmed).
		Int("targets", len(opts.Targets)).Msg("<Reroll> Step3 weapon ok")

	session := NewSession(opts)
	if ok {
		session.SetMaterials(readMaterials(ctx, img, cfg.Coordinates.MaterialRows))
	}
	budget, err := session.Begin(opts.MaxAttempts)
	if err != nil {
		log.Error().Err(err).Msg("<Reroll> Step3 failed: attempt budget")
		notifyf(ctx, colorError, "素材数を読み取れませんでした")
		return false
	}
	log.Info().Int("points", session.TotalPoints()).Int("budget", budget).Msg("<Reroll> Step3 ok")

	// 4. table
	table, err := rerolltable.Open(cfg.TablePath(), cfg.ColumnOrder())
	if err != nil {
		log.Error().Err(err).Str("path", cfg.TablePath()).Msg("<Reroll> Step4 failed: load table")
		return false
	}
	dir := a.agent.start(session, table)
	log.Info().Str("session", session.ID.String()).Str("dir", dir).Msg("<Reroll> ========== Init Done ==========")

	notifyf(ctx, colorInfo, "%s / %s：%d 回目から最大 %d 回リロールします",
		opts.Weapon, opts.Element, opts.Confirmed+1, budget)
	if len(opts.Targets) > 0 {
		lines := []uiLine{{color: colorInfo, text: "ターゲット：", bold: true}}
		for _, c := range opts.Targets {
			lines = append(lines, uiLine{color: colorTarget, text: c.String(), small: true})
		}
		notify(ctx, lines...)
	}
	return true
}

// RerollPerformAction - run one reroll and wait out the animation
type RerollPerformAction struct {
	agent *Agent
}

func (a *RerollPerformAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	session, _, _ := a.agent.current()
	if session == nil {
		log.Error().Msg("<Reroll> Perform: no session, run RerollInitAction first")
		return false
	}
	d := a.agent.cfg.Delays

	// 先检查中断，避免多消耗一次素材
	if session.Interrupt() {
		log.Info().Msg("<Reroll> Perform: stop requested, finishing")
		ctx.OverrideNext(arg.CurrentTaskName, []maa.NextItem{{Name: NodeFinish}})
		return true
	}
	if !pressKeys(ctx, rerollSteps(d), session.Stopped) || waitWithStop(d.RerollAnimation, session.Stopped) {
		session.Interrupt()
		log.Info().Msg("<Reroll> Perform: stopped during reroll, finishing")
		ctx.OverrideNext(arg.CurrentTaskName, []maa.NextItem{{Name: NodeFinish}})
		return true
	}
	ctx.OverrideNext(arg.CurrentTaskName, []maa.NextItem{{Name: NodeCheck}})
	return true
}

// RerollDiscardAction - answer "no" so the result is thrown away; the
// pipeline decides where to go next
type RerollDiscardAction struct {
	agent *Agent
}

func (a *RerollDiscardAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	pressKeys(ctx, discardSteps(a.agent.cfg.Delays), nil)
	return true
}

// RerollReturnToTitleAction - leave to the title screen without saving
type RerollReturnToTitleAction struct {
	agent *Agent
}

func (a *RerollReturnToTitleAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	log.Info().Msg("<Reroll> return to title")
	pressKeys(ctx, returnToTitleSteps(a.agent.cfg.Delays), nil)
	return true
}

// RerollCheckAction - OCR the skill area, record the attempt and route
type RerollCheckAction struct {
	agent *Agent
}

func (a *RerollCheckAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	session, table, dir := a.agent.current()
	if session == nil {
		log.Error().Msg("<Reroll> Check: no session, run RerollInitAction first")
		return false
	}

	lines := skillsFromDetail(arg.RecognitionDetail)
	var img image.Image
	if len(lines) == 0 {
		// 流水线没有给出识别结果时自己截图识别
		var ok bool
		if img, ok = screencap(ctx); ok {
			lines = readRegion(ctx, img, NodeSkillOCR, a.agent.cfg.Coordinates.SkillArea)
		}
	}

	attempt, decision := session.Record(lines)
	budget := session.Budget()
	// 每次都落盘：框架停止任务时不会走到 RerollFinish
	if err := a.agent.persist(session, table, dir); err != nil {
		notifyf(ctx, colorError, "結果の保存に失敗しました")
	}

	color := colorInfo
	if attempt.Matched {
		color = colorHit
	}
	skills := "(なし)"
	if len(attempt.Skills) > 0 {
		skills = strings.Join(attempt.Skills, " | ")
	}
	notifyf(ctx, color, "[%d/%d] %d 回目：%s", attempt.Number, budget, attempt.Row, skills)

	if attempt.Matched {
		msg := fmt.Sprintf("ターゲット一致：%s", attempt.Combo)
		if !attempt.Exact {
			msg += "（OCR誤認識の可能性あり）"
			notify(ctx, uiLine{color: colorWarn, text: msg})
		} else {
			notify(ctx, uiLine{color: colorHit, text: msg, bold: true})
		}
	}

	capture := attempt.Matched || (len(session.Options().Targets) == 0 && len(attempt.Skills) > 0)
	if capture {
		if img == nil {
			img, _ = screencap(ctx)
		}
		if img != nil {
			if _, err := SaveScreenshot(dir, ScreenshotName("", attempt.Row, attempt.Skills), img); err != nil {
				log.Error().Err(err).Int("row", attempt.Row).Msg("<Reroll> Check: screenshot not saved")
			}
		}
	}

	next := NodeDiscard
	switch decision {
	case StopOnMatch:
		next = NodeStopOnMatch
	case Exhausted:
		next = NodeDiscardFinal
	case Interrupted:
		next = NodeFinish
	}
	log.Info().Int("attempt", attempt.Number).Str("decision", decision.String()).Str("next", next).Msg("<Reroll> Check: route")
	ctx.OverrideNext(arg.CurrentTaskName, []maa.NextItem{
		{Name: next},
	})
	return true
}

// RerollFinishAction - persist results, write the report and reset
type RerollFinishAction struct {
	agent *Agent
}

func (a *RerollFinishAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	log.Info().Msg("<Reroll> ========== Finish ==========")
	session, table, dir := a.agent.current()
	if session == nil {
		log.Warn().Msg("<Reroll> Finish: no session")
		return true
	}
	defer a.agent.reset()
	opts := session.Options()

	results := session.Results()
	ok := true
	if err := a.agent.persist(session, table, dir); err != nil {
		notifyf(ctx, colorError, "結果の保存に失敗しました")
		ok = false
	}

	// 本次会话之后该列的可用路线
	finder := rerolltable.NewRouteFinder(opts.Targets, opts.Confirmed, opts.Threshold).WithCorrections(opts.Corrections)
	routes := rerolltable.FilterColumn(finder.Find(table), opts.Weapon, opts.Element)
	for _, r := range routes {
		log.Info().Int("count", r.Count).Str("combo", r.MatchedCombo.String()).Bool("exact", r.IsExactMatch).Msg("<Reroll> route")
	}

	notifyf(ctx, colorDone, "完了！試行：%d、ターゲット一致：%d、ルート：%d",
		len(results), session.Hits(), len(routes))

	if session.ShouldReturnToTitle() {
		log.Info().Msg("<Reroll> Finish: return to title")
		ctx.OverrideNext(arg.CurrentTaskName, []maa.NextItem{
			{Name: NodeReturnToTitle},
		})
	} else {
		log.Info().Bool("stopped", session.Stopped()).Msg("<Reroll> Finish: skipping return to title")
	}
	return ok
}

// RerollStopAction - ask the running session to stop after the current attempt
type RerollStopAction struct {
	agent *Agent
}

func (a *RerollStopAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	session, _, _ := a.agent.current()
	if session == nil {
		return true
	}
	session.RequestStop()
	notifyf(ctx, colorWarn, "中断します")
	return true
}

func screencap(ctx *maa.Context) (image.Image, bool) {
	controller := ctx.GetTasker().GetController()
	if controller == nil {
		log.Error().Msg("<Reroll> controller nil")
		return nil, false
	}
	controller.PostScreencap().Wait()
	img, err := controller.CacheImage()
	if err != nil {
		log.Error().Err(err).Msg("<Reroll> get screenshot failed")
		return nil, false
	}
	return img, true
}

// readRegion runs the OCR node over one relative region of img.
func readRegion(ctx *maa.Context, img image.Image, node string, coords []float64) []string {
	region, err := ocr.RegionFrom(coords)
	if err != nil {
		log.Error().Err(err).Str("node", node).Msg("<Reroll> bad region")
		return nil
	}
	r := region.Rect(img.Bounds())
	override := map[string]any{
		node: map[string]any{
			"roi": maa.Rect{r.Min.X, r.Min.Y, r.Dx(), r.Dy()},
		},
	}
	detail, err := ctx.RunRecognition(node, img, override)
	if err != nil {
		log.Error().Err(err).Str("node", node).Msg("<Reroll> recognition failed")
		return nil
	}
	return ocrTexts(detail)
}

// readWeaponInfo fills a missing weapon or element from the equipment panel.
func readWeaponInfo(ctx *maa.Context, img image.Image, cfg *config.Config, opts Options) Options {
	if opts.Weapon == "" {
		texts := readRegion(ctx, img, NodeWeaponOCR, cfg.Coordinates.WeaponName)
		if w, ok := ResolveName(texts, cfg.Game.Weapons, opts.Threshold); ok {
			opts.Weapon = w
		}
		log.Info().Strs("texts", texts).Str("weapon", opts.Weapon).Msg("<Reroll> weapon read from screen")
	}
	if opts.Element == "" {
		texts := readRegion(ctx, img, NodeWeaponOCR, cfg.Coordinates.WeaponElement)
		if e, ok := ResolveName(texts, cfg.Game.Elements, opts.Threshold); ok {
			opts.Element = e
		}
		log.Info().Strs("texts", texts).Str("element", opts.Element).Msg("<Reroll> element read from screen")
	}
	return opts
}

func readMaterials(ctx *maa.Context, img image.Image, rows [][]float64) []MaterialRow {
	var out []MaterialRow
	for i, coords := range rows {
		texts := readRegion(ctx, img, NodeMaterialOCR, coords)
		log.Info().Int("row", i+1).Strs("texts", texts).Msg("<Reroll> material texts")
		if m, ok := ParseMaterialRow(i+1, texts); ok {
			out = append(out, m)
		}
	}
	return out
}

func ocrTexts(detail *maa.RecognitionDetail) []string {
	if detail == nil || !detail.Hit || detail.Results == nil {
		return nil
	}
	results := detail.Results.Filtered
	if len(results) == 0 {
		results = detail.Results.All
	}
	var lines []string
	for _, res := range results {
		o, ok := res.AsOCR()
		if !ok {
			continue
		}
		if t := strings.TrimSpace(o.Text); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}
