package reroll

import (
	"time"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/ocsin1/artian-reroller/config"
)

// Win32 virtual-key codes of the reroll screen controls.
const (
	keyEsc   = 27
	keySpace = 32
	keyUp    = 38
	keyDown  = 40
	keyG     = 71
	keyQ     = 81
)

// keyStep is one key press followed by a wait in seconds.
type keyStep struct {
	Key   int
	Delay float64
}

func repeatKey(key, n int, delay float64) []keyStep {
	steps := make([]keyStep, n)
	for i := range steps {
		steps[i] = keyStep{Key: key, Delay: delay}
	}
	return steps
}

// rerollSteps - 自动选择(G) -> 确认 -> 确认
func rerollSteps(d config.Delays) []keyStep {
	return []keyStep{
		{Key: keyG, Delay: d.AfterClick},
		{Key: keySpace, Delay: d.AfterClick},
		{Key: keySpace},
	}
}

// discardSteps answers "no" to keeping the result.
func discardSteps(d config.Delays) []keyStep {
	return []keyStep{
		{Key: keyUp, Delay: d.AfterClick},
		{Key: keySpace, Delay: d.AfterClick},
	}
}

// returnToTitleSteps closes the menus and picks "return to title" from the
// system tab, which drops everything that has not been saved.
func returnToTitleSteps(d config.Delays) []keyStep {
	steps := repeatKey(keyEsc, 5, d.ReturnToTitle)
	steps = append(steps, keyStep{Key: keyQ, Delay: d.ReturnToTitle})
	steps = append(steps, repeatKey(keyUp, 2, d.AfterClick)...)
	steps = append(steps,
		keyStep{Key: keySpace, Delay: d.AfterClick},
		keyStep{Key: keyDown, Delay: d.AfterClick},
	)
	return append(steps, repeatKey(keySpace, 2, d.ReturnToTitle)...)
}

func keyOverride(s keyStep) map[string]any {
	return map[string]any{
		NodePressKey: map[string]any{
			"action": map[string]any{
				"type": "ClickKey",
				"param": map[string]any{
					"key": []int{s.Key},
				},
			},
			"post_delay": durationMillis(s.Delay),
		},
	}
}

// pressKeys runs steps through the key node. It returns false as soon as
// stopped reports true; nil never stops.
func pressKeys(ctx *maa.Context, steps []keyStep, stopped func() bool) bool {
	for i, s := range steps {
		if stopped != nil && stopped() {
			log.Info().Int("step", i).Msg("<Reroll> key sequence interrupted")
			return false
		}
		log.Debug().Int("key", s.Key).Float64("delay", s.Delay).Msg("<Reroll> press key")
		ctx.RunTask(NodePressKey, keyOverride(s))
	}
	return true
}

// waitWithStop sleeps seconds in short slices and reports whether stopped
// became true meanwhile.
func waitWithStop(seconds float64, stopped func() bool) bool {
	const slice = 100 * time.Millisecond
	end := time.Now().Add(time.Duration(seconds * float64(time.Second)))
	for {
		if stopped != nil && stopped() {
			return true
		}
		left := time.Until(end)
		if left <= 0 {
			return false
		}
		time.Sleep(min(slice, left))
	}
}

func durationMillis(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds*1000 + 0.5)
}
