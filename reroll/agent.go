package reroll

import (
	"path/filepath"
	"sync"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/ocsin1/artian-reroller/config"
	"github.com/ocsin1/artian-reroller/rerolltable"
)

// Pipeline node names the actions route to.
const (
	NodeMaterialOCR   = "RerollMaterialOCR"
	NodeSkillOCR      = "RerollSkillOCR"
	NodeWeaponOCR     = "RerollWeaponOCR"
	NodePressKey      = "RerollPressKey"
	NodeCheck         = "RerollCheck"
	NodeDiscard       = "RerollDiscard"
	NodeDiscardFinal  = "RerollDiscardFinal"
	NodeStopOnMatch   = "RerollStopOnMatch"
	NodeFinish        = "RerollFinish"
	NodeReturnToTitle = "RerollReturnToTitle"
)

// Agent owns the state shared by the reroll actions of one agent process.
// Only one session runs at a time.
type Agent struct {
	cfg *config.Config

	mu      sync.Mutex
	session *Session
	table   *rerolltable.Table
	dir     string
}

func NewAgent(cfg *config.Config) *Agent {
	return &Agent{cfg: cfg}
}

func (a *Agent) start(s *Session, t *rerolltable.Table) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
	a.table = t
	a.dir = filepath.Join(a.cfg.Output.Dir, s.Started.Format("20060102150405"))
	return a.dir
}

func (a *Agent) current() (*Session, *rerolltable.Table, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session, a.table, a.dir
}

func (a *Agent) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = nil
	a.table = nil
	a.dir = ""
}

// persist writes every attempt so far into the table and refreshes the
// report. Update rewrites the whole file, so running it after each attempt
// leaves the same table a single final write would.
func (a *Agent) persist(s *Session, t *rerolltable.Table, dir string) error {
	opts := s.Options()
	if results := s.Results(); len(results) > 0 {
		if err := t.Update(opts.Weapon, opts.Element, results, opts.Confirmed); err != nil {
			log.Error().Err(err).Str("session", s.ID.String()).Msg("<Reroll> table update failed, results kept in memory")
			return err
		}
	}
	if _, err := WriteReport(dir, a.cfg.Output.ReportName, s); err != nil {
		return err
	}
	return nil
}

func (a *Agent) delay(seconds float64) {
	waitWithStop(seconds, nil)
}

// Register registers all custom recognition and action components for the reroll package.
func Register(a *Agent) {
	maa.AgentServerRegisterCustomRecognition("RerollSkillRecognition", &RerollSkillRecognition{agent: a})
	maa.AgentServerRegisterCustomAction("RerollInitAction", &RerollInitAction{agent: a})
	maa.AgentServerRegisterCustomAction("RerollPerformAction", &RerollPerformAction{agent: a})
	maa.AgentServerRegisterCustomAction("RerollCheckAction", &RerollCheckAction{agent: a})
	maa.AgentServerRegisterCustomAction("RerollDiscardAction", &RerollDiscardAction{agent: a})
	maa.AgentServerRegisterCustomAction("RerollReturnToTitleAction", &RerollReturnToTitleAction{agent: a})
	maa.AgentServerRegisterCustomAction("RerollFinishAction", &RerollFinishAction{agent: a})
	maa.AgentServerRegisterCustomAction("RerollStopAction", &RerollStopAction{agent: a})
}
