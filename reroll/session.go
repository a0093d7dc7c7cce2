// Package reroll drives one reroll session: the attempt budget derived from
// materials, the per-attempt decision, and the artifacts left behind (table
// rows, report, screenshots).
package reroll

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ocsin1/artian-reroller/matcher"
)

// Decision tells the automation loop what to do after an attempt.
type Decision int

const (
	Continue Decision = iota
	StopOnMatch
	Exhausted
	Interrupted
)

func (d Decision) String() string {
	switch d {
	case Continue:
		return "continue"
	case StopOnMatch:
		return "stop_on_match"
	case Exhausted:
		return "exhausted"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Options are the per-session settings.
type Options struct {
	Weapon           string
	Element          string
	Confirmed        int
	MaxAttempts      int
	StopOnMatch      bool
	ReturnToTitle    bool
	PointsPerAttempt int
	Threshold        float64
	Targets          []matcher.Combination
	Corrections      matcher.Corrections
}

// Attempt is one reroll result.
type Attempt struct {
	Number  int
	Row     int
	Time    time.Time
	Skills  []string
	Matched bool
	Exact   bool
	Combo   matcher.Combination
}

// Raw is the table cell for this attempt.
func (a Attempt) Raw() string {
	return matcher.JoinSkills(a.Skills)
}

type Session struct {
	ID      uuid.UUID
	Started time.Time
	opts    Options
	matcher *matcher.Matcher

	mu        sync.Mutex
	materials []MaterialRow
	budget    int
	history   []Attempt
	last      Decision

	stop atomic.Bool
	now  func() time.Time
}

func NewSession(opts Options) *Session {
	if opts.PointsPerAttempt <= 0 {
		opts.PointsPerAttempt = DefaultPointsPerAttempt
	}
	if opts.Confirmed < 0 {
		opts.Confirmed = 0
	}
	s := &Session{
		ID:      uuid.New(),
		opts:    opts,
		matcher: matcher.New(opts.Threshold).WithCorrections(opts.Corrections),
		now:     time.Now,
	}
	s.Started = s.now()
	return s
}

func (s *Session) Options() Options { return s.opts }

// SetMaterials stores the material rows read at the start of the session.
func (s *Session) SetMaterials(rows []MaterialRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials = append([]MaterialRow(nil), rows...)
}

func (s *Session) Materials() []MaterialRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MaterialRow(nil), s.materials...)
}

// TotalPoints sums the starting material rows.
func (s *Session) TotalPoints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPoints(s.materials)
}

// Begin resolves the attempt budget. limit == 0 means "as many as the materials
// allow"; a manual budget above that is kept and warned about.
func (s *Session) Begin(limit int) (int, error) {
	if limit < 0 {
		return 0, errors.Newf("max attempts must not be negative, got %d", limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	points := totalPoints(s.materials)
	available := points / s.opts.PointsPerAttempt

	if limit == 0 {
		if points == 0 {
			return 0, errors.WithHint(ErrNoMaterials, "set max_attempts to run without reading materials")
		}
		if available == 0 {
			return 0, errors.Wrapf(ErrNoMaterials, "%d points do not pay for one attempt", points)
		}
		s.budget = available
		log.Info().Int("points", points).Int("max_attempts", s.budget).Msg("<Reroll> auto mode, budget from materials")
	} else {
		s.budget = limit
		log.Info().Int("max_attempts", limit).Int("available", available).Msg("<Reroll> manual mode")
		if points > 0 && limit > available {
			log.Warn().Int("max_attempts", limit).Int("available", available).Msg("<Reroll> configured attempts exceed available materials")
		}
	}
	s.Started = s.now()
	return s.budget, nil
}

// Budget is the resolved max attempts.
func (s *Session) Budget() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget
}

// Record evaluates one attempt's OCR lines and appends it to the history.
func (s *Session) Record(lines []string) (Attempt, Decision) {
	skills := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			skills = append(skills, l)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.history) + 1
	a := Attempt{
		Number: n,
		Row:    s.opts.Confirmed + n,
		Time:   s.now(),
		Skills: skills,
	}
	if m, ok := s.matcher.EvaluateAny(s.opts.Targets, skills); ok {
		a.Matched = true
		a.Exact = m.Result.Exact
		a.Combo = m.Combination
	}
	s.history = append(s.history, a)

	switch {
	case a.Matched && s.opts.StopOnMatch:
		s.last = StopOnMatch
	case s.stop.Load():
		s.last = Interrupted
	case s.budget > 0 && n >= s.budget:
		s.last = Exhausted
	default:
		s.last = Continue
	}

	ev := log.Info().Int("attempt", n).Int("row", a.Row).Strs("skills", skills).Str("decision", s.last.String())
	if a.Matched {
		ev = ev.Str("combo", a.Combo.String()).Bool("exact", a.Exact)
	}
	ev.Msg("<Reroll> attempt recorded")
	if a.Matched && !a.Exact {
		log.Warn().Int("attempt", n).Str("combo", a.Combo.String()).Msg("<Reroll> match may be an OCR error")
	}
	return a, s.last
}

// RequestStop asks the loop to finish after the current step.
func (s *Session) RequestStop() {
	if !s.stop.Swap(true) {
		log.Info().Str("session", s.ID.String()).Msg("<Reroll> stop requested")
	}
}

func (s *Session) Stopped() bool { return s.stop.Load() }

// Interrupt ends the session as Interrupted when a stop was requested. The
// perform step calls it before any materials are spent on another reroll.
func (s *Session) Interrupt() bool {
	if !s.stop.Load() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = Interrupted
	return true
}

// ShouldReturnToTitle reports whether the finish step should discard unsaved
// state. A session that stopped on a match or was interrupted keeps it.
func (s *Session) ShouldReturnToTitle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.ReturnToTitle && !s.stop.Load() && s.last != StopOnMatch && s.last != Interrupted
}

func (s *Session) History() []Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Attempt(nil), s.history...)
}

// Results returns one joined skill string per attempt, in attempt order.
func (s *Session) Results() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	for i, a := range s.history {
		out[i] = a.Raw()
	}
	return out
}

// Hits counts attempts that matched a target.
func (s *Session) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.history {
		if a.Matched {
			n++
		}
	}
	return n
}
