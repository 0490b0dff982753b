// Package session sequences the tracker, resolver and judgement rules into
// a playable run of one chart.
//
// A Session is driven from outside: the host calls Tick once per frame and
// TapLane for every lane input, both with monotonic host time. Nothing in a
// Session depends on the interval between calls.
package session

import (
	"sync"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/score"
	"git.lost.host/meutraa/tapline/internal/track"
	"github.com/pkg/errors"
)

type Phase uint8

const (
	Ready Phase = iota
	CountingDown
	Playing
	Paused
	Finished
)

var phaseNames = [...]string{"ready", "counting down", "playing", "paused", "finished"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

type Config struct {
	Countdown time.Duration // Pre-roll before the chart clock starts
	Offset    time.Duration // Global offset added to the chart clock
	Listener  Listener
	Scorer    score.Scorer
}

type Session struct {
	mu sync.Mutex

	chart    *game.Chart
	rules    game.Rules
	cfg      Config
	listener Listener
	scorer   score.Scorer
	tracker  *track.Tracker

	clock        Clock
	phase        Phase
	state        game.State
	inputs       []game.Input
	countdownEnd time.Duration
}

func New(chart *game.Chart, rules game.Rules, cfg Config) (*Session, error) {
	if nil == chart {
		return nil, errors.New("session: no chart")
	}
	if err := rules.Validate(); nil != err {
		return nil, errors.Wrap(err, "session: invalid rules")
	}
	if err := chart.Validate(); nil != err {
		return nil, errors.Wrap(err, "session: invalid chart")
	}

	s := &Session{
		chart:    chart,
		rules:    rules,
		cfg:      cfg,
		listener: cfg.Listener,
		scorer:   cfg.Scorer,
		tracker:  track.New(chart, rules.MissThreshold),
		clock:    NewClock(cfg.Offset),
		state:    rules.NewState(),
	}
	if nil == s.listener {
		s.listener = NopListener{}
	}
	if nil == s.scorer {
		s.scorer = &score.DefaultScorer{Rules: rules}
	}
	return s, nil
}

// Start begins a fresh run at host time now, discarding any previous run
func (s *Session) Start(now time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.Reset()
	s.state = s.rules.NewState()
	s.inputs = s.inputs[:0]
	s.clock = NewClock(s.cfg.Offset)
	s.clock.Start(now)
	s.countdownEnd = now + s.cfg.Countdown
	s.phase = CountingDown
	if s.cfg.Countdown <= 0 {
		s.begin(now)
	}
}

// Restart replays the same chart from the beginning
func (s *Session) Restart(now time.Duration) {
	s.Start(now)
}

func (s *Session) begin(at time.Duration) {
	s.clock.Start(at)
	s.phase = Playing
	s.listener.OnStart()
}

// Tick advances the run to host time now: pending notes are spawned,
// overdue ones expire as misses, and the end of the run is detected.
func (s *Session) Tick(now time.Duration) Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case CountingDown:
		if now < s.countdownEnd {
			return s.phase
		}
		s.begin(s.countdownEnd)
	case Playing:
	default:
		return s.phase
	}

	s.advance(s.clock.Elapsed(now))
	if !s.state.Terminal && s.tracker.Done() {
		s.state = s.state.Complete()
	}
	if s.state.Terminal {
		s.finish()
	}
	return s.phase
}

// TapLane resolves a tap on lane at host time now. Taps outside the
// playing phase or on a lane the chart does not have are ignored. ok is
// false when the tap matched no note.
func (s *Session) TapLane(lane int, now time.Duration) (m score.Match, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Playing || s.state.Terminal {
		return m, false
	}
	if lane < 0 || lane >= s.chart.Difficulty.Lanes {
		return m, false
	}

	// bring the active set up to date before matching
	elapsed := s.clock.Elapsed(now)
	s.advance(elapsed)
	if s.state.Terminal {
		s.finish()
		return m, false
	}

	s.inputs = append(s.inputs, game.Input{Lane: lane, Time: elapsed})
	s.listener.OnTap(lane)

	m, ok = s.scorer.Resolve(s.tracker, lane, elapsed)
	if !ok {
		return m, false
	}
	s.judge(m.Index, m.Tier, m.Delta)
	if s.state.Terminal {
		s.finish()
	}
	return m, true
}

func (s *Session) Pause(now time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Playing {
		return false
	}
	s.clock.Pause(now)
	s.phase = Paused
	s.listener.OnPause(true)
	return true
}

func (s *Session) Resume(now time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Paused {
		return false
	}
	s.clock.Resume(now)
	s.phase = Playing
	s.listener.OnPause(false)
	return true
}

func (s *Session) advance(elapsed time.Duration) {
	s.tracker.Spawn(elapsed)
	s.tracker.Expire(elapsed, func(i int, late time.Duration) bool {
		s.judge(i, game.Miss, late)
		return !s.state.Terminal
	})
}

func (s *Session) judge(i int, tier game.Tier, delta time.Duration) {
	if s.state.Terminal {
		return
	}
	s.state = s.rules.Apply(tier, s.state)
	s.listener.OnJudgement(Judged{
		Index: i,
		Note:  s.chart.Note(i),
		Tier:  tier,
		Delta: delta,
		State: s.state,
	})
	if tier.Hit() && s.rules.ComboMilestone > 0 && s.state.Combo%s.rules.ComboMilestone == 0 {
		s.listener.OnCombo(s.state.Combo)
	}
}

func (s *Session) finish() {
	if s.phase == Finished {
		return
	}
	s.phase = Finished
	s.listener.OnEnd(s.rules.Result(s.state, s.chart.Len()))
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result ranks the run so far, normally called once the phase is Finished
func (s *Session) Result() game.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.Result(s.state, s.chart.Len())
}

// Inputs returns a copy of every tap recorded in this run
func (s *Session) Inputs() []game.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]game.Input(nil), s.inputs...)
}

func (s *Session) Chart() *game.Chart {
	return s.chart
}

func (s *Session) Rules() game.Rules {
	return s.rules
}
