package session

import (
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
)

// Judged describes one resolved note
type Judged struct {
	Index int
	Note  game.Note
	Tier  game.Tier
	Delta time.Duration // Zero for an expired note's tap, late time for a miss
	State game.State    // State after the judgement
}

// Listener receives feedback events. Calls happen on the goroutine that
// drives the session, while the session lock is held, so implementations
// must not call back into the session.
type Listener interface {
	OnStart()
	OnTap(lane int)
	OnJudgement(j Judged)
	OnCombo(combo int)
	OnPause(paused bool)
	OnEnd(r game.Result)
}

// NopListener can be embedded to implement only some events
type NopListener struct{}

func (NopListener) OnStart()           {}
func (NopListener) OnTap(int)          {}
func (NopListener) OnJudgement(Judged) {}
func (NopListener) OnCombo(int)        {}
func (NopListener) OnPause(bool)       {}
func (NopListener) OnEnd(game.Result)  {}

// Listeners fans events out in order
type Listeners []Listener

func (ls Listeners) OnStart() {
	for _, l := range ls {
		l.OnStart()
	}
}

func (ls Listeners) OnTap(lane int) {
	for _, l := range ls {
		l.OnTap(lane)
	}
}

func (ls Listeners) OnJudgement(j Judged) {
	for _, l := range ls {
		l.OnJudgement(j)
	}
}

func (ls Listeners) OnCombo(combo int) {
	for _, l := range ls {
		l.OnCombo(combo)
	}
}

func (ls Listeners) OnPause(paused bool) {
	for _, l := range ls {
		l.OnPause(paused)
	}
}

func (ls Listeners) OnEnd(r game.Result) {
	for _, l := range ls {
		l.OnEnd(r)
	}
}
