package score

import (
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/track"
)

type Scorer interface {
	// Resolve matches a tap on lane at now against the active notes. The
	// matched note is consumed. ok is false for a ghost tap.
	Resolve(t *track.Tracker, lane int, now time.Duration) (m Match, ok bool)

	Distance(n game.Note, now time.Duration) time.Duration
}

type Match struct {
	Index int // Chart index of the note
	Note  game.Note
	Delta time.Duration // now - note time, negative when early
	Tier  game.Tier
}
