package score

import (
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/track"
)

type DefaultScorer struct {
	Rules game.Rules
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// Distance is positive when the input is late
func (s *DefaultScorer) Distance(n game.Note, now time.Duration) time.Duration {
	return now - n.Time
}

func (s *DefaultScorer) Resolve(t *track.Tracker, lane int, now time.Duration) (Match, bool) {
	closest := -1
	absDistance := time.Duration(1<<63 - 1)
	var distance time.Duration

	for _, i := range t.Active() {
		note := t.Note(i)
		if note.Lane != lane {
			continue
		}
		dd := s.Distance(note, now)
		d := abs(dd)
		if d < absDistance {
			distance = dd
			absDistance = d
			closest = i
		} else if closest >= 0 && note.Time > now {
			// active notes are in time order, past now the lane's distances only grow
			break
		}
	}

	if closest < 0 {
		return Match{}, false
	}
	tier, ok := s.Rules.Classify(distance)
	if !ok {
		return Match{}, false
	}
	t.Hit(closest)
	return Match{
		Index: closest,
		Note:  t.Note(closest),
		Delta: distance,
		Tier:  tier,
	}, true
}
