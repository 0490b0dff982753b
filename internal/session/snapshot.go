package session

import (
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
)

// NoteView is the renderer's read-only view of an active note
type NoteView struct {
	Index     int
	Lane      int
	Kind      game.Kind
	Denom     int
	TimeToHit time.Duration
	Progress  float64 // 0 at spawn, 1 on the judgement line, above 1 when late
}

type Snapshot struct {
	Phase     Phase
	Title     string
	Lanes     int
	Approach  time.Duration
	Elapsed   time.Duration
	Countdown time.Duration // Remaining pre-roll
	Notes     []NoteView
	Measures  []time.Duration // Bar lines inside the approach window, as time to hit
	State     game.State
	Band      game.Band
	MaxLife   int
	Progress  float64 // Fraction of the chart played, in [0,1]
	Total     int
}

// Snapshot captures what a renderer needs at host time now
func (s *Session) Snapshot(now time.Duration) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:    s.phase,
		Title:    s.chart.Title,
		Lanes:    s.chart.Difficulty.Lanes,
		Approach: s.tracker.Approach(),
		State:    s.state,
		Band:     s.rules.Band(s.state),
		MaxLife:  s.rules.MaxLife,
		Total:    s.chart.Len(),
	}

	switch s.phase {
	case Ready:
		return snap
	case CountingDown:
		if now < s.countdownEnd {
			snap.Countdown = s.countdownEnd - now
		}
		return snap
	}

	elapsed := s.clock.Elapsed(now)
	snap.Elapsed = elapsed

	approach := snap.Approach
	active := s.tracker.Active()
	snap.Notes = make([]NoteView, 0, len(active))
	for _, i := range active {
		n := s.chart.Note(i)
		toHit := n.Time - elapsed
		progress := 1.0
		if approach > 0 {
			progress = 1 - float64(toHit)/float64(approach)
		}
		snap.Notes = append(snap.Notes, NoteView{
			Index:     i,
			Lane:      n.Lane,
			Kind:      n.Kind,
			Denom:     n.Denom,
			TimeToHit: toHit,
			Progress:  progress,
		})
	}

	for _, m := range s.chart.Measures() {
		toHit := m.Time - elapsed
		if toHit < 0 || !m.Bar {
			continue
		}
		if toHit > approach {
			break
		}
		snap.Measures = append(snap.Measures, toHit)
	}

	if last := s.chart.LastTime(); last > 0 {
		snap.Progress = float64(elapsed) / float64(last)
	} else if s.phase == Finished {
		snap.Progress = 1
	}
	if snap.Progress < 0 {
		snap.Progress = 0
	} else if snap.Progress > 1 {
		snap.Progress = 1
	}
	return snap
}
