package history

import (
	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/session"
)

// Replay plays recorded inputs through a fresh session of the chart. The
// session is interval independent, so the result matches the live run.
func Replay(c *game.Chart, rules game.Rules, inputs []game.Input) (game.Result, error) {
	s, err := session.New(c, rules, session.Config{})
	if nil != err {
		return game.Result{}, err
	}
	s.Start(0)
	for _, in := range inputs {
		if s.Tick(in.Time) == session.Finished {
			break
		}
		s.TapLane(in.Lane, in.Time)
	}
	s.Tick(c.LastTime() + rules.MissThreshold + 1)
	return s.Result(), nil
}

// Score replays a stored run under rules
func Score(c *game.Chart, rules game.Rules, h History) (game.Result, error) {
	return Replay(c, rules, h.Inputs)
}
