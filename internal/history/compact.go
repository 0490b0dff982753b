package history

import (
	"sort"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
)

// InputsCompact groups the tap times of one lane
type InputsCompact struct {
	Lane  int
	Times []time.Duration
}

func compactInputs(inputs []game.Input) []InputsCompact {
	laneCount := 0
	for _, i := range inputs {
		if i.Lane >= laneCount {
			laneCount = i.Lane + 1
		}
	}
	ins := make([]InputsCompact, laneCount)
	for lane := range ins {
		ins[lane] = InputsCompact{Lane: lane, Times: []time.Duration{}}
	}
	for _, i := range inputs {
		ins[i.Lane].Times = append(ins[i.Lane].Times, i.Time)
	}
	return ins
}

// uncompactInputs restores time order, taps at the same instant are
// ordered by lane
func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Lane: i.Lane, Time: t})
		}
	}
	sort.SliceStable(ins, func(a, b int) bool {
		return ins[a].Time < ins[b].Time
	})
	return ins
}
