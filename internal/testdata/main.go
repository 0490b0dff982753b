// Package testdata holds chart fixtures shared by the package tests
package testdata

import (
	_ "embed"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
)

//go:embed song.yaml
var Song []byte

//go:embed song.sm
var StepChart []byte

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// GetChart builds a chart from notes, panicking on invalid input
func GetChart(difficulty string, lanes int, notes ...game.Note) *game.Chart {
	chart, err := game.NewChart("test", game.NewDifficulty(difficulty, lanes), notes, nil)
	if nil != err {
		panic(err)
	}
	return chart
}

// Single is one tap at 1000ms on lane 0
func Single() *game.Chart {
	return GetChart("normal", game.DefaultLanes, game.Note{Time: ms(1000), Lane: 0})
}

// Stream is n taps interval apart starting at 2000ms, cycling through lanes
func Stream(n int, interval time.Duration, lanes int) *game.Chart {
	notes := make([]game.Note, n)
	for i := range notes {
		notes[i] = game.Note{Time: ms(2000) + time.Duration(i)*interval, Lane: i % lanes}
	}
	return GetChart("normal", lanes, notes...)
}

// Chord has pairs of simultaneous notes on lanes 3 and 5, and a lane 4 run
func Chord() *game.Chart {
	return GetChart("hard", game.DefaultLanes,
		game.Note{Time: ms(2000), Lane: 4},
		game.Note{Time: ms(2500), Lane: 3},
		game.Note{Time: ms(2500), Lane: 5},
		game.Note{Time: ms(2600), Lane: 4},
		game.Note{Time: ms(2800), Lane: 4, Kind: game.Long},
		game.Note{Time: ms(3000), Lane: 4, Kind: game.Flick},
	)
}
