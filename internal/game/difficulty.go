package game

import (
	"strings"
	"time"
)

const DefaultLanes = 9

type Difficulty struct {
	Name  string
	Level string // Free form rating, as given by the chart
	Lanes int

	// Time a note travels from spawn to the judgement line
	Approach time.Duration
}

// Approaches maps difficulty names to their approach durations
var Approaches = map[string]time.Duration{
	"easy":   2000 * time.Millisecond,
	"normal": 1500 * time.Millisecond,
	"hard":   1200 * time.Millisecond,
	"expert": 1000 * time.Millisecond,
}

// StepMania difficulty names map onto the four approach speeds
var approachAliases = map[string]string{
	"beginner":  "easy",
	"medium":    "normal",
	"challenge": "expert",
	"edit":      "expert",
}

// LaneMap is the lane count for each known StepMania chart type
var LaneMap = map[string]int{
	"dance-single": 4,
	"pump-single":  5,
	"dance-solo":   6,
	"dance-double": 8,
}

func NewDifficulty(name string, lanes int) Difficulty {
	return Difficulty{
		Name:     name,
		Lanes:    lanes,
		Approach: ApproachFor(name),
	}
}

// ApproachFor falls back to the normal speed for unknown names
func ApproachFor(name string) time.Duration {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := approachAliases[key]; ok {
		key = alias
	}
	if d, ok := Approaches[key]; ok {
		return d
	}
	return Approaches["normal"]
}
