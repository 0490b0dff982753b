package game

import (
	"time"
)

// Measure marks a bar or beat line for the renderer
type Measure struct {
	Time time.Duration
	Bar  bool // false for a beat line inside the bar
}
