// Package track owns the runtime state of every note in a chart.
//
// The chart itself is never mutated. Each note has a Status in a table
// parallel to the chart, and moves Pending → Active → Hit or Expired exactly
// once. Restarting a session only resets the table.
package track

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
)

type Status uint8

const (
	Pending Status = iota
	Active
	Hit
	Expired
)

var statusNames = [...]string{"pending", "active", "hit", "expired"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Resolved reports whether the note has left the active set for good
func (s Status) Resolved() bool {
	return s == Hit || s == Expired
}

type Tracker struct {
	chart         *game.Chart
	approach      time.Duration
	missThreshold time.Duration

	status   []Status
	next     int   // first pending note
	active   []int // chart indices, in chart order
	resolved int
}

func New(chart *game.Chart, missThreshold time.Duration) *Tracker {
	t := &Tracker{
		chart:         chart,
		approach:      chart.Difficulty.Approach,
		missThreshold: missThreshold,
		status:        make([]Status, chart.Len()),
		active:        make([]int, 0, 32),
	}
	return t
}

// Reset puts every note back to pending
func (t *Tracker) Reset() {
	for i := range t.status {
		t.status[i] = Pending
	}
	t.next = 0
	t.active = t.active[:0]
	t.resolved = 0
}

func (t *Tracker) Chart() *game.Chart {
	return t.chart
}

func (t *Tracker) Approach() time.Duration {
	return t.approach
}

func (t *Tracker) Note(i int) game.Note {
	return t.chart.Note(i)
}

func (t *Tracker) Status(i int) Status {
	return t.status[i]
}

// Active returns the active note indices in chart order. The slice is only
// valid until the next Spawn, Expire or Hit.
func (t *Tracker) Active() []int {
	return t.active
}

func (t *Tracker) Resolved() int {
	return t.resolved
}

// Done reports whether every note has been spawned and resolved
func (t *Tracker) Done() bool {
	return t.next >= len(t.status) && len(t.active) == 0
}

// Spawn activates every pending note whose approach window has opened by now.
// It returns the number of notes spawned.
func (t *Tracker) Spawn(now time.Duration) int {
	spawned := 0
	for t.next < len(t.status) {
		if now < t.chart.Note(t.next).Time-t.approach {
			break
		}
		t.transition(t.next, Pending, Active)
		t.active = append(t.active, t.next)
		t.next++
		spawned++
	}
	return spawned
}

// Expire marks active notes more than the miss threshold past their hit
// time as expired, in chart order, calling fn for each one. Returning false
// from fn stops expiry, leaving the remaining overdue notes active.
func (t *Tracker) Expire(now time.Duration, fn func(i int, late time.Duration) bool) int {
	expired := 0
	for _, i := range t.active {
		if t.status[i] != Active {
			continue
		}
		late := now - t.chart.Note(i).Time
		if late <= t.missThreshold {
			continue
		}
		t.transition(i, Active, Expired)
		expired++
		if nil != fn && !fn(i, late) {
			break
		}
	}
	if expired > 0 {
		t.compact()
	}
	return expired
}

// Hit consumes an active note. Hitting a note that is not active panics,
// it means the caller matched against stale state.
func (t *Tracker) Hit(i int) {
	t.transition(i, Active, Hit)
	t.compact()
}

func (t *Tracker) transition(i int, from, to Status) {
	if t.status[i] != from {
		panic(fmt.Sprintf("track: note %d is %v, cannot move from %v to %v", i, t.status[i], from, to))
	}
	t.status[i] = to
	if to.Resolved() {
		t.resolved++
	}
}

// compact drops resolved notes from the active set keeping chart order
func (t *Tracker) compact() {
	n := 0
	for _, i := range t.active {
		if t.status[i] == Active {
			t.active[n] = i
			n++
		}
	}
	t.active = t.active[:n]
}
