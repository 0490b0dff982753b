package session

import (
	"context"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"github.com/pkg/errors"
)

var ErrQuit = errors.New("session: quit")

type CommandKind uint8

const (
	Tap CommandKind = iota
	TogglePause
	Restart
	Quit
)

type Command struct {
	Kind CommandKind
	Lane int
}

// Driver runs a session on a single goroutine. Commands and frame ticks
// are handled one at a time so input never interleaves with a tick.
type Driver struct {
	Session  *Session
	Time     TimeProvider
	Frame    time.Duration
	Commands <-chan Command

	// Render is called after every frame with the latest snapshot
	Render func(Snapshot)
}

// Run starts the session and drives it until it finishes, the context is
// cancelled, or a Quit command arrives. The result is always the latest.
func (d *Driver) Run(ctx context.Context) (game.Result, error) {
	if nil == d.Time {
		d.Time = NewMonotonicTime()
	}
	frame := d.Frame
	if frame <= 0 {
		frame = time.Second / 240
	}

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	commands := d.Commands
	d.Session.Start(d.Time.Now())

	for {
		select {
		case <-ctx.Done():
			return d.Session.Result(), ctx.Err()
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if d.handle(cmd) {
				return d.Session.Result(), ErrQuit
			}
		case <-ticker.C:
			now := d.Time.Now()
			phase := d.Session.Tick(now)
			if nil != d.Render {
				d.Render(d.Session.Snapshot(now))
			}
			if phase == Finished {
				return d.Session.Result(), nil
			}
		}
	}
}

// handle applies one command and reports whether the run should stop
func (d *Driver) handle(cmd Command) bool {
	now := d.Time.Now()
	switch cmd.Kind {
	case Tap:
		d.Session.TapLane(cmd.Lane, now)
	case TogglePause:
		if !d.Session.Pause(now) {
			d.Session.Resume(now)
		}
	case Restart:
		d.Session.Restart(now)
	case Quit:
		return true
	}
	return false
}
