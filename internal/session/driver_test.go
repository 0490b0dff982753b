package session

import (
	"context"
	"testing"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/testdata"
)

type runResult struct {
	result game.Result
	err    error
}

func startDriver(t *testing.T, ctx context.Context, chart *game.Chart) (*ManualTime, chan Command, chan runResult) {
	s, err := New(chart, game.DefaultRules(), Config{})
	if nil != err {
		t.Fatal(err)
	}
	clock := &ManualTime{}
	commands := make(chan Command)
	done := make(chan runResult, 1)
	d := &Driver{Session: s, Time: clock, Frame: time.Millisecond, Commands: commands}
	go func() {
		res, err := d.Run(ctx)
		done <- runResult{res, err}
	}()
	return clock, commands, done
}

func wait(t *testing.T, done chan runResult) runResult {
	select {
	case r := <-done:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop")
	}
	return runResult{}
}

func TestDriverRun(t *testing.T) {
	clock, commands, done := startDriver(t, context.Background(), testdata.Single())

	// the driver only reads commands once the session has started
	commands <- Command{Kind: Tap, Lane: 5}
	clock.Set(ms(1000))
	commands <- Command{Kind: Tap, Lane: 0}
	clock.Set(ms(2000))

	r := wait(t, done)
	if nil != r.err {
		t.Fatal(r.err)
	}
	if r.result.Score != 1000 || r.result.Counts[game.Perfect] != 1 || r.result.Rank != game.RankS {
		t.Errorf("unexpected result %+v", r.result)
	}
}

func TestDriverQuit(t *testing.T) {
	_, commands, done := startDriver(t, context.Background(), testdata.Single())
	commands <- Command{Kind: Quit}
	if r := wait(t, done); r.err != ErrQuit {
		t.Errorf("expected ErrQuit, got %v", r.err)
	}
}

func TestDriverCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, commands, done := startDriver(t, ctx, testdata.Single())
	commands <- Command{Kind: TogglePause}
	cancel()
	if r := wait(t, done); r.err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", r.err)
	}
}
