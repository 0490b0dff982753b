package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/session"
	"git.lost.host/meutraa/tapline/internal/testdata"
)

func newRenderer() (*DefaultRenderer, *bytes.Buffer) {
	var out bytes.Buffer
	return &DefaultRenderer{Out: &out, Width: 80, Height: 24}, &out
}

func TestColumn(t *testing.T) {
	r, _ := newRenderer()
	var tests = []struct {
		lane, lanes, col int
	}{
		{4, 9, 40},
		{0, 9, 24},
		{8, 9, 56},
		{0, 4, 34},
		{3, 4, 46},
	}
	for _, test := range tests {
		if col := r.column(test.lane, test.lanes); col != test.col {
			t.Log("Lane    ", test.lane, "of", test.lanes)
			t.Log("Column  ", col)
			t.Log("Expected", test.col)
			t.Fail()
		}
	}
}

func TestRow(t *testing.T) {
	r, _ := newRenderer()
	if row := r.row(1); row != r.hitRow() {
		t.Errorf("progress 1 drew at row %d, hit row is %d", row, r.hitRow())
	}
	if row := r.row(0); row != 1 {
		t.Errorf("progress 0 drew at row %d", row)
	}
	if r.inField(r.row(1.2)) {
		t.Error("late note drawn inside the field")
	}
}

func TestRenderPlaying(t *testing.T) {
	s, err := session.New(testdata.Single(), game.DefaultRules(), session.Config{})
	if nil != err {
		t.Fatal(err)
	}
	s.Start(0)
	now := 500 * time.Millisecond
	s.Tick(now)

	r, out := newRenderer()
	r.Render(s.Snapshot(now))

	frame := out.String()
	for _, expected := range []string{"test", "⬤", "Score:", "Perfect:", "█"} {
		if !strings.Contains(frame, expected) {
			t.Errorf("frame is missing %q", expected)
		}
	}
	if 1 != len(r.drawn) {
		t.Errorf("expected one drawn note, got %d", len(r.drawn))
	}

	// The next frame clears the note before drawing it again
	out.Reset()
	r.Render(s.Snapshot(now + 100*time.Millisecond))
	if !strings.Contains(out.String(), "\033[14;24H ") {
		t.Error("previous note was not cleared")
	}
}

func TestRenderBanner(t *testing.T) {
	var tests = map[session.Phase]string{
		session.Paused:       "PAUSED",
		session.CountingDown: "3",
		session.Finished:     "CLEAR",
	}
	for phase, expected := range tests {
		r, out := newRenderer()
		r.Render(session.Snapshot{Phase: phase, Lanes: 4, Countdown: 2500 * time.Millisecond})
		if !strings.Contains(out.String(), expected) {
			t.Log("Phase   ", phase)
			t.Log("Expected", expected)
			t.Fail()
		}
	}

	r, out := newRenderer()
	r.Render(session.Snapshot{Phase: session.Finished, Lanes: 4, State: game.State{Failed: true}})
	if !strings.Contains(out.String(), "FAILED") {
		t.Error("failed run is not bannered")
	}
}

func TestJudgementDecorations(t *testing.T) {
	r, out := newRenderer()
	r.lanes = 4

	r.OnJudgement(session.Judged{Note: game.Note{Lane: 1}, Tier: game.Perfect})
	if 1 != len(r.decorations) || !strings.Contains(out.String(), "PERFECT") {
		t.Fatalf("perfect judgement left %d decorations", len(r.decorations))
	}

	// A new judgement replaces the previous label
	r.OnJudgement(session.Judged{Note: game.Note{Lane: 1}, Tier: game.Miss})
	if 5 != len(r.decorations) {
		t.Fatalf("miss judgement left %d decorations", len(r.decorations))
	}

	for i := 0; i <= missFrames; i++ {
		r.Render(session.Snapshot{Phase: session.Playing, Lanes: 4})
	}
	if 0 != len(r.decorations) {
		t.Errorf("%d decorations outlived their frames", len(r.decorations))
	}
}

func TestVisibleWidth(t *testing.T) {
	var tests = map[string]int{
		"":                            0,
		"abc":                         3,
		"\033[38;2;1;2;3m⬤\033[0m":    1,
		"\033[1;31m╭\033[0m":          1,
		"\033[38;2;1;2;3mMISS\033[0m": 4,
	}
	for s, expected := range tests {
		if n := visibleWidth(s); n != expected {
			t.Errorf("visibleWidth(%q) = %d, expected %d", s, n, expected)
		}
	}
}
