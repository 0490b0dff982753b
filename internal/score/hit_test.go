package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/testdata"
	"git.lost.host/meutraa/tapline/internal/track"
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func newTracker(chart *game.Chart, now time.Duration) *track.Tracker {
	tr := track.New(chart, 250*time.Millisecond)
	tr.Spawn(now)
	return tr
}

type hitTest struct {
	Lane     int
	Now      time.Duration
	Expected int // chart index, -1 for no match
	Tier     game.Tier
}

var hitTests = []hitTest{
	{Lane: 0, Now: ms(1000), Expected: 0, Tier: game.Perfect},
	{Lane: 0, Now: ms(1120), Expected: 0, Tier: game.Good},
	{Lane: 0, Now: ms(880), Expected: 0, Tier: game.Good},
	{Lane: 0, Now: ms(1200), Expected: 0, Tier: game.Bad},
	{Lane: 0, Now: ms(1201), Expected: -1},
	{Lane: 0, Now: ms(790), Expected: -1},
	{Lane: 1, Now: ms(1000), Expected: -1},
}

func TestResolveSingle(t *testing.T) {
	for _, test := range hitTests {
		scorer := DefaultScorer{Rules: game.DefaultRules()}
		tr := newTracker(testdata.Single(), test.Now)
		m, ok := scorer.Resolve(tr, test.Lane, test.Now)
		if test.Expected < 0 {
			if ok {
				t.Errorf("lane %d at %v matched %+v", test.Lane, test.Now, m)
			}
			continue
		}
		if !ok || m.Index != test.Expected || m.Tier != test.Tier {
			t.Log("Test    ", test)
			t.Log("Match   ", m, ok)
			t.Fail()
			continue
		}
		if tr.Status(m.Index) != track.Hit {
			t.Errorf("matched note is %v", tr.Status(m.Index))
		}
	}
}

func TestResolveConsumesOnce(t *testing.T) {
	scorer := DefaultScorer{Rules: game.DefaultRules()}
	tr := newTracker(testdata.Single(), ms(1000))
	if _, ok := scorer.Resolve(tr, 0, ms(1000)); !ok {
		t.Fatal("first tap did not match")
	}
	if m, ok := scorer.Resolve(tr, 0, ms(1000)); ok {
		t.Errorf("second tap matched %+v", m)
	}
}

func TestResolveClosest(t *testing.T) {
	// lane 4 notes at 2000, 2600, 2800, 3000
	scorer := DefaultScorer{Rules: game.DefaultRules()}
	tr := newTracker(testdata.Chord(), ms(2700))

	m, ok := scorer.Resolve(tr, 4, ms(2750))
	if !ok || m.Index != 4 || m.Delta != ms(-50) || m.Tier != game.Perfect {
		t.Errorf("unexpected match %+v", m)
	}
	m, ok = scorer.Resolve(tr, 4, ms(2750))
	if !ok || m.Index != 3 || m.Delta != ms(150) || m.Tier != game.Good {
		t.Errorf("unexpected second match %+v", m)
	}
}

func TestResolveTieTakesEarliest(t *testing.T) {
	chart := testdata.GetChart("normal", 4,
		game.Note{Time: ms(900), Lane: 2},
		game.Note{Time: ms(1100), Lane: 2},
	)
	scorer := DefaultScorer{Rules: game.DefaultRules()}
	tr := newTracker(chart, ms(1000))

	m, ok := scorer.Resolve(tr, 2, ms(1000))
	if !ok || m.Index != 0 {
		t.Errorf("expected the earlier note, got %+v", m)
	}
	m, ok = scorer.Resolve(tr, 2, ms(1000))
	if !ok || m.Index != 1 {
		t.Errorf("expected the later note, got %+v", m)
	}
}

func TestResolveSkipsStackedPastNotes(t *testing.T) {
	chart := testdata.GetChart("normal", 4,
		game.Note{Time: ms(800), Lane: 1},
		game.Note{Time: ms(800), Lane: 1},
		game.Note{Time: ms(1000), Lane: 1},
	)
	scorer := DefaultScorer{Rules: game.DefaultRules()}
	tr := newTracker(chart, ms(1000))

	m, ok := scorer.Resolve(tr, 1, ms(1000))
	if !ok || m.Index != 2 || m.Tier != game.Perfect {
		t.Errorf("expected the on-time note, got %+v", m)
	}
}

func TestResolveExactTieChartOrder(t *testing.T) {
	chart := testdata.GetChart("normal", 4,
		game.Note{Time: ms(1000), Lane: 3},
		game.Note{Time: ms(1000), Lane: 3},
	)
	scorer := DefaultScorer{Rules: game.DefaultRules()}
	tr := newTracker(chart, ms(1000))

	first, _ := scorer.Resolve(tr, 3, ms(1010))
	second, _ := scorer.Resolve(tr, 3, ms(1010))
	if first.Index != 0 || second.Index != 1 {
		t.Errorf("matched %d then %d", first.Index, second.Index)
	}
}
