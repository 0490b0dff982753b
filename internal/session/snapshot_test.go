package session

import (
	"testing"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/testdata"
)

func TestSnapshot(t *testing.T) {
	s, _ := newSession(t, testdata.Single(), Config{})
	s.Tick(ms(250))

	snap := s.Snapshot(ms(250))
	if snap.Phase != Playing || snap.Lanes != game.DefaultLanes || snap.Total != 1 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if len(snap.Notes) != 1 {
		t.Fatalf("%d notes", len(snap.Notes))
	}
	n := snap.Notes[0]
	if n.TimeToHit != ms(750) || n.Progress != 0.5 {
		t.Errorf("note view %+v", n)
	}
	if snap.Progress != 0.25 {
		t.Errorf("progress %v", snap.Progress)
	}

	s.TapLane(0, ms(1000))
	snap = s.Snapshot(ms(1000))
	if len(snap.Notes) != 0 || snap.State.Score != 1000 {
		t.Errorf("snapshot after hit %+v", snap)
	}
}

func TestSnapshotProgressClamped(t *testing.T) {
	s, _ := newSession(t, testdata.Single(), Config{})
	if snap := s.Snapshot(ms(5000)); snap.Progress != 1 {
		t.Errorf("progress %v", snap.Progress)
	}
}

func TestSnapshotMeasures(t *testing.T) {
	chart, err := game.NewChart("m", game.NewDifficulty("normal", 4), nil, []game.Measure{
		{Time: ms(0), Bar: true},
		{Time: ms(500)},
		{Time: ms(1000), Bar: true},
		{Time: ms(2000), Bar: true},
	})
	if nil != err {
		t.Fatal(err)
	}
	s, _ := newSession(t, chart, Config{})
	snap := s.Snapshot(ms(100))
	if len(snap.Measures) != 1 || snap.Measures[0] != ms(900) {
		t.Errorf("measures %v", snap.Measures)
	}
}
