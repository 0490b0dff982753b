package game

import (
	"testing"
	"time"
)

var classifyTests = map[time.Duration]Tier{
	0:                          Perfect,
	50 * time.Millisecond:      Perfect,
	-50 * time.Millisecond:     Perfect,
	51 * time.Millisecond:      Great,
	-100 * time.Millisecond:    Great,
	120 * time.Millisecond:     Good,
	-150 * time.Millisecond:    Good,
	199 * time.Millisecond:     Bad,
	-200 * time.Millisecond:    Bad,
	1500 * time.Microsecond:    Perfect,
	149999 * time.Microsecond:  Good,
	100001 * time.Microsecond:  Good,
	-100001 * time.Microsecond: Good,
}

func TestClassify(t *testing.T) {
	rules := DefaultRules()
	for delta, expected := range classifyTests {
		tier, ok := rules.Classify(delta)
		if !ok || tier != expected {
			t.Log("Delta   ", delta)
			t.Log("Tier    ", tier, ok)
			t.Log("Expected", expected)
			t.Fail()
		}
	}
}

func TestClassifyOutsideWindow(t *testing.T) {
	rules := DefaultRules()
	for _, delta := range []time.Duration{201 * time.Millisecond, -201 * time.Millisecond, time.Second} {
		if tier, ok := rules.Classify(delta); ok {
			t.Errorf("delta %v matched as %v, expected no match", delta, tier)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	rules := DefaultRules()
	last := Perfect
	for ms := 0; ms <= 300; ms++ {
		tier, ok := rules.Classify(time.Duration(ms) * time.Millisecond)
		if !ok {
			tier = Miss
		}
		if tier < last {
			t.Fatalf("tier got stricter at %vms: %v after %v", ms, tier, last)
		}
		last = tier
	}
}

func TestRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); nil != err {
		t.Fatal(err)
	}

	narrow := DefaultRules()
	narrow.Judgements[Great].Window = 10 * time.Millisecond
	if narrow.Validate() == nil {
		t.Error("expected error for a window narrower than the previous tier")
	}

	threshold := DefaultRules()
	threshold.MissThreshold = 200 * time.Millisecond
	if threshold.Validate() == nil {
		t.Error("expected error for a miss threshold inside the bad window")
	}
}

func BenchmarkClassify(b *testing.B) {
	rules := DefaultRules()
	for n := 0; n < b.N; n++ {
		rules.Classify(time.Duration(n%400-200) * time.Millisecond)
	}
}
