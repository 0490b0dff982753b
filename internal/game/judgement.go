package game

import (
	"time"

	"github.com/pkg/errors"
)

// Tier is ordered from the tightest window to Miss
type Tier uint8

const (
	Perfect Tier = iota
	Great
	Good
	Bad
	Miss
)

const TierCount = 5

var tierNames = [TierCount]string{"Perfect", "Great", "Good", "Bad", "Miss"}

func (t Tier) String() string {
	if t < TierCount {
		return tierNames[t]
	}
	return "Unknown"
}

// Hit reports whether the tier keeps the combo going
func (t Tier) Hit() bool {
	return t <= Good
}

type Judgement struct {
	Window time.Duration // Absolute tolerance, unused for Miss
	Score  int
	Life   int // Added to life, negative for a penalty
	Weight int // Accuracy weight out of 100
}

type Rules struct {
	Judgements [TierCount]Judgement

	// An unhit note expires as a Miss this long after its hit time
	MissThreshold time.Duration
	MaxLife       int

	// Hits add (combo/ComboStep)*ComboBonus on top of the base score
	ComboStep  int
	ComboBonus int

	// Every ComboMilestone combo emits a milestone event, 0 disables
	ComboMilestone int

	Ranks []RankThreshold
}

func DefaultRules() Rules {
	return Rules{
		Judgements: [TierCount]Judgement{
			Perfect: {Window: 50 * time.Millisecond, Score: 1000, Life: 1, Weight: 100},
			Great:   {Window: 100 * time.Millisecond, Score: 700, Weight: 70},
			Good:    {Window: 150 * time.Millisecond, Score: 400, Weight: 40},
			Bad:     {Window: 200 * time.Millisecond, Score: 100, Life: -5},
			Miss:    {Life: -10},
		},
		MissThreshold:  250 * time.Millisecond,
		MaxLife:        100,
		ComboStep:      10,
		ComboBonus:     10,
		ComboMilestone: 50,
		Ranks:          DefaultRanks(),
	}
}

func (r Rules) Validate() error {
	var prev time.Duration
	for t := Perfect; t < Miss; t++ {
		w := r.Judgements[t].Window
		if w <= 0 || w < prev {
			return errors.Errorf("%v window %v must be positive and at least %v", t, w, prev)
		}
		prev = w
	}
	if r.MissThreshold <= prev {
		return errors.Errorf("miss threshold %v must be wider than the %v window %v", r.MissThreshold, Bad, prev)
	}
	if r.MaxLife <= 0 {
		return errors.Errorf("max life %d must be positive", r.MaxLife)
	}
	return nil
}

// Widest is the largest window an input can still match a note in
func (r Rules) Widest() time.Duration {
	return r.Judgements[Bad].Window
}

// Classify maps delta = now - note time to a tier.
// Outside the widest window there is no match, which is not a Miss.
func (r Rules) Classify(delta time.Duration) (Tier, bool) {
	if delta < 0 {
		delta = -delta
	}
	for t := Perfect; t < Miss; t++ {
		if delta <= r.Judgements[t].Window {
			return t, true
		}
	}
	return Miss, false
}
