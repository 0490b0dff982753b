package game

// State is the score, combo and life of a session. It is a value, Apply
// returns a new State and never mutates its argument.
type State struct {
	Score    int
	Combo    int
	MaxCombo int
	Life     int
	Counts   [TierCount]int
	Terminal bool
	Failed   bool
}

func (r Rules) NewState() State {
	return State{Life: r.MaxLife}
}

// Apply adds one judgement to s. A terminal state is returned unchanged.
func (r Rules) Apply(t Tier, s State) State {
	if s.Terminal || t >= TierCount {
		return s
	}
	j := r.Judgements[t]
	s.Counts[t]++

	if t.Hit() {
		bonus := 0
		if r.ComboStep > 0 {
			bonus = (s.Combo / r.ComboStep) * r.ComboBonus
		}
		s.Score += j.Score + bonus
		s.Combo++
		if s.Combo > s.MaxCombo {
			s.MaxCombo = s.Combo
		}
	} else {
		if t != Miss {
			s.Score += j.Score
		}
		s.Combo = 0
	}

	s.Life += j.Life
	if s.Life > r.MaxLife {
		s.Life = r.MaxLife
	}
	if s.Life <= 0 {
		s.Life = 0
		s.Terminal = true
		s.Failed = true
	}
	return s
}

// Complete marks a state terminal because every note is resolved
func (s State) Complete() State {
	s.Terminal = true
	return s
}

// Resolved is the number of judged notes
func (s State) Resolved() int {
	total := 0
	for _, c := range s.Counts {
		total += c
	}
	return total
}

type Band uint8

const (
	LifeNormal Band = iota
	LifeWarning
	LifeDanger
)

func (r Rules) Band(s State) Band {
	switch {
	case s.Life*4 <= r.MaxLife:
		return LifeDanger
	case s.Life*2 <= r.MaxLife:
		return LifeWarning
	}
	return LifeNormal
}
