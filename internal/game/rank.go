package game

type Rank uint8

const (
	RankS Rank = iota
	RankA
	RankB
	RankC
	RankD
	RankE
	RankF
)

var rankNames = [...]string{"S", "A", "B", "C", "D", "E", "F"}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return "?"
}

func ParseRank(s string) (Rank, bool) {
	for i, name := range rankNames {
		if name == s {
			return Rank(i), true
		}
	}
	return RankF, false
}

type RankThreshold struct {
	Rank     Rank
	Accuracy float64
	NoMiss   bool
}

// DefaultRanks is ordered best first, anything below the last is RankE
func DefaultRanks() []RankThreshold {
	return []RankThreshold{
		{Rank: RankS, Accuracy: 0.95, NoMiss: true},
		{Rank: RankA, Accuracy: 0.90},
		{Rank: RankB, Accuracy: 0.80},
		{Rank: RankC, Accuracy: 0.70},
		{Rank: RankD, Accuracy: 0.60},
	}
}

// Accuracy is the weighted hit ratio in [0,1], zero for an empty chart
func (r Rules) Accuracy(s State, totalNotes int) float64 {
	if totalNotes <= 0 {
		return 0
	}
	weighted := 0
	for t, count := range s.Counts {
		weighted += count * r.Judgements[t].Weight
	}
	return float64(weighted) / float64(totalNotes*100)
}

// Rank of a finished run. An empty chart that was not failed ranks E.
func (r Rules) Rank(s State, totalNotes int, failed bool) Rank {
	if failed {
		return RankF
	}
	if totalNotes <= 0 {
		return RankE
	}
	acc := r.Accuracy(s, totalNotes)
	for _, th := range r.Ranks {
		if th.NoMiss && s.Counts[Miss] > 0 {
			continue
		}
		if acc >= th.Accuracy {
			return th.Rank
		}
	}
	return RankE
}

type Result struct {
	State
	Rank       Rank
	Accuracy   float64
	TotalNotes int
}

func (r Rules) Result(s State, totalNotes int) Result {
	return Result{
		State:      s,
		Rank:       r.Rank(s, totalNotes, s.Failed),
		Accuracy:   r.Accuracy(s, totalNotes),
		TotalNotes: totalNotes,
	}
}
