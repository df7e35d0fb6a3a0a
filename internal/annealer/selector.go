package annealer

import "math/rand"

// DefaultExplorationFloor is the default fraction of selections that
// go to uniform-random exploration. Without a floor the search tends to
// collapse onto whichever operator got lucky early (§9): a single
// early improvement dominates the success-rate weighting and starves
// every other generator of attempts, so the floor is not merely a
// tuning knob, it is what keeps the selector adaptive instead of
// greedy.
const DefaultExplorationFloor = 0.30

// MinExplorationFloor is the lowest value callers may configure.
const MinExplorationFloor = 0.20

// OperatorSelector implements C4: a two-tier policy that explores
// uniformly at random with probability ExplorationFloor and otherwise
// picks proportionally to each applicable operator's success rate,
// falling back to uniform choice on a cold start (every rate zero).
type OperatorSelector struct {
	rng              *rand.Rand
	explorationFloor float64
}

func NewOperatorSelector(rng *rand.Rand, explorationFloor float64) *OperatorSelector {
	if explorationFloor < MinExplorationFloor {
		explorationFloor = DefaultExplorationFloor
	}
	return &OperatorSelector{rng: rng, explorationFloor: explorationFloor}
}

// Select returns the next move generator to try, or ok=false if none
// of the candidates is applicable to s — the annealer's terminal
// condition.
func (sel *OperatorSelector) Select(generators []MoveGenerator, stats map[string]*OperatorStats, s State) (gen MoveGenerator, ok bool) {
	applicable := make([]MoveGenerator, 0, len(generators))
	for _, g := range generators {
		if g.Applicable(s) {
			applicable = append(applicable, g)
		}
	}
	if len(applicable) == 0 {
		return nil, false
	}

	if sel.rng.Float64() < sel.explorationFloor {
		return applicable[sel.rng.Intn(len(applicable))], true
	}

	weights := make([]float64, len(applicable))
	total := 0.0
	for i, g := range applicable {
		var rate float64
		if st, ok := stats[g.Name()]; ok {
			rate = st.SuccessRate()
		}
		weights[i] = rate
		total += rate
	}
	if total <= 0 {
		return applicable[sel.rng.Intn(len(applicable))], true
	}

	r := sel.rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return applicable[i], true
		}
	}
	// Floating-point underflow in the accumulation: fall back to the
	// last candidate rather than panic on an out-of-range index.
	return applicable[len(applicable)-1], true
}

// RecordOutcome updates attempts/accepted/improvements for the named
// operator after an iteration, creating its stats entry on first use.
func RecordOutcome(stats map[string]*OperatorStats, name string, accepted, improved bool) {
	st, ok := stats[name]
	if !ok {
		st = &OperatorStats{}
		stats[name] = st
	}
	st.Attempts++
	if accepted {
		st.Accepted++
		if improved {
			st.Improvements++
		}
	}
}
