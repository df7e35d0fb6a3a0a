package annealer

// MoveGenerator produces a neighbor state from a current one. It must
// be stateless across calls: Applicable is a cheap predicate and
// Generate must return an independent state, cloning internally if it
// needs to mutate. Returning the input unchanged is legal and is
// treated as a neutral candidate by the acceptance rule.
type MoveGenerator interface {
	Name() string
	Applicable(s State) bool
	Generate(s State, temperature float64) State
}

// OperatorStats accumulates per-operator credit used by the
// OperatorSelector (C4). SuccessRate is 0 when Attempts is 0.
type OperatorStats struct {
	Attempts     int
	Accepted     int
	Improvements int
}

func (s OperatorStats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Improvements) / float64(s.Attempts)
}
