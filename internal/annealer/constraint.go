package annealer

import "math"

// Kind tags a Constraint as hard (must hold) or soft (preference).
type Kind int

const (
	Hard Kind = iota
	Soft
)

func (k Kind) String() string {
	if k == Hard {
		return "hard"
	}
	return "soft"
}

// Constraint is a pure, side-effect-free scoring function over a
// state. Evaluate must return a value in [0, 1], 1 meaning fully
// satisfied; returning outside that range is a programming error in
// the implementation, not a condition the core recovers from.
//
// Violations is optional: a constraint that cannot cheaply enumerate
// distinct violations may return nil, in which case the core falls
// back to the inferred count described on hardViolationCount.
type Constraint interface {
	Name() string
	Kind() Kind
	Weight() float64
	Evaluate(s State) float64
	Violations(s State) []string
}

// hardViolationCount applies the §4.1 counting rule for a single hard
// constraint: prefer the explicit violation list; otherwise infer a
// count from the common score = 1/(1+k) convention.
func hardViolationCount(c Constraint, s State) int {
	if v := c.Violations(s); v != nil {
		return len(v)
	}
	score := c.Evaluate(s)
	if score >= 1 {
		return 0
	}
	if score <= 0 || math.IsNaN(score) {
		return 1
	}
	k := math.Round(1/score - 1)
	if k < 1 {
		k = 1
	}
	return int(k)
}
