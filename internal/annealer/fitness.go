package annealer

import "math"

// FitnessEvaluator aggregates constraint scores into a single scalar
// cost (§4.3):
//
//	fitness(S) = hard_violations(S) * WHard + Σ_soft (1 - score_i(S)) * weight_i
//
// The constraint set is partitioned into hard/soft once, at
// construction; evaluation order within a partition has no semantic
// effect.
type FitnessEvaluator struct {
	hard  []Constraint
	soft  []Constraint
	wHard float64
}

// NewFitnessEvaluator partitions constraints by Kind and fixes WHard,
// the multiplier applied to the hard-violation count. Calibrating
// WHard so that Phase 2 rejection (I2) holds is the caller's
// responsibility.
func NewFitnessEvaluator(constraints []Constraint, wHard float64) *FitnessEvaluator {
	f := &FitnessEvaluator{wHard: wHard}
	for _, c := range constraints {
		if c.Kind() == Hard {
			f.hard = append(f.hard, c)
		} else {
			f.soft = append(f.soft, c)
		}
	}
	return f
}

// Evaluate returns the scalar fitness and the hard-violation count for
// s. A non-finite fitness (NaN from a misbehaving constraint) is
// normalized to +Inf so it can never be accepted by a lower-is-better
// rule.
func (f *FitnessEvaluator) Evaluate(s State) (fitness float64, hardViolations int) {
	for _, c := range f.hard {
		hardViolations += hardViolationCount(c, s)
	}
	fitness = float64(hardViolations) * f.wHard

	for _, c := range f.soft {
		score := c.Evaluate(s)
		fitness += (1 - score) * c.Weight()
	}

	if math.IsNaN(fitness) {
		return math.Inf(1), hardViolations
	}
	return fitness, hardViolations
}

// Violations enumerates every violated constraint's messages, hard
// first, in partition order, for final reporting.
func (f *FitnessEvaluator) Violations(s State) []string {
	var out []string
	for _, c := range f.hard {
		out = append(out, c.Violations(s)...)
	}
	for _, c := range f.soft {
		out = append(out, c.Violations(s)...)
	}
	return out
}

// SoftViolationCount counts the soft-constraint violation entries
// across every soft constraint, used for the Solution's final
// soft-violation count.
func (f *FitnessEvaluator) SoftViolationCount(s State) int {
	n := 0
	for _, c := range f.soft {
		n += len(c.Violations(s))
	}
	return n
}
