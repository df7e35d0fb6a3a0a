package annealer

import (
	"math"
	"math/rand"
)

// Evaluation bundles a candidate's fitness and hard-violation count so
// AcceptanceRule implementations never have to re-derive one from the
// other.
type Evaluation struct {
	Fitness        float64
	HardViolations int
}

// AcceptanceRule decides whether to move from current to candidate.
// hBest is the best-so-far hard-violation count; Phase 1 ignores it,
// Phase 2 enforces it strictly (§4.5).
type AcceptanceRule interface {
	Accept(current, candidate Evaluation, hBest int, temperature float64, rng *rand.Rand) bool
}

func metropolis(fCurrent, fCandidate, temperature float64, rng *rand.Rand) bool {
	if fCandidate < fCurrent {
		return true
	}
	if temperature <= 0 {
		return false
	}
	p := math.Exp((fCurrent - fCandidate) / temperature)
	return rng.Float64() < p
}

// Phase1Rule eliminates hard violations: fewer hard violations is
// always accepted, more is always rejected, equal falls back to
// Metropolis on fitness.
type Phase1Rule struct{}

func (Phase1Rule) Accept(current, candidate Evaluation, _ int, temperature float64, rng *rand.Rand) bool {
	if candidate.HardViolations < current.HardViolations {
		return true
	}
	if candidate.HardViolations > current.HardViolations {
		return false
	}
	return metropolis(current.Fitness, candidate.Fitness, temperature, rng)
}

// Phase2Rule optimizes soft constraints without ever letting hard
// violations regress past hBest — the critical invariant of Phase 2.
// A candidate that would push hard violations above hBest is rejected
// unconditionally, regardless of temperature; Metropolis on fitness
// alone would eventually permit exactly that at high temperature,
// which is what Phase 2 exists to forbid.
type Phase2Rule struct{}

func (Phase2Rule) Accept(current, candidate Evaluation, hBest int, temperature float64, rng *rand.Rand) bool {
	if candidate.HardViolations > hBest {
		return false
	}
	if candidate.HardViolations < hBest {
		return true
	}
	return metropolis(current.Fitness, candidate.Fitness, temperature, rng)
}
