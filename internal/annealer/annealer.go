package annealer

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Annealer is C6: the driver that owns temperature, iteration count,
// and best-so-far, and sequences Phase 1 (hard-constraint
// elimination) and Phase 2 (soft optimization with strict hard
// preservation) plus the reheating policy.
type Annealer struct {
	cfg      Config
	fitness  *FitnessEvaluator
	moves    []MoveGenerator
	selector *OperatorSelector
	sink     Sink
	rng      *rand.Rand
	runID    string
}

// New validates cfg and wires constraints/moves into an Annealer. A
// nil sink is equivalent to NoopSink.
func New(cfg Config, constraints []Constraint, moves []MoveGenerator, sink Sink) (*Annealer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NoopSink{}
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &Annealer{
		cfg:      cfg,
		fitness:  NewFitnessEvaluator(constraints, cfg.WHard),
		moves:    moves,
		selector: NewOperatorSelector(rng, cfg.explorationFloor()),
		sink:     sink,
		rng:      rng,
		runID:    uuid.NewString(),
	}, nil
}

// runIteration is the shared per-iteration body for both phases: pick
// an operator, generate a candidate, score it, apply rule, update
// current/best/stats, check reheat. Cooling is left to the caller's
// loop. It returns false when no move generator is applicable — the
// caller's signal to stop.
func (a *Annealer) runIteration(rule AcceptanceRule, current *State, currentEval *Evaluation, best *State, bestEval *Evaluation, stats map[string]*OperatorStats, T *float64, stagnation *int, reheats *int, phase string, iter int) bool {
	gen, ok := a.selector.Select(a.moves, stats, *current)
	if !ok {
		return false
	}

	candidate := gen.Generate(*current, *T)
	candFitness, candHard := a.fitness.Evaluate(candidate)
	candEval := Evaluation{Fitness: candFitness, HardViolations: candHard}

	accept := rule.Accept(*currentEval, candEval, bestEval.HardViolations, *T, a.rng)
	improved := accept && candEval.Fitness < currentEval.Fitness

	RecordOutcome(stats, gen.Name(), accept, improved)

	if accept {
		*current = candidate
		*currentEval = candEval
		if lexLess(candEval, *bestEval) {
			*best = candidate.Clone()
			*bestEval = candEval
			*stagnation = 0
		} else {
			*stagnation++
		}
	} else {
		*stagnation++
	}

	if *stagnation >= a.cfg.ThresholdReheat && *reheats < a.cfg.MaxReheats && *T < a.cfg.T0/100 {
		*T *= a.cfg.reheatFactor()
		*reheats++
		*stagnation = 0
	}

	a.logProgress(phase, iter, *T, currentEval.Fitness, bestEval.Fitness, bestEval.HardViolations, *reheats, stats)

	return true
}

// lexLess orders evaluations by fewer hard violations first, then
// lower fitness (I2: hard violations always dominate soft penalties).
func lexLess(a, b Evaluation) bool {
	if a.HardViolations != b.HardViolations {
		return a.HardViolations < b.HardViolations
	}
	return a.Fitness < b.Fitness
}

// Solve runs Phase 1 then Phase 2 over initial and returns the
// authoritative Solution. initial is never mutated (I4): it is cloned
// once into current and once more into best.
func (a *Annealer) Solve(initial State) (*Solution, error) {
	current := initial.Clone()
	best := current.Clone()

	bestFitness, bestHard := a.fitness.Evaluate(best)
	bestEval := Evaluation{Fitness: bestFitness, HardViolations: bestHard}
	currentEval := bestEval

	T := a.cfg.T0
	iter := 0
	stagnation := 0
	reheats := 0
	stats := make(map[string]*OperatorStats)
	noMoves := false

	a.sink.Log(Record{Level: LevelInfo, Phase: "phase1", Message: "entering hard-constraint elimination (run " + a.runID + ")"})

	iterP1Max := int(math.Floor(a.cfg.alpha() * float64(a.cfg.IterMax)))
	for iterP1 := 0; T > a.cfg.T0/10 && iterP1 < iterP1Max && bestEval.HardViolations > 0; iterP1++ {
		if !a.runIteration(Phase1Rule{}, &current, &currentEval, &best, &bestEval, stats, &T, &stagnation, &reheats, "phase1", iter) {
			noMoves = true
			break
		}
		T *= a.cfg.RCool
		iter++
	}

	if !noMoves {
		a.sink.Log(Record{Level: LevelInfo, Phase: "phase2", Message: "entering soft optimization"})

		current = best.Clone()
		currentEval = bestEval
		stagnation = 0

		for T > a.cfg.TMin && iter < a.cfg.IterMax {
			if !a.runIteration(Phase2Rule{}, &current, &currentEval, &best, &bestEval, stats, &T, &stagnation, &reheats, "phase2", iter) {
				noMoves = true
				break
			}
			T *= a.cfg.RCool
			iter++
		}
	}

	finalStats := make(map[string]OperatorStats, len(stats))
	for name, s := range stats {
		finalStats[name] = *s
	}

	sol := &Solution{
		RunID:             a.runID,
		Best:              best,
		BestFitness:       bestEval.Fitness,
		HardViolations:    bestEval.HardViolations,
		SoftViolations:    a.fitness.SoftViolationCount(best),
		Iterations:        iter,
		Reheats:           reheats,
		FinalTemp:         T,
		Violations:        a.fitness.Violations(best),
		OperatorStats:     finalStats,
		TerminatedNoMoves: noMoves,
	}

	a.sink.Log(Record{
		Level: LevelInfo, Phase: "terminal", Iteration: iter, Temperature: T,
		BestFitness: sol.BestFitness, HardViolations: sol.HardViolations, Reheats: reheats,
		Message: "solve complete",
	})

	return sol, nil
}

func (a *Annealer) logProgress(phase string, iter int, T, currentFitness, bestFitness float64, hardViolations, reheats int, stats map[string]*OperatorStats) {
	interval := 1
	if a.cfg.Logging != nil && a.cfg.Logging.LogInterval > 0 {
		interval = a.cfg.Logging.LogInterval
	}
	if a.cfg.Logging == nil || !a.cfg.Logging.Enabled || iter%interval != 0 {
		return
	}

	snapshot := make(map[string]OperatorStats, len(stats))
	for name, s := range stats {
		snapshot[name] = *s
	}

	a.sink.Log(Record{
		Level: a.cfg.Logging.Level, Phase: phase, Iteration: iter, Temperature: T,
		CurrentFitness: currentFitness, BestFitness: bestFitness,
		HardViolations: hardViolations, Reheats: reheats,
		OperatorStats: snapshot,
		Message:       "progress",
	})
}
