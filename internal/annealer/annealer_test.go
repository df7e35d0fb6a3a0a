package annealer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeState is a minimal State used to exercise the core in isolation
// from the timetabling adapter: Hard counts synthetic hard violations,
// Value drives a synthetic soft penalty.
type fakeState struct {
	Hard  int
	Value float64
}

func (s fakeState) Clone() State {
	return fakeState{Hard: s.Hard, Value: s.Value}
}

type fakeHardConstraint struct{ name string }

func (c fakeHardConstraint) Name() string  { return c.name }
func (c fakeHardConstraint) Kind() Kind    { return Hard }
func (c fakeHardConstraint) Weight() float64 { return 0 }
func (c fakeHardConstraint) Evaluate(s State) float64 {
	fs := s.(fakeState)
	if fs.Hard == 0 {
		return 1
	}
	return 1 / (1 + float64(fs.Hard))
}
func (c fakeHardConstraint) Violations(s State) []string {
	fs := s.(fakeState)
	v := make([]string, fs.Hard)
	for i := range v {
		v[i] = "synthetic hard violation"
	}
	return v
}

type fakeSoftConstraint struct {
	name   string
	weight float64
}

func (c fakeSoftConstraint) Name() string    { return c.name }
func (c fakeSoftConstraint) Kind() Kind      { return Soft }
func (c fakeSoftConstraint) Weight() float64 { return c.weight }
func (c fakeSoftConstraint) Evaluate(s State) float64 {
	fs := s.(fakeState)
	if fs.Value < 0 {
		return 0
	}
	return 1 / (1 + fs.Value)
}
func (c fakeSoftConstraint) Violations(s State) []string {
	fs := s.(fakeState)
	if fs.Value <= 0 {
		return nil
	}
	return []string{"soft value above baseline"}
}

type fixMove struct{ name string }

func (m fixMove) Name() string             { return m.name }
func (m fixMove) Applicable(s State) bool  { return s.(fakeState).Hard > 0 }
func (m fixMove) Generate(s State, _ float64) State {
	fs := s.(fakeState)
	fs.Hard--
	return fs
}

type worsenMove struct{ name string }

func (m worsenMove) Name() string            { return m.name }
func (m worsenMove) Applicable(State) bool   { return true }
func (m worsenMove) Generate(s State, _ float64) State {
	fs := s.(fakeState)
	fs.Value++
	return fs
}

type improveMove struct{ name string }

func (m improveMove) Name() string           { return m.name }
func (m improveMove) Applicable(State) bool  { return true }
func (m improveMove) Generate(s State, _ float64) State {
	fs := s.(fakeState)
	if fs.Value > 0 {
		fs.Value--
	}
	return fs
}

func baseConfig() Config {
	return Config{
		T0:               100,
		TMin:             0.1,
		RCool:            0.9,
		IterMax:          500,
		WHard:            1000,
		ThresholdReheat:  20,
		ReheatFactor:     3,
		MaxReheats:       2,
		Alpha:            0.6,
		ExplorationFloor: 0.30,
		Seed:             1,
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"T0 non positive", func(c *Config) { c.T0 = 0 }},
		{"TMin non positive", func(c *Config) { c.TMin = 0 }},
		{"T0 below TMin", func(c *Config) { c.T0 = 1; c.TMin = 5 }},
		{"RCool out of range", func(c *Config) { c.RCool = 1 }},
		{"IterMax non positive", func(c *Config) { c.IterMax = 0 }},
		{"WHard negative", func(c *Config) { c.WHard = -1 }},
		{"ReheatFactor too small", func(c *Config) { c.ReheatFactor = 1 }},
		{"ExplorationFloor below minimum", func(c *Config) { c.ExplorationFloor = 0.05 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			tc.mut(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
		})
	}
}

func TestFitnessEvaluator_HardDominatesSoft(t *testing.T) {
	// I2: a state with fewer hard violations always ranks better,
	// regardless of soft penalty, once WHard is calibrated.
	fe := NewFitnessEvaluator([]Constraint{
		fakeHardConstraint{"hard"},
		fakeSoftConstraint{"soft", 10},
	}, 1000)

	feasibleButSoftBad, _ := fe.Evaluate(fakeState{Hard: 0, Value: 1000})
	infeasibleButSoftGood, _ := fe.Evaluate(fakeState{Hard: 1, Value: 0})

	assert.Less(t, feasibleButSoftBad, infeasibleButSoftGood)
}

type nanConstraint struct{}

func (nanConstraint) Name() string             { return "nan" }
func (nanConstraint) Kind() Kind               { return Soft }
func (nanConstraint) Weight() float64          { return 1 }
func (nanConstraint) Evaluate(State) float64   { return math.NaN() }
func (nanConstraint) Violations(State) []string { return nil }

func TestFitnessEvaluator_NaNBecomesInf(t *testing.T) {
	fe := NewFitnessEvaluator([]Constraint{nanConstraint{}}, 1000)
	fitness, _ := fe.Evaluate(fakeState{})
	assert.True(t, math.IsInf(fitness, 1))
}

// scoreOnlyHardConstraint returns no violation list, so its count must
// be inferred from its 1/(1+k) score.
type scoreOnlyHardConstraint struct{ fakeHardConstraint }

func (scoreOnlyHardConstraint) Violations(State) []string { return nil }

func TestHardViolationCount_InferredFromScore(t *testing.T) {
	c := scoreOnlyHardConstraint{fakeHardConstraint{"hard"}}
	assert.Equal(t, 0, hardViolationCount(c, fakeState{Hard: 0}))
	assert.Equal(t, 3, hardViolationCount(c, fakeState{Hard: 3}))
}

func TestOperatorSelector_NoApplicableReturnsFalse(t *testing.T) {
	sel := NewOperatorSelector(rand.New(rand.NewSource(1)), 0.3)
	gens := []MoveGenerator{fixMove{"fix"}}
	_, ok := sel.Select(gens, map[string]*OperatorStats{}, fakeState{Hard: 0})
	assert.False(t, ok)
}

func TestOperatorSelector_ColdStartIsUniform(t *testing.T) {
	sel := NewOperatorSelector(rand.New(rand.NewSource(42)), 0) // forces default floor
	gens := []MoveGenerator{worsenMove{"a"}, improveMove{"b"}}
	counts := map[string]int{}
	for i := 0; i < 200; i++ {
		g, ok := sel.Select(gens, map[string]*OperatorStats{}, fakeState{Value: 1})
		require.True(t, ok)
		counts[g.Name()]++
	}
	assert.Greater(t, counts["a"], 0)
	assert.Greater(t, counts["b"], 0)
}

func TestAcceptance_Phase1(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rule := Phase1Rule{}

	assert.True(t, rule.Accept(Evaluation{HardViolations: 2}, Evaluation{HardViolations: 1}, 0, 10, rng))
	assert.False(t, rule.Accept(Evaluation{HardViolations: 1}, Evaluation{HardViolations: 2}, 0, 10, rng))
	assert.True(t, rule.Accept(Evaluation{HardViolations: 1, Fitness: 10}, Evaluation{HardViolations: 1, Fitness: 5}, 0, 10, rng))
}

func TestAcceptance_Phase2StrictRejection(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rule := Phase2Rule{}

	// P3: a candidate exceeding hBest must never be accepted, no
	// matter how high the temperature.
	for i := 0; i < 1000; i++ {
		accepted := rule.Accept(Evaluation{HardViolations: 0, Fitness: 100}, Evaluation{HardViolations: 1, Fitness: 0}, 0, 1e9, rng)
		require.False(t, accepted)
	}

	assert.True(t, rule.Accept(Evaluation{HardViolations: 1}, Evaluation{HardViolations: 0}, 1, 10, rng))
}

func TestAnnealer_FeasibleInputNoConstraints(t *testing.T) {
	cfg := baseConfig()
	a, err := New(cfg, nil, []MoveGenerator{improveMove{"improve"}}, nil)
	require.NoError(t, err)

	sol, err := a.Solve(fakeState{Hard: 0, Value: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, sol.HardViolations)
	assert.Equal(t, 0.0, sol.BestFitness)
}

func TestAnnealer_NoApplicableMovesTerminatesEarly(t *testing.T) {
	cfg := baseConfig()
	a, err := New(cfg, []Constraint{fakeHardConstraint{"hard"}}, nil, nil)
	require.NoError(t, err)

	sol, err := a.Solve(fakeState{Hard: 2})
	require.NoError(t, err)
	assert.True(t, sol.TerminatedNoMoves)
	assert.Equal(t, 2, sol.HardViolations)
}

func TestAnnealer_EliminatesHardViolations(t *testing.T) {
	cfg := baseConfig()
	cfg.IterMax = 2000
	a, err := New(cfg, []Constraint{fakeHardConstraint{"hard"}}, []MoveGenerator{
		fixMove{"fix"}, improveMove{"improve"},
	}, nil)
	require.NoError(t, err)

	sol, err := a.Solve(fakeState{Hard: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, sol.HardViolations)
	assert.False(t, sol.TerminatedNoMoves)
}

func TestAnnealer_Phase2NeverRegressesHard(t *testing.T) {
	cfg := baseConfig()
	cfg.IterMax = 1000
	cfg.T0 = 1000 // high temperature stresses the Metropolis branch

	// A move that always introduces exactly one hard violation must
	// never be accepted once Phase 2 starts from a feasible state
	// (P3).
	a, err := New(cfg, []Constraint{fakeHardConstraint{"hard"}}, []MoveGenerator{
		breakHardMove{"break"},
	}, nil)
	require.NoError(t, err)

	sol, err := a.Solve(fakeState{Hard: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, sol.HardViolations)
	st := sol.OperatorStats["break"]
	assert.Equal(t, 0, st.Accepted)
}

type breakHardMove struct{ name string }

func (m breakHardMove) Name() string            { return m.name }
func (m breakHardMove) Applicable(State) bool   { return true }
func (m breakHardMove) Generate(s State, _ float64) State {
	fs := s.(fakeState)
	fs.Hard = 1
	return fs
}

func TestAnnealer_ReheatCapRespected(t *testing.T) {
	cfg := baseConfig()
	cfg.IterMax = 5000
	cfg.ThresholdReheat = 1
	cfg.MaxReheats = 2
	cfg.TMin = 0.0001
	cfg.RCool = 0.99

	a, err := New(cfg, []Constraint{fakeSoftConstraint{"soft", 1}}, []MoveGenerator{
		worsenMove{"worsen"},
	}, nil)
	require.NoError(t, err)

	sol, err := a.Solve(fakeState{Hard: 0, Value: 0})
	require.NoError(t, err)
	assert.LessOrEqual(t, sol.Reheats, cfg.MaxReheats)
}

func TestAnnealer_DoesNotMutateCallerState(t *testing.T) {
	cfg := baseConfig()
	initial := fakeState{Hard: 3, Value: 2}
	a, err := New(cfg, []Constraint{fakeHardConstraint{"hard"}}, []MoveGenerator{fixMove{"fix"}}, nil)
	require.NoError(t, err)

	_, err = a.Solve(initial)
	require.NoError(t, err)
	assert.Equal(t, fakeState{Hard: 3, Value: 2}, initial)
}

func TestAnnealer_StatsConsistency(t *testing.T) {
	cfg := baseConfig()
	cfg.IterMax = 1000
	a, err := New(cfg, []Constraint{fakeHardConstraint{"hard"}}, []MoveGenerator{
		fixMove{"fix"}, worsenMove{"worsen"}, improveMove{"improve"},
	}, nil)
	require.NoError(t, err)

	sol, err := a.Solve(fakeState{Hard: 4, Value: 3})
	require.NoError(t, err)

	for _, st := range sol.OperatorStats {
		assert.LessOrEqual(t, st.Improvements, st.Accepted)
		assert.LessOrEqual(t, st.Accepted, st.Attempts)
		if st.Attempts > 0 {
			assert.InDelta(t, float64(st.Improvements)/float64(st.Attempts), st.SuccessRate(), 1e-9)
		}
	}
}
