package annealer

// Solution is the immutable record emitted at termination (§3).
type Solution struct {
	RunID          string
	Best           State
	BestFitness    float64
	HardViolations int
	SoftViolations int
	Iterations     int
	Reheats        int
	FinalTemp      float64
	Violations     []string
	OperatorStats  map[string]OperatorStats

	// TerminatedNoMoves is set when the solve ended early because no
	// move generator was applicable to the current state (§7) rather
	// than because IterMax or TMin was reached.
	TerminatedNoMoves bool
}
