package annealer

import "fmt"

// ConfigError marks a caller programming error detected at
// construction time: a non-positive temperature, a cooling rate
// outside (0,1), a negative weight, T0 <= TMin. It is always fatal —
// the annealer never starts a solve with an invalid Config.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("annealer: invalid config field %q: %s", e.Field, e.Reason)
}
