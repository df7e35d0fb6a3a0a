package annealer

// State is the opaque candidate under optimization. The core never
// inspects a state's fields; it only needs an independent copy so that
// mutating a candidate can never affect current or best.
//
// Implementors own cloning. A JSON round-trip is not required and not
// assumed anywhere in this package.
type State interface {
	Clone() State
}
