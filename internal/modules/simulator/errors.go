package simulator

import "fmt"

// InvalidCircuitError indicates a gate targeting a qubit index outside [0, n).
type InvalidCircuitError struct {
	Gate      string
	Qubit     int
	NumQubits int
}

func (e *InvalidCircuitError) Error() string {
	return fmt.Sprintf("invalid circuit: gate %s targets qubit %d, register has %d qubits",
		e.Gate, e.Qubit, e.NumQubits)
}

// OverflowError indicates a requested register width above the configured ceiling.
// The state vector grows as 2^n, so the ceiling is enforced before execution.
type OverflowError struct {
	Requested int
	Max       int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("simulation overflow: %d qubits requested, ceiling is %d", e.Requested, e.Max)
}

// CheckWidth validates a requested qubit count against the configured ceiling.
func CheckWidth(requested, max int) error {
	if requested < 1 {
		return fmt.Errorf("register needs at least 1 qubit, got %d", requested)
	}
	if requested > max {
		return &OverflowError{Requested: requested, Max: max}
	}
	return nil
}
