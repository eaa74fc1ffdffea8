// Package simulator implements a small state-vector quantum simulator.
//
// A register of n qubits is a vector of 2^n complex amplitudes indexed by basis
// state. The gate set is deliberately small: single-qubit rotation, Hadamard,
// and a two-qubit phase flip. Cost is O(2^n) per gate, so register width is
// capped (DefaultMaxQubits) by the callers.
package simulator

// DefaultMaxQubits is the default register width ceiling (64 amplitudes).
const DefaultMaxQubits = 6

// GateKind identifies a gate variant.
type GateKind int

const (
	// GateRotate is a single-qubit real rotation by an angle.
	GateRotate GateKind = iota
	// GateHadamard is the single-qubit Hadamard gate.
	GateHadamard
	// GatePhaseFlipPair negates amplitudes where both target qubits are 1.
	GatePhaseFlipPair
)

// String returns the gate name used in diagnostics.
func (k GateKind) String() string {
	switch k {
	case GateRotate:
		return "ROTATE"
	case GateHadamard:
		return "HADAMARD"
	case GatePhaseFlipPair:
		return "PHASE_FLIP_PAIR"
	default:
		return "UNKNOWN"
	}
}

// GateOp is a single gate application. Qubit is the target; QubitB is only
// meaningful for the two-qubit phase flip. Angle is only meaningful for rotations.
type GateOp struct {
	Kind   GateKind
	Qubit  int
	QubitB int
	Angle  float64
}

// Rotate builds a rotation gate op for qubit q by angle theta.
func Rotate(q int, theta float64) GateOp {
	return GateOp{Kind: GateRotate, Qubit: q, Angle: theta}
}

// Hadamard builds a Hadamard gate op for qubit q.
func Hadamard(q int) GateOp {
	return GateOp{Kind: GateHadamard, Qubit: q}
}

// PhaseFlipPair builds a two-qubit phase flip op on qubits a and b.
func PhaseFlipPair(a, b int) GateOp {
	return GateOp{Kind: GatePhaseFlipPair, Qubit: a, QubitB: b}
}

// CircuitProgram is an ordered, immutable gate sequence over a fixed register width.
type CircuitProgram struct {
	numQubits int
	ops       []GateOp
}

// NewProgram validates all gate indices against the register width and returns
// an immutable program. Out-of-range indices fail with InvalidCircuitError.
func NewProgram(numQubits int, ops ...GateOp) (*CircuitProgram, error) {
	for _, op := range ops {
		if op.Qubit < 0 || op.Qubit >= numQubits {
			return nil, &InvalidCircuitError{Gate: op.Kind.String(), Qubit: op.Qubit, NumQubits: numQubits}
		}
		if op.Kind == GatePhaseFlipPair {
			if op.QubitB < 0 || op.QubitB >= numQubits {
				return nil, &InvalidCircuitError{Gate: op.Kind.String(), Qubit: op.QubitB, NumQubits: numQubits}
			}
		}
	}

	program := &CircuitProgram{
		numQubits: numQubits,
		ops:       make([]GateOp, len(ops)),
	}
	copy(program.ops, ops)

	return program, nil
}

// UniformProgram builds the Hadamard-on-every-qubit circuit used for sampling
// uniformly over 2^n outcomes.
func UniformProgram(numQubits int) (*CircuitProgram, error) {
	ops := make([]GateOp, numQubits)
	for q := 0; q < numQubits; q++ {
		ops[q] = Hadamard(q)
	}
	return NewProgram(numQubits, ops...)
}

// NumQubits returns the register width the program targets.
func (p *CircuitProgram) NumQubits() int {
	return p.numQubits
}

// Ops returns a copy of the gate sequence in program order.
func (p *CircuitProgram) Ops() []GateOp {
	ops := make([]GateOp, len(p.ops))
	copy(ops, p.ops)
	return ops
}

// Run allocates a fresh register and applies the program's gates in order.
// Each invocation gets its own register, so concurrent runs need no locking.
func Run(p *CircuitProgram) (*Register, error) {
	reg := NewRegister(p.numQubits)
	for _, op := range p.ops {
		if err := reg.Apply(op); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
