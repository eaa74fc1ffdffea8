package simulator

import (
	"math"
	"math/cmplx"
)

// Register holds the amplitude vector of an n-qubit system. It starts in the
// all-zero basis state and is single-use: one measurement or amplitude read
// per circuit execution, never shared across goroutines.
type Register struct {
	amps      []complex128
	numQubits int
}

// NewRegister creates an n-qubit register initialized to |0...0>.
func NewRegister(numQubits int) *Register {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1

	return &Register{
		amps:      amps,
		numQubits: numQubits,
	}
}

// NumQubits returns the register width.
func (r *Register) NumQubits() int {
	return r.numQubits
}

// Size returns the number of basis states (2^n).
func (r *Register) Size() int {
	return len(r.amps)
}

// Amplitudes returns a copy of the state vector without collapsing it.
// The kernel path reads amplitudes directly instead of sampling.
func (r *Register) Amplitudes() []complex128 {
	amps := make([]complex128, len(r.amps))
	copy(amps, r.amps)
	return amps
}

// Probabilities returns |amplitude|^2 for every basis state.
func (r *Register) Probabilities() []float64 {
	probs := make([]float64, len(r.amps))
	for i, a := range r.amps {
		m := cmplx.Abs(a)
		probs[i] = m * m
	}
	return probs
}

// Norm returns the sum of squared magnitudes. Stays ~1 after every gate.
func (r *Register) Norm() float64 {
	var sum float64
	for _, a := range r.amps {
		m := cmplx.Abs(a)
		sum += m * m
	}
	return sum
}

// Apply dispatches a single gate op onto the register.
func (r *Register) Apply(op GateOp) error {
	switch op.Kind {
	case GateRotate:
		return r.ApplyRotate(op.Qubit, op.Angle)
	case GateHadamard:
		return r.ApplyHadamard(op.Qubit)
	case GatePhaseFlipPair:
		return r.ApplyPhaseFlipPair(op.Qubit, op.QubitB)
	default:
		return &InvalidCircuitError{Gate: op.Kind.String(), Qubit: op.Qubit, NumQubits: r.numQubits}
	}
}

// ApplyRotate rotates qubit q by theta, updating every amplitude pair that
// differs only in bit q. Uses the half-angle convention, so Rotate(q, 0) is
// the identity:
//
//	|a'_i|   | cos(t/2)  -sin(t/2) | |a_i|
//	|a'_j| = | sin(t/2)   cos(t/2) | |a_j|
func (r *Register) ApplyRotate(q int, theta float64) error {
	if err := r.checkQubit("ROTATE", q); err != nil {
		return err
	}

	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	bit := 1 << q

	for i := range r.amps {
		if i&bit == 0 {
			j := i | bit
			ai, aj := r.amps[i], r.amps[j]
			r.amps[i] = c*ai - s*aj
			r.amps[j] = s*ai + c*aj
		}
	}

	return nil
}

// ApplyHadamard applies [[1,1],[1,-1]]/sqrt(2) to qubit q, splitting each
// amplitude pair into an equal superposition.
func (r *Register) ApplyHadamard(q int) error {
	if err := r.checkQubit("HADAMARD", q); err != nil {
		return err
	}

	factor := complex(1/math.Sqrt2, 0)
	bit := 1 << q

	for i := range r.amps {
		if i&bit == 0 {
			j := i | bit
			ai, aj := r.amps[i], r.amps[j]
			r.amps[i] = factor * (ai + aj)
			r.amps[j] = factor * (ai - aj)
		}
	}

	return nil
}

// ApplyPhaseFlipPair negates the amplitude of every basis state where both
// bits a and b are 1. Phase-only, so no magnitude changes; this is the
// entangling operation of the gate set.
func (r *Register) ApplyPhaseFlipPair(a, b int) error {
	if err := r.checkQubit("PHASE_FLIP_PAIR", a); err != nil {
		return err
	}
	if err := r.checkQubit("PHASE_FLIP_PAIR", b); err != nil {
		return err
	}

	bitA := 1 << a
	bitB := 1 << b

	for i := range r.amps {
		if i&bitA != 0 && i&bitB != 0 {
			r.amps[i] = -r.amps[i]
		}
	}

	return nil
}

func (r *Register) checkQubit(gate string, q int) error {
	if q < 0 || q >= r.numQubits {
		return &InvalidCircuitError{Gate: gate, Qubit: q, NumQubits: r.numQubits}
	}
	return nil
}
