// Package kernel computes quantum-circuit similarity between feature vectors
// and assembles symmetric kernel matrices for the anomaly detector.
package kernel

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/aristath/quantum-lab/internal/modules/simulator"
)

// Dimension is the fixed feature-vector length; one qubit per feature.
const Dimension = 3

// maxAngle clamps rotation angle differences before encoding.
const maxAngle = 2 * math.Pi

// DimensionError indicates feature vectors of the wrong length. Mismatched
// vectors are rejected outright, never padded or truncated.
type DimensionError struct {
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("kernel dimension mismatch: got %d features, want %d", e.Got, e.Want)
}

// ValidateVector checks a feature vector against the fixed dimension.
func ValidateVector(v []float64) error {
	if len(v) != Dimension {
		return &DimensionError{Got: len(v), Want: Dimension}
	}
	return nil
}

// Kernel computes the similarity between two feature vectors in [0, 1].
//
// The per-feature differences are encoded as rotation angles on a 3-qubit
// register, followed by phase flips on every qubit pair for entanglement. The
// returned value is the squared magnitude of the all-zero amplitude of the
// final state. Identical inputs rotate by zero everywhere, leaving the
// all-zero amplitude at probability 1, so Kernel(x, x) == 1.
//
// Swapping x and y flips the sign of every angle; the all-zero amplitude is a
// product of cosine terms in the half-angles and the phase flips change signs
// but not magnitudes, so the value is even in each angle and the kernel is
// symmetric without explicit averaging. The matrix builder still mirrors
// values rather than recomputing them.
//
// A simulator failure here is fatal: the circuit is built from constants, so
// an error is a construction bug rather than bad user input.
func Kernel(x, y []float64) (float64, error) {
	if err := ValidateVector(x); err != nil {
		return 0, err
	}
	if err := ValidateVector(y); err != nil {
		return 0, err
	}

	ops := make([]simulator.GateOp, 0, Dimension+3)
	for q := 0; q < Dimension; q++ {
		ops = append(ops, simulator.Rotate(q, clampAngle(x[q]-y[q])))
	}
	ops = append(ops,
		simulator.PhaseFlipPair(0, 1),
		simulator.PhaseFlipPair(1, 2),
		simulator.PhaseFlipPair(0, 2),
	)

	program, err := simulator.NewProgram(Dimension, ops...)
	if err != nil {
		return 0, fmt.Errorf("failed to build kernel circuit: %w", err)
	}

	reg, err := simulator.Run(program)
	if err != nil {
		return 0, fmt.Errorf("kernel circuit execution failed: %w", err)
	}

	amp0 := reg.Amplitudes()[0]
	m := cmplx.Abs(amp0)
	value := m * m

	// Guard against float noise pushing past the [0, 1] bounds.
	if value > 1 {
		value = 1
	}
	if value < 0 {
		value = 0
	}

	return value, nil
}

func clampAngle(angle float64) float64 {
	if angle > maxAngle {
		return maxAngle
	}
	if angle < -maxAngle {
		return -maxAngle
	}
	return angle
}
