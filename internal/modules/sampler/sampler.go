// Package sampler draws classical outcomes from simulated quantum registers.
//
// Measurement walks the cumulative distribution of squared amplitude
// magnitudes against a draw from an explicitly passed random source, so tests
// can seed it. Any simulator failure degrades to a uniformly chosen classical
// outcome of the same cardinality, tagged MethodFallback so degradation is
// visible in the result rather than hidden behind an error.
package sampler

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/aristath/quantum-lab/internal/modules/simulator"
)

// Method tags how an outcome was produced.
type Method string

const (
	// MethodQuantum marks an outcome sampled from simulated amplitudes.
	MethodQuantum Method = "quantum"
	// MethodFallback marks a classical substitute after a simulator failure.
	MethodFallback Method = "fallback"
)

// Result is one measured outcome. The register that produced it is consumed.
type Result struct {
	Index       int     // sampled basis state
	Bits        string  // n-bit string of Index
	Probability float64 // probability mass the outcome carried at measurement time
	Method      Method
	Reason      string // populated when Method == MethodFallback
}

// Sampler measures registers and tracks fallback usage for observability.
type Sampler struct {
	log           zerolog.Logger
	fallbackCount atomic.Uint64
}

// New creates a sampler.
func New(log zerolog.Logger) *Sampler {
	return &Sampler{
		log: log.With().Str("component", "sampler").Logger(),
	}
}

// Measure runs the program on a fresh register and samples one outcome.
// Simulator failures are caught here: the result degrades to a classical
// uniform draw over the same 2^n outcomes instead of propagating an error.
func (s *Sampler) Measure(program *simulator.CircuitProgram, rng *rand.Rand) Result {
	reg, err := simulator.Run(program)
	if err != nil {
		return s.Fallback(program.NumQubits(), rng, fmt.Sprintf("simulator failure: %v", err))
	}
	return s.Sample(reg, rng)
}

// Sample draws basis state i with probability |amplitude_i|^2 using a
// cumulative-distribution walk. The register is considered consumed afterward.
func (s *Sampler) Sample(reg *simulator.Register, rng *rand.Rand) Result {
	probs := reg.Probabilities()
	u := rng.Float64()

	var cum float64
	for i, p := range probs {
		cum += p
		if u < cum {
			return Result{
				Index:       i,
				Bits:        bitString(i, reg.NumQubits()),
				Probability: p,
				Method:      MethodQuantum,
			}
		}
	}

	// Floating-point residue can leave u above the final cumulative sum.
	last := len(probs) - 1
	return Result{
		Index:       last,
		Bits:        bitString(last, reg.NumQubits()),
		Probability: probs[last],
		Method:      MethodQuantum,
	}
}

// Fallback substitutes a uniformly chosen classical outcome over 2^n values.
// Always logged at warn level and counted, so degraded draws are auditable.
func (s *Sampler) Fallback(numQubits int, rng *rand.Rand, reason string) Result {
	s.fallbackCount.Add(1)
	s.log.Warn().
		Int("num_qubits", numQubits).
		Str("reason", reason).
		Msg("Quantum sampling failed, using classical fallback")

	size := 1 << numQubits
	idx := rng.Intn(size)

	return Result{
		Index:       idx,
		Bits:        bitString(idx, numQubits),
		Probability: 1 / float64(size),
		Method:      MethodFallback,
		Reason:      reason,
	}
}

// FallbackCount reports how many fallback substitutions have occurred.
func (s *Sampler) FallbackCount() uint64 {
	return s.fallbackCount.Load()
}

func bitString(i, numQubits int) string {
	return fmt.Sprintf("%0*b", numQubits, i)
}
