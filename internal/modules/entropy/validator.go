// Package entropy reports randomness quality over accumulated sample windows.
//
// A single draw carries too little information to judge, so outcomes are
// accumulated into a sliding window per stream and Shannon entropy is computed
// over the window's histogram. The validator only reports health; it never
// blocks or alters individual outcomes.
package entropy

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Status is the reported randomness health.
type Status string

const (
	// StatusNominal means entropy is at or above the configured threshold.
	StatusNominal Status = "nominal"
	// StatusDegraded means entropy fell below the threshold.
	StatusDegraded Status = "degraded"
	// StatusWarmingUp means the window holds too few samples to judge.
	StatusWarmingUp Status = "warming_up"
)

// minSamplesForHealth is the window fill below which health is not judged.
const minSamplesForHealth = 64

// Window accumulates recent outcomes of one stream in a ring buffer.
// Safe for concurrent use.
type Window struct {
	mu          sync.Mutex
	cardinality int
	buf         []int
	counts      []uint64
	pos         int
	filled      int
}

// NewWindow creates a window over outcomes in [0, cardinality) keeping the
// most recent size samples.
func NewWindow(cardinality, size int) *Window {
	return &Window{
		cardinality: cardinality,
		buf:         make([]int, size),
		counts:      make([]uint64, cardinality),
	}
}

// Record adds one outcome, evicting the oldest once the window is full.
// Out-of-range outcomes are ignored.
func (w *Window) Record(outcome int) {
	if outcome < 0 || outcome >= w.cardinality {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.filled == len(w.buf) {
		w.counts[w.buf[w.pos]]--
	} else {
		w.filled++
	}
	w.buf[w.pos] = outcome
	w.counts[outcome]++
	w.pos = (w.pos + 1) % len(w.buf)
}

// Histogram returns a copy of the outcome counts in the current window.
func (w *Window) Histogram() []uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	hist := make([]uint64, len(w.counts))
	copy(hist, w.counts)
	return hist
}

// Size returns the number of samples currently in the window.
func (w *Window) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filled
}

// BitsPerSymbol returns the Shannon entropy of the window in bits per outcome.
// Maximum is log2(cardinality).
func (w *Window) BitsPerSymbol() float64 {
	return Shannon(w.Histogram())
}

// BitsPerByte returns entropy normalized to an 8-bit scale:
// H / log2(cardinality) * 8. This makes one threshold comparable across
// streams of different cardinality (a perfectly uniform 1-bit coin stream and
// a uniform 6-bit card stream both report 8.0).
func (w *Window) BitsPerByte() float64 {
	maxBits := math.Log2(float64(w.cardinality))
	if maxBits == 0 {
		return 0
	}
	return Shannon(w.Histogram()) / maxBits * 8
}

// Shannon computes -sum(p * log2(p)) over a histogram of counts.
func Shannon(hist []uint64) float64 {
	var total uint64
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 0
	}

	probs := make([]float64, 0, len(hist))
	for _, c := range hist {
		if c > 0 {
			probs = append(probs, float64(c)/float64(total))
		}
	}

	// stat.Entropy uses the natural log; convert nats to bits.
	return stat.Entropy(probs) / math.Ln2
}

// ShannonBytes computes Shannon entropy in bits per byte of a byte slice.
func ShannonBytes(data []byte) float64 {
	hist := make([]uint64, 256)
	for _, b := range data {
		hist[b]++
	}
	return Shannon(hist)
}

// Validator judges window health against a bits-per-byte threshold.
type Validator struct {
	threshold float64
}

// NewValidator creates a validator with the given bits-per-byte threshold
// (7.0 is the conventional default).
func NewValidator(threshold float64) *Validator {
	return &Validator{threshold: threshold}
}

// Threshold returns the configured bits-per-byte threshold.
func (v *Validator) Threshold() float64 {
	return v.threshold
}

// Health reports the randomness status of a window. Diagnostics only:
// a degraded status never blocks or rewrites outcomes.
func (v *Validator) Health(w *Window) Status {
	if w.Size() < minSamplesForHealth {
		return StatusWarmingUp
	}
	if w.BitsPerByte() >= v.threshold {
		return StatusNominal
	}
	return StatusDegraded
}
