// Package fraud fits a one-class decision boundary on precomputed quantum
// kernel matrices and flags anomalous samples.
package fraud

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// FitError indicates a degenerate kernel matrix that cannot support a
// decision boundary. The detector surfaces it instead of guessing.
type FitError struct {
	Reason string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("anomaly fit failed: %s", e.Reason)
}

// distanceSpreadEps is the minimum spread of kernel-space distances required
// to place a boundary.
const distanceSpreadEps = 1e-12

// Model is a one-class boundary fit from pairwise similarities only.
// It is ephemeral: fit once per detection batch, never persisted.
//
// The boundary is the nu-quantile of squared kernel-space distances to the
// sample centroid:
//
//	d²(i) = K[i,i] - (2/N)·Σj K[i,j] + (1/N²)·ΣΣ K
//
// which needs no explicit coordinates. Fitting is closed-form and therefore
// deterministic for identical K and nu; the seed is retained on the model so
// any future stochastic refinement stays reproducible.
type Model struct {
	radius2 float64
	nu      float64
	seed    int64
	n       int
}

// Fit places the decision boundary so that approximately a nu fraction of the
// batch lies outside it. Degenerate matrices (identical rows, NaN/Inf values)
// fail with FitError.
func Fit(k *mat.SymDense, nu float64, seed int64) (*Model, error) {
	n := k.SymmetricDim()
	if n < 2 {
		return nil, &FitError{Reason: fmt.Sprintf("need at least 2 samples, got %d", n)}
	}
	if nu <= 0 || nu >= 1 {
		return nil, fmt.Errorf("nu must be in (0, 1), got %g", nu)
	}

	d2, err := centroidDistances(k)
	if err != nil {
		return nil, err
	}

	sorted := make([]float64, n)
	copy(sorted, d2)
	sort.Float64s(sorted)

	if sorted[n-1]-sorted[0] < distanceSpreadEps {
		return nil, &FitError{Reason: "degenerate kernel matrix: all samples equidistant from centroid"}
	}

	// Number of samples expected outside the boundary.
	outside := int(math.Ceil(nu * float64(n)))
	if outside < 1 {
		outside = 1
	}
	if outside > n-1 {
		outside = n - 1
	}

	// Boundary sits halfway between the last inside and first outside distance.
	radius2 := (sorted[n-outside-1] + sorted[n-outside]) / 2

	return &Model{
		radius2: radius2,
		nu:      nu,
		seed:    seed,
		n:       n,
	}, nil
}

// Scores returns the per-sample decision score: positive inside the boundary,
// negative outside, matching the one-class SVM sign convention.
func (m *Model) Scores(k *mat.SymDense) ([]float64, error) {
	if k.SymmetricDim() != m.n {
		return nil, fmt.Errorf("kernel matrix is %dx%d, model was fit on %d samples",
			k.SymmetricDim(), k.SymmetricDim(), m.n)
	}

	d2, err := centroidDistances(k)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(d2))
	for i, d := range d2 {
		scores[i] = m.radius2 - d
	}
	return scores, nil
}

// Classify returns true for every sample whose score falls below the model's
// threshold (i.e. outside the boundary).
func (m *Model) Classify(k *mat.SymDense) ([]bool, error) {
	scores, err := m.Scores(k)
	if err != nil {
		return nil, err
	}

	flags := make([]bool, len(scores))
	for i, s := range scores {
		flags[i] = s < 0
	}
	return flags, nil
}

// Nu returns the contamination fraction the model was fit with.
func (m *Model) Nu() float64 {
	return m.nu
}

func centroidDistances(k *mat.SymDense) ([]float64, error) {
	n := k.SymmetricDim()

	var gram float64
	rowSums := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := k.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &FitError{Reason: fmt.Sprintf("kernel matrix contains invalid value at (%d, %d)", i, j)}
			}
			rowSums[i] += v
			gram += v
		}
	}
	gramMean := gram / float64(n*n)

	d2 := make([]float64, n)
	for i := 0; i < n; i++ {
		d2[i] = k.At(i, i) - 2*rowSums[i]/float64(n) + gramMean
	}
	return d2, nil
}
