package fraud

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/aristath/quantum-lab/internal/modules/kernel"
)

// clusterBatch returns 15 feature vectors: 13 from a tight cluster around 0.2
// and 2 clear outliers at ten times the cluster scale, appended last.
func clusterBatch() [][]float64 {
	vectors := [][]float64{
		{0.20, 0.21, 0.19},
		{0.18, 0.22, 0.20},
		{0.22, 0.19, 0.21},
		{0.19, 0.20, 0.18},
		{0.21, 0.18, 0.22},
		{0.20, 0.23, 0.20},
		{0.17, 0.21, 0.19},
		{0.23, 0.20, 0.21},
		{0.19, 0.19, 0.23},
		{0.21, 0.22, 0.17},
		{0.18, 0.18, 0.20},
		{0.22, 0.21, 0.22},
		{0.20, 0.17, 0.19},
	}
	return append(vectors,
		[]float64{2.0, 2.1, 1.9},
		[]float64{2.2, 1.8, 2.0},
	)
}

func buildMatrix(t *testing.T, vectors [][]float64) *mat.SymDense {
	t.Helper()

	k, err := kernel.NewBuilder(0, zerolog.Nop()).Build(vectors)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestFitFlagsExactlyTheOutliers(t *testing.T) {
	k := buildMatrix(t, clusterBatch())

	model, err := Fit(k, 0.13, 42)
	if err != nil {
		t.Fatal(err)
	}

	flags, err := model.Classify(k)
	if err != nil {
		t.Fatal(err)
	}

	var flagged []int
	for i, f := range flags {
		if f {
			flagged = append(flagged, i)
		}
	}

	if len(flagged) != 2 || flagged[0] != 13 || flagged[1] != 14 {
		t.Fatalf("flagged indices = %v, want [13 14]", flagged)
	}
}

func TestScoresSignConvention(t *testing.T) {
	k := buildMatrix(t, clusterBatch())

	model, err := Fit(k, 0.13, 42)
	if err != nil {
		t.Fatal(err)
	}

	scores, err := model.Scores(k)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 15 {
		t.Fatalf("got %d scores, want 15", len(scores))
	}

	// Cluster members score positive, outliers negative.
	for i := 0; i < 13; i++ {
		if scores[i] <= 0 {
			t.Errorf("score[%d] = %v, want > 0 for an inlier", i, scores[i])
		}
	}
	for i := 13; i < 15; i++ {
		if scores[i] >= 0 {
			t.Errorf("score[%d] = %v, want < 0 for an outlier", i, scores[i])
		}
	}
}

func TestFitIsDeterministic(t *testing.T) {
	k := buildMatrix(t, clusterBatch())

	first, err := Fit(k, 0.13, 7)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Fit(k, 0.13, 7)
	if err != nil {
		t.Fatal(err)
	}

	a, err := first.Scores(k)
	if err != nil {
		t.Fatal(err)
	}
	b, err := second.Scores(k)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("score[%d] differs across identical fits: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFitRejectsDegenerateMatrix(t *testing.T) {
	// Identical vectors leave every sample equidistant from the centroid.
	vectors := make([][]float64, 6)
	for i := range vectors {
		vectors[i] = []float64{0.5, 0.5, 0.5}
	}
	k := buildMatrix(t, vectors)

	_, err := Fit(k, 0.13, 1)

	var fitErr *FitError
	if !errors.As(err, &fitErr) {
		t.Fatalf("expected FitError, got %v", err)
	}
}

func TestFitRejectsInvalidValues(t *testing.T) {
	k := mat.NewSymDense(3, nil)
	k.SetSym(0, 0, 1)
	k.SetSym(1, 1, 1)
	k.SetSym(2, 2, 1)
	k.SetSym(0, 1, math.NaN())

	_, err := Fit(k, 0.2, 0)

	var fitErr *FitError
	if !errors.As(err, &fitErr) {
		t.Fatalf("expected FitError for NaN entry, got %v", err)
	}
}

func TestFitRejectsTooFewSamples(t *testing.T) {
	k := mat.NewSymDense(1, []float64{1})

	_, err := Fit(k, 0.13, 0)

	var fitErr *FitError
	if !errors.As(err, &fitErr) {
		t.Fatalf("expected FitError for single sample, got %v", err)
	}
}

func TestFitRejectsNuOutOfRange(t *testing.T) {
	k := buildMatrix(t, clusterBatch())

	for _, nu := range []float64{-0.1, 0, 1, 1.5} {
		if _, err := Fit(k, nu, 0); err == nil {
			t.Errorf("Fit with nu=%v should fail", nu)
		}
	}
}

func TestScoresRejectsMismatchedMatrix(t *testing.T) {
	k := buildMatrix(t, clusterBatch())

	model, err := Fit(k, 0.13, 0)
	if err != nil {
		t.Fatal(err)
	}

	smaller := buildMatrix(t, clusterBatch()[:5])
	if _, err := model.Scores(smaller); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestNu(t *testing.T) {
	k := buildMatrix(t, clusterBatch())

	model, err := Fit(k, 0.13, 0)
	if err != nil {
		t.Fatal(err)
	}
	if model.Nu() != 0.13 {
		t.Errorf("Nu() = %v, want 0.13", model.Nu())
	}
}
