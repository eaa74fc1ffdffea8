package fraud

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Synthetic user-behaviour data for the demo pipeline: a majority cluster of
// normal spending patterns plus a minority of inflated anomalous ones,
// reduced to 3 features for qubit encoding and scaled to rotation angles.

const rawDimension = 5

var (
	normalMeans    = []float64{50, 30, 20, 10, 5}
	normalStddevs  = []float64{10, 7, 5, 3, 2}
	anomalousMeans = []float64{200, 150, 100, 80, 50}
	anomalousStds  = []float64{22, 17, 14, 10, 7}
)

// GenerateUsers produces n seeded synthetic 5-D behaviour vectors, roughly
// 80% normal and 20% anomalous, with the anomalous rows appended last.
func GenerateUsers(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))

	anomalous := n / 5
	if anomalous < 1 {
		anomalous = 1
	}
	normal := n - anomalous

	users := make([][]float64, 0, n)
	for i := 0; i < normal; i++ {
		users = append(users, sampleVector(rng, normalMeans, normalStddevs))
	}
	for i := 0; i < anomalous; i++ {
		users = append(users, sampleVector(rng, anomalousMeans, anomalousStds))
	}

	return users
}

func sampleVector(rng *rand.Rand, means, stddevs []float64) []float64 {
	v := make([]float64, len(means))
	for i := range v {
		v[i] = rng.NormFloat64()*stddevs[i] + means[i]
	}
	return v
}

// ProjectTo3D reduces raw behaviour vectors to 3 principal components.
func ProjectTo3D(data [][]float64) ([][]float64, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("no data to project")
	}
	d := len(data[0])
	for i, row := range data {
		if len(row) != d {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), d)
		}
	}
	if d < 3 {
		return nil, fmt.Errorf("need at least 3 features to project, got %d", d)
	}

	x := mat.NewDense(n, d, nil)
	for i, row := range data {
		x.SetRow(i, row)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, fmt.Errorf("principal component decomposition failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)

	// Center columns before projecting, as the components are mean-relative.
	centered := mat.NewDense(n, d, nil)
	for j := 0; j < d; j++ {
		col := mat.Col(nil, j, x)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			centered.Set(i, j, x.At(i, j)-mean)
		}
	}

	var projected mat.Dense
	projected.Mul(centered, vectors.Slice(0, d, 0, 3))

	result := make([][]float64, n)
	for i := range result {
		result[i] = mat.Row(nil, i, &projected)
	}
	return result, nil
}

// NormalizeAngles min-max scales all values into [0, 2π] for rotation-angle
// encoding. A zero spread collapses everything to zero instead of dividing
// by zero.
func NormalizeAngles(data [][]float64) [][]float64 {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, row := range data {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	result := make([][]float64, len(data))
	spread := max - min
	for i, row := range data {
		result[i] = make([]float64, len(row))
		if spread <= 0 {
			continue
		}
		for j, v := range row {
			result[i][j] = (v - min) / spread * 2 * math.Pi
		}
	}
	return result
}
