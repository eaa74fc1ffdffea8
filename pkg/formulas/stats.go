// Package formulas provides small statistical helpers shared across modules.
package formulas

import (
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Variance(data, nil)
}

// ChiSquareUniform computes the chi-square statistic of observed counts
// against a uniform expectation. Used to judge whether sampled outcome
// distributions are indistinguishable from uniform.
func ChiSquareUniform(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}

	var total int
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	expected := float64(total) / float64(len(counts))
	var chi2 float64
	for _, c := range counts {
		diff := float64(c) - expected
		chi2 += diff * diff / expected
	}
	return chi2
}
