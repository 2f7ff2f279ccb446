/*
 * MIT License
 *
 * Copyright (c) 2025 The optbench authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package analysis turns persisted study records into cross-job
// statistics: group comparisons, significance estimates, confidence
// intervals and the speed/size trade-off frontier. Every function is
// pure; inputs too small or too degenerate to support a statistic
// produce a sentinel error, never NaN and never a panic.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientData marks a sample set too small for the
	// requested statistic.
	ErrInsufficientData = errors.New("not enough samples for statistic")

	// ErrZeroVariance marks a sample set whose spread is exactly zero
	// where a nonzero spread is required.
	ErrZeroVariance = errors.New("sample set has zero variance")

	// ErrZeroMean marks a sample set whose mean is zero, which leaves
	// ratio statistics undefined.
	ErrZeroMean = errors.New("sample set has zero mean")

	// ErrNoMeasurements marks a study record with nothing analyzable
	// in it.
	ErrNoMeasurements = errors.New("no analyzable measurements")
)

// Mean returns the arithmetic mean.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrInsufficientData
	}

	return stat.Mean(xs, nil), nil
}

// Median returns the middle value, averaging the two central values
// for even-length input.
func Median(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrInsufficientData
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, nil
	}

	return sorted[mid], nil
}

// SampleVariance returns the unbiased variance (n-1 denominator).
func SampleVariance(xs []float64) (float64, error) {
	if len(xs) < 2 {
		return 0, ErrInsufficientData
	}

	return stat.Variance(xs, nil), nil
}

// SampleStdDev returns the square root of the sample variance.
func SampleStdDev(xs []float64) (float64, error) {
	v, err := SampleVariance(xs)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(v), nil
}

// StdError returns the standard error of the mean, stddev / sqrt(n).
func StdError(xs []float64) (float64, error) {
	sd, err := SampleStdDev(xs)
	if err != nil {
		return 0, err
	}

	return sd / math.Sqrt(float64(len(xs))), nil
}

// CV returns the coefficient of variation, stddev / mean, as a plain
// ratio rather than a percentage.
func CV(xs []float64) (float64, error) {
	sd, err := SampleStdDev(xs)
	if err != nil {
		return 0, err
	}

	mean := stat.Mean(xs, nil)
	if mean == 0 {
		return 0, ErrZeroMean
	}

	return sd / mean, nil
}

// Correlation returns the Pearson correlation coefficient of two
// equal-length samples.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("sample lengths differ: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, ErrInsufficientData
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0, ErrZeroVariance
	}

	return stat.Correlation(x, y, nil), nil
}
