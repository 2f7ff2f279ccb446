package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TSignificanceThreshold is the fixed cutoff used in place of an exact
// t-distribution lookup, the same trade as FSignificanceThreshold.
const TSignificanceThreshold = 2.0

// EffectCategory buckets a Cohen's d value into the conventional
// interpretation bands.
type EffectCategory int

const (
	EffectNegligible EffectCategory = iota
	EffectSmall
	EffectMedium
	EffectLarge
)

func (e EffectCategory) String() string {
	switch e {
	case EffectNegligible:
		return "negligible"
	case EffectSmall:
		return "small"
	case EffectMedium:
		return "medium"
	case EffectLarge:
		return "large"
	default:
		return "invalid"
	}
}

// CategorizeEffect maps |d| < 0.2 to negligible, < 0.5 to small,
// < 0.8 to medium and everything above to large.
func CategorizeEffect(d float64) EffectCategory {
	switch abs := math.Abs(d); {
	case abs < 0.2:
		return EffectNegligible
	case abs < 0.5:
		return EffectSmall
	case abs < 0.8:
		return EffectMedium
	default:
		return EffectLarge
	}
}

// PairwiseResult is the outcome of comparing two sample sets, a Welch
// t-test plus the Cohen's d effect size.
type PairwiseResult struct {
	TStatistic  float64
	WelchDF     float64
	MeanDiff    float64
	StdError    float64
	CohensD     float64
	Effect      EffectCategory
	Significant bool
}

// WelchTTest compares the means of two samples without assuming equal
// variances. Both samples need at least two values and at least one
// of them a nonzero variance.
func WelchTTest(a, b []float64) (PairwiseResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return PairwiseResult{}, ErrInsufficientData
	}

	meanA := stat.Mean(a, nil)
	meanB := stat.Mean(b, nil)
	varA := stat.Variance(a, nil)
	varB := stat.Variance(b, nil)
	nA := float64(len(a))
	nB := float64(len(b))

	se := math.Sqrt(varA/nA + varB/nB)
	if se == 0 {
		return PairwiseResult{}, ErrZeroVariance
	}

	t := (meanA - meanB) / se

	// Welch-Satterthwaite degrees of freedom.
	num := varA/nA + varB/nB
	denom := (varA/nA)*(varA/nA)/(nA-1) + (varB/nB)*(varB/nB)/(nB-1)
	df := num * num / denom

	d, err := CohensD(a, b)
	if err != nil {
		return PairwiseResult{}, err
	}

	return PairwiseResult{
		TStatistic:  t,
		WelchDF:     df,
		MeanDiff:    meanA - meanB,
		StdError:    se,
		CohensD:     d,
		Effect:      CategorizeEffect(d),
		Significant: math.Abs(t) > TSignificanceThreshold,
	}, nil
}

// CohensD returns the standardized mean difference of two samples,
// using the pooled standard deviation. Positive means a's mean is
// larger.
func CohensD(a, b []float64) (float64, error) {
	if len(a) < 2 || len(b) < 2 {
		return 0, ErrInsufficientData
	}

	nA := float64(len(a))
	nB := float64(len(b))

	pooledVar := ((nA-1)*stat.Variance(a, nil) + (nB-1)*stat.Variance(b, nil)) / (nA + nB - 2)
	pooledSD := math.Sqrt(pooledVar)
	if pooledSD == 0 {
		return 0, ErrZeroVariance
	}

	return (stat.Mean(a, nil) - stat.Mean(b, nil)) / pooledSD, nil
}

// ProbabilityGreater approximates P(mean(a) > mean(b)) by treating the
// two sample means as independent normals centered on the observed
// means, with the observed standard errors. This is a frequentist
// approximation built from summary statistics, not a Bayesian
// posterior, and results must be presented as such.
func ProbabilityGreater(a, b []float64) (float64, error) {
	if len(a) < 2 || len(b) < 2 {
		return 0, ErrInsufficientData
	}

	se := math.Sqrt(stat.Variance(a, nil)/float64(len(a)) + stat.Variance(b, nil)/float64(len(b)))
	if se == 0 {
		return 0, ErrZeroVariance
	}

	z := (stat.Mean(a, nil) - stat.Mean(b, nil)) / se

	return normalCDF(z), nil
}

func normalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
