package analysis

import "gonum.org/v1/gonum/stat"

// FSignificanceThreshold is the fixed cutoff used in place of an exact
// F-distribution lookup. F above 3.0 is significant for the group
// counts and sample sizes this harness produces; the approximation is
// deliberate and documented, not a stand-in for a p-value.
const FSignificanceThreshold = 3.0

// AnovaResult is the outcome of a one-way analysis of variance.
type AnovaResult struct {
	FStatistic  float64
	DFBetween   int
	DFWithin    int
	EtaSquared  float64
	Significant bool
}

// OneWayANOVA tests whether the means of two or more groups differ
// more than within-group noise would predict. Groups must all be
// nonempty and together leave at least one within-group degree of
// freedom.
func OneWayANOVA(groups [][]float64) (AnovaResult, error) {
	if len(groups) < 2 {
		return AnovaResult{}, ErrInsufficientData
	}

	var all []float64
	for _, group := range groups {
		if len(group) == 0 {
			return AnovaResult{}, ErrInsufficientData
		}
		all = append(all, group...)
	}

	grandMean := stat.Mean(all, nil)
	k := len(groups)
	n := len(all)

	var ssBetween, ssWithin float64
	for _, group := range groups {
		groupMean := stat.Mean(group, nil)
		diff := groupMean - grandMean
		ssBetween += float64(len(group)) * diff * diff
		for _, x := range group {
			d := x - groupMean
			ssWithin += d * d
		}
	}

	dfBetween := k - 1
	dfWithin := n - k
	if dfWithin == 0 {
		return AnovaResult{}, ErrInsufficientData
	}

	msWithin := ssWithin / float64(dfWithin)
	if msWithin == 0 {
		return AnovaResult{}, ErrZeroVariance
	}
	msBetween := ssBetween / float64(dfBetween)

	f := msBetween / msWithin

	return AnovaResult{
		FStatistic:  f,
		DFBetween:   dfBetween,
		DFWithin:    dfWithin,
		EtaSquared:  ssBetween / (ssBetween + ssWithin),
		Significant: f > FSignificanceThreshold,
	}, nil
}
