package analysis

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/perflab/optbench/pkg/common"
	"github.com/perflab/optbench/pkg/metric"
	"github.com/perflab/optbench/pkg/profile"
	"github.com/perflab/optbench/pkg/workload"
)

// Job status strings as the results repository persists them.
const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

const (
	DefaultConfidenceLevel = 0.95
	DefaultTopProfiles     = 5
)

// Options configure a study-level analysis pass.
type Options struct {
	// ConfidenceLevel for bootstrap intervals on profile rankings.
	ConfidenceLevel float64
	// Resamples per bootstrap interval.
	Resamples int
	// TopProfiles caps how many leading profiles enter pairwise tests.
	TopProfiles int
	// Seed drives all resampling. The same seed over the same record
	// reproduces the analysis bit for bit.
	Seed int64
}

func (o Options) withDefaults() Options {
	if o.ConfidenceLevel == 0 {
		o.ConfidenceLevel = DefaultConfidenceLevel
	}
	if o.Resamples == 0 {
		o.Resamples = DefaultResamples
	}
	if o.TopProfiles == 0 {
		o.TopProfiles = DefaultTopProfiles
	}

	return o
}

// ProfileRanking is one profile's standing across every workload it
// was measured on.
type ProfileRanking struct {
	Profile     string
	MeanSpeedup float64
	StdDev      float64
	Workloads   int
	// CI is nil when the profile was measured on fewer than two
	// workloads.
	CI *ConfidenceInterval
}

// WorkloadBest names the fastest profile for one workload.
type WorkloadBest struct {
	Workload string
	Profile  string
	Speedup  float64
}

// CategorySummary describes the best-case speedups of one workload
// category.
type CategorySummary struct {
	Category    string
	MeanSpeedup float64
	StdDev      float64
	Workloads   int
}

// PairwiseComparison is a Welch test between two leading profiles,
// paired over the workloads both were measured on.
type PairwiseComparison struct {
	ProfileA  string
	ProfileB  string
	Workloads int
	// ProbabilityAFaster estimates P(A's mean speedup > B's) under the
	// normal approximation of ProbabilityGreater.
	ProbabilityAFaster float64
	Result             PairwiseResult
}

// JobFailure identifies one failed job and its failure category.
type JobFailure struct {
	JobID string
	Kind  string
}

// StudyAnalysis is everything the analyze phase derives from one study
// record. Unstable jobs are listed but kept out of rankings, ANOVA
// groups and frontiers, so headline numbers rest only on stable
// measurements.
type StudyAnalysis struct {
	RunID string

	Rankings       []ProfileRanking
	BestByWorkload []WorkloadBest
	Categories     []CategorySummary
	Anova          *AnovaResult
	Pairwise       []PairwiseComparison
	ParetoPoints   []ParetoPoint
	Frontier       []ParetoPoint

	// SpeedSizeCorrelation is the Pearson correlation between mean
	// artifact size and mean speedup across profiles, nil when not
	// computable.
	SpeedSizeCorrelation *float64

	TotalJobs         int
	MeasuredJobs      int
	StableJobs        int
	TotalMeasurements int
	UnstableJobs      []string
	FailedJobs        []JobFailure
}

// AnalyzeStudy runs the full cross-job analysis over one persisted
// study record. Sections that are not computable for this record, the
// ANOVA say, stay nil instead of failing the whole pass; the returned
// error is reserved for a record with no usable measurements at all.
func AnalyzeStudy(record metric.StudyRecord, opts Options) (*StudyAnalysis, error) {
	opts = opts.withDefaults()
	baseline := profile.Baseline().Name

	out := &StudyAnalysis{
		RunID:     record.RunID,
		TotalJobs: len(record.Jobs),
	}

	meanUs := make(map[string]map[string]float64)
	sizes := make(map[string]map[string]int64)
	for _, job := range record.Jobs {
		out.TotalMeasurements += len(job.Measurements)

		switch job.Status {
		case statusFailed:
			out.FailedJobs = append(out.FailedJobs, JobFailure{JobID: job.JobID, Kind: job.FailureKind})
			continue
		case statusSuccess:
		default:
			continue
		}

		out.MeasuredJobs++
		if job.Unstable {
			out.UnstableJobs = append(out.UnstableJobs, job.JobID)
			continue
		}
		if !job.Stats.HasData || job.Stats.MeanUs <= 0 {
			continue
		}
		out.StableJobs++

		if meanUs[job.Workload] == nil {
			meanUs[job.Workload] = make(map[string]float64)
			sizes[job.Workload] = make(map[string]int64)
		}
		meanUs[job.Workload][job.Profile] = job.Stats.MeanUs
		sizes[job.Workload][job.Profile] = job.ArtifactBytes
	}

	// speedups[workload][profile], against that workload's baseline
	speedups := make(map[string]map[string]float64)
	for wl, times := range meanUs {
		base, ok := times[baseline]
		if !ok {
			log.Debugf("Workload %s has no stable baseline job, skipping its speedups", wl)
			continue
		}
		for name, us := range times {
			if name == baseline {
				continue
			}
			if speedups[wl] == nil {
				speedups[wl] = make(map[string]float64)
			}
			speedups[wl][name] = base / us
		}
	}
	if len(speedups) == 0 {
		return nil, fmt.Errorf("run %s: %w", record.RunID, ErrNoMeasurements)
	}

	// Sample slices are always assembled in sorted-workload order so
	// the seeded bootstrap draws identically on every run.
	workloads := make([]string, 0, len(speedups))
	for wl := range speedups {
		workloads = append(workloads, wl)
	}
	sort.Strings(workloads)

	profileSet := make(map[string]bool)
	for _, wl := range workloads {
		for name := range speedups[wl] {
			profileSet[name] = true
		}
	}
	profiles := make([]string, 0, len(profileSet))
	for name := range profileSet {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)

	for _, name := range profiles {
		var xs []float64
		for _, wl := range workloads {
			if s, ok := speedups[wl][name]; ok {
				xs = append(xs, s)
			}
		}

		ranking := ProfileRanking{
			Profile:     name,
			MeanSpeedup: stat.Mean(xs, nil),
			Workloads:   len(xs),
		}
		if len(xs) >= 2 {
			ranking.StdDev = stat.StdDev(xs, nil)
			seed := opts.Seed ^ int64(common.Hash(name))
			if ci, err := BootstrapCI(xs, opts.ConfidenceLevel, opts.Resamples, seed); err == nil {
				ranking.CI = &ci
			}
		}
		out.Rankings = append(out.Rankings, ranking)
	}
	sort.SliceStable(out.Rankings, func(i, j int) bool {
		if out.Rankings[i].MeanSpeedup != out.Rankings[j].MeanSpeedup {
			return out.Rankings[i].MeanSpeedup > out.Rankings[j].MeanSpeedup
		}
		return out.Rankings[i].Profile < out.Rankings[j].Profile
	})

	best := make(map[string]WorkloadBest, len(workloads))
	for _, wl := range workloads {
		names := make([]string, 0, len(speedups[wl]))
		for name := range speedups[wl] {
			names = append(names, name)
		}
		sort.Strings(names)

		top := WorkloadBest{Workload: wl}
		for _, name := range names {
			if s := speedups[wl][name]; s > top.Speedup {
				top.Profile = name
				top.Speedup = s
			}
		}
		best[wl] = top
		out.BestByWorkload = append(out.BestByWorkload, top)
	}

	// Each workload contributes its best speedup to its category, and
	// the categories become the ANOVA groups.
	catGroups := make(map[workload.Category][]float64)
	for _, wl := range workloads {
		cat := workload.CategoryOf(wl)
		catGroups[cat] = append(catGroups[cat], best[wl].Speedup)
	}

	var groups [][]float64
	for _, cat := range workload.Categories() {
		xs := catGroups[cat]
		if len(xs) == 0 {
			continue
		}
		summary := CategorySummary{
			Category:    cat.String(),
			MeanSpeedup: stat.Mean(xs, nil),
			Workloads:   len(xs),
		}
		if len(xs) >= 2 {
			summary.StdDev = stat.StdDev(xs, nil)
		}
		out.Categories = append(out.Categories, summary)
		groups = append(groups, xs)
	}

	if anova, err := OneWayANOVA(groups); err == nil {
		out.Anova = &anova
	} else {
		log.Debugf("Category ANOVA not computable: %v", err)
	}

	top := out.Rankings
	if len(top) > opts.TopProfiles {
		top = top[:opts.TopProfiles]
	}
	for i := 0; i < len(top); i++ {
		for j := i + 1; j < len(top); j++ {
			a, b := top[i].Profile, top[j].Profile
			var xs, ys []float64
			for _, wl := range workloads {
				sa, okA := speedups[wl][a]
				sb, okB := speedups[wl][b]
				if okA && okB {
					xs = append(xs, sa)
					ys = append(ys, sb)
				}
			}

			result, err := WelchTTest(xs, ys)
			if err != nil {
				log.Debugf("Pairwise %s vs %s not computable: %v", a, b, err)
				continue
			}
			comparison := PairwiseComparison{
				ProfileA:  a,
				ProfileB:  b,
				Workloads: len(xs),
				Result:    result,
			}
			if p, err := ProbabilityGreater(xs, ys); err == nil {
				comparison.ProbabilityAFaster = p
			}
			out.Pairwise = append(out.Pairwise, comparison)
		}
	}

	for _, name := range profiles {
		var ss, sz []float64
		for _, wl := range workloads {
			if s, ok := speedups[wl][name]; ok {
				ss = append(ss, s)
				sz = append(sz, float64(sizes[wl][name]))
			}
		}
		if len(ss) == 0 {
			continue
		}
		out.ParetoPoints = append(out.ParetoPoints, ParetoPoint{
			Profile:   name,
			Speedup:   stat.Mean(ss, nil),
			SizeBytes: int64(stat.Mean(sz, nil)),
		})
	}

	// The baseline anchors the trade-off plane at speedup 1.0.
	var baseSz []float64
	for _, wl := range workloads {
		baseSz = append(baseSz, float64(sizes[wl][baseline]))
	}
	out.ParetoPoints = append(out.ParetoPoints, ParetoPoint{
		Profile:   baseline,
		Speedup:   1.0,
		SizeBytes: int64(stat.Mean(baseSz, nil)),
	})
	sort.Slice(out.ParetoPoints, func(i, j int) bool {
		return out.ParetoPoints[i].Profile < out.ParetoPoints[j].Profile
	})
	out.Frontier = ParetoFrontier(out.ParetoPoints)

	if len(out.ParetoPoints) >= 2 {
		sizeAxis := make([]float64, len(out.ParetoPoints))
		speedAxis := make([]float64, len(out.ParetoPoints))
		for i, p := range out.ParetoPoints {
			sizeAxis[i] = float64(p.SizeBytes)
			speedAxis[i] = p.Speedup
		}
		if r, err := Correlation(sizeAxis, speedAxis); err == nil {
			out.SpeedSizeCorrelation = &r
		}
	}

	log.Debugf("Analyzed run %s: %d profiles over %d workloads, %d pairwise tests, %d frontier points",
		record.RunID, len(out.Rankings), len(workloads), len(out.Pairwise), len(out.Frontier))

	return out, nil
}
