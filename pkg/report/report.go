// Package report renders a completed study into a plain-text report
// and CSV tables for downstream tooling. Everything here reads the
// persisted study record and the derived analysis; nothing is
// recomputed from raw subprocess output.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/perflab/optbench/pkg/analysis"
	"github.com/perflab/optbench/pkg/common"
	"github.com/perflab/optbench/pkg/metric"
	"github.com/perflab/optbench/pkg/profile"
)

const (
	rankingRows     = 15
	perWorkloadRows = 5

	// statusSuccess matches matrix.JobSuccess.String() in the persisted record.
	statusSuccess = "success"

	rule = "======================================================================"
	line = "----------------------------------------------------------------------"
)

// writer wraps an io.Writer and keeps the first error, so the section
// renderers can print without threading an error through every call.
type writer struct {
	w   io.Writer
	err error
}

func (p *writer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteStudy renders the full text report for one study run.
func WriteStudy(w io.Writer, record metric.StudyRecord, result *analysis.StudyAnalysis) error {
	p := &writer{w: w}

	writeHeader(p, record, result)
	writeRankings(p, result)
	writeBestByWorkload(p, result)
	writePerWorkload(p, record)
	writeAnova(p, result)
	writePairwise(p, result)
	writePareto(p, result)
	writeInsights(p, result)
	writeStability(p, result)

	return p.err
}

func writeHeader(p *writer, record metric.StudyRecord, result *analysis.StudyAnalysis) {
	env := record.Environment

	p.printf("%s\n", rule)
	p.printf(" OPTIMIZATION STUDY REPORT\n")
	p.printf("%s\n", rule)
	p.printf("Run:         %s\n", record.RunID)
	p.printf("Started:     %s\n", record.StartedAt.Format("2006-01-02 15:04:05"))
	p.printf("Host:        %s (%s/%s, %d CPUs)\n", env.Hostname, env.OS, env.Arch, env.NumCPU)
	if env.CPUModel != "" {
		p.printf("CPU:         %s\n", env.CPUModel)
	}
	p.printf("Jobs:        %d total, %d measured, %d stable\n",
		result.TotalJobs, result.MeasuredJobs, result.StableJobs)
	p.printf("\n")
}

func writeRankings(p *writer, result *analysis.StudyAnalysis) {
	p.printf("PROFILE EFFECTIVENESS RANKING (mean speedup across workloads)\n")
	p.printf("%s\n", rule)

	rows := result.Rankings[:common.MinOf(len(result.Rankings), rankingRows)]
	for i, r := range rows {
		ci := "          n/a"
		if r.CI != nil {
			ci = fmt.Sprintf("[%5.2f, %5.2f]", r.CI.Lower, r.CI.Upper)
		}
		p.printf("%3d. %-22s %6.2fx +/- %.2f  %s  (n=%d)\n",
			i+1, r.Profile, r.MeanSpeedup, r.StdDev, ci, r.Workloads)
	}
	p.printf("\n")
}

func writeBestByWorkload(p *writer, result *analysis.StudyAnalysis) {
	p.printf("BEST SPEEDUP BY WORKLOAD\n")
	p.printf("%s\n", rule)

	best := make([]analysis.WorkloadBest, len(result.BestByWorkload))
	copy(best, result.BestByWorkload)
	sort.SliceStable(best, func(i, j int) bool {
		return best[i].Speedup > best[j].Speedup
	})

	for _, b := range best {
		p.printf("%-22s %6.2fx  (%s)\n", b.Workload, b.Speedup, b.Profile)
	}
	p.printf("\n")
}

// writePerWorkload prints, for every workload, the fastest profiles
// with their mean compute time and speedup over that workload's
// baseline. Unstable jobs are shown but flagged.
func writePerWorkload(p *writer, record metric.StudyRecord) {
	baseline := profile.Baseline().Name

	type row struct {
		profile  string
		meanUs   float64
		speedup  float64
		unstable bool
	}

	byWorkload := make(map[string][]row)
	baselines := make(map[string]float64)
	for _, job := range record.Jobs {
		if job.Status != statusSuccess || !job.Stats.HasData || job.Stats.MeanUs <= 0 {
			continue
		}
		byWorkload[job.Workload] = append(byWorkload[job.Workload], row{
			profile:  job.Profile,
			meanUs:   job.Stats.MeanUs,
			unstable: job.Unstable,
		})
		if job.Profile == baseline {
			baselines[job.Workload] = job.Stats.MeanUs
		}
	}

	workloads := make([]string, 0, len(byWorkload))
	for wl := range byWorkload {
		workloads = append(workloads, wl)
	}
	sort.Strings(workloads)

	p.printf("PER-WORKLOAD RESULTS (fastest %d profiles)\n", perWorkloadRows)
	p.printf("%s\n", rule)

	for _, wl := range workloads {
		rows := byWorkload[wl]
		base := baselines[wl]
		for i := range rows {
			if base > 0 {
				rows[i].speedup = base / rows[i].meanUs
			}
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].meanUs < rows[j].meanUs
		})
		rows = rows[:common.MinOf(len(rows), perWorkloadRows)]

		p.printf("%s\n", wl)
		for _, r := range rows {
			flag := ""
			if r.unstable {
				flag = "  (unstable)"
			}
			if r.speedup > 0 {
				p.printf("  %-22s %10.2f ms  %6.2fx%s\n", r.profile, r.meanUs/1000, r.speedup, flag)
			} else {
				p.printf("  %-22s %10.2f ms%s\n", r.profile, r.meanUs/1000, flag)
			}
		}
	}
	p.printf("\n")
}

func writeAnova(p *writer, result *analysis.StudyAnalysis) {
	p.printf("WORKLOAD CATEGORY COMPARISON\n")
	p.printf("%s\n", rule)

	for _, c := range result.Categories {
		p.printf("%-26s %6.2fx +/- %.2f  (n=%d)\n", c.Category, c.MeanSpeedup, c.StdDev, c.Workloads)
	}

	if result.Anova == nil {
		p.printf("ANOVA: not computable for this record\n\n")
		return
	}

	a := result.Anova
	verdict := "no"
	if a.Significant {
		verdict = fmt.Sprintf("yes (F > %.1f)", analysis.FSignificanceThreshold)
	}
	p.printf("ANOVA: F=%.2f (df %d/%d), eta^2=%.3f, significant: %s\n\n",
		a.FStatistic, a.DFBetween, a.DFWithin, a.EtaSquared, verdict)
}

func writePairwise(p *writer, result *analysis.StudyAnalysis) {
	if len(result.Pairwise) == 0 {
		return
	}

	p.printf("PAIRWISE COMPARISONS (top profiles, Welch's t-test)\n")
	p.printf("%s\n", rule)

	for _, c := range result.Pairwise {
		verdict := "not significant"
		if c.Result.Significant {
			verdict = "significant"
		}
		p.printf("%s vs %s (n=%d)\n", c.ProfileA, c.ProfileB, c.Workloads)
		p.printf("  mean diff %+.2fx, t=%.2f, d=%.2f (%s), P(%s faster)=%.0f%%, %s\n",
			c.Result.MeanDiff, c.Result.TStatistic, c.Result.CohensD, c.Result.Effect,
			c.ProfileA, c.ProbabilityAFaster*100, verdict)
	}
	p.printf("\n")
}

func writePareto(p *writer, result *analysis.StudyAnalysis) {
	if len(result.Frontier) == 0 {
		return
	}

	p.printf("PARETO FRONTIER: speed vs size\n")
	p.printf("%s\n", rule)
	p.printf("%-22s %9s %12s %12s\n", "Profile", "Speedup", "Size", "Efficiency")
	p.printf("%s\n", line)

	for _, pt := range result.Frontier {
		// speedup per MB of artifact
		efficiency := pt.Speedup / common.B2Mib(pt.SizeBytes)
		p.printf("%-22s %8.2fx %9d KB %12.1f\n", pt.Profile, pt.Speedup, common.B2Kib(pt.SizeBytes), efficiency)
	}
	p.printf("\n")
}

func writeInsights(p *writer, result *analysis.StudyAnalysis) {
	p.printf("KEY INSIGHTS\n")
	p.printf("%s\n", rule)

	if len(result.Rankings) > 0 {
		best := result.Rankings[0]
		p.printf("Best overall profile:  %s (%.2fx mean speedup", best.Profile, best.MeanSpeedup)
		if best.CI != nil {
			p.printf(", %d%% CI [%.2f, %.2f]", int(best.CI.Level*100), best.CI.Lower, best.CI.Upper)
		}
		p.printf(")\n")
	}

	if len(result.BestByWorkload) > 0 {
		max := result.BestByWorkload[0]
		for _, b := range result.BestByWorkload[1:] {
			if b.Speedup > max.Speedup {
				max = b
			}
		}
		p.printf("Maximum speedup:       %.2fx (%s with %s)\n", max.Speedup, max.Workload, max.Profile)
	}

	if len(result.ParetoPoints) > 0 {
		smallest := result.ParetoPoints[0]
		var baselineSize int64
		for _, pt := range result.ParetoPoints {
			if pt.SizeBytes < smallest.SizeBytes {
				smallest = pt
			}
			if pt.Profile == profile.Baseline().Name {
				baselineSize = pt.SizeBytes
			}
		}
		p.printf("Smallest artifact:     %s (%d KB, %.2fx speedup", smallest.Profile,
			common.B2Kib(smallest.SizeBytes), smallest.Speedup)
		if baselineSize > 0 && smallest.SizeBytes <= baselineSize {
			reduction := (1 - float64(smallest.SizeBytes)/float64(baselineSize)) * 100
			p.printf(", %.1f%% smaller than baseline", reduction)
		}
		p.printf(")\n")
	}

	if result.SpeedSizeCorrelation != nil {
		p.printf("Speed/size correlation: r=%.2f\n", *result.SpeedSizeCorrelation)
	}
	p.printf("\n")
}

func writeStability(p *writer, result *analysis.StudyAnalysis) {
	p.printf("STABILITY\n")
	p.printf("%s\n", rule)
	p.printf("Stable jobs:        %d\n", result.StableJobs)
	p.printf("Unstable jobs:      %d", len(result.UnstableJobs))
	if len(result.UnstableJobs) > 0 {
		p.printf("  (%s)", strings.Join(result.UnstableJobs, ", "))
	}
	p.printf("\n")

	kinds := make(map[string]int)
	for _, f := range result.FailedJobs {
		kinds[f.Kind]++
	}
	p.printf("Failed jobs:        %d", len(result.FailedJobs))
	if len(kinds) > 0 {
		names := make([]string, 0, len(kinds))
		for k := range kinds {
			names = append(names, k)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, k := range names {
			parts = append(parts, fmt.Sprintf("%d %s", kinds[k], k))
		}
		p.printf("  (%s)", strings.Join(parts, ", "))
	}
	p.printf("\n")
	p.printf("Total measurements: %d\n", result.TotalMeasurements)
}
