package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/perflab/optbench/pkg/analysis"
)

// RankingRow is one line of profile_rankings.csv.
type RankingRow struct {
	Profile     string  `csv:"profile"`
	MeanSpeedup float64 `csv:"mean_speedup"`
	StdDev      float64 `csv:"stddev"`
	Workloads   int     `csv:"workloads"`
	CILower     float64 `csv:"ci_lower"`
	CIUpper     float64 `csv:"ci_upper"`
}

// ComparisonRow is one line of workload_comparison.csv.
type ComparisonRow struct {
	Workload    string  `csv:"workload"`
	MaxSpeedup  float64 `csv:"max_speedup"`
	BestProfile string  `csv:"best_profile"`
}

// ParetoRow is one line of pareto_frontier.csv. OnFrontier marks
// whether the profile survived the dominance filter.
type ParetoRow struct {
	Profile    string  `csv:"profile"`
	Speedup    float64 `csv:"speedup"`
	SizeKB     float64 `csv:"size_kb"`
	OnFrontier bool    `csv:"on_frontier"`
}

// ExportAnalysis writes the analysis-level CSV tables into dir,
// creating it if needed.
func ExportAnalysis(dir string, result *analysis.StudyAnalysis) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create csv dir: %w", err)
	}

	rankings := make([]RankingRow, 0, len(result.Rankings))
	for _, r := range result.Rankings {
		row := RankingRow{
			Profile:     r.Profile,
			MeanSpeedup: r.MeanSpeedup,
			StdDev:      r.StdDev,
			Workloads:   r.Workloads,
		}
		if r.CI != nil {
			row.CILower = r.CI.Lower
			row.CIUpper = r.CI.Upper
		}
		rankings = append(rankings, row)
	}
	if err := writeCSV(filepath.Join(dir, "profile_rankings.csv"), &rankings); err != nil {
		return err
	}

	comparisons := make([]ComparisonRow, 0, len(result.BestByWorkload))
	for _, b := range result.BestByWorkload {
		comparisons = append(comparisons, ComparisonRow{
			Workload:    b.Workload,
			MaxSpeedup:  b.Speedup,
			BestProfile: b.Profile,
		})
	}
	if err := writeCSV(filepath.Join(dir, "workload_comparison.csv"), &comparisons); err != nil {
		return err
	}

	onFrontier := make(map[string]bool, len(result.Frontier))
	for _, pt := range result.Frontier {
		onFrontier[pt.Profile] = true
	}
	pareto := make([]ParetoRow, 0, len(result.ParetoPoints))
	for _, pt := range result.ParetoPoints {
		pareto = append(pareto, ParetoRow{
			Profile:    pt.Profile,
			Speedup:    pt.Speedup,
			SizeKB:     float64(pt.SizeBytes) / 1024,
			OnFrontier: onFrontier[pt.Profile],
		})
	}

	return writeCSV(filepath.Join(dir, "pareto_frontier.csv"), &pareto)
}

func writeCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
