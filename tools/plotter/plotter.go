package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/perflab/optbench/pkg/analysis"
	"github.com/perflab/optbench/pkg/common"
	"github.com/perflab/optbench/pkg/metric"
)

func main() {
	var (
		resultsPath = flag.String("results", "data/out/study.json", "Path to a persisted study record")
		outputDir   = flag.String("o", "figs", "Path to the directory for output figures")
		topN        = flag.Int("top", 10, "How many profiles the speedup chart shows")
		debugLevel  = flag.String("d", "info", "Debug level: info, debug")
	)
	flag.Parse()
	log.SetOutput(os.Stdout)

	switch *debugLevel {
	case "info":
		log.SetLevel(log.InfoLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
		log.Debug("Debug mode is enabled")
	}

	record, err := metric.LoadStudyRecord(*resultsPath)
	if err != nil {
		log.Fatal("Cannot load the study record: ", err)
	}

	result, err := analysis.AnalyzeStudy(record, analysis.Options{Seed: record.Seed})
	if err != nil {
		log.Fatal("Cannot analyze the study record: ", err)
	}

	if _, err := os.Stat(*outputDir); errors.Is(err, os.ErrNotExist) {
		log.Info("Creating the output directory")
		if err := os.Mkdir(*outputDir, os.ModePerm); err != nil {
			log.Fatal(err)
		}
	}

	plotPareto(*outputDir, result)
	plotSpeedups(*outputDir, result, *topN)
}

// plotPareto draws every profile's mean size and speedup as labeled
// points, with the non-dominated set connected as the frontier.
func plotPareto(outputDir string, result *analysis.StudyAnalysis) {
	if len(result.ParetoPoints) == 0 {
		log.Warn("No trade-off points to plot")
		return
	}

	p := plot.New()
	p.Title.Text = "Speed vs size trade-off"
	p.X.Label.Text = "Artifact size (KB)"
	p.Y.Label.Text = "Mean speedup over baseline"

	points := make(plotter.XYs, len(result.ParetoPoints))
	names := make([]string, len(result.ParetoPoints))
	for i, pt := range result.ParetoPoints {
		points[i].X = float64(pt.SizeBytes) / 1024
		points[i].Y = pt.Speedup
		names[i] = pt.Profile
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		log.Fatal(err)
	}
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: names})
	if err != nil {
		log.Fatal(err)
	}
	p.Add(labels)

	frontier := make(plotter.XYs, len(result.Frontier))
	for i, pt := range result.Frontier {
		frontier[i].X = float64(pt.SizeBytes) / 1024
		frontier[i].Y = pt.Speedup
	}
	if err := plotutil.AddLinePoints(p, "Frontier", frontier); err != nil {
		log.Fatal(err)
	}

	out := filepath.Join(outputDir, "pareto_frontier.png")
	if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		log.Fatal(err)
	}
	log.Info("Wrote ", out)
}

// plotSpeedups draws the leading profiles' mean speedups as a bar
// chart, in ranking order.
func plotSpeedups(outputDir string, result *analysis.StudyAnalysis, topN int) {
	rankings := result.Rankings[:common.MinOf(len(result.Rankings), topN)]
	if len(rankings) == 0 {
		log.Warn("No profile rankings to plot")
		return
	}

	values := make(plotter.Values, len(rankings))
	names := make([]string, len(rankings))
	for i, r := range rankings {
		values[i] = r.MeanSpeedup
		names[i] = r.Profile
	}

	p := plot.New()
	p.Title.Text = "Mean speedup by profile"
	p.Y.Label.Text = "Mean speedup over baseline"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		log.Fatal(err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(2)
	p.Add(bars)
	p.NominalX(names...)

	out := filepath.Join(outputDir, "profile_speedups.png")
	if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		log.Fatal(err)
	}
	log.Info("Wrote ", out)
}
