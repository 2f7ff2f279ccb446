package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/perflab/optbench/pkg/analysis"
	"github.com/perflab/optbench/pkg/common"
	"github.com/perflab/optbench/pkg/config"
	"github.com/perflab/optbench/pkg/metric"
	"github.com/perflab/optbench/pkg/report"
)

func runAnalyze() {
	if *resultsPath == "" {
		log.Fatal("The analyze phase requires -results pointing at a study record.")
	}

	record, err := metric.LoadStudyRecord(*resultsPath)
	common.Check(err)

	// The record's own seed keeps the analysis reproducible for that
	// run; -seed and a readable configuration file override it.
	opts := analysis.Options{Seed: record.Seed}
	if _, err := os.Stat(*configPath); err == nil {
		cfg := config.ReadConfigurationFile(*configPath).WithDefaults()
		opts.Resamples = cfg.BootstrapResamples
	}
	if *seed != 0 {
		opts.Seed = *seed
	}

	result, err := analysis.AnalyzeStudy(record, opts)
	common.Check(err)

	out := io.Writer(os.Stdout)
	if *reportPath != "" {
		f, err := os.Create(*reportPath)
		common.Check(err)
		defer f.Close()
		out = f
	}

	common.Check(report.WriteStudy(out, record, result))
	if *reportPath != "" {
		log.Infof("Report written to %s", *reportPath)
	}

	if *csvDir != "" {
		common.Check(report.ExportAnalysis(*csvDir, result))
		log.Infof("Analysis tables written to %s", *csvDir)
	}
}
