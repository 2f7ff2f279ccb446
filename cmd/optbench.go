package main

import (
	"flag"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/perflab/optbench/pkg/config"
)

var (
	phase       = flag.String("phase", "run", "Study phase to execute - choose from [generate, run, analyze]")
	configPath  = flag.String("config", "cmd/study.json", "Path to study configuration file")
	matrixPath  = flag.String("out", "data/out/matrix.json", "Matrix summary output path for the generate phase")
	resultsPath = flag.String("results", "", "Study record path - written by run, read by analyze")
	reportPath  = flag.String("report", "", "Text report output path for the analyze phase, stdout when empty")
	csvDir      = flag.String("csv-dir", "", "Directory for the analyze phase's CSV tables, skipped when empty")
	verbosity   = flag.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace]")
	seed        = flag.Int64("seed", 0, "Override the configured random seed when nonzero")
)

func init() {
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.StampMilli,
		FullTimestamp:   true,
	})
	log.SetOutput(os.Stdout)

	switch *verbosity {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "trace":
		log.SetLevel(log.TraceLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	switch *phase {
	case "generate":
		runGenerate()
	case "run":
		runStudy()
	case "analyze":
		runAnalyze()
	default:
		log.Fatalf("Unknown phase %q - choose from [generate, run, analyze]", *phase)
	}
}

func loadStudyConfiguration() config.StudyConfiguration {
	cfg := config.ReadConfigurationFile(*configPath).WithDefaults()
	if *seed != 0 {
		cfg.Seed = *seed
	}

	return cfg
}
