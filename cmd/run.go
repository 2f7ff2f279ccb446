package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/perflab/optbench/pkg/common"
	"github.com/perflab/optbench/pkg/driver"
)

func runStudy() {
	cfg := loadStudyConfiguration()

	studyDriver, err := driver.NewStudyDriver(cfg)
	common.Check(err)

	path := *resultsPath
	if path == "" {
		path = cfg.OutputPathPrefix + ".json"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = studyDriver.RunStudy(ctx, path)
	common.Check(err)
}
