package main

import (
	"github.com/perflab/optbench/pkg/common"
	"github.com/perflab/optbench/pkg/driver"
)

func runGenerate() {
	studyDriver, err := driver.NewStudyDriver(loadStudyConfiguration())
	common.Check(err)

	common.Check(driver.WriteMatrixFile(*matrixPath, studyDriver.GenerateMatrix()))
}
