package metric

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// ExportStudy writes the CSV views of a study record next to the JSON
// record: one row per job summary and one row per raw measurement.
func ExportStudy(prefix string, record StudyRecord) error {
	stats := make([]JobStats, 0, len(record.Jobs))
	var measurements []Measurement

	for _, job := range record.Jobs {
		stats = append(stats, job.Stats)
		measurements = append(measurements, job.Measurements...)
	}

	if err := WriteJobStatsFile(prefix+"_job_stats.csv", stats); err != nil {
		return err
	}

	return WriteMeasurementsFile(prefix+"_measurements.csv", measurements)
}

func WriteJobStatsFile(path string, stats []JobStats) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&stats, f); err != nil {
		return fmt.Errorf("write job stats csv: %w", err)
	}

	return nil
}

func WriteMeasurementsFile(path string, measurements []Measurement) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&measurements, f); err != nil {
		return fmt.Errorf("write measurements csv: %w", err)
	}

	return nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	return f, nil
}
