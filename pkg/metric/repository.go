package metric

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/perflab/optbench/pkg/common"
)

// Repository accumulates job outcomes for one study run and persists
// them as a single study record. The pipeline passes it by reference
// from stage to stage; there is no global registry.
type Repository struct {
	record StudyRecord
}

func NewRepository(seed int64, controller ControllerConfig) *Repository {
	return &Repository{
		record: StudyRecord{
			RunID:       uuid.New().String(),
			Seed:        seed,
			StartedAt:   time.Now(),
			Environment: common.CaptureEnvironment(),
			Controller:  controller,
		},
	}
}

func (r *Repository) RunID() string {
	return r.record.RunID
}

func (r *Repository) ReportJob(rec JobRecord) {
	r.record.Jobs = append(r.record.Jobs, rec)
}

func (r *Repository) Jobs() []JobRecord {
	return r.record.Jobs
}

func (r *Repository) JobByID(id string) (JobRecord, bool) {
	for _, j := range r.record.Jobs {
		if j.JobID == id {
			return j, true
		}
	}

	return JobRecord{}, false
}

func (r *Repository) JobsForWorkload(workload string) []JobRecord {
	var jobs []JobRecord
	for _, j := range r.record.Jobs {
		if j.Workload == workload {
			jobs = append(jobs, j)
		}
	}

	return jobs
}

// Record returns a snapshot of the study so far.
func (r *Repository) Record() StudyRecord {
	return r.record
}

// FinishAndSave stamps the end of the run, writes the study record to
// the given path, and appends a one-line summary to the history log in
// the same directory. Parent directories are created as needed.
func (r *Repository) FinishAndSave(path string) error {
	r.record.FinishedAt = time.Now()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(r.record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal study record: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write study record: %w", err)
	}

	return appendHistory(filepath.Join(filepath.Dir(path), "history.jsonl"), path, r.record)
}

// statusSuccess matches matrix.JobSuccess.String() on persisted jobs.
const statusSuccess = "success"

// historyEntry is one line of the append-only run history. The full
// record lives in its own document; the history is for listing runs.
type historyEntry struct {
	RunID      string    `json:"RunID"`
	StartedAt  time.Time `json:"StartedAt"`
	FinishedAt time.Time `json:"FinishedAt"`
	Seed       int64     `json:"Seed"`
	Jobs       int       `json:"Jobs"`
	Succeeded  int       `json:"Succeeded"`
	RecordPath string    `json:"RecordPath"`
}

func appendHistory(historyPath, recordPath string, record StudyRecord) error {
	entry := historyEntry{
		RunID:      record.RunID,
		StartedAt:  record.StartedAt,
		FinishedAt: record.FinishedAt,
		Seed:       record.Seed,
		Jobs:       len(record.Jobs),
		RecordPath: recordPath,
	}
	for _, j := range record.Jobs {
		if j.Status == statusSuccess {
			entry.Succeeded++
		}
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	f, err := os.OpenFile(historyPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}

	return nil
}

// LoadStudyRecord reads a study record written by FinishAndSave.
func LoadStudyRecord(path string) (StudyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StudyRecord{}, fmt.Errorf("read study record: %w", err)
	}

	var record StudyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return StudyRecord{}, fmt.Errorf("parse study record: %w", err)
	}

	return record, nil
}
