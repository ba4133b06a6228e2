package models

import "time"

// Overall pipeline run statuses.
const (
	RunSuccess = "SUCCESS"
	RunWarning = "WARNING"
	RunFailed  = "FAILED"
)

// StepResult records one pipeline stage with its human-readable outcome.
type StepResult struct {
	Name    string `json:"name"`
	Outcome string `json:"outcome"`
}

// RunStatus tracks a single pipeline execution from start to finish.
type RunStatus struct {
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Steps     []StepResult `json:"steps"`
	Overall   string       `json:"overall_status"`

	// RecordsLoaded is the number of rows persisted by a successful load.
	RecordsLoaded int `json:"records_loaded"`
}

// NewRunStatus starts a run record in the optimistic SUCCESS state.
func NewRunStatus() *RunStatus {
	return &RunStatus{
		StartTime: time.Now(),
		Overall:   RunSuccess,
	}
}

// AddStep appends a stage outcome.
func (r *RunStatus) AddStep(name, outcome string) {
	r.Steps = append(r.Steps, StepResult{Name: name, Outcome: outcome})
}

// Finish stamps the end time and final status.
func (r *RunStatus) Finish(overall string) {
	r.EndTime = time.Now()
	r.Overall = overall
}

// Duration returns the elapsed wall time of the run.
func (r *RunStatus) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// ExitCode maps the overall run status to the process exit code: only a
// FAILED run is non-zero, a WARNING run still produced all upstream
// artifacts.
func (r *RunStatus) ExitCode() int {
	if r.Overall == RunFailed {
		return 1
	}
	return 0
}
