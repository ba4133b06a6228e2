package models

import "testing"

func TestRunStatus_ExitCode(t *testing.T) {
	cases := []struct {
		overall string
		want    int
	}{
		{RunSuccess, 0},
		{RunWarning, 0},
		{RunFailed, 1},
	}

	for _, c := range cases {
		status := &RunStatus{Overall: c.overall}
		if got := status.ExitCode(); got != c.want {
			t.Errorf("ExitCode() for %s = %d, want %d", c.overall, got, c.want)
		}
	}
}

func TestRunStatus_StepTracking(t *testing.T) {
	status := NewRunStatus()
	if status.Overall != RunSuccess {
		t.Errorf("New run should start SUCCESS, got %s", status.Overall)
	}

	status.AddStep("extract", "SUCCESS - 5 articles")
	status.AddStep("validate", "FAILED - no clean data")
	status.Finish(RunFailed)

	if len(status.Steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(status.Steps))
	}
	if status.Steps[1].Name != "validate" {
		t.Errorf("Unexpected second step: %+v", status.Steps[1])
	}
	if status.Overall != RunFailed {
		t.Errorf("Expected FAILED, got %s", status.Overall)
	}
	if status.EndTime.IsZero() {
		t.Error("Finish must stamp the end time")
	}
	if status.Duration() < 0 {
		t.Errorf("Duration must be non-negative, got %v", status.Duration())
	}
}
