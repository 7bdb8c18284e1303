package runs_test

import (
	"testing"

	"github.com/kyleking/gh-runwatch/internal/runs"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		conclusion string
		wantKind   runs.StatusKind
		wantRaw    string
	}{
		{"queued", runs.StatusQueued, "", runs.KindQueued, "queued"},
		{"in progress", runs.StatusInProgress, "", runs.KindInProgress, "in_progress"},
		{"success", runs.StatusCompleted, runs.ConclusionSuccess, runs.KindSuccess, "success"},
		{"failure", runs.StatusCompleted, runs.ConclusionFailure, runs.KindFailure, "failure"},
		{"cancelled", runs.StatusCompleted, runs.ConclusionCancelled, runs.KindOther, "cancelled"},
		{"skipped", runs.StatusCompleted, runs.ConclusionSkipped, runs.KindOther, "skipped"},
		{"timed out", runs.StatusCompleted, runs.ConclusionTimedOut, runs.KindOther, "timed_out"},
		{"completed without conclusion", runs.StatusCompleted, "", runs.KindOther, "unknown"},
		{"unrecognized lifecycle status", "waiting", "", runs.KindOther, "waiting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runs.Classify(runs.RunInfo{Status: tt.status, Conclusion: tt.conclusion})

			if got.Kind != tt.wantKind {
				t.Errorf("Kind: got %v, want %v", got.Kind, tt.wantKind)
			}

			if got.Raw != tt.wantRaw {
				t.Errorf("Raw: got %q, want %q", got.Raw, tt.wantRaw)
			}
		})
	}
}

func TestExtractFailures_FiltersQualifyingConclusions(t *testing.T) {
	jobs := []runs.Job{
		{
			Name: "build",
			Steps: []runs.Step{
				{Name: "checkout", Conclusion: runs.ConclusionSuccess, Number: 1},
				{Name: "test", Conclusion: runs.ConclusionFailure, Number: 2},
			},
		},
	}

	failures := runs.ExtractFailures(jobs)

	if len(failures) != 1 {
		t.Fatalf("failures: got %d, want 1", len(failures))
	}

	want := runs.JobFailure{JobName: "build", StepName: "test", Conclusion: "failure", Number: 2}
	if failures[0] != want {
		t.Errorf("failure: got %+v, want %+v", failures[0], want)
	}
}

func TestExtractFailures_PreservesJobThenStepOrder(t *testing.T) {
	jobs := []runs.Job{
		{
			Name: "lint",
			Steps: []runs.Step{
				{Name: "setup", Conclusion: runs.ConclusionTimedOut, Number: 1},
				{Name: "run", Conclusion: runs.ConclusionSuccess, Number: 2},
				{Name: "report", Conclusion: runs.ConclusionActionRequired, Number: 3},
			},
		},
		{
			Name: "build",
			Steps: []runs.Step{
				{Name: "compile", Conclusion: runs.ConclusionFailure, Number: 1},
			},
		},
	}

	failures := runs.ExtractFailures(jobs)

	if len(failures) != 3 {
		t.Fatalf("failures: got %d, want 3", len(failures))
	}

	wantOrder := []struct {
		job  string
		step string
	}{
		{"lint", "setup"},
		{"lint", "report"},
		{"build", "compile"},
	}

	for i, want := range wantOrder {
		if failures[i].JobName != want.job || failures[i].StepName != want.step {
			t.Errorf("failures[%d]: got %s/%s, want %s/%s",
				i, failures[i].JobName, failures[i].StepName, want.job, want.step)
		}
	}
}

func TestExtractFailures_NoFailures(t *testing.T) {
	jobs := []runs.Job{
		{
			Name: "build",
			Steps: []runs.Step{
				{Name: "checkout", Conclusion: runs.ConclusionSuccess, Number: 1},
				{Name: "docs", Conclusion: runs.ConclusionSkipped, Number: 2},
				{Name: "cleanup", Conclusion: runs.ConclusionCancelled, Number: 3},
			},
		},
	}

	if failures := runs.ExtractFailures(jobs); len(failures) != 0 {
		t.Errorf("failures: got %d, want 0", len(failures))
	}
}

func TestExtractFailures_EmptyInput(t *testing.T) {
	if failures := runs.ExtractFailures(nil); failures != nil {
		t.Errorf("failures: got %v, want nil", failures)
	}
}
