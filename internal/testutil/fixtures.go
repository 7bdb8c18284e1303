package testutil

import (
	"fmt"
	"time"

	"github.com/kyleking/gh-runwatch/internal/runs"
)

var fixtureTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// RunFixture creates a run snapshot with the given lifecycle state.
func RunFixture(id int64, status, conclusion string) runs.RunInfo {
	return runs.RunInfo{
		ID:         id,
		Name:       "CI",
		Status:     status,
		Conclusion: conclusion,
		CreatedAt:  fixtureTime,
		UpdatedAt:  fixtureTime.Add(5 * time.Minute),
		HTMLURL:    fmt.Sprintf("https://github.com/acme/widgets/actions/runs/%d", id),
		HeadBranch: "main",
		HeadSHA:    "0123abc",
		RunNumber:  int(id),
	}
}

// RunningRun creates an in-progress run.
func RunningRun(id int64) runs.RunInfo {
	return RunFixture(id, runs.StatusInProgress, "")
}

// SuccessfulRun creates a completed successful run.
func SuccessfulRun(id int64) runs.RunInfo {
	return RunFixture(id, runs.StatusCompleted, runs.ConclusionSuccess)
}

// FailedRun creates a completed failed run.
func FailedRun(id int64) runs.RunInfo {
	return RunFixture(id, runs.StatusCompleted, runs.ConclusionFailure)
}
