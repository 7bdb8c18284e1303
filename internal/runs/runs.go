// Package runs holds the workflow run data model and status classification.
package runs

import "time"

// Status values reported by the GitHub Actions API for a run lifecycle.
const (
	StatusQueued     = "queued"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Conclusion values for completed runs, jobs, and steps.
const (
	ConclusionSuccess        = "success"
	ConclusionFailure        = "failure"
	ConclusionCancelled      = "cancelled"
	ConclusionSkipped        = "skipped"
	ConclusionTimedOut       = "timed_out"
	ConclusionActionRequired = "action_required"
)

// RunInfo is a snapshot of one workflow run at fetch time. Values are never
// mutated after construction; a later fetch supersedes the whole list.
type RunInfo struct {
	ID         int64
	Name       string
	Status     string
	Conclusion string // empty unless Status is completed
	CreatedAt  time.Time
	UpdatedAt  time.Time
	HTMLURL    string
	HeadBranch string
	HeadSHA    string // short 7-char commit hash
	RunNumber  int
}

// DisplayStatus returns a display-friendly status string: the lifecycle
// status while the run is pending, the conclusion once it completed.
func (r RunInfo) DisplayStatus() string {
	if r.Status != StatusCompleted {
		return r.Status
	}

	if r.Conclusion == "" {
		return "unknown"
	}

	return r.Conclusion
}

// IsRunning returns true if the run is currently executing.
func (r RunInfo) IsRunning() bool {
	return r.Status == StatusInProgress
}

// IsSuccess returns true if the run completed successfully.
func (r RunInfo) IsSuccess() bool {
	return r.Conclusion == ConclusionSuccess
}

// IsFailure returns true if the run completed with a failure.
func (r RunInfo) IsFailure() bool {
	return r.Conclusion == ConclusionFailure
}

// Job is one named unit of work within a run, composed of ordered steps.
type Job struct {
	Name        string
	Status      string
	Conclusion  string
	StartedAt   time.Time
	CompletedAt time.Time
	HTMLURL     string
	Steps       []Step
}

// Step is the smallest unit within a job.
type Step struct {
	Name       string
	Status     string
	Conclusion string
	Number     int // 1-based order within the job
}

// JobFailure identifies one failed step within one job of one run.
type JobFailure struct {
	JobName    string
	StepName   string
	Conclusion string
	Number     int
}
