package github

import (
	"time"

	"github.com/kyleking/gh-runwatch/internal/runs"
)

// RepoResult is one repository search hit.
type RepoResult struct {
	FullName    string
	Description string
}

// Wire shapes for the GitHub REST API. These stay private to the package;
// conversion to the runs model happens at the boundary.

type workflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	HTMLURL    string    `json:"html_url"`
	HeadBranch string    `json:"head_branch"`
	HeadSHA    string    `json:"head_sha"`
	RunNumber  int       `json:"run_number"`
}

type runsResponse struct {
	TotalCount   int           `json:"total_count"`
	WorkflowRuns []workflowRun `json:"workflow_runs"`
}

type step struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	Number     int    `json:"number"`
}

type job struct {
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Conclusion  string    `json:"conclusion"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	HTMLURL     string    `json:"html_url"`
	Steps       []step    `json:"steps"`
}

type jobsResponse struct {
	Jobs []job `json:"jobs"`
}

type searchItem struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

func (r workflowRun) toRunInfo() runs.RunInfo {
	name := r.Name
	if name == "" {
		name = "Workflow"
	}

	sha := r.HeadSHA
	if len(sha) > 7 {
		sha = sha[:7]
	}

	return runs.RunInfo{
		ID:         r.ID,
		Name:       name,
		Status:     r.Status,
		Conclusion: r.Conclusion,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
		HTMLURL:    r.HTMLURL,
		HeadBranch: r.HeadBranch,
		HeadSHA:    sha,
		RunNumber:  r.RunNumber,
	}
}

func (j job) toJob() runs.Job {
	out := runs.Job{
		Name:        j.Name,
		Status:      j.Status,
		Conclusion:  j.Conclusion,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
		HTMLURL:     j.HTMLURL,
		Steps:       make([]runs.Step, len(j.Steps)),
	}

	for i, s := range j.Steps {
		out.Steps[i] = runs.Step{
			Name:       s.Name,
			Status:     s.Status,
			Conclusion: s.Conclusion,
			Number:     s.Number,
		}
	}

	return out
}
