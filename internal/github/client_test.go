package github_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	apperrors "github.com/kyleking/gh-runwatch/internal/errors"
	"github.com/kyleking/gh-runwatch/internal/github"
	"github.com/kyleking/gh-runwatch/internal/runs"
)

// fakeREST serves canned JSON bodies keyed by request path.
type fakeREST struct {
	responses map[string]string
	err       error
	paths     []string
}

func (f *fakeREST) RequestWithContext(_ context.Context, _ string, path string, _ io.Reader) (*http.Response, error) {
	f.paths = append(f.paths, path)

	if f.err != nil {
		return nil, f.err
	}

	body, ok := f.responses[path]
	if !ok {
		return nil, fmt.Errorf("unexpected path: %s", path)
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

const runsBody = `{
  "total_count": 2,
  "workflow_runs": [
    {
      "id": 42,
      "name": "CI",
      "status": "completed",
      "conclusion": "failure",
      "created_at": "2025-06-01T10:00:00Z",
      "updated_at": "2025-06-01T10:05:00Z",
      "html_url": "https://github.com/acme/widgets/actions/runs/42",
      "head_branch": "main",
      "head_sha": "0123456789abcdef",
      "run_number": 17
    },
    {
      "id": 41,
      "name": "",
      "status": "in_progress",
      "conclusion": null,
      "created_at": "2025-06-01T09:00:00Z",
      "updated_at": "2025-06-01T09:01:00Z",
      "html_url": "https://github.com/acme/widgets/actions/runs/41",
      "head_branch": "feature",
      "head_sha": "fedcba9876543210",
      "run_number": 16
    }
  ]
}`

const jobsBody = `{
  "jobs": [
    {
      "name": "build",
      "status": "completed",
      "conclusion": "failure",
      "html_url": "https://github.com/acme/widgets/actions/runs/42/job/1",
      "steps": [
        {"name": "checkout", "status": "completed", "conclusion": "success", "number": 1},
        {"name": "test", "status": "completed", "conclusion": "failure", "number": 2}
      ]
    }
  ]
}`

func TestRecentRuns(t *testing.T) {
	rest := &fakeREST{responses: map[string]string{
		"repos/acme/widgets/actions/runs?per_page=10": runsBody,
	}}
	client := github.NewClientWithREST(rest)

	result, err := client.RecentRuns(context.Background(), "acme/widgets", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("runs: got %d, want 2", len(result))
	}

	first := result[0]
	if first.ID != 42 || first.Status != runs.StatusCompleted || first.Conclusion != runs.ConclusionFailure {
		t.Errorf("unexpected first run: %+v", first)
	}

	if first.HeadSHA != "0123456" {
		t.Errorf("HeadSHA: got %q, want truncated 7 chars", first.HeadSHA)
	}

	if result[1].Name != "Workflow" {
		t.Errorf("Name: got %q, want default %q", result[1].Name, "Workflow")
	}

	if !result[1].IsRunning() {
		t.Error("expected second run to be running")
	}
}

func TestRecentRuns_InvalidRepoFormat(t *testing.T) {
	client := github.NewClientWithREST(&fakeREST{})

	tests := []string{"", "norepo", "/name", "owner/"}
	for _, repo := range tests {
		if _, err := client.RecentRuns(context.Background(), repo, 10); err == nil {
			t.Errorf("expected error for repo %q", repo)
		}
	}
}

func TestRecentRuns_TransportError(t *testing.T) {
	underlying := stderrors.New("boom")
	client := github.NewClientWithREST(&fakeREST{err: underlying})

	_, err := client.RecentRuns(context.Background(), "acme/widgets", 10)
	if err == nil {
		t.Fatal("expected error")
	}

	var fetchErr *apperrors.FetchError
	if !stderrors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T", err)
	}

	if fetchErr.Repo != "acme/widgets" {
		t.Errorf("Repo: got %q", fetchErr.Repo)
	}

	if !stderrors.Is(err, underlying) {
		t.Error("expected wrapped transport error")
	}
}

func TestRunFailures(t *testing.T) {
	rest := &fakeREST{responses: map[string]string{
		"repos/acme/widgets/actions/runs/42/jobs": jobsBody,
	}}
	client := github.NewClientWithREST(rest)

	failures, err := client.RunFailures(context.Background(), "acme/widgets", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(failures) != 1 {
		t.Fatalf("failures: got %d, want 1", len(failures))
	}

	want := runs.JobFailure{JobName: "build", StepName: "test", Conclusion: "failure", Number: 2}
	if failures[0] != want {
		t.Errorf("failure: got %+v, want %+v", failures[0], want)
	}
}

func TestJobLog(t *testing.T) {
	rest := &fakeREST{responses: map[string]string{
		"repos/acme/widgets/actions/runs/42/jobs": jobsBody,
	}}
	client := github.NewClientWithREST(rest)

	log, err := client.JobLog(context.Background(), "acme/widgets", 42, "build")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Job: build", "✗ Step 2: test", "✓ Step 1: checkout"} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}
}

func TestJobLog_JobNotFound(t *testing.T) {
	rest := &fakeREST{responses: map[string]string{
		"repos/acme/widgets/actions/runs/42/jobs": jobsBody,
	}}
	client := github.NewClientWithREST(rest)

	_, err := client.JobLog(context.Background(), "acme/widgets", 42, "deploy")

	var notFound *apperrors.NotFoundError
	if !stderrors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if notFound.Name != "deploy" {
		t.Errorf("Name: got %q, want %q", notFound.Name, "deploy")
	}
}

func TestSearchRepositories(t *testing.T) {
	body := `{"items": [
		{"full_name": "acme/widgets", "description": "widget factory"},
		{"full_name": "acme/gizmos", "description": ""}
	]}`
	rest := &fakeREST{responses: map[string]string{
		"search/repositories?q=acme&sort=updated&per_page=20": body,
	}}
	client := github.NewClientWithREST(rest)

	results, err := client.SearchRepositories(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2", len(results))
	}

	if results[0].FullName != "acme/widgets" || results[0].Description != "widget factory" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
}

func TestSearchRepositories_QueryEscaped(t *testing.T) {
	rest := &fakeREST{responses: map[string]string{
		"search/repositories?q=org%3Aacme+tui&sort=updated&per_page=20": `{"items": []}`,
	}}
	client := github.NewClientWithREST(rest)

	if _, err := client.SearchRepositories(context.Background(), "org:acme tui"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rest.paths) != 1 {
		t.Fatalf("paths: got %d, want 1", len(rest.paths))
	}
}
