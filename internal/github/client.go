// Package github talks to the GitHub REST API for workflow run data.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"

	apperrors "github.com/kyleking/gh-runwatch/internal/errors"
	"github.com/kyleking/gh-runwatch/internal/runs"
)

const (
	// requestTimeout bounds every individual API call.
	requestTimeout = 10 * time.Second

	// searchLimit caps repository search results.
	searchLimit = 20
)

// restDoer is the slice of go-gh's REST client the package uses. Tests
// inject canned responses through it.
type restDoer interface {
	RequestWithContext(ctx context.Context, method string, path string, body io.Reader) (*http.Response, error)
}

// Client fetches workflow run data for arbitrary repositories.
type Client struct {
	rest restDoer
}

// NewClient creates a client using gh CLI / GITHUB_TOKEN credentials.
// It fails when no usable credential is available.
func NewClient() (*Client, error) {
	rest, err := api.DefaultRESTClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	return &Client{rest: rest}, nil
}

// NewClientWithREST creates a client over an explicit REST transport.
func NewClientWithREST(rest restDoer) *Client {
	return &Client{rest: rest}
}

// SearchRepositories searches GitHub for repositories matching the query,
// most recently updated first.
func (c *Client) SearchRepositories(ctx context.Context, query string) ([]RepoResult, error) {
	path := fmt.Sprintf("search/repositories?q=%s&sort=updated&per_page=%d",
		url.QueryEscape(query), searchLimit)

	var resp searchResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, &apperrors.FetchError{Repo: query, Operation: "search repositories", Err: err}
	}

	results := make([]RepoResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, RepoResult{
			FullName:    item.FullName,
			Description: item.Description,
		})
	}

	return results, nil
}

// RecentRuns fetches the most recent workflow runs for a repository,
// most recent first.
func (c *Client) RecentRuns(ctx context.Context, repo string, limit int) ([]runs.RunInfo, error) {
	if err := validateRepo(repo); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("repos/%s/actions/runs?per_page=%d", repo, limit)

	var resp runsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, &apperrors.FetchError{Repo: repo, Operation: "fetch runs", Err: err}
	}

	result := make([]runs.RunInfo, 0, len(resp.WorkflowRuns))
	for _, run := range resp.WorkflowRuns {
		result = append(result, run.toRunInfo())
	}

	return result, nil
}

// RunFailures fetches the failed steps for one workflow run.
func (c *Client) RunFailures(ctx context.Context, repo string, runID int64) ([]runs.JobFailure, error) {
	jobs, err := c.runJobs(ctx, repo, runID)
	if err != nil {
		return nil, err
	}

	return runs.ExtractFailures(jobs), nil
}

// JobLog returns a synthesized textual summary of one job's steps. Full raw
// logs require a zip download from GitHub; the step summary covers the
// dashboard's needs.
func (c *Client) JobLog(ctx context.Context, repo string, runID int64, jobName string) (string, error) {
	jobs, err := c.runJobs(ctx, repo, runID)
	if err != nil {
		return "", err
	}

	for _, j := range jobs {
		if j.Name == jobName {
			return formatJobLog(j), nil
		}
	}

	return "", &apperrors.NotFoundError{Kind: "job", Name: jobName}
}

func (c *Client) runJobs(ctx context.Context, repo string, runID int64) ([]runs.Job, error) {
	if err := validateRepo(repo); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("repos/%s/actions/runs/%d/jobs", repo, runID)

	var resp jobsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, &apperrors.FetchError{Repo: repo, Operation: "fetch jobs", Err: err}
	}

	result := make([]runs.Job, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		result = append(result, j.toJob())
	}

	return result, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.rest.RequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func validateRepo(repo string) error {
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid repository format: %s (expected owner/name)", repo)
	}

	return nil
}

func formatJobLog(j runs.Job) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Job: %s\n", j.Name)
	fmt.Fprintf(&b, "Status: %s\n", j.Status)
	fmt.Fprintf(&b, "Conclusion: %s\n", orNA(j.Conclusion))

	if !j.StartedAt.IsZero() {
		fmt.Fprintf(&b, "Started: %s\n", j.StartedAt.Format(time.RFC3339))
	}

	if !j.CompletedAt.IsZero() {
		fmt.Fprintf(&b, "Completed: %s\n", j.CompletedAt.Format(time.RFC3339))
	}

	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, s := range j.Steps {
		fmt.Fprintf(&b, "%s Step %d: %s\n", stepGlyph(s), s.Number, s.Name)

		state := s.Conclusion
		if state == "" {
			state = s.Status
		}

		fmt.Fprintf(&b, "  Status: %s\n\n", state)
	}

	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString("Note: full step logs require downloading from GitHub.\n")

	if j.HTMLURL != "" {
		fmt.Fprintf(&b, "URL: %s\n", j.HTMLURL)
	}

	return b.String()
}

func stepGlyph(s runs.Step) string {
	switch {
	case s.Conclusion == runs.ConclusionSuccess:
		return "✓"
	case s.Conclusion == runs.ConclusionFailure:
		return "✗"
	case s.Status == runs.StatusInProgress:
		return "⟳"
	default:
		return "○"
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
