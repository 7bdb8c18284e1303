// Package testutil provides shared mocks and fixtures for tests.
package testutil

import (
	"context"
	"sync"

	"github.com/kyleking/gh-runwatch/internal/github"
	"github.com/kyleking/gh-runwatch/internal/runs"
)

// MockSource implements the run source consumed by the poller and the TUI
// (RecentRuns, SearchRepositories, RunFailures, JobLog) against in-memory
// data. Safe for concurrent use.
type MockSource struct {
	mu            sync.Mutex
	runs          map[string][]runs.RunInfo
	errs          map[string]error
	failures      map[int64][]runs.JobFailure
	jobLogs       map[string]string
	searchResults []github.RepoResult
	searchErr     error
	calls         map[string]int
}

// NewMockSource creates an empty MockSource.
func NewMockSource() *MockSource {
	return &MockSource{
		runs:     make(map[string][]runs.RunInfo),
		errs:     make(map[string]error),
		failures: make(map[int64][]runs.JobFailure),
		jobLogs:  make(map[string]string),
		calls:    make(map[string]int),
	}
}

// WithRuns sets the runs returned for a repository.
func (m *MockSource) WithRuns(repo string, rs ...runs.RunInfo) *MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[repo] = rs

	return m
}

// WithError makes RecentRuns fail for a repository.
func (m *MockSource) WithError(repo string, err error) *MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errs[repo] = err

	return m
}

// WithFailures sets the failures returned for a run.
func (m *MockSource) WithFailures(runID int64, failures ...runs.JobFailure) *MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failures[runID] = failures

	return m
}

// WithJobLog sets the log text returned for a job name.
func (m *MockSource) WithJobLog(jobName, text string) *MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobLogs[jobName] = text

	return m
}

// WithSearchResults sets the repository search results.
func (m *MockSource) WithSearchResults(results ...github.RepoResult) *MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.searchResults = results

	return m
}

// Calls returns how many times RecentRuns was invoked for a repository.
func (m *MockSource) Calls(repo string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls[repo]
}

func (m *MockSource) RecentRuns(_ context.Context, repo string, limit int) ([]runs.RunInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[repo]++

	if err, ok := m.errs[repo]; ok {
		return nil, err
	}

	rs := m.runs[repo]
	if limit > 0 && len(rs) > limit {
		rs = rs[:limit]
	}

	out := make([]runs.RunInfo, len(rs))
	copy(out, rs)

	return out, nil
}

func (m *MockSource) SearchRepositories(_ context.Context, _ string) ([]github.RepoResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.searchErr != nil {
		return nil, m.searchErr
	}

	out := make([]github.RepoResult, len(m.searchResults))
	copy(out, m.searchResults)

	return out, nil
}

func (m *MockSource) RunFailures(_ context.Context, _ string, runID int64) ([]runs.JobFailure, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.failures[runID], nil
}

func (m *MockSource) JobLog(_ context.Context, _ string, _ int64, jobName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.jobLogs[jobName], nil
}
