package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyleking/gh-runwatch/internal/github"
	"github.com/kyleking/gh-runwatch/internal/runs"
	"github.com/kyleking/gh-runwatch/internal/watcher"
)

// pollUpdateMsg carries one poller delivery into the bubbletea loop.
type pollUpdateMsg watcher.Update

type searchResultsMsg struct {
	query   string
	results []github.RepoResult
	err     error
}

type failuresMsg struct {
	repo     string
	runID    int64
	failures []runs.JobFailure
	err      error
}

type jobLogMsg struct {
	runID int64
	text  string
	err   error
}

// waitForUpdate blocks on the poller's update channel and re-arms itself
// after every message, keeping the UI decoupled from the poll loop.
func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		u, ok := <-m.updates.C()
		if !ok {
			return nil
		}

		return pollUpdateMsg(u)
	}
}

func (m Model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.source.SearchRepositories(context.Background(), query)

		return searchResultsMsg{query: query, results: results, err: err}
	}
}

func (m Model) fetchFailuresCmd(repo string, runID int64) tea.Cmd {
	return func() tea.Msg {
		failures, err := m.source.RunFailures(context.Background(), repo, runID)

		return failuresMsg{repo: repo, runID: runID, failures: failures, err: err}
	}
}

func (m Model) fetchJobLogCmd(repo string, runID int64, jobName string) tea.Cmd {
	return func() tea.Msg {
		text, err := m.source.JobLog(context.Background(), repo, runID, jobName)

		return jobLogMsg{runID: runID, text: text, err: err}
	}
}

// refreshCmd triggers an out-of-band fetch; the result arrives through the
// regular update channel, so no message is returned here.
func (m Model) refreshCmd(repo string) tea.Cmd {
	poller := m.poller

	return func() tea.Msg {
		poller.Refresh(context.Background(), repo)

		return nil
	}
}
