// Package app is the bubbletea model for the run dashboard: a repository
// panel, a runs panel, and a details panel fed by the background poller.
package app

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyleking/gh-runwatch/internal/browser"
	"github.com/kyleking/gh-runwatch/internal/config"
	"github.com/kyleking/gh-runwatch/internal/github"
	"github.com/kyleking/gh-runwatch/internal/runs"
	"github.com/kyleking/gh-runwatch/internal/watcher"
)

// FocusedPane represents which pane currently has focus.
type FocusedPane int

const (
	PaneRepos FocusedPane = iota
	PaneRuns
	PaneDetails
)

// Source is the slice of the GitHub client the UI consumes directly.
// Periodic run fetches go through the poller instead.
type Source interface {
	SearchRepositories(ctx context.Context, query string) ([]github.RepoResult, error)
	RunFailures(ctx context.Context, repo string, runID int64) ([]runs.JobFailure, error)
	JobLog(ctx context.Context, repo string, runID int64, jobName string) (string, error)
}

// Model is the root bubbletea model for the application.
type Model struct {
	poller  *watcher.Poller
	updates *watcher.UpdateChannel
	source  Source
	cfg     *config.Config
	logger  *slog.Logger

	focused FocusedPane
	repos   []string
	latest  map[string][]runs.RunInfo
	seen    map[string]bool

	selectedRepo int
	selectedRun  int

	failures    []runs.JobFailure
	failuresFor int64
	jobLog      string
	jobLogFor   int64

	search   searchModel
	showHelp bool

	width  int
	height int
	keys   KeyMap
}

// New creates the application model. The watch list comes from the config;
// the poller is expected to already watch the same repositories.
func New(poller *watcher.Poller, updates *watcher.UpdateChannel, source Source, cfg *config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	return Model{
		poller:  poller,
		updates: updates,
		source:  source,
		cfg:     cfg,
		logger:  logger,
		focused: PaneRepos,
		repos:   append([]string(nil), cfg.Repos...),
		latest:  make(map[string][]runs.RunInfo),
		seen:    make(map[string]bool),
		search:  newSearchModel(),
		keys:    DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case pollUpdateMsg:
		return m.handlePollUpdate(watcher.Update(msg))

	case searchResultsMsg:
		return m.handleSearchResults(msg)

	case failuresMsg:
		return m.handleFailures(msg)

	case jobLogMsg:
		return m.handleJobLog(msg)

	case tea.KeyMsg:
		if m.search.active {
			return m.handleSearchKey(msg)
		}

		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handlePollUpdate(u watcher.Update) (tea.Model, tea.Cmd) {
	// A failed fetch renders exactly like "no runs"; the distinction lives
	// in the log file.
	if u.Err != nil {
		m.latest[u.Repo] = nil
	} else {
		m.latest[u.Repo] = u.Runs
	}

	m.seen[u.Repo] = true
	m.clampRunSelection()

	return m, m.waitForUpdate()
}

func (m Model) handleFailures(msg failuresMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("failed to load run failures", "repo", msg.repo, "run_id", msg.runID, "error", msg.err)

		return m, nil
	}

	m.failures = msg.failures
	m.failuresFor = msg.runID

	return m, nil
}

func (m Model) handleJobLog(msg jobLogMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("failed to load job log", "run_id", msg.runID, "error", msg.err)

		return m, nil
	}

	m.jobLog = msg.text
	m.jobLogFor = msg.runID

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if m.focused == PaneDetails {
			m.focused = PaneRuns
		} else if m.focused == PaneRuns {
			m.focused = PaneRepos
		}

		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focused = (m.focused + 1) % 3
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.focused = (m.focused + 2) % 3
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.handleUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.handleDown()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, m.keys.Search):
		return m.openSearch()

	case key.Matches(msg, m.keys.Refresh):
		if repo := m.currentRepo(); repo != "" {
			return m, m.refreshCmd(repo)
		}

		return m, nil

	case key.Matches(msg, m.keys.RefreshAll):
		cmds := make([]tea.Cmd, 0, len(m.repos))
		for _, repo := range m.repos {
			cmds = append(cmds, m.refreshCmd(repo))
		}

		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.Remove):
		return m.removeCurrentRepo()

	case key.Matches(msg, m.keys.Copy):
		if run, ok := m.currentRun(); ok {
			_ = clipboard.WriteAll(run.HTMLURL)
		}

		return m, nil

	case key.Matches(msg, m.keys.Open):
		if run, ok := m.currentRun(); ok {
			if err := browser.Open(run.HTMLURL); err != nil {
				m.logger.Warn("failed to open browser", "url", run.HTMLURL, "error", err)
			}
		}

		return m, nil

	case key.Matches(msg, m.keys.Log):
		return m.loadJobLog()
	}

	return m, nil
}

func (m *Model) handleUp() {
	switch m.focused {
	case PaneRepos:
		if m.selectedRepo > 0 {
			m.selectedRepo--
			m.resetRunSelection()
		}
	case PaneRuns:
		if m.selectedRun > 0 {
			m.selectedRun--
			m.clearDetails()
		}
	case PaneDetails:
	}
}

func (m *Model) handleDown() {
	switch m.focused {
	case PaneRepos:
		if m.selectedRepo < len(m.repos)-1 {
			m.selectedRepo++
			m.resetRunSelection()
		}
	case PaneRuns:
		if m.selectedRun < len(m.currentRuns())-1 {
			m.selectedRun++
			m.clearDetails()
		}
	case PaneDetails:
	}
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.focused {
	case PaneRepos:
		if len(m.repos) > 0 {
			m.focused = PaneRuns
			m.resetRunSelection()
		}

		return m, nil

	case PaneRuns:
		run, ok := m.currentRun()
		if !ok {
			return m, nil
		}

		m.focused = PaneDetails
		if run.IsFailure() && m.failuresFor != run.ID {
			return m, m.fetchFailuresCmd(m.currentRepo(), run.ID)
		}

		return m, nil
	}

	return m, nil
}

// addRepository registers a repository with the poller, persists the watch
// list, and kicks an immediate refresh. Adding an already-watched repo is a
// no-op.
func (m Model) addRepository(repo string) (tea.Model, tea.Cmd) {
	if !m.poller.AddRepository(repo) {
		return m, nil
	}

	m.repos = append(m.repos, repo)
	m.saveWatchList()

	return m, m.refreshCmd(repo)
}

func (m Model) removeCurrentRepo() (tea.Model, tea.Cmd) {
	repo := m.currentRepo()
	if repo == "" {
		return m, nil
	}

	m.poller.RemoveRepository(repo)
	delete(m.latest, repo)
	delete(m.seen, repo)

	repos := make([]string, 0, len(m.repos)-1)
	for _, r := range m.repos {
		if r != repo {
			repos = append(repos, r)
		}
	}
	m.repos = repos

	if m.selectedRepo >= len(m.repos) && m.selectedRepo > 0 {
		m.selectedRepo--
	}

	m.resetRunSelection()
	m.saveWatchList()

	return m, nil
}

func (m Model) loadJobLog() (tea.Model, tea.Cmd) {
	run, ok := m.currentRun()
	if !ok || m.failuresFor != run.ID || len(m.failures) == 0 {
		return m, nil
	}

	if m.jobLogFor == run.ID {
		return m, nil
	}

	return m, m.fetchJobLogCmd(m.currentRepo(), run.ID, m.failures[0].JobName)
}

func (m *Model) saveWatchList() {
	m.cfg.Repos = append([]string(nil), m.repos...)

	if err := m.cfg.Save(); err != nil {
		m.logger.Warn("failed to save watch list", "error", err)
	}
}

func (m Model) currentRepo() string {
	if m.selectedRepo >= len(m.repos) {
		return ""
	}

	return m.repos[m.selectedRepo]
}

func (m Model) currentRuns() []runs.RunInfo {
	return m.latest[m.currentRepo()]
}

func (m Model) currentRun() (runs.RunInfo, bool) {
	rs := m.currentRuns()
	if m.selectedRun >= len(rs) {
		return runs.RunInfo{}, false
	}

	return rs[m.selectedRun], true
}

func (m *Model) resetRunSelection() {
	m.selectedRun = 0
	m.clearDetails()
}

func (m *Model) clearDetails() {
	m.failures = nil
	m.failuresFor = 0
	m.jobLog = ""
	m.jobLogFor = 0
}

func (m *Model) clampRunSelection() {
	if rs := m.currentRuns(); m.selectedRun >= len(rs) {
		m.selectedRun = 0
	}
}
