package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/kyleking/gh-runwatch/internal/github"
)

// searchModel drives the add-repository modal. It has two phases: typing a
// query, then fuzzy-filtering the results that came back.
type searchModel struct {
	active      bool
	searching   bool
	haveResults bool

	input    textinput.Model
	results  []github.RepoResult
	filtered []github.RepoResult
	selected int
}

func newSearchModel() searchModel {
	input := textinput.New()
	input.Placeholder = "search repositories (e.g. org:acme cli)"
	input.CharLimit = 100
	input.Width = 50

	return searchModel{input: input}
}

func (m Model) openSearch() (tea.Model, tea.Cmd) {
	m.search = newSearchModel()
	m.search.active = true

	return m, m.search.input.Focus()
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.search.active = false
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if !m.search.haveResults {
			query := strings.TrimSpace(m.search.input.Value())
			if query == "" || m.search.searching {
				return m, nil
			}

			m.search.searching = true

			return m, m.searchCmd(query)
		}

		if len(m.search.filtered) == 0 {
			return m, nil
		}

		repo := m.search.filtered[m.search.selected].FullName
		m.search.active = false

		return m.addRepository(repo)
	}

	// In the results phase arrow keys move the selection; j/k stay with the
	// filter input since the user may be typing.
	if m.search.haveResults {
		switch msg.Type {
		case tea.KeyUp:
			if m.search.selected > 0 {
				m.search.selected--
			}

			return m, nil

		case tea.KeyDown:
			if m.search.selected < len(m.search.filtered)-1 {
				m.search.selected++
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)

	if m.search.haveResults {
		m.applySearchFilter()
	}

	return m, cmd
}

func (m Model) handleSearchResults(msg searchResultsMsg) (tea.Model, tea.Cmd) {
	if !m.search.active {
		return m, nil
	}

	m.search.searching = false

	if msg.err != nil {
		m.logger.Warn("repository search failed", "query", msg.query, "error", msg.err)
		m.search.results = nil
	} else {
		m.search.results = msg.results
	}

	m.search.haveResults = true
	m.search.input.SetValue("")
	m.search.input.Placeholder = "filter results"
	m.applySearchFilter()

	return m, nil
}

func (m *Model) applySearchFilter() {
	query := m.search.input.Value()
	if query == "" {
		m.search.filtered = m.search.results
	} else {
		names := make([]string, len(m.search.results))
		for i, r := range m.search.results {
			names[i] = r.FullName
		}

		matches := fuzzy.Find(query, names)

		m.search.filtered = make([]github.RepoResult, 0, len(matches))
		for _, match := range matches {
			m.search.filtered = append(m.search.filtered, m.search.results[match.Index])
		}
	}

	if m.search.selected >= len(m.search.filtered) {
		m.search.selected = 0
	}
}
