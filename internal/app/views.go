package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kyleking/gh-runwatch/internal/runs"
	"github.com/kyleking/gh-runwatch/internal/ui"
)

const minWidth = 40

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.width < minWidth {
		return ui.SubtitleStyle.Render("Terminal too narrow")
	}

	if m.search.active {
		return m.viewSearchModal()
	}

	if m.showHelp {
		return m.viewHelp()
	}

	bodyHeight := m.height - 1
	repoWidth := m.width / 4
	runsWidth := m.width * 35 / 100
	detailWidth := m.width - repoWidth - runsWidth

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.viewRepoPane(repoWidth, bodyHeight),
		m.viewRunsPane(runsWidth, bodyHeight),
		m.viewDetailPane(detailWidth, bodyHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewFooter())
}

func (m Model) viewRepoPane(width, height int) string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("Repositories"))
	b.WriteString("\n\n")

	if len(m.repos) == 0 {
		b.WriteString(ui.SubtitleStyle.Render("No repositories.\nPress / to add one."))
	}

	for i, repo := range m.repos {
		cursor := "  "
		style := ui.NormalStyle

		if i == m.selectedRepo {
			cursor = "> "
			style = ui.SelectedStyle
		}

		line := cursor + m.repoGlyph(repo) + " " + style.Render(truncate(repo, width-8))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return ui.PaneStyle(width, height, m.focused == PaneRepos).Render(b.String())
}

// repoGlyph summarizes a repository by its most recent run.
func (m Model) repoGlyph(repo string) string {
	if !m.seen[repo] {
		return ui.SubtitleStyle.Render("…")
	}

	rs := m.latest[repo]
	if len(rs) == 0 {
		return ui.SubtitleStyle.Render("?")
	}

	return statusGlyph(runs.Classify(rs[0]))
}

func (m Model) viewRunsPane(width, height int) string {
	var b strings.Builder

	repo := m.currentRepo()

	title := "Workflow Runs"
	if repo != "" {
		title += " " + ui.SubtitleStyle.Render(truncate(repo, width-20))
	}

	b.WriteString(ui.TitleStyle.Render(title))
	b.WriteString("\n\n")

	rs := m.currentRuns()

	switch {
	case repo == "":
		b.WriteString(ui.SubtitleStyle.Render("No repository selected."))
	case !m.seen[repo]:
		b.WriteString(ui.SubtitleStyle.Render("Waiting for first poll..."))
	case len(rs) == 0:
		b.WriteString(ui.SubtitleStyle.Render("No recent runs."))
	}

	for i, run := range rs {
		cursor := "  "
		style := ui.NormalStyle

		if i == m.selectedRun && m.focused != PaneRepos {
			cursor = "> "
			style = ui.SelectedStyle
		}

		label := fmt.Sprintf("%s #%d %s", run.Name, run.RunNumber, run.HeadBranch)
		line := fmt.Sprintf("%s%s %s %s",
			cursor,
			statusGlyph(runs.Classify(run)),
			style.Render(truncate(label, width-14)),
			ui.SubtitleStyle.Render(relativeAge(run.CreatedAt)),
		)

		b.WriteString(line)
		b.WriteString("\n")
	}

	return ui.PaneStyle(width, height, m.focused == PaneRuns).Render(b.String())
}

func (m Model) viewDetailPane(width, height int) string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("Details"))
	b.WriteString("\n\n")

	run, ok := m.currentRun()
	if !ok {
		b.WriteString(ui.SubtitleStyle.Render("Select a run to see details."))

		return ui.PaneStyle(width, height, m.focused == PaneDetails).Render(b.String())
	}

	status := runs.Classify(run)

	fmt.Fprintf(&b, "%s #%d\n", run.Name, run.RunNumber)
	fmt.Fprintf(&b, "Status:  %s %s\n", statusGlyph(status), statusStyle(status).Render(status.Raw))
	fmt.Fprintf(&b, "Branch:  %s\n", run.HeadBranch)
	fmt.Fprintf(&b, "Commit:  %s\n", run.HeadSHA)
	fmt.Fprintf(&b, "Started: %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Updated: %s\n", relativeAge(run.UpdatedAt))
	fmt.Fprintf(&b, "URL:     %s\n", ui.SubtitleStyle.Render(truncate(run.HTMLURL, width-12)))

	if m.failuresFor == run.ID {
		b.WriteString("\n")
		b.WriteString(ui.FailureStyle.Render("Failed jobs"))
		b.WriteString("\n")

		if len(m.failures) == 0 {
			b.WriteString(ui.SubtitleStyle.Render("No failed jobs found."))
			b.WriteString("\n")
		}

		for _, f := range m.failures {
			fmt.Fprintf(&b, "  ✗ %s / %s (%s)\n", f.JobName, f.StepName, f.Conclusion)
		}

		if len(m.failures) > 0 && m.jobLogFor != run.ID {
			b.WriteString(ui.SubtitleStyle.Render("Press l to load the job log."))
			b.WriteString("\n")
		}
	}

	if m.jobLogFor == run.ID && m.jobLog != "" {
		b.WriteString("\n")
		b.WriteString(clipLines(m.jobLog, height-strings.Count(b.String(), "\n")-4))
	}

	return ui.PaneStyle(width, height, m.focused == PaneDetails).Render(b.String())
}

func (m Model) viewFooter() string {
	parts := make([]string, 0, 8)
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}

	return ui.HelpStyle.Render(" " + strings.Join(parts, " • "))
}

func (m Model) viewSearchModal() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("Add Repository"))
	b.WriteString("\n\n")
	b.WriteString(m.search.input.View())
	b.WriteString("\n")

	switch {
	case m.search.searching:
		b.WriteString("\n")
		b.WriteString(ui.SubtitleStyle.Render("Searching..."))
	case m.search.haveResults && len(m.search.filtered) == 0:
		b.WriteString("\n")
		b.WriteString(ui.SubtitleStyle.Render("No matching repositories."))
	case m.search.haveResults:
		b.WriteString("\n")

		for i, r := range m.search.filtered {
			if i >= 10 {
				b.WriteString(ui.SubtitleStyle.Render(fmt.Sprintf("  ... %d more", len(m.search.filtered)-i)))
				break
			}

			cursor := "  "
			style := ui.NormalStyle

			if i == m.search.selected {
				cursor = "> "
				style = ui.SelectedStyle
			}

			b.WriteString(cursor + style.Render(r.FullName))
			if r.Description != "" {
				b.WriteString(" " + ui.SubtitleStyle.Render(truncate(r.Description, 40)))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("enter select • esc cancel"))

	modal := ui.ModalStyle.Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) viewHelp() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}

		b.WriteString("\n")
	}

	b.WriteString(ui.HelpStyle.Render("press ? or esc to close"))

	modal := ui.ModalStyle.Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func statusGlyph(d runs.DisplayStatus) string {
	switch d.Kind {
	case runs.KindSuccess:
		return ui.SuccessStyle.Render("✓")
	case runs.KindFailure:
		return ui.FailureStyle.Render("✗")
	case runs.KindInProgress:
		return ui.RunningStyle.Render("⟳")
	case runs.KindQueued:
		return ui.RunningStyle.Render("○")
	default:
		return ui.SubtitleStyle.Render("○")
	}
}

func statusStyle(d runs.DisplayStatus) lipgloss.Style {
	switch d.Kind {
	case runs.KindSuccess:
		return ui.SuccessStyle
	case runs.KindFailure:
		return ui.FailureStyle
	case runs.KindInProgress, runs.KindQueued:
		return ui.RunningStyle
	default:
		return ui.SubtitleStyle
	}
}

// relativeAge formats a timestamp as a compact age like "5m" or "2d".
func relativeAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

func truncate(s string, max int) string {
	if max <= 3 {
		max = 3
	}

	if len(s) <= max {
		return s
	}

	return s[:max-3] + "..."
}

func clipLines(s string, max int) string {
	if max <= 0 {
		return ""
	}

	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}

	return strings.Join(lines[:max], "\n")
}
