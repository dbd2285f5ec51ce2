package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the title bar: app name, theme, and a busy marker
// while a mutation or fetch is in flight.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.Header.Render("bookdesk — Library")

	var right string
	switch {
	case m.library.loading:
		right = styles.WarningText.Render("fetching ")
	case m.library.ledger.Busy():
		right = styles.WarningText.Render("saving ")
	default:
		right = styles.FaintText.Render(m.theme.Name + " ")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderCommandBar renders the key hints footer for the current mode.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var hints []string
	switch m.library.mode {
	case modeSearch:
		hints = []string{"enter apply", "esc clear"}
	case modeAdd, modeEdit:
		hints = []string{"tab next field", "enter save", "esc cancel"}
	default:
		hints = []string{
			"a add", "e edit", "d delete", "/ search", "s sort",
			"r reload", "L logout", "? help", "q quit",
		}
	}
	return styles.Footer.Render(strings.Join(hints, "  ·  "))
}

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Navigation", [][2]string{
			{"j/↓, k/↑", "Move selection"},
			{"g, G", "First / last record"},
		}},
		{"Ledger", [][2]string{
			{"a", "Add a record"},
			{"e", "Edit the selected record"},
			{"d", "Delete the selected record"},
			{"/", "Search (filters as you type)"},
			{"s", "Toggle issue-date sort direction"},
			{"r", "Reload from the server"},
		}},
		{"Session", [][2]string{
			{"L", "Log out"},
			{"T", "Cycle color theme"},
			{"?", "This help"},
			{"q, Ctrl+C", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("bookdesk keys"))
	b.WriteString("\n\n")
	for _, section := range sections {
		b.WriteString(styles.Text.Render(section.title))
		b.WriteString("\n")
		for _, entry := range section.keys {
			b.WriteString("  ")
			b.WriteString(styles.AccentText.Render(pad(entry[0], 12)))
			b.WriteString(styles.MutedText.Render(entry[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("press any key to close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		styles.Panel.Render(b.String()))
}
