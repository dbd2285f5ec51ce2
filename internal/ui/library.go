package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bookdesk/bookdesk/internal/library"
)

// libraryMode is the input mode of the library screen.
type libraryMode int

const (
	modeBrowse libraryMode = iota
	modeSearch
	modeAdd
	modeEdit
)

// libraryState owns the mounted library screen: the ledger, the search
// input, the add/edit form, and the row selection.
type libraryState struct {
	ledger *library.Ledger
	mode   libraryMode

	form     recordForm
	search   textinput.Model
	selected int

	loading bool
	errMsg  string
	width   int
}

func newLibraryState() libraryState {
	search := textinput.New()
	search.Placeholder = "Search..."
	search.CharLimit = 128
	search.Width = 32

	return libraryState{
		ledger: library.NewLedger(),
		form:   newRecordForm(),
		search: search,
	}
}

func (s *libraryState) resize(width int) {
	s.width = width
}

// selectBook moves the selection to the row with the given id, when visible.
func (s *libraryState) selectBook(id int64) {
	for i, book := range s.ledger.Filtered() {
		if book.ID == id {
			s.selected = i
			return
		}
	}
	s.clampSelection()
}

func (s *libraryState) clampSelection() {
	count := len(s.ledger.Filtered())
	if count == 0 {
		s.selected = 0
		return
	}
	if s.selected >= count {
		s.selected = count - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// handleLibraryKey processes keyboard input for the library screen.
func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.library.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeAdd, modeEdit:
		return m.handleFormKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.library.ledger.Filtered()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme(), nil

	case key.Matches(msg, m.keys.Down):
		if m.library.selected < len(rows)-1 {
			m.library.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.library.selected > 0 {
			m.library.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.library.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(rows) > 0 {
			m.library.selected = len(rows) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.library.mode = modeSearch
		m.library.search.SetValue(m.library.ledger.Query())
		m.library.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Sort):
		m.library.ledger.ToggleSort()
		m.library.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.library.form.reset()
		m.library.mode = modeAdd
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if len(rows) == 0 {
			return m, nil
		}
		book := rows[m.library.selected]
		if !m.library.ledger.StartEdit(book.ID) {
			return m, nil
		}
		m.library.form.setBook(book)
		m.library.mode = modeEdit
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		if len(rows) == 0 {
			return m, nil
		}
		if !m.library.ledger.BeginMutation() {
			return m, nil
		}
		return m, deleteBookCmd(m.ctx, m.client, rows[m.library.selected].ID)

	case key.Matches(msg, m.keys.Reload):
		if m.library.loading {
			return m, nil
		}
		m.library.loading = true
		return m, fetchBooksCmd(m.ctx, m.client)

	case key.Matches(msg, m.keys.Logout):
		return m, logoutCmd(m.ctx, m.client)

	case key.Matches(msg, m.keys.Escape):
		if m.library.ledger.Query() != "" {
			m.library.ledger.SetQuery("")
			m.library.search.SetValue("")
			m.library.clampSelection()
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey edits the search input. The query is applied on every
// keystroke, the way a controlled input filters as you type.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.library.mode = modeBrowse
		m.library.search.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.library.ledger.SetQuery("")
		m.library.search.SetValue("")
		m.library.mode = modeBrowse
		m.library.search.Blur()
		m.library.clampSelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.library.search, cmd = m.library.search.Update(msg)
	m.library.ledger.SetQuery(m.library.search.Value())
	m.library.clampSelection()
	return m, cmd
}

// handleFormKey edits the add or edit form. A pending mutation freezes the
// form so the same draft cannot be submitted twice.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.library.ledger.Busy() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextField), msg.Type == tea.KeyDown:
		m.library.form.next()
		return m, nil

	case key.Matches(msg, m.keys.PrevField), msg.Type == tea.KeyUp:
		m.library.form.prev()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if !m.library.ledger.BeginMutation() {
			return m, nil
		}
		draft := m.library.form.book()
		if m.library.mode == modeEdit {
			m.library.ledger.SetEditDraft(draft)
			return m, updateBookCmd(m.ctx, m.client, m.library.ledger.EditingID(), draft)
		}
		return m, createBookCmd(m.ctx, m.client, draft)

	case key.Matches(msg, m.keys.Escape):
		if m.library.mode == modeEdit {
			m.library.ledger.ClearEdit()
		}
		m.library.form.reset()
		m.library.mode = modeBrowse
		return m, nil
	}

	cmd := m.library.form.update(msg)
	if m.library.mode == modeEdit {
		// Keep the edit buffer mirroring the inputs.
		m.library.ledger.SetEditDraft(m.library.form.book())
	}
	return m, cmd
}

// renderLibrary composes the library screen: header, search/status line,
// table, histogram, command bar. When a form is open it overlays the table
// area.
func (m Model) renderLibrary() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.library.mode == modeSearch || m.library.ledger.Query() != "" {
		b.WriteString("  " + m.library.search.View())
		b.WriteString("\n")
	}

	if m.library.errMsg != "" {
		b.WriteString("  " + styles.DangerText.Render(m.library.errMsg))
		b.WriteString("\n")
	}

	switch m.library.mode {
	case modeAdd:
		b.WriteString(lipgloss.Place(m.width, 0, lipgloss.Center, lipgloss.Top,
			m.library.form.render(styles, "New record", m.library.ledger.Busy())))
	case modeEdit:
		b.WriteString(lipgloss.Place(m.width, 0, lipgloss.Center, lipgloss.Top,
			m.library.form.render(styles, "Edit record", m.library.ledger.Busy())))
	default:
		b.WriteString(m.renderTable())
		b.WriteString("\n")
		b.WriteString(m.renderHistogram())
	}

	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}
