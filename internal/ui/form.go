package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookdesk/bookdesk/internal/api"
)

// Form field indices, in display order.
const (
	fieldTitle = iota
	fieldAuthor
	fieldPublisher
	fieldIssueDate
	fieldStudent
	fieldReturnDate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Author",
	"Publisher",
	"Issue date",
	"Student",
	"Return date",
}

var fieldPlaceholders = [fieldCount]string{
	"Book title",
	"Author",
	"Publisher",
	"YYYY-MM-DD",
	"Student full name",
	"YYYY-MM-DD",
}

// recordForm is the six-field editor used for both the add draft and the
// edit buffer. Inputs are controlled: their values are the draft.
type recordForm struct {
	inputs   [fieldCount]textinput.Model
	focusIdx int
}

func newRecordForm() recordForm {
	var f recordForm
	for i := range f.inputs {
		input := textinput.New()
		input.Placeholder = fieldPlaceholders[i]
		input.CharLimit = 128
		input.Width = 32
		f.inputs[i] = input
	}
	f.inputs[fieldIssueDate].CharLimit = 10
	f.inputs[fieldReturnDate].CharLimit = 10
	f.focusField(fieldTitle)
	return f
}

// setBook seeds the inputs from a record, as when an edit starts.
func (f *recordForm) setBook(book api.Book) {
	f.inputs[fieldTitle].SetValue(book.Title)
	f.inputs[fieldAuthor].SetValue(book.Author)
	f.inputs[fieldPublisher].SetValue(book.Publisher)
	f.inputs[fieldIssueDate].SetValue(book.IssueDate)
	f.inputs[fieldStudent].SetValue(book.StudentName)
	f.inputs[fieldReturnDate].SetValue(book.ReturnDate)
	f.focusField(fieldTitle)
}

// book collects the current input values into a draft record. The id is the
// caller's business.
func (f recordForm) book() api.Book {
	return api.Book{
		Title:       f.inputs[fieldTitle].Value(),
		Author:      f.inputs[fieldAuthor].Value(),
		Publisher:   f.inputs[fieldPublisher].Value(),
		IssueDate:   f.inputs[fieldIssueDate].Value(),
		StudentName: f.inputs[fieldStudent].Value(),
		ReturnDate:  f.inputs[fieldReturnDate].Value(),
	}
}

func (f *recordForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.focusField(fieldTitle)
}

func (f *recordForm) focusField(idx int) {
	f.focusIdx = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *recordForm) next() {
	f.focusField((f.focusIdx + 1) % fieldCount)
}

func (f *recordForm) prev() {
	f.focusField((f.focusIdx + fieldCount - 1) % fieldCount)
}

// update forwards a key to the focused input.
func (f *recordForm) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focusIdx], cmd = f.inputs[f.focusIdx].Update(msg)
	return cmd
}

// render draws the labeled form. The title distinguishes add from edit.
func (f recordForm) render(styles Styles, title string, busy bool) string {
	var b strings.Builder
	b.WriteString(styles.AccentText.Render(title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		label := fieldLabels[i]
		if i == f.focusIdx {
			b.WriteString(styles.Text.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if busy {
		b.WriteString(styles.WarningText.Render("Saving..."))
	} else {
		b.WriteString(styles.FaintText.Render("enter to save, esc to cancel"))
	}
	return styles.PanelFocus.Render(b.String())
}
