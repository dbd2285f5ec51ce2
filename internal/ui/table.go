package ui

import (
	"strings"

	"github.com/bookdesk/bookdesk/internal/api"
	"github.com/bookdesk/bookdesk/internal/library"
)

// tableColumn defines a column in the ledger table.
type tableColumn struct {
	label  string
	weight int
	min    int
}

var tableColumns = []tableColumn{
	{"Title", 4, 12},
	{"Author", 3, 10},
	{"Publisher", 3, 10},
	{"Issued", 2, 12},
	{"Student", 3, 10},
	{"Returned", 2, 12},
}

// columnWidths distributes the available width across columns by weight,
// never below each column's minimum.
func columnWidths(total int) []int {
	const gap = 2
	usable := total - gap*(len(tableColumns)-1) - 2
	weightSum := 0
	for _, col := range tableColumns {
		weightSum += col.weight
	}
	widths := make([]int, len(tableColumns))
	for i, col := range tableColumns {
		w := usable * col.weight / weightSum
		if w < col.min {
			w = col.min
		}
		widths[i] = w
	}
	return widths
}

// renderTable renders the filtered, sorted ledger rows.
func (m Model) renderTable() string {
	styles := m.theme.Styles()
	rows := m.library.ledger.Filtered()
	widths := columnWidths(m.width)

	var b strings.Builder

	// Header row, with the sort direction on the issue-date column.
	issuedLabel := "Issued " + sortIndicator(m.library.ledger.Order())
	labels := []string{
		tableColumns[0].label,
		tableColumns[1].label,
		tableColumns[2].label,
		issuedLabel,
		tableColumns[4].label,
		tableColumns[5].label,
	}
	cells := make([]string, len(labels))
	for i, label := range labels {
		cells[i] = pad(label, widths[i])
	}
	b.WriteString("  " + styles.TableHeader.Render(strings.Join(cells, "  ")))
	b.WriteString("\n")

	switch {
	case m.library.loading:
		b.WriteString("  " + styles.MutedText.Render("Loading ledger..."))
		b.WriteString("\n")
	case len(rows) == 0 && m.library.ledger.Query() != "":
		b.WriteString("  " + styles.MutedText.Render("No records match the search"))
		b.WriteString("\n")
	case len(rows) == 0:
		b.WriteString("  " + styles.MutedText.Render("The ledger is empty. Press a to add a record."))
		b.WriteString("\n")
	default:
		for i, book := range rows {
			line := formatRow(book, widths)
			if i == m.library.selected {
				b.WriteString("▸ " + styles.Selected.Render(line))
			} else {
				b.WriteString("  " + styles.Text.Render(line))
			}
			b.WriteString("\n")
		}
	}

	total := m.library.ledger.Len()
	counter := plural(len(rows), "record")
	if len(rows) != total {
		counter = counter + " of " + plural(total, "record")
	}
	b.WriteString("  " + styles.FaintText.Render(counter))
	return b.String()
}

func formatRow(book api.Book, widths []int) string {
	cells := []string{
		pad(truncate(book.Title, widths[0]), widths[0]),
		pad(truncate(book.Author, widths[1]), widths[1]),
		pad(truncate(book.Publisher, widths[2]), widths[2]),
		pad(truncate(orDash(book.IssueDate), widths[3]), widths[3]),
		pad(truncate(orDash(book.StudentName), widths[4]), widths[4]),
		pad(truncate(orDash(book.ReturnDate), widths[5]), widths[5]),
	}
	return strings.Join(cells, "  ")
}

func sortIndicator(order library.SortOrder) string {
	if order == library.SortAscending {
		return "▲"
	}
	return "▼"
}
