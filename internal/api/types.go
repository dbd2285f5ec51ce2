package api

import "time"

const isoDateLayout = "2006-01-02"

// Book mirrors one lending record as the server returns it. The ID is
// assigned by the server on creation; every other field is free text and may
// be empty. Dates travel as ISO strings ("2006-01-02").
type Book struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	IssueDate   string `json:"issueDate"`
	StudentName string `json:"studentName"`
	ReturnDate  string `json:"returnDate"`
}

// StringFields returns every free-text field of the record, in display
// order. Search matches against all of them.
func (b Book) StringFields() []string {
	return []string{b.Title, b.Author, b.Publisher, b.IssueDate, b.StudentName, b.ReturnDate}
}

// ParsedIssueDate returns the issue date as time.Time when possible.
// Missing or malformed dates return the zero time.
func (b Book) ParsedIssueDate() time.Time {
	return parseDate(b.IssueDate)
}

// ParsedReturnDate returns the return date as time.Time when possible.
func (b Book) ParsedReturnDate() time.Time {
	return parseDate(b.ReturnDate)
}

func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{isoDateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
