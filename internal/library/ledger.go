package library

import (
	"sort"
	"strings"

	"github.com/bookdesk/bookdesk/internal/api"
)

// SortOrder selects the direction of the issue-date sort.
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// Bucket is one histogram column: an issue date and the number of records
// sharing it.
type Bucket struct {
	Date  string
	Count int
}

// Ledger owns the client's authoritative copy of the lending list together
// with its derived view state: search query, sort order, issue-date
// histogram, and the single-record edit buffer. It performs no I/O; the UI
// layer feeds it server responses and reads views back out.
//
// The histogram is rebucketed inside every mutator, so callers never
// recompute it themselves.
type Ledger struct {
	books     []api.Book
	query     string
	order     SortOrder
	histogram []Bucket

	editingID  int64
	editBuffer api.Book

	pending bool
}

// NewLedger returns an empty ledger sorted ascending.
func NewLedger() *Ledger {
	return &Ledger{}
}

// SetBooks replaces the authoritative list wholesale, as after a fresh fetch.
func (l *Ledger) SetBooks(books []api.Book) {
	l.books = cloneBooks(books)
	l.rebucket()
}

// Books returns a copy of the authoritative list in server order.
func (l *Ledger) Books() []api.Book {
	return cloneBooks(l.books)
}

// Len reports the size of the authoritative list.
func (l *Ledger) Len() int {
	return len(l.books)
}

// Add appends the canonical record returned by the server after a create.
func (l *Ledger) Add(book api.Book) {
	l.books = append(l.books, book)
	l.rebucket()
}

// Replace swaps the record with a matching id for the server's canonical
// copy. It reports whether a record was found.
func (l *Ledger) Replace(book api.Book) bool {
	for i := range l.books {
		if l.books[i].ID == book.ID {
			l.books[i] = book
			l.rebucket()
			return true
		}
	}
	return false
}

// Remove deletes the record with the given id after a confirmed server
// delete. It reports whether a record was found.
func (l *Ledger) Remove(id int64) bool {
	for i := range l.books {
		if l.books[i].ID == id {
			l.books = append(l.books[:i], l.books[i+1:]...)
			if l.editingID == id {
				l.ClearEdit()
			}
			l.rebucket()
			return true
		}
	}
	return false
}

// SetQuery updates the search query. Matching is case-folded substring.
func (l *Ledger) SetQuery(query string) {
	l.query = query
}

// Query returns the current search query.
func (l *Ledger) Query() string {
	return l.query
}

// Order returns the current sort direction.
func (l *Ledger) Order() SortOrder {
	return l.order
}

// ToggleSort flips the sort direction.
func (l *Ledger) ToggleSort() {
	if l.order == SortAscending {
		l.order = SortDescending
	} else {
		l.order = SortAscending
	}
}

// Filtered returns the visible rows: the authoritative list narrowed by the
// search query, then sorted by issue date. Records without an issue date
// rank after all dated records regardless of direction, keeping their
// relative order.
func (l *Ledger) Filtered() []api.Book {
	needle := strings.ToLower(l.query)
	rows := make([]api.Book, 0, len(l.books))
	for _, book := range l.books {
		if needle == "" || matches(book, needle) {
			rows = append(rows, book)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := rows[i].IssueDate, rows[j].IssueDate
		if di == "" && dj == "" {
			return false
		}
		if di == "" {
			return false
		}
		if dj == "" {
			return true
		}
		// ISO date strings order correctly as plain strings.
		if l.order == SortAscending {
			return di < dj
		}
		return di > dj
	})
	return rows
}

func matches(book api.Book, needle string) bool {
	for _, field := range book.StringFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Histogram returns the issue-date buckets ordered by date. Records without
// an issue date are excluded.
func (l *Ledger) Histogram() []Bucket {
	out := make([]Bucket, len(l.histogram))
	copy(out, l.histogram)
	return out
}

func (l *Ledger) rebucket() {
	counts := make(map[string]int)
	for _, book := range l.books {
		if book.IssueDate == "" {
			continue
		}
		counts[book.IssueDate]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for date, count := range counts {
		buckets = append(buckets, Bucket{Date: date, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	l.histogram = buckets
}

// StartEdit copies the record with the given id into the edit buffer. Only
// one record can be in edit mode at a time; starting a new edit replaces the
// previous buffer. It reports whether the record exists.
func (l *Ledger) StartEdit(id int64) bool {
	for _, book := range l.books {
		if book.ID == id {
			l.editingID = id
			l.editBuffer = book
			return true
		}
	}
	return false
}

// EditDraft returns the current edit buffer, if any.
func (l *Ledger) EditDraft() (api.Book, bool) {
	if l.editingID == 0 {
		return api.Book{}, false
	}
	return l.editBuffer, true
}

// SetEditDraft replaces the buffered field values. The buffered id is kept
// so the draft cannot drift to another record.
func (l *Ledger) SetEditDraft(draft api.Book) {
	if l.editingID == 0 {
		return
	}
	draft.ID = l.editingID
	l.editBuffer = draft
}

// EditingID returns the id of the record being edited, or zero.
func (l *Ledger) EditingID() int64 {
	return l.editingID
}

// ClearEdit discards the edit buffer.
func (l *Ledger) ClearEdit() {
	l.editingID = 0
	l.editBuffer = api.Book{}
}

// BeginMutation marks a server mutation as in flight. It reports false when
// one is already pending, blocking duplicate submissions.
func (l *Ledger) BeginMutation() bool {
	if l.pending {
		return false
	}
	l.pending = true
	return true
}

// EndMutation clears the in-flight flag once the server has answered.
func (l *Ledger) EndMutation() {
	l.pending = false
}

// Busy reports whether a mutation is in flight.
func (l *Ledger) Busy() bool {
	return l.pending
}

func cloneBooks(books []api.Book) []api.Book {
	if len(books) == 0 {
		return nil
	}
	dup := make([]api.Book, len(books))
	copy(dup, books)
	return dup
}
