package library

import (
	"strings"
	"testing"

	"github.com/bookdesk/bookdesk/internal/api"
)

func sampleBooks() []api.Book {
	return []api.Book{
		{ID: 1, Title: "Мертвые души", Author: "Гоголь Н.В.", Publisher: "АСТ", IssueDate: "2024-01-05", StudentName: "Иванов И.И.", ReturnDate: ""},
		{ID: 2, Title: "War and Peace", Author: "Tolstoy", Publisher: "Penguin", IssueDate: "", StudentName: "", ReturnDate: ""},
		{ID: 3, Title: "Dune", Author: "Herbert", Publisher: "Ace", IssueDate: "2024-01-05", StudentName: "Smith", ReturnDate: "2024-02-01"},
		{ID: 4, Title: "Anna Karenina", Author: "Tolstoy", Publisher: "Penguin", IssueDate: "2023-11-20", StudentName: "Jones", ReturnDate: ""},
	}
}

func ids(books []api.Book) []int64 {
	out := make([]int64, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func equalIDs(got, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestFiltered_EmptyQueryKeepsEverything(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	if got := len(l.Filtered()); got != l.Len() {
		t.Fatalf("Filtered len = %d, want %d", got, l.Len())
	}
}

func TestFiltered_MatchesAnyStringFieldCaseInsensitive(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  []int64
	}{
		{"author_cyrillic_lowercase", "гоголь", []int64{1}},
		{"publisher", "penguin", []int64{4, 2}}, // id 4 has a date, sorts first
		{"title_mixed_case", "dUnE", []int64{3}},
		{"student", "smith", []int64{3}},
		{"date_substring", "2023", []int64{4}},
		{"no_match", "zebra", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			l.SetBooks(sampleBooks())
			l.SetQuery(tc.query)

			got := ids(l.Filtered())
			if !equalIDs(got, tc.want) {
				t.Fatalf("Filtered ids = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFiltered_EveryMatchContainsQuery(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())
	l.SetQuery("an")

	rows := l.Filtered()
	if len(rows) == 0 {
		t.Fatalf("expected matches for %q", "an")
	}
	for _, book := range rows {
		found := false
		for _, field := range book.StringFields() {
			if strings.Contains(strings.ToLower(field), "an") {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("book %d retained without a matching field", book.ID)
		}
	}
}

func TestFiltered_SortsByIssueDateWithAbsentDatesLast(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	got := ids(l.Filtered())
	want := []int64{4, 1, 3, 2} // ascending, dateless id 2 last, 1 before 3 (stable tie)
	if !equalIDs(got, want) {
		t.Fatalf("ascending ids = %v, want %v", got, want)
	}

	l.ToggleSort()
	got = ids(l.Filtered())
	want = []int64{1, 3, 4, 2} // descending, dateless still last
	if !equalIDs(got, want) {
		t.Fatalf("descending ids = %v, want %v", got, want)
	}

	l.ToggleSort()
	if l.Order() != SortAscending {
		t.Fatalf("Order = %v, want SortAscending after two toggles", l.Order())
	}
}

func TestFiltered_DatelessRecordStaysLastInBothDirections(t *testing.T) {
	l := NewLedger()
	l.SetBooks([]api.Book{
		{ID: 1, IssueDate: "2024-01-05"},
		{ID: 2, IssueDate: ""},
	})

	if got := ids(l.Filtered()); !equalIDs(got, []int64{1, 2}) {
		t.Fatalf("ascending ids = %v, want [1 2]", got)
	}
	l.ToggleSort()
	if got := ids(l.Filtered()); !equalIDs(got, []int64{1, 2}) {
		t.Fatalf("descending ids = %v, want [1 2] unchanged", got)
	}
}

func TestHistogram_BucketsCoverExactlyTheDatedRecords(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	buckets := l.Histogram()
	sum := 0
	for _, bucket := range buckets {
		if bucket.Date == "" {
			t.Fatalf("bucket with empty date: %+v", bucket)
		}
		sum += bucket.Count
	}

	dated := 0
	for _, book := range l.Books() {
		if book.IssueDate != "" {
			dated++
		}
	}
	if sum != dated {
		t.Fatalf("bucket sum = %d, want %d dated records", sum, dated)
	}

	// Buckets come out ordered by date.
	for i := 1; i < len(buckets); i++ {
		if buckets[i-1].Date >= buckets[i].Date {
			t.Fatalf("buckets out of order: %q before %q", buckets[i-1].Date, buckets[i].Date)
		}
	}
}

func TestHistogram_RecomputedOnEveryMutation(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	l.Add(api.Book{ID: 5, IssueDate: "2024-01-05"})
	if got := bucketCount(l, "2024-01-05"); got != 3 {
		t.Fatalf("bucket after add = %d, want 3", got)
	}

	l.Remove(3)
	if got := bucketCount(l, "2024-01-05"); got != 2 {
		t.Fatalf("bucket after remove = %d, want 2", got)
	}

	l.Replace(api.Book{ID: 5, IssueDate: "2024-03-01"})
	if got := bucketCount(l, "2024-03-01"); got != 1 {
		t.Fatalf("bucket after replace = %d, want 1", got)
	}
	if got := bucketCount(l, "2024-01-05"); got != 1 {
		t.Fatalf("old bucket after replace = %d, want 1", got)
	}
}

func bucketCount(l *Ledger, date string) int {
	for _, bucket := range l.Histogram() {
		if bucket.Date == date {
			return bucket.Count
		}
	}
	return 0
}

func TestAdd_NewRecordAppearsExactlyOnce(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	l.Add(api.Book{ID: 9, Title: "Solaris"})

	seen := 0
	for _, book := range l.Books() {
		if book.ID == 9 {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("record 9 appears %d times, want 1", seen)
	}
}

func TestReplace_SwapsCanonicalRecordByID(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	if !l.Replace(api.Book{ID: 2, Title: "War and Peace", Author: "Толстой Л.Н.", IssueDate: "2024-02-10"}) {
		t.Fatalf("Replace reported no match for id 2")
	}

	matches := 0
	for _, book := range l.Books() {
		if book.ID == 2 {
			matches++
			if book.Author != "Толстой Л.Н." || book.IssueDate != "2024-02-10" {
				t.Fatalf("record 2 = %+v, want server copy applied", book)
			}
		}
	}
	if matches != 1 {
		t.Fatalf("record 2 appears %d times, want 1", matches)
	}

	if l.Replace(api.Book{ID: 99}) {
		t.Fatalf("Replace reported a match for unknown id")
	}
}

func TestRemove_DeletesByIDAndClearsEdit(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	if !l.StartEdit(3) {
		t.Fatalf("StartEdit(3) reported no match")
	}
	if !l.Remove(3) {
		t.Fatalf("Remove(3) reported no match")
	}

	for _, book := range l.Books() {
		if book.ID == 3 {
			t.Fatalf("record 3 still present after remove")
		}
	}
	if _, ok := l.EditDraft(); ok {
		t.Fatalf("edit buffer survived removal of the edited record")
	}
	if l.Remove(3) {
		t.Fatalf("second Remove(3) reported a match")
	}
}

func TestEditBuffer_CopiesAndKeepsID(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	if l.StartEdit(42) {
		t.Fatalf("StartEdit(42) reported a match for unknown id")
	}
	if !l.StartEdit(1) {
		t.Fatalf("StartEdit(1) reported no match")
	}

	draft, ok := l.EditDraft()
	if !ok || draft.ID != 1 || draft.Author != "Гоголь Н.В." {
		t.Fatalf("EditDraft = %+v ok=%v, want copy of record 1", draft, ok)
	}

	// Mutating the draft does not touch the authoritative list, and the id
	// cannot be redirected.
	draft.Author = "Другой автор"
	draft.ID = 7
	l.SetEditDraft(draft)

	draft, _ = l.EditDraft()
	if draft.ID != 1 {
		t.Fatalf("draft id = %d, want pinned to 1", draft.ID)
	}
	for _, book := range l.Books() {
		if book.ID == 1 && book.Author != "Гоголь Н.В." {
			t.Fatalf("authoritative record changed before save: %+v", book)
		}
	}

	l.ClearEdit()
	if _, ok := l.EditDraft(); ok {
		t.Fatalf("EditDraft ok after ClearEdit, want cleared")
	}
	if l.EditingID() != 0 {
		t.Fatalf("EditingID = %d after ClearEdit, want 0", l.EditingID())
	}
}

func TestStartEdit_SecondEditReplacesBuffer(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	l.StartEdit(1)
	l.StartEdit(2)

	draft, ok := l.EditDraft()
	if !ok || draft.ID != 2 {
		t.Fatalf("EditDraft id = %d ok=%v, want buffer switched to 2", draft.ID, ok)
	}
}

func TestMutationGuard_BlocksConcurrentSubmissions(t *testing.T) {
	l := NewLedger()

	if !l.BeginMutation() {
		t.Fatalf("first BeginMutation = false, want true")
	}
	if l.BeginMutation() {
		t.Fatalf("second BeginMutation = true, want blocked")
	}
	if !l.Busy() {
		t.Fatalf("Busy = false while mutation pending")
	}

	l.EndMutation()
	if l.Busy() {
		t.Fatalf("Busy = true after EndMutation")
	}
	if !l.BeginMutation() {
		t.Fatalf("BeginMutation after EndMutation = false, want true")
	}
}

func TestBooks_ReturnsACopy(t *testing.T) {
	l := NewLedger()
	l.SetBooks(sampleBooks())

	books := l.Books()
	books[0].Title = "scribbled over"

	if l.Books()[0].Title == "scribbled over" {
		t.Fatalf("Books returned a view into internal state")
	}
}
