// Package library holds the client-side state of the lending ledger.
//
// Ledger is the single owner of the in-memory book list for the lifetime of
// the library screen. Everything else is derived from it on demand: the
// filtered and sorted row set, the issue-date histogram, the one-record edit
// buffer. The package is deliberately free of I/O and of any terminal or
// navigation side effects so the whole of it is testable in isolation; the
// UI layer applies server responses and renders the views.
package library
