// Package ui implements the bookdesk terminal interface with Bubble Tea.
//
// # Screens
//
// There are two route-exclusive screens. The login screen is a two-field
// credential form; submitting moves it through idle → submitting → either
// an inline error or a switch to the library screen with a fresh list
// fetch. The library screen is the CRUD table over the lending ledger plus
// the issue-date histogram, with four input modes: browse (selection and
// single-key actions), search (the query filters on every keystroke), and
// the add/edit form.
//
// # Data flow
//
// All state transitions happen in Update on the program goroutine. Server
// calls run as tea.Cmd functions and come back as messages; responses are
// merged into the library.Ledger and the derived views are re-rendered from
// it. Navigation between screens is an explicit model transition
// (navigateToLogin, navigateToLibrary) rather than a side effect buried in
// the fetch path, so the core logic stays testable.
//
// A mutation in flight parks the ledger's pending flag; the form and the
// delete key refuse to start a second one until the response lands. Failed
// mutations surface on the status line and leave local state untouched.
package ui
