// Package api provides an HTTP client for the book-lending server.
//
// # Overview
//
// The client wraps the server's small REST surface: form-encoded login,
// logout, and JSON CRUD over /api/books. The session is an opaque cookie
// set by /api/login; it lives in the http.Client's cookie jar and the rest
// of the application only ever observes its absence, either as an HTTP 401
// or as the legacy {"error": true} payload on the list endpoint. Both are
// normalized to ErrUnauthenticated.
//
// # Endpoints
//
//   - POST   /api/login       form-encoded username/password
//   - POST   /api/logout      body and status ignored by callers
//   - GET    /api/books       JSON array of Book, or {"error": true}
//   - POST   /api/books       create, server assigns the id
//   - PUT    /api/books/{id}  wholesale replace
//   - DELETE /api/books/{id}  response body ignored
//
// # Error Handling
//
// There are no retries and no internal timeouts beyond the client-wide
// request timeout. Transport failures and unexpected statuses are wrapped
// with fmt.Errorf and propagate to the caller, which decides the policy
// (inline message on the login screen, status-line notice in the library
// view). ErrInvalidCredentials and ErrUnauthenticated are sentinels meant
// for errors.Is.
//
// # Thread Safety
//
// Client is safe for concurrent use; in practice the UI issues at most one
// mutation at a time.
package api
