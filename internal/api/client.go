package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnauthenticated reports that the server rejected the request because no
// valid session cookie was presented. Callers treat it as "go to the login
// screen".
var ErrUnauthenticated = errors.New("not authenticated")

// ErrInvalidCredentials reports that the server refused a login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// BookService defines the operations the UI needs from the lending server.
// This interface is implemented by *Client and can be used for testing.
type BookService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	ListBooks(ctx context.Context) ([]Book, error)
	CreateBook(ctx context.Context, draft Book) (Book, error)
	UpdateBook(ctx context.Context, id int64, draft Book) (Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// Ensure Client implements BookService at compile time.
var _ BookService = (*Client)(nil)

// Client talks to the lending server HTTP API. The session cookie issued by
// /api/login lives in the client's cookie jar; Client itself holds no token.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServerBind = "127.0.0.1:8080"
	defaultUserAgent  = "bookdesk/0.1"
	requestTimeout    = 10 * time.Second
)

// NewClient builds a Client using the provided server host:port value.
func NewClient(server string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Login submits credentials as a form-encoded POST. A 2xx response means the
// session cookie is now in the jar. Any other HTTP status maps to
// ErrInvalidCredentials; transport failures are returned as-is so the caller
// can show a generic server error instead.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: "/api/login"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("login returned status %d: %w", resp.StatusCode, ErrInvalidCredentials)
	}
	return nil
}

// Logout ends the server session. The response body and status are ignored;
// the caller navigates to the login screen regardless, logging any error.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// ListBooks retrieves the full lending ledger. A payload of the form
// {"error": true} means the session is missing or expired and is reported as
// ErrUnauthenticated.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, &raw); err != nil {
		return nil, err
	}
	return decodeBookList(raw)
}

// CreateBook stores a new record. The draft's ID is ignored; the server
// assigns one and returns the canonical record.
func (c *Client) CreateBook(ctx context.Context, draft Book) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	draft.ID = 0
	var created Book
	if err := c.do(ctx, http.MethodPost, "/api/books", draft, &created); err != nil {
		return Book{}, err
	}
	return created, nil
}

// UpdateBook replaces the record with the given id wholesale and returns the
// server's canonical copy.
func (c *Client) UpdateBook(ctx context.Context, id int64, draft Book) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return Book{}, fmt.Errorf("book id required")
	}
	draft.ID = id
	var updated Book
	if err := c.do(ctx, http.MethodPut, "/api/books/"+strconv.FormatInt(id, 10), draft, &updated); err != nil {
		return Book{}, err
	}
	return updated, nil
}

// DeleteBook removes the record with the given id. The response body is
// ignored.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return fmt.Errorf("book id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/books/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("api %s returned status %d: %w", rel.Path, resp.StatusCode, ErrUnauthenticated)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeBookList handles the two shapes /api/books responds with: a JSON
// array of records, or an error-flagged object for missing sessions.
func decodeBookList(raw json.RawMessage) ([]Book, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var books []Book
		if err := json.Unmarshal(trimmed, &books); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return books, nil
	}
	var flagged struct {
		Error bool `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &flagged); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if flagged.Error {
		return nil, ErrUnauthenticated
	}
	return nil, fmt.Errorf("unexpected payload from /api/books")
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServerBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
