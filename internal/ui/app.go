package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/bookdesk/bookdesk/internal/api"
	"github.com/bookdesk/bookdesk/internal/prefs"
)

// View represents the current active screen. Screens are route-exclusive:
// exactly one is mounted at a time, so no state is shared between them.
type View int

const (
	ViewLogin View = iota
	ViewLibrary
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    api.BookService
	Logger    *zap.Logger
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    api.BookService
	logger    *zap.Logger
	prefsPath string

	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool

	currentView View
	showHelp    bool

	login   loginState
	library libraryState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Ink"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	library := newLibraryState()
	library.loading = true

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		logger:      logger,
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewLibrary,
		login:       newLoginState(),
		library:     library,
	}
}

// Init implements tea.Model. The root route is the library screen; the
// initial fetch decides whether the session is still good or the login
// screen must be shown instead.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		fetchBooksCmd(m.ctx, m.client),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.library.resize(msg.Width)
		m.login.resize(msg.Width)
		return m, nil

	case booksLoadedMsg:
		return m.handleBooksLoaded(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case bookSavedMsg:
		return m.handleBookSaved(msg)

	case bookDeletedMsg:
		return m.handleBookDeleted(msg)

	case logoutDoneMsg:
		// Logout always navigates home no matter what the server said;
		// the failure is recorded out of band.
		if msg.err != nil {
			m.logger.Warn("logout failed", zap.Error(msg.err))
		} else {
			m.logger.Info("logged out")
		}
		return m.navigateToLogin(), nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	switch m.currentView {
	case ViewLogin:
		return m.renderLogin()
	default:
		return m.renderLibrary()
	}
}

// handleKey routes keyboard input to the mounted screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		return m.handleLoginKey(msg)
	default:
		return m.handleLibraryKey(msg)
	}
}

// navigateToLogin resets to a blank login screen. Library state is dropped:
// the next successful login refetches everything from the server.
func (m Model) navigateToLogin() Model {
	m.currentView = ViewLogin
	m.login = newLoginState()
	m.login.resize(m.width)
	m.library = newLibraryState()
	m.library.resize(m.width)
	return m
}

// navigateToLibrary mounts the library screen and triggers a fresh fetch of
// the protected list, mirroring a full-page navigation after login.
func (m Model) navigateToLibrary() (Model, tea.Cmd) {
	m.currentView = ViewLibrary
	m.library = newLibraryState()
	m.library.resize(m.width)
	m.library.loading = true
	return m, fetchBooksCmd(m.ctx, m.client)
}

func (m Model) handleBooksLoaded(msg booksLoadedMsg) (tea.Model, tea.Cmd) {
	m.library.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrUnauthenticated) {
			// Silent redirect; the list stays empty.
			m.logger.Info("session expired, returning to login")
			return m.navigateToLogin(), nil
		}
		m.library.errMsg = "Could not load the ledger: " + msg.err.Error()
		m.logger.Error("list fetch failed", zap.Error(msg.err))
		return m, nil
	}
	m.library.errMsg = ""
	m.library.ledger.SetBooks(msg.books)
	m.library.clampSelection()
	return m, nil
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrInvalidCredentials) {
			m.login.errMsg = "Invalid username or password"
		} else {
			m.login.errMsg = "Server error, try again"
		}
		m.logger.Warn("login failed", zap.Error(msg.err))
		return m, nil
	}
	m.logger.Info("logged in", zap.String("username", m.login.username.Value()))
	return m.navigateToLibrary()
}

func (m Model) handleBookSaved(msg bookSavedMsg) (tea.Model, tea.Cmd) {
	m.library.ledger.EndMutation()
	if msg.err != nil {
		verb := "update"
		if msg.created {
			verb = "create"
		}
		m.library.errMsg = "Could not " + verb + " the record: " + msg.err.Error()
		m.logger.Error("mutation failed", zap.String("op", verb), zap.Error(msg.err))
		return m, nil
	}
	m.library.errMsg = ""
	if msg.created {
		m.library.ledger.Add(msg.book)
		m.library.form.reset()
		m.library.mode = modeBrowse
		m.library.selectBook(msg.book.ID)
	} else {
		m.library.ledger.Replace(msg.book)
		m.library.ledger.ClearEdit()
		m.library.mode = modeBrowse
		m.library.selectBook(msg.book.ID)
	}
	m.logger.Info("record saved", zap.Int64("id", msg.book.ID), zap.Bool("created", msg.created))
	return m, nil
}

func (m Model) handleBookDeleted(msg bookDeletedMsg) (tea.Model, tea.Cmd) {
	m.library.ledger.EndMutation()
	if msg.err != nil {
		m.library.errMsg = "Could not delete the record: " + msg.err.Error()
		m.logger.Error("delete failed", zap.Int64("id", msg.id), zap.Error(msg.err))
		return m, nil
	}
	m.library.errMsg = ""
	m.library.ledger.Remove(msg.id)
	m.library.clampSelection()
	m.logger.Info("record deleted", zap.Int64("id", msg.id))
	return m, nil
}

// cycleTheme switches to the next palette and persists the choice.
func (m Model) cycleTheme() Model {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
	}
	return m
}

// Messages

type booksLoadedMsg struct {
	books []api.Book
	err   error
}

type loginResultMsg struct {
	err error
}

type bookSavedMsg struct {
	book    api.Book
	created bool
	err     error
}

type bookDeletedMsg struct {
	id  int64
	err error
}

type logoutDoneMsg struct {
	err error
}

// Commands

func fetchBooksCmd(ctx context.Context, client api.BookService) tea.Cmd {
	return func() tea.Msg {
		books, err := client.ListBooks(ctx)
		return booksLoadedMsg{books: books, err: err}
	}
}

func loginCmd(ctx context.Context, client api.BookService, username, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: client.Login(ctx, username, password)}
	}
}

func createBookCmd(ctx context.Context, client api.BookService, draft api.Book) tea.Cmd {
	return func() tea.Msg {
		book, err := client.CreateBook(ctx, draft)
		return bookSavedMsg{book: book, created: true, err: err}
	}
}

func updateBookCmd(ctx context.Context, client api.BookService, id int64, draft api.Book) tea.Cmd {
	return func() tea.Msg {
		book, err := client.UpdateBook(ctx, id, draft)
		return bookSavedMsg{book: book, created: false, err: err}
	}
}

func deleteBookCmd(ctx context.Context, client api.BookService, id int64) tea.Cmd {
	return func() tea.Msg {
		return bookDeletedMsg{id: id, err: client.DeleteBook(ctx, id)}
	}
}

func logoutCmd(ctx context.Context, client api.BookService) tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: client.Logout(ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
