package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/edulearn/core"
)

// Logger records logged messages.
type Logger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

// Levels returns the levels of the recorded entries, in order.
func (l *Logger) Levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	levels := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		levels = append(levels, e.Level)
	}
	return levels
}

// Notifier records toasts and loading state changes.
type Notifier struct {
	mu           sync.Mutex
	Toasts       []Toast
	LoadingCalls []bool
}

type Toast struct {
	Kind core.ToastKind
	Msg  string
}

var _ core.Notifier = (*Notifier)(nil)

func (n *Notifier) Toast(kind core.ToastKind, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Toasts = append(n.Toasts, Toast{Kind: kind, Msg: msg})
}

func (n *Notifier) Loading(show bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.LoadingCalls = append(n.LoadingCalls, show)
}

// LastToast returns the most recent toast.
func (n *Notifier) LastToast() (Toast, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Toasts) == 0 {
		return Toast{}, false
	}
	return n.Toasts[len(n.Toasts)-1], true
}

// Request is a request received by the fake Backend.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	Body          string
}

// Backend is a fake EduLearn REST API serving canned responses.
type Backend struct {
	Server *httptest.Server
	Echo   *echo.Echo

	mu       sync.Mutex
	requests []Request
}

// NewBackend starts a fake backend, closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{Echo: echo.New()}
	b.Echo.HideBanner = true
	b.Echo.Use(b.record)
	b.Echo.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = fmt.Sprint(he.Message)
		}
		_ = c.JSON(code, echo.Map{"message": msg})
	}
	b.Server = httptest.NewServer(b.Echo)
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the API base URL.
func (b *Backend) URL() string {
	return b.Server.URL + "/api"
}

func (b *Backend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(strings.NewReader(string(body)))
		}
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        req.Method,
			Path:          req.URL.Path,
			Query:         req.URL.RawQuery,
			Authorization: req.Header.Get(echo.HeaderAuthorization),
			RequestID:     req.Header.Get(echo.HeaderXRequestID),
			Body:          strings.TrimSpace(string(body)),
		})
		b.mu.Unlock()
		return next(c)
	}
}

// Handle registers a handler for `method` on `path` under /api.
func (b *Backend) Handle(method, path string, h echo.HandlerFunc) {
	b.Echo.Add(method, "/api"+path, h)
}

// JSON registers a canned JSON response. `body` is a JSON document.
func (b *Backend) JSON(method, path string, status int, body string) {
	b.Handle(method, path, func(c echo.Context) error {
		return c.Blob(status, echo.MIMEApplicationJSONCharsetUTF8, []byte(body))
	})
}

// Requests returns the requests received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// LastRequest returns the most recent request.
func (b *Backend) LastRequest(t *testing.T) Request {
	t.Helper()
	reqs := b.Requests()
	if len(reqs) == 0 {
		t.Fatal("backend received no request")
	}
	return reqs[len(reqs)-1]
}

// Find returns the requests with `method` on `path`.
func (b *Backend) Find(method, path string) []Request {
	var found []Request
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			found = append(found, r)
		}
	}
	return found
}

// StaticToken is a fixed token source.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }
