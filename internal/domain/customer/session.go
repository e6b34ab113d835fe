package customer

import (
	"context"
	"isp-billing/internal/infrastructure/monitoring"
	"log/slog"
	"slices"
	"sync"
	"time"
)

type ViewState string

const (
	ViewPage  ViewState = "page"
	ViewEmpty ViewState = "empty"
	ViewError ViewState = "error"
)

// View keeps the most recent render so it can be served after the fact.
type View struct {
	State     ViewState
	Records   []Customer
	Page      int
	PageCount int
	Err       error
}

var _ RenderSink = (*View)(nil)

func (v *View) RenderPage(records []Customer, page, pageCount int) {
	*v = View{State: ViewPage, Records: slices.Clone(records), Page: page, PageCount: pageCount}
}

func (v *View) RenderEmpty(page, pageCount int) {
	*v = View{State: ViewEmpty, Records: []Customer{}, Page: page, PageCount: pageCount}
}

func (v *View) RenderError(err error) {
	*v = View{State: ViewError, Records: []Customer{}, Err: err}
}

// Session pairs a ListController with the View it renders into.
type Session struct {
	mu       sync.Mutex
	ctrl     *ListController
	view     *View
	loaded   bool
	lastUsed time.Time
}

// Do runs fn against the session's controller with exclusive access and
// returns the view as it stands afterwards. The working set is loaded on first
// use and again on every call until a load succeeds.
func (s *Session) Do(ctx context.Context, fn func(*ListController) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.ctrl.Load(ctx); err == nil {
			s.loaded = true
		}
	}

	var err error
	if fn != nil {
		err = fn(s.ctrl)
	}
	return *s.view, err
}

// Sessions holds one list session per administrator.
type Sessions struct {
	mu       sync.Mutex
	source   DataSource
	opts     ListOptions
	logger   *slog.Logger
	now      func() time.Time
	sessions map[string]*Session
}

func NewSessions(source DataSource, opts ListOptions, logger *slog.Logger) *Sessions {
	if source == nil {
		panic("customer data source cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		source:   source,
		opts:     opts,
		logger:   logger.With(slog.String("component", "Sessions")),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for userID, creating it if needed.
func (r *Sessions) Get(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok {
		view := &View{}
		s = &Session{
			ctrl: NewListController(r.source, view, r.opts, r.logger.With(slog.String("userID", userID))),
			view: view,
		}
		r.sessions[userID] = s
		monitoring.SetListSessions(len(r.sessions))
		r.logger.Debug("Opened list session", slog.String("userID", userID))
	}
	s.lastUsed = r.now()
	return s
}

func (r *Sessions) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; ok {
		delete(r.sessions, userID)
		monitoring.SetListSessions(len(r.sessions))
		r.logger.Debug("Closed list session", slog.String("userID", userID))
	}
}

// Sweep closes sessions unused for longer than maxIdle and reports how many
// were closed.
func (r *Sessions) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	closed := 0
	for userID, s := range r.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(r.sessions, userID)
			closed++
		}
	}
	monitoring.SetListSessions(len(r.sessions))
	return closed
}

func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
