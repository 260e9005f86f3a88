// pkg/session/session.go
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sender issues a single CDP command over an attached debugging session and
// decodes the response into result. Params and result follow the shapes
// documented for the method; either may be nil.
type Sender interface {
	Send(ctx context.Context, method string, params, result any) error
}

// Session is one long-lived CDP debugging session bound to a single page
// target. It is created by a Registry and closed only through it.
type Session struct {
	id     string
	page   target.ID
	tabCtx context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// ID returns the correlation id assigned at attach time.
func (s *Session) ID() string { return s.id }

// Page returns the target this session is attached to.
func (s *Session) Page() target.ID { return s.page }

// Send executes one CDP command on the attached target.
func (s *Session) Send(ctx context.Context, method string, params, result any) error {
	if err := s.tabCtx.Err(); err != nil {
		return fmt.Errorf("session %s is closed: %w", s.id, err)
	}
	c := chromedp.FromContext(s.tabCtx)
	if c == nil || c.Target == nil {
		return fmt.Errorf("session %s has no attached target", s.id)
	}
	return c.Target.Execute(ctx, method, params, result)
}

func (s *Session) close() {
	s.logger.Debug("Detaching CDP session",
		zap.String("session_id", s.id),
		zap.String("page", string(s.page)))
	s.cancel()
}

// Registry owns at most one CDP session per page target. Sessions are
// created lazily on first request and live until detached or until the
// registry itself is closed.
type Registry struct {
	logger *zap.Logger
	parent context.Context

	mu       sync.Mutex
	sessions map[target.ID]*Session

	// attach is swappable so tests can observe cache behavior without a
	// live browser.
	attach func(page target.ID) (*Session, error)
}

// NewRegistry creates a registry whose sessions derive from parent, which
// must be a chromedp browser context.
func NewRegistry(parent context.Context, logger *zap.Logger) *Registry {
	r := &Registry{
		logger:   logger.Named("sessions"),
		parent:   parent,
		sessions: make(map[target.ID]*Session),
	}
	r.attach = r.attachTarget
	return r
}

// Session returns the cached session for page, attaching a new one on first
// use. Concurrent first requests for the same page attach exactly once.
func (r *Registry) Session(page target.ID) (Sender, error) {
	s, err := r.get(page)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Registry) get(page target.ID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[page]; ok {
		return s, nil
	}
	s, err := r.attach(page)
	if err != nil {
		return nil, fmt.Errorf("attach session for page %s: %w", page, err)
	}
	r.sessions[page] = s
	r.logger.Debug("Attached CDP session",
		zap.String("session_id", s.id),
		zap.String("page", string(page)))
	return s, nil
}

// Detach closes the session for page and drops it from the cache. It is a
// no-op when no session exists for the page.
func (r *Registry) Detach(page target.ID) {
	r.mu.Lock()
	s := r.sessions[page]
	delete(r.sessions, page)
	r.mu.Unlock()

	if s != nil {
		s.close()
	}
}

// Close detaches every cached session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[target.ID]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

// attachTarget opens a tab context for the target and attaches to it.
func (r *Registry) attachTarget(page target.ID) (*Session, error) {
	tabCtx, cancel := chromedp.NewContext(r.parent, chromedp.WithTargetID(page))
	// Run with no actions forces the attach so FromContext exposes the
	// target executor.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, err
	}
	return &Session{
		id:     uuid.NewString(),
		page:   page,
		tabCtx: tabCtx,
		cancel: cancel,
		logger: r.logger,
	}, nil
}
