package keycalc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/toejough/keycalc/internal/engine"
)

// ErrRender is returned by Dispatch when the renderer fails. The state the
// renderer was given has already been committed.
var ErrRender = errors.New("render failed")

// Renderer presents a state. It is called with the full state after every
// event a Session applies.
type Renderer interface {
	Render(s State) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(s State) error

// Render calls f.
func (f RendererFunc) Render(s State) error {
	return f(s)
}

// Session owns the current state of one interactive calculator and applies
// events to it one at a time.
type Session struct {
	mu       sync.Mutex
	state    State
	renderer Renderer
	logger   *slog.Logger
}

// NewSession creates a session at the initial state.
func NewSession(options ...Option) *Session {
	session := &Session{
		state:  engine.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(session)
	}

	return session
}

// Dispatch applies events in order and returns the resulting state. Each
// event is rendered as it is applied; the first render failure stops the
// batch and is returned wrapped in ErrRender.
func (s *Session) Dispatch(events ...Event) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		s.state = engine.Apply(s.state, e)
		s.logger.Debug("applied event", "event", e, "display", s.state.Display())

		if err := s.render(); err != nil {
			return s.state, err
		}
	}

	return s.state, nil
}

// Reset returns the session to its initial state, memory and modes included.
func (s *Session) Reset() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = engine.New()
	s.logger.Debug("session reset")

	return s.state, s.render()
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// render must be called with s.mu held.
func (s *Session) render() error {
	if s.renderer == nil {
		return nil
	}

	if err := s.renderer.Render(s.state); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	return nil
}
