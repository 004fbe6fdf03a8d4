package keycalc

import "log/slog"

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger transitions are reported to at debug level.
// The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer sets the renderer called after every event.
func WithRenderer(r Renderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// WithState starts the session from st instead of the initial state.
//
// Example:
//
//	session := keycalc.NewSession(keycalc.WithState(keycalc.NewState().SetAngleUnit(keycalc.Degrees)))
func WithState(st State) Option {
	return func(s *Session) {
		s.state = st
	}
}
