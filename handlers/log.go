package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/ouch"
	"github.com/dmitrymomot/ouch/core/logger"
)

// defaultLogFrames is the number of frames attached to a log entry.
const defaultLogFrames = 5

// LogHandler writes one structured log entry per error and passes control on without output.
type LogHandler struct {
	log    *slog.Logger
	frames int
	level  func(code int) slog.Level
}

// LogOption configures a LogHandler.
type LogOption func(*LogHandler)

// WithLogFrames sets how many frames are logged. Zero or less logs all of them.
func WithLogFrames(n int) LogOption {
	return func(h *LogHandler) { h.frames = n }
}

// WithLogLevel chooses the level from the status code.
// By default client errors (4xx) are logged at warn and everything else at error.
func WithLogLevel(fn func(code int) slog.Level) LogOption {
	return func(h *LogHandler) {
		if fn != nil {
			h.level = fn
		}
	}
}

// NewLogHandler creates a log handler. A nil logger means slog.Default().
func NewLogHandler(log *slog.Logger, opts ...LogOption) *LogHandler {
	if log == nil {
		log = slog.Default()
	}
	h := &LogHandler{
		log:    log,
		frames: defaultLogFrames,
		level:  defaultLogLevel,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle implements ouch.Handler.
func (h *LogHandler) Handle(s *ouch.Scope, next ouch.Next) {
	insp := s.Inspector()
	code := insp.Code()

	attrs := []slog.Attr{
		logger.Component("ouch"),
		logger.IncidentID(insp.ID()),
		logger.StatusCode(code),
		logger.ExceptionName(insp.ExceptionName()),
		logger.Error(insp.Exception()),
		logger.Frames(insp.Frames(), h.frames),
	}
	if r := s.Request(); r != nil {
		attrs = append(attrs,
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.UserAgent(r.UserAgent()),
			logger.RequestID(r.Header.Get("X-Request-ID")),
		)
	}

	h.log.LogAttrs(s.Context(), h.level(code), insp.ExceptionMessage(), attrs...)
	next(nil, ouch.Continue)
}

func defaultLogLevel(code int) slog.Level {
	if code < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}
