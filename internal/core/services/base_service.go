package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/six_jars_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Sessions *SessionStore
	clock    func() time.Time
}

// ServiceOption configures the shared part of a service.
type ServiceOption func(*BaseService)

// WithClock overrides the time source, mainly for tests. The returned time's location is
// used for calendar bucketing.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// ClockIn returns a clock reporting the current time in loc.
func ClockIn(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func newBaseService(sessions *SessionStore, opts ...ServiceOption) BaseService {
	b := BaseService{Sessions: sessions, clock: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	return s.clock()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
