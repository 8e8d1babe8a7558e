package service

import (
	"context"
	"log/slog"
	"time"
)

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name     string
	UserID   string
	Success  bool
	Err      error
	Duration time.Duration
	Fields   map[string]any
}

// UseCaseObserver is told about every mission, note and session use case.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver drops events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs failures at error level and everything else at
// debug level.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger.With("component", "service")}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, e UseCaseEvent) {
	attrs := []any{
		"use_case", e.Name,
		"user_id", e.UserID,
		"duration_ms", e.Duration.Milliseconds(),
	}
	for k, v := range e.Fields {
		attrs = append(attrs, k, v)
	}
	if e.Err != nil {
		o.logger.ErrorContext(ctx, "use case failed", append(attrs, "error", e.Err)...)
		return
	}
	o.logger.DebugContext(ctx, "use case done", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe times a use case; defer the returned func with a pointer to the
// named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any) func(err *error) {
	start := time.Now()
	return func(err *error) {
		userID, _ := UserIDFromContext(ctx)
		e := UseCaseEvent{Name: name, UserID: userID, Duration: time.Since(start), Fields: fields}
		if err != nil {
			e.Err = *err
		}
		e.Success = e.Err == nil
		obs.ObserveUseCase(ctx, e)
	}
}
