package daemon

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thejerf/suture/v4"
)

// Service is a named suture service.
type Service interface {
	String() string
	suture.Service
}

func newSupervisor(name string, logger *slog.Logger) *suture.Supervisor {
	return suture.New(name, suture.Spec{EventHook: eventHook(logger)})
}

func eventHook(logger *slog.Logger) suture.EventHook {
	return func(ei suture.Event) {
		switch e := ei.(type) {
		case suture.EventStopTimeout:
			logger.Warn("service failed to stop in time", "supervisor", e.SupervisorName, "service", e.ServiceName)
		case suture.EventServicePanic:
			logger.Error("service panicked", "service", e.ServiceName, "panic", e.PanicMsg, "stack", e.Stacktrace)
		case suture.EventServiceTerminate:
			logger.Error("service failed", "supervisor", e.SupervisorName, "service", e.ServiceName, "error", e.Err)
		case suture.EventBackoff:
			logger.Debug("too many service failures, backing off", "supervisor", e.SupervisorName)
		case suture.EventResume:
			logger.Debug("leaving backoff", "supervisor", e.SupervisorName)
		default:
			logger.Warn("unknown supervisor event", "type", int(e.Type()))
		}
	}
}

// add registers svc so that its non-context errors are not mistaken for
// shutdown; suture stops restarting a service that returns a context error.
func add(super *suture.Supervisor, svc Service) suture.ServiceToken {
	return super.Add(sanitized{Service: svc})
}

type sanitized struct {
	Service
}

func (s sanitized) Serve(ctx context.Context) error {
	return sanitizeError(ctx, s.Service.Serve(ctx))
}

func sanitizeError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.New(err.Error())
}

type serviceFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (s serviceFunc) String() string                  { return s.name }
func (s serviceFunc) Serve(ctx context.Context) error { return s.fn(ctx) }
