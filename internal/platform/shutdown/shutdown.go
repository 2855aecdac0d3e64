package shutdown

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

const DefaultGrace = 30 * time.Second

// NotifyContext is cancelled on SIGINT or SIGTERM.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// GraceContext bounds cleanup after the parent context is already done.
func GraceContext(grace time.Duration) (context.Context, context.CancelFunc) {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return context.WithTimeout(context.Background(), grace)
}
