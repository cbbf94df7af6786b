package charity

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// contextKey is used to safely store values in the context without
// collisions with other packages.
type contextKey int

const (
	contextKeyLogger contextKey = iota
	contextKeyCaller
	contextKeyEvents
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// WithLogger sets the logger for this context.
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another context like this,
// after passing all the keyvals to the Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx context.Context) log.Logger {
	if l, ok := ctx.Value(contextKeyLogger).(log.Logger); ok && l != nil {
		return l
	}
	return DefaultLogger
}

// WithCaller returns a context carrying the identity that requested the
// current operation. Each call overwrites the previous value, so that an
// extension may act on behalf of its own identity when calling another
// extension.
func WithCaller(ctx context.Context, caller Address) context.Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the identity that requested the current operation. It
// returns nil if none was set.
func GetCaller(ctx context.Context) Address {
	a, _ := ctx.Value(contextKeyCaller).(Address)
	return a
}
