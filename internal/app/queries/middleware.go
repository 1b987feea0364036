package queries

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type busFunc func(ctx context.Context, q Query) (any, error)

func (f busFunc) Ask(ctx context.Context, q Query) (any, error) {
	return f(ctx, q)
}

// Logging records every query's key and duration. Failures matching one of
// expected (via errors.Is) are caller mistakes and logged at warn level; the
// rest are logged at error level.
func Logging(logger *slog.Logger, expected ...error) Middleware {
	return func(next Bus) Bus {
		if logger == nil {
			return next
		}
		return busFunc(func(ctx context.Context, q Query) (any, error) {
			start := time.Now()
			res, err := next.Ask(ctx, q)
			if err != nil {
				level := slog.LevelError
				if isExpected(err, expected) {
					level = slog.LevelWarn
				}
				logger.Log(ctx, level, "query failed", "query", keyOf(q), "duration", time.Since(start), "error", err)
				return res, err
			}
			logger.DebugContext(ctx, "query handled", "query", keyOf(q), "duration", time.Since(start))
			return res, nil
		})
	}
}

func isExpected(err error, expected []error) bool {
	for _, target := range expected {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func keyOf(q Query) string {
	if q == nil {
		return ""
	}
	return q.Key()
}
