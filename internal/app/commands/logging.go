package commands

import (
	"context"
	"log/slog"
	"time"
)

// Logging records each dispatched command; failures are logged at warn level.
func Logging(logger *slog.Logger) Middleware {
	return func(next Bus) Bus {
		if logger == nil {
			return next
		}
		return BusFunc(func(ctx context.Context, cmd Command) (any, error) {
			start := time.Now()
			res, err := next.Dispatch(ctx, cmd)
			key := ""
			if cmd != nil {
				key = cmd.Key()
			}
			if err != nil {
				logger.WarnContext(ctx, "command rejected", "command", key, "duration", time.Since(start), "error", err)
				return res, err
			}
			logger.InfoContext(ctx, "command handled", "command", key, "duration", time.Since(start))
			return res, nil
		})
	}
}
