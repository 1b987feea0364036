package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentcal/internal/app/commands"
	calendarapp "rentcal/internal/app/handlers/calendar"
	"rentcal/internal/app/queries"
	"rentcal/internal/domain/booking"
	"rentcal/internal/infra/config"
	mongostore "rentcal/internal/infra/db/mongo"
	ginserver "rentcal/internal/infra/http/gin"
	"rentcal/internal/infra/obs"
	"rentcal/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger(getenv("APP_ENV", "dev"), "info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env, cfg.LogLevel)

	source, ready, closeSource, err := openSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("booking source unavailable", "source", cfg.BookingSource, "error", err)
		os.Exit(1)
	}
	defer closeSource()

	handlers := buildHandlers(cfg, source, logger)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "source", cfg.BookingSource)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildHandlers(cfg config.Config, source booking.Source, logger *slog.Logger) ginserver.Handlers {
	clock := calendarapp.Clock(time.Now)

	layout := &calendarapp.LayoutHandler{Source: source, Clock: clock, VisibleCap: cfg.VisibleCap, Logger: logger}
	day := &calendarapp.DayHandler{Source: source, VisibleCap: cfg.VisibleCap}
	views := &calendarapp.ViewHandlers{Views: memory.NewViewStore(), Clock: clock, DefaultWindow: cfg.WindowSize}

	queryBus := queries.NewInMemoryBus()
	calendarapp.RegisterQueries(queryBus, layout, day, views)
	commandBus := commands.NewInMemoryBus()
	calendarapp.RegisterViewCommands(commandBus, views)

	qb := queries.Chain(queryBus, queries.Logging(logger, calendarapp.ClientErrors...))
	cb := commands.Chain(commandBus, commands.Logging(logger))

	return ginserver.Handlers{
		Calendar: ginserver.CalendarHandler{Queries: qb, Clock: clock, DefaultWindow: cfg.WindowSize, Logger: logger},
		View:     ginserver.ViewHandler{Commands: cb, Queries: qb, Logger: logger},
	}
}

func openSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (booking.Source, func(context.Context) error, func(), error) {
	switch cfg.BookingSource {
	case config.SourceMongo:
		client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
		source := mongostore.NewBookingSource(client.DB, cfg.MongoCollection, logger)
		return source, client.Ping, closeFn, nil
	default:
		source := memory.NewBookingSource()
		bookings, rejected, err := memory.LoadBookingFixtures(cfg.FixturesPath)
		if err != nil {
			logger.Warn("booking fixtures load failed", "error", err, "path", cfg.FixturesPath)
		} else {
			source.Replace(bookings)
		}
		for _, r := range rejected {
			logger.Warn("booking fixture rejected", "error", r)
		}
		logger.Info("booking fixtures loaded", "count", source.Len(), "path", cfg.FixturesPath)
		return source, nil, func() {}, nil
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
