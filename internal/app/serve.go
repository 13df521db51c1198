package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"fx-valuation/internal/server"
)

// Serve runs the HTTP API until SIGINT/SIGTERM.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := a.Config.Server
	addr := cfg.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	srv := server.New(server.Options{
		Addr:            addr,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		AllowOrigins:    cfg.AllowOrigins,
		Scenario:        a.scenario(ScenarioOverrides{}),
		Weights:         a.Config.Signal.Weights(),
		IncludeIFE:      a.Config.Signal.IncludeIFE,
	}, a.Logger)

	a.Logger.Info().Msg("starting http api")
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("http api terminated with error")
		return err
	}

	a.Logger.Info().Msg("http api stopped")
	return nil
}
