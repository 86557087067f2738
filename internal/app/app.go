package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"soldash/internal/config"
	"soldash/internal/dataset"
	"soldash/internal/server"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newLoader() *dataset.Loader {
	return dataset.NewLoader(a.Config.Data.Dir, a.Config.Data.MetadataFile, a.Logger)
}

// Serve runs the dashboard HTTP server until interrupted.
func (a *App) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(a.Config, a.Logger).HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", srv.Addr).Msg("dashboard listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Dataset string
	Limit   int
}

// ExportOptions hold parameters for exporting one tab's filtered view.
type ExportOptions struct {
	Tab        string
	CSVPath    string
	PNGPath    string
	Chart      string
	Categories []string
	TopN       int
}
