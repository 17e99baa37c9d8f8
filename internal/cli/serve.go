package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mergington/activityhub/internal/config"
	"github.com/mergington/activityhub/internal/handlers"
	"github.com/mergington/activityhub/internal/ingest"
	"github.com/mergington/activityhub/internal/star"
	"github.com/mergington/activityhub/internal/web"
)

// ServeOptions holds flags for the serve command. Flags override the
// config file and environment.
type ServeOptions struct {
	*RootOptions
	Addr     string
	DataFile string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the signup API server",
		Long: `Start the HTTP API over a fresh in-memory store.

If the configured data file exists it is loaded on startup; otherwise the
server starts empty and data arrives via POST /star-schema/load-excel or
the signup endpoint.

Example:
  activityhub serve
  activityhub serve --addr :9000 --data-file ./data/school_activities.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.DataFile, "data-file", "", "workbook to preload (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}
	if opts.DataFile != "" {
		cfg.DataFile = opts.DataFile
	}

	log := newLogger(cfg)

	st := star.New()
	preload(log, st, cfg.DataFile)

	app := handlers.NewApp(st, log, cfg.MaxUploadBytes)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.Router(app, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("activityhub listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	log.Info("server stopped")
	return nil
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

// preload fills the store from the configured workbook. A missing file or
// a partial load is logged and the server starts with whatever arrived.
func preload(log *logrus.Logger, st *star.Store, path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.WithField("path", path).Warn("data file not found, starting empty")
		return
	}

	report := ingest.NewLoader(st).LoadWorkbook(path)
	if err := report.Err(); err != nil {
		log.WithError(err).WithField("path", path).Warn("data file loaded with errors")
	}
	log.WithFields(logrus.Fields{
		"path":       path,
		"ingest_id":  report.ID,
		"students":   report.Students.Loaded,
		"activities": report.Activities.Loaded,
		"signups":    report.Signups.Loaded,
	}).Info("data file loaded")
}
