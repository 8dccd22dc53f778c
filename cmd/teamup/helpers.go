package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	service "github.com/okian/teamup/internal/app"
	"github.com/okian/teamup/internal/config"
	"github.com/okian/teamup/internal/display"
	"github.com/okian/teamup/pkg/logger"
	"github.com/okian/teamup/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

// session is the per-invocation state handed to each subcommand.
type session struct {
	cfg  *config.Config
	svc  *service.Service
	mode display.Mode
	out  io.Writer
	log  logger.Logger
	file string
}

// withSession loads configuration, starts the service, runs fn, and then stops
// the service and dumps metrics when a metrics file is configured.
func withSession(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, s *session) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	mode, err := display.ParseMode(flags.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx, flags.config)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := service.New(
		service.WithLogger(log),
		service.WithConfig(cfg),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		err = errors.Join(err, svc.Stop(shutdownCtx))

		if cfg.MetricsFile != "" {
			if werr := metrics.WriteTextfile(cfg.MetricsFile); werr != nil {
				log.Error(ctx, "metrics dump failed", logger.String("path", cfg.MetricsFile), logger.Error(werr))
				err = errors.Join(err, werr)
			}
		}
	}()

	return fn(ctx, &session{
		cfg:  cfg,
		svc:  svc,
		mode: mode,
		out:  cmd.OutOrStdout(),
		log:  log,
		file: flags.file,
	})
}

// loadRoster fills the roster from --file, or from the data dir files.
func (s *session) loadRoster(ctx context.Context) error {
	if s.file != "" {
		_, err := s.svc.LoadFromCSV(ctx, s.file)
		return err
	}
	_, _, err := s.svc.LoadAutomatically(ctx)
	return err
}

// teamSize returns the flag value when set, else the configured default.
func (s *session) teamSize(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return s.cfg.TeamSize
}
