package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/jonathan/jobpilot/internal/applications"
	"github.com/jonathan/jobpilot/internal/backend"
	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/coordinator"
	"github.com/jonathan/jobpilot/internal/dashboard"
	"github.com/jonathan/jobpilot/internal/discovery"
	"github.com/jonathan/jobpilot/internal/observability"
	"github.com/jonathan/jobpilot/internal/profile"
	"github.com/jonathan/jobpilot/internal/session"
)

// withApp assembles the components for one session, starts the lifecycle,
// runs fn and stops everything again. targets are pointers filled by fx.
func withApp(ctx context.Context, cfg *config.Config, fn func(ctx context.Context) error, targets ...any) error {
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			observability.NewLogger,
			backend.New,
			session.New,
			sessionViews,
			profile.NewManager,
			discovery.NewClient,
			coordinator.New,
			applications.NewCache,
			dashboard.New,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx").WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		fx.Invoke(registerLifecycle),
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to assemble application: %w", err)
	}

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	runErr := fn(ctx)

	if err := app.Stop(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop: %w", err)
	}
	return runErr
}

// sessionViews hands each component only its side of the shared session:
// the profile manager is the one writer of the active email.
func sessionViews(sess *session.Session) (
	session.EmailWriter,
	discovery.Session,
	coordinator.Session,
	applications.Session,
) {
	return sess, sess, sess, sess
}

// registerLifecycle wires tracing and logger flushing into the fx lifecycle.
func registerLifecycle(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger, sess *session.Session) {
	var shutdownTracer observability.ShutdownFunc

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Debug("session started",
				zap.String("session_id", sess.ID.String()),
				zap.String("backend_url", cfg.BackendURL))
			if !cfg.TracingEnabled() {
				return nil
			}
			shutdown, err := observability.InitTracer(ctx, cfg)
			if err != nil {
				// tracing is optional; keep going without it
				logger.Warn("tracing disabled", zap.Error(err))
				return nil
			}
			shutdownTracer = shutdown
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdownTracer != nil {
				if err := shutdownTracer(ctx); err != nil {
					logger.Warn("tracer shutdown failed", zap.Error(err))
				}
			}
			_ = logger.Sync()
			return nil
		},
	})
}
