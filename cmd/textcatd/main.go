package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/textcat/internal/config"
	"github.com/dmitrymomot/textcat/internal/handlers"
	"github.com/dmitrymomot/textcat/internal/jobs"
	"github.com/dmitrymomot/textcat/internal/reporter"
	"github.com/dmitrymomot/textcat/internal/server"
	"github.com/dmitrymomot/textcat/migrations"
	"github.com/dmitrymomot/textcat/pkg/db"
	"github.com/dmitrymomot/textcat/pkg/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("service failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(cfg.Sentry).With(
		slog.String("app", cfg.AppName),
		slog.String("env", cfg.Environment),
	)

	cat, err := config.BuildCatalog(cfg)
	if err != nil {
		return err
	}
	log.Info("catalog loaded",
		slog.String("path", cfg.MessagesPath),
		slog.Int("labels", len(cat.ListLabels())),
	)

	repCfg, err := reporter.FromFiles(cfg.QueriesPath, cfg.CSVConfigsPath)
	if err != nil {
		return err
	}

	manager := jobs.NewManager(log)

	opts := []handlers.Option{
		handlers.WithReporterConfig(repCfg),
		handlers.WithJobManager(manager),
	}
	var serverOpts []server.Option

	if cfg.DB.Enabled() {
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return err
		}
		if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
			pool.Close()
			return err
		}
		opts = append(opts,
			handlers.WithAdapter(reporter.NewPGAdapter(pool)),
			handlers.WithReadinessCheck("database", pool.Ping),
		)
		serverOpts = append(serverOpts, server.WithShutdownHook(db.Shutdown(pool)))
	} else {
		log.Info("no database configured, report endpoints disabled")
	}

	svc := handlers.New(cfg, cat, log, opts...)

	if cfg.ReloadSchedule != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.ReloadSchedule, func() {
			if err := svc.ReloadCatalog(); err != nil {
				log.Error("scheduled catalog reload failed", slog.Any("error", err))
			}
		}); err != nil {
			return err
		}
		scheduler.Start()
		serverOpts = append(serverOpts, server.WithShutdownHook(func(ctx context.Context) error {
			<-scheduler.Stop().Done()
			return nil
		}))
	}

	serverOpts = append(serverOpts,
		server.WithLogger(log),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
		server.WithShutdownHook(manager.Drain),
	)

	return server.New(cfg.HTTPAddr, svc.Router(), serverOpts...).Run(ctx)
}
