package cmd

import (
	"context"
	"fmt"

	"catalog-reconciler/core/config"
	"catalog-reconciler/core/database"
	"catalog-reconciler/core/jobs"
	"catalog-reconciler/core/logger"
	"catalog-reconciler/core/metrics"
	"catalog-reconciler/core/priority"
	"catalog-reconciler/core/reconcile"
	"catalog-reconciler/core/replacement"
	"catalog-reconciler/core/storage"
	"catalog-reconciler/feature/catalog"
	"catalog-reconciler/feature/snapshot"
	"catalog-reconciler/feature/vendorsync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	metrics  *metrics.Metrics
	vendors  *catalog.VendorStore
	registry *priority.Registry
	engine   *reconcile.Engine
	runner   *vendorsync.Runner

	closers []func() error
}

// bootstrap loads the configuration, connects the database and wires the
// reconciliation core. reg may be nil when metrics are not served.
func bootstrap(ctx context.Context, reg prometheus.Registerer) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &app{cfg: cfg, logger: l, db: db}
	if reg != nil {
		a.metrics = metrics.New(reg)
	}

	a.vendors = catalog.NewVendorStore(db)
	a.registry = priority.NewRegistry(a.vendors, l,
		priority.WithTTL(cfg.Sync.PriorityCacheTTL()),
		priority.WithMetrics(a.metrics),
	)
	decider := replacement.NewEngine(a.registry, l)
	a.engine = reconcile.NewEngine(catalog.NewProductStore(db), catalog.NewMappingStore(db), decider, l,
		reconcile.WithMetrics(a.metrics),
	)

	snapshots, err := a.snapshotStore(ctx)
	if err != nil {
		return nil, err
	}

	guard, closeGuard, err := jobs.NewGuard(cfg.Guard)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeGuard)

	delimiter, err := cfg.Sync.DelimiterRune()
	if err != nil {
		return nil, err
	}
	a.runner = vendorsync.NewRunner(guard, snapshots, vendorsync.NewHeaderMapper(delimiter, nil), a.engine, l,
		vendorsync.WithMetrics(a.metrics),
	)

	return a, nil
}

func (a *app) snapshotStore(ctx context.Context) (snapshot.Store, error) {
	if a.cfg.Sync.SnapshotBackend != "s3" {
		return snapshot.NewFileStore(a.cfg.Sync.SnapshotDir), nil
	}

	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, a.cfg.Storage.Bucket, a.cfg.Storage.Region); err != nil {
		return nil, err
	}
	return snapshot.NewObjectStore(client, a.cfg.Storage.Bucket, a.cfg.Sync.SnapshotPrefix), nil
}

// checkSchema refuses to run against a database missing catalog columns.
func (a *app) checkSchema() error {
	issues, err := catalog.CheckSchema(a.db)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	for _, issue := range issues {
		a.logger.Error("Catalog table is missing columns",
			zap.String("table", issue.Table),
			zap.Strings("missing", issue.Missing),
		)
	}
	if len(issues) > 0 {
		return fmt.Errorf("catalog schema is incomplete, run the migrate command")
	}
	return nil
}

func (a *app) close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}
