package reconcile

import (
	"context"
	"time"

	"catalog-reconciler/core/errors"
	"catalog-reconciler/core/metrics"
	"catalog-reconciler/core/priority"

	"go.uber.org/zap"
)

// Engine runs the bulk reconciliation procedure.
type Engine struct {
	products ProductStore
	mappings MappingStore
	decider  Decider
	logger   *zap.Logger
	metrics  *metrics.Metrics
	extract  ExtractFunc
	now      func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithExtractor replaces ExtractMapping.
func WithExtractor(fn ExtractFunc) EngineOption {
	return func(e *Engine) { e.extract = fn }
}

// WithClock injects the time source stamped on written mappings.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithMetrics records row outcomes.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates an Engine. A nil decider disables master-record overwrites.
func NewEngine(products ProductStore, mappings MappingStore, decider Decider, logger *zap.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		products: products,
		mappings: mappings,
		decider:  decider,
		logger:   logger,
		extract:  ExtractMapping,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// keyedRow is a row with its normalized UPC.
type keyedRow struct {
	upc     string
	row     VendorRow
	dropped bool
}

// Plan computes the writes for rows without executing them.
func (e *Engine) Plan(ctx context.Context, vendor string, scope Scope, rows []VendorRow, opts Options) (*Plan, error) {
	vendor, err := priority.NormalizeSlug(vendor)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Vendor: vendor, Scope: scope}
	l := e.logger.With(zap.String("vendor", vendor), zap.String("scope", scope.String()))

	// Step 1: natural keys. The last row of a duplicated UPC wins.
	keyed := make([]keyedRow, 0, len(rows))
	latest := make(map[string]int, len(rows))
	for _, row := range rows {
		upc, err := NormalizeUPC(row.UPC)
		if err != nil {
			l.Debug("Skipping row without usable UPC", zap.Int("line", row.Line), zap.Error(err))
			plan.Stats.RecordsSkipped++
			continue
		}
		if idx, dup := latest[upc]; dup {
			keyed[idx].dropped = true
			plan.Stats.RecordsSkipped++
		}
		latest[upc] = len(keyed)
		keyed = append(keyed, keyedRow{upc: upc, row: row})
	}
	if len(latest) == 0 {
		return plan, nil
	}

	upcs := make([]string, 0, len(latest))
	for _, kr := range keyed {
		if !kr.dropped {
			upcs = append(upcs, kr.upc)
		}
	}

	// Step 2: one bulk read of the master products.
	products, err := e.products.FindByUPCs(ctx, upcs)
	if err != nil {
		return nil, errors.NewBackingStoreError("find master products", err)
	}
	if len(products) == 0 {
		plan.Stats.RecordsSkipped += len(upcs)
		l.Info("No master products matched the changed rows", zap.Int("rows", len(upcs)))
		return plan, nil
	}

	// Step 4: one bulk read of the vendor's mappings in scope.
	existing, err := e.mappings.FindByVendor(ctx, vendor, scope)
	if err != nil {
		return nil, errors.NewBackingStoreError("find vendor mappings", err)
	}

	now := e.now()
	for _, kr := range keyed {
		if kr.dropped {
			continue
		}

		// Step 3: pricing feeds never create master products.
		product, ok := products[kr.upc]
		if !ok {
			plan.Stats.RecordsSkipped++
			continue
		}

		// Step 5: compare candidate fields with the stored mapping.
		fields, err := e.extract(kr.row)
		if err != nil {
			l.Warn("Failed to extract mapping fields",
				zap.Int("line", kr.row.Line),
				zap.String("upc", kr.upc),
				zap.Error(err),
			)
			plan.Stats.RecordsErrors++
			continue
		}

		current, found := existing[product.ID]
		switch {
		case !found:
			plan.Inserts = append(plan.Inserts, Mapping{
				ProductID:       product.ID,
				VendorSlug:      vendor,
				CompanyID:       scope.CompanyID,
				Fields:          fields,
				LastPriceUpdate: now,
			})
		case !current.Fields.Equal(fields):
			current.Fields = fields
			current.LastPriceUpdate = now
			plan.Updates = append(plan.Updates, current)
		default:
			plan.Stats.RecordsSkipped++
		}

		if update, ok := e.planMaster(ctx, l, vendor, product, kr.row, opts); ok {
			plan.Masters = append(plan.Masters, update)
		}
	}

	plan.Stats.RecordsAdded = len(plan.Inserts)
	plan.Stats.RecordsUpdated = len(plan.Updates)
	plan.Stats.MastersUpdated = len(plan.Masters)
	return plan, nil
}

// planMaster asks the decider about a row's master-record proposal. Proposals
// that would not change any stored field are ignored.
func (e *Engine) planMaster(ctx context.Context, l *zap.Logger, vendor string, product MasterProduct, row VendorRow, opts Options) (MasterUpdate, bool) {
	if e.decider == nil || row.Master == nil || row.Master.IsZero() {
		return MasterUpdate{}, false
	}

	merged := mergeMaster(product.Fields, *row.Master)
	if merged == product.Fields {
		return MasterUpdate{}, false
	}

	candidate := MasterProduct{ID: product.ID, UPC: product.UPC, Source: vendor, Fields: merged}
	replace, err := e.decider.ShouldReplace(ctx, product, candidate, vendor, opts.ManualOverride)
	if err != nil {
		l.Warn("Replacement decision failed", zap.String("upc", product.UPC), zap.Error(err))
		return MasterUpdate{}, false
	}
	if !replace {
		return MasterUpdate{}, false
	}
	return MasterUpdate{ProductID: product.ID, UPC: product.UPC, Source: vendor, Fields: merged}, true
}

// Apply executes a plan: inserts, then the update transaction, then master
// overwrites. The returned stats only count writes that succeeded.
func (e *Engine) Apply(ctx context.Context, plan *Plan) (Stats, error) {
	stats := plan.Stats
	stats.RecordsAdded, stats.RecordsUpdated, stats.MastersUpdated = 0, 0, 0

	if len(plan.Inserts) > 0 {
		if err := e.mappings.InsertMappings(ctx, plan.Inserts); err != nil {
			return stats, errors.NewBackingStoreError("insert vendor mappings", err)
		}
		stats.RecordsAdded = len(plan.Inserts)
	}

	if len(plan.Updates) > 0 {
		if err := e.mappings.UpdateMappings(ctx, plan.Updates); err != nil {
			return stats, errors.NewBackingStoreError("update vendor mappings", err)
		}
		stats.RecordsUpdated = len(plan.Updates)
	}

	if len(plan.Masters) > 0 {
		if err := e.products.UpdateMasters(ctx, plan.Masters); err != nil {
			return stats, errors.NewBackingStoreError("update master products", err)
		}
		stats.MastersUpdated = len(plan.Masters)
	}

	return stats, nil
}

// Reconcile plans and, unless opts.DryRun is set, applies the writes for rows.
func (e *Engine) Reconcile(ctx context.Context, vendor string, scope Scope, rows []VendorRow, opts Options) (Stats, error) {
	plan, err := e.Plan(ctx, vendor, scope, rows, opts)
	if err != nil {
		return Stats{}, err
	}

	l := e.logger.With(zap.String("vendor", plan.Vendor), zap.String("scope", scope.String()))
	if opts.DryRun {
		l.Info("Dry-run reconciliation planned",
			zap.Int("inserts", len(plan.Inserts)),
			zap.Int("updates", len(plan.Updates)),
			zap.Int("masters", len(plan.Masters)),
			zap.Int("skipped", plan.Stats.RecordsSkipped),
			zap.Int("errors", plan.Stats.RecordsErrors),
		)
		return plan.Stats, nil
	}

	stats, err := e.Apply(ctx, plan)
	e.record(plan.Vendor, stats)
	if err != nil {
		l.Error("Reconciliation batch failed", zap.Error(err))
		return stats, err
	}

	l.Info("Reconciliation complete",
		zap.Int("added", stats.RecordsAdded),
		zap.Int("updated", stats.RecordsUpdated),
		zap.Int("skipped", stats.RecordsSkipped),
		zap.Int("errors", stats.RecordsErrors),
		zap.Int("masters_updated", stats.MastersUpdated),
	)
	return stats, nil
}

func (e *Engine) record(vendor string, s Stats) {
	e.metrics.Records(vendor, "added", s.RecordsAdded)
	e.metrics.Records(vendor, "updated", s.RecordsUpdated)
	e.metrics.Records(vendor, "skipped", s.RecordsSkipped)
	e.metrics.Records(vendor, "errors", s.RecordsErrors)
	e.metrics.Records(vendor, "masters_updated", s.MastersUpdated)
}
