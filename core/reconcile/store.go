package reconcile

import (
	"context"

	"catalog-reconciler/core/replacement"
)

// ProductStore reads and overwrites master products.
type ProductStore interface {
	// FindByUPCs returns the master products whose UPC is in upcs, keyed by UPC.
	FindByUPCs(ctx context.Context, upcs []string) (map[string]MasterProduct, error)

	// UpdateMasters applies master-record overwrites in one transaction.
	UpdateMasters(ctx context.Context, updates []MasterUpdate) error
}

// MappingStore reads and writes vendor mappings.
type MappingStore interface {
	// FindByVendor returns every mapping of vendor within scope, keyed by product ID.
	FindByVendor(ctx context.Context, vendor string, scope Scope) (map[uint]Mapping, error)

	// InsertMappings writes new mappings as one batch.
	InsertMappings(ctx context.Context, mappings []Mapping) error

	// UpdateMappings rewrites existing mappings inside one transaction.
	UpdateMappings(ctx context.Context, mappings []Mapping) error
}

// Decider decides master-record replacement. It is satisfied by *replacement.Engine.
type Decider interface {
	ShouldReplace(ctx context.Context, existing, candidate replacement.Owned, candidateVendor string, manualOverride bool) (bool, error)
}
