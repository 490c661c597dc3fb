package catalog

import (
	"context"
	"time"

	"catalog-reconciler/core/reconcile"

	"gorm.io/gorm"
)

// lookupChunk keeps IN lists below the placeholder limits of every driver.
const lookupChunk = 500

// ProductStore implements reconcile.ProductStore.
type ProductStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewProductStore creates a ProductStore.
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db, now: time.Now}
}

// FindByUPCs implements reconcile.ProductStore.
func (s *ProductStore) FindByUPCs(ctx context.Context, upcs []string) (map[string]reconcile.MasterProduct, error) {
	out := make(map[string]reconcile.MasterProduct, len(upcs))
	for start := 0; start < len(upcs); start += lookupChunk {
		end := min(start+lookupChunk, len(upcs))

		var rows []Product
		if err := s.db.WithContext(ctx).Where("upc IN ?", upcs[start:end]).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, p := range rows {
			out[p.UPC] = p.toDomain()
		}
	}
	return out, nil
}

// UpdateMasters implements reconcile.ProductStore.
func (s *ProductStore) UpdateMasters(ctx context.Context, updates []reconcile.MasterUpdate) error {
	now := s.now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&Product{}).
				Where("id = ?", u.ProductID).
				Select(masterColumns).
				Updates(masterValues(u, now)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateProducts inserts master products. Catalog ingestion is outside the
// pricing sync; this seeds the catalog for the CLI and tests.
func (s *ProductStore) CreateProducts(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(products, lookupChunk).Error
}
