package catalog

import (
	"context"

	"catalog-reconciler/core/reconcile"

	"gorm.io/gorm"
)

const insertBatch = 500

// MappingStore implements reconcile.MappingStore.
type MappingStore struct {
	db *gorm.DB
}

// NewMappingStore creates a MappingStore.
func NewMappingStore(db *gorm.DB) *MappingStore {
	return &MappingStore{db: db}
}

// FindByVendor implements reconcile.MappingStore.
func (s *MappingStore) FindByVendor(ctx context.Context, vendor string, scope reconcile.Scope) (map[uint]reconcile.Mapping, error) {
	q := s.db.WithContext(ctx).Where("vendor_slug = ?", vendor)
	if scope.IsGlobal() {
		q = q.Where("company_id IS NULL")
	} else {
		q = q.Where("company_id = ?", *scope.CompanyID)
	}

	var rows []VendorMapping
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]reconcile.Mapping, len(rows))
	for _, m := range rows {
		out[m.ProductID] = m.toDomain()
	}
	return out, nil
}

// InsertMappings implements reconcile.MappingStore with one batched insert.
func (s *MappingStore) InsertMappings(ctx context.Context, mappings []reconcile.Mapping) error {
	rows := make([]VendorMapping, len(mappings))
	for i, m := range mappings {
		rows[i] = mappingFromDomain(m)
		rows[i].ID = 0
	}
	return s.db.WithContext(ctx).CreateInBatches(rows, insertBatch).Error
}

// UpdateMappings implements reconcile.MappingStore inside one transaction.
func (s *MappingStore) UpdateMappings(ctx context.Context, mappings []reconcile.Mapping) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range mappings {
			row := mappingFromDomain(m)
			err := tx.Model(&VendorMapping{}).
				Where("id = ?", m.ID).
				Select("sku", "cost", "map_price", "msrp", "quantity", "last_price_update").
				Updates(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
