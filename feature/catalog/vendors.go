package catalog

import (
	"context"
	"errors"

	"catalog-reconciler/core/priority"

	"gorm.io/gorm"
)

// VendorStore implements priority.VendorStore.
type VendorStore struct {
	db *gorm.DB
}

// NewVendorStore creates a VendorStore.
func NewVendorStore(db *gorm.DB) *VendorStore {
	return &VendorStore{db: db}
}

// FindVendor matches key against the slug first and the display name second,
// both case-insensitively.
func (s *VendorStore) FindVendor(ctx context.Context, key string) (*priority.Vendor, error) {
	var v Vendor
	err := s.db.WithContext(ctx).Where("LOWER(slug) = ?", key).Take(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.WithContext(ctx).Where("LOWER(display_name) = ?", key).Order("id").Take(&v).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := v.toDomain()
	return &out, nil
}

// ListVendors implements priority.VendorStore.
func (s *VendorStore) ListVendors(ctx context.Context) ([]priority.Vendor, error) {
	var rows []Vendor
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]priority.Vendor, len(rows))
	for i, v := range rows {
		out[i] = v.toDomain()
	}
	return out, nil
}

// UpdateRanks implements priority.VendorStore in one transaction.
func (s *VendorStore) UpdateRanks(ctx context.Context, ranks map[uint]int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, rank := range ranks {
			res := tx.Model(&Vendor{}).Where("id = ?", id).Update("priority_rank", rank)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// UpsertVendor creates or renames a vendor and sets its rank. A nil rank leaves
// the stored rank untouched.
func (s *VendorStore) UpsertVendor(ctx context.Context, slug, displayName string, rank *int) (*priority.Vendor, error) {
	var v Vendor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("slug = ?", slug).Take(&v).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			v = Vendor{Slug: slug, DisplayName: displayName, PriorityRank: rank}
			return tx.Create(&v).Error
		}
		if err != nil {
			return err
		}
		if displayName != "" {
			v.DisplayName = displayName
		}
		if rank != nil {
			v.PriorityRank = rank
		}
		return tx.Save(&v).Error
	})
	if err != nil {
		return nil, err
	}
	out := v.toDomain()
	return &out, nil
}
