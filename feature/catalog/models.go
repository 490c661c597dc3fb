package catalog

import (
	"time"

	"catalog-reconciler/core/priority"
	"catalog-reconciler/core/reconcile"

	"github.com/shopspring/decimal"
)

// Vendor is a row of the vendors table.
type Vendor struct {
	ID           uint   `gorm:"column:id;primaryKey"`
	Slug         string `gorm:"column:slug;size:100;uniqueIndex;not null"`
	DisplayName  string `gorm:"column:display_name;size:255"`
	PriorityRank *int   `gorm:"column:priority_rank"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName implements gorm's tabler.
func (Vendor) TableName() string { return "vendors" }

func (v Vendor) toDomain() priority.Vendor {
	return priority.Vendor{ID: v.ID, Slug: v.Slug, DisplayName: v.DisplayName, PriorityRank: v.PriorityRank}
}

// Product is a row of the products table, the master catalog.
type Product struct {
	ID                     uint   `gorm:"column:id;primaryKey"`
	UPC                    string `gorm:"column:upc;size:12;uniqueIndex;not null"`
	Source                 string `gorm:"column:source;size:100;index"`
	Name                   string `gorm:"column:name;size:255"`
	Brand                  string `gorm:"column:brand;size:255"`
	Model                  string `gorm:"column:model;size:255"`
	ManufacturerPartNumber string `gorm:"column:manufacturer_part_number;size:255"`
	Description            string `gorm:"column:description;type:text"`
	ImageURL               string `gorm:"column:image_url;size:1024"`
	ImageSource            string `gorm:"column:image_source;size:100"`
	Category               string `gorm:"column:category;size:255"`
	Subcategory            string `gorm:"column:subcategory;size:255"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName implements gorm's tabler.
func (Product) TableName() string { return "products" }

func (p Product) toDomain() reconcile.MasterProduct {
	return reconcile.MasterProduct{
		ID:     p.ID,
		UPC:    p.UPC,
		Source: p.Source,
		Fields: reconcile.MasterFields{
			Name:                   p.Name,
			Brand:                  p.Brand,
			Model:                  p.Model,
			ManufacturerPartNumber: p.ManufacturerPartNumber,
			Description:            p.Description,
			ImageURL:               p.ImageURL,
			ImageSource:            p.ImageSource,
			Category:               p.Category,
			Subcategory:            p.Subcategory,
		},
	}
}

// masterColumns are the columns written by a master overwrite.
var masterColumns = []string{
	"source", "name", "brand", "model", "manufacturer_part_number",
	"description", "image_url", "image_source", "category", "subcategory", "updated_at",
}

func masterValues(u reconcile.MasterUpdate, now time.Time) map[string]any {
	f := u.Fields
	return map[string]any{
		"source":                   u.Source,
		"name":                     f.Name,
		"brand":                    f.Brand,
		"model":                    f.Model,
		"manufacturer_part_number": f.ManufacturerPartNumber,
		"description":              f.Description,
		"image_url":                f.ImageURL,
		"image_source":             f.ImageSource,
		"category":                 f.Category,
		"subcategory":              f.Subcategory,
		"updated_at":               now,
	}
}

// VendorMapping is a row of the vendor_mappings table. CompanyID is null for
// the global mapping. Price columns hold at most utils.MaxPrice.
type VendorMapping struct {
	ID              uint                `gorm:"column:id;primaryKey"`
	ProductID       uint                `gorm:"column:product_id;not null;uniqueIndex:idx_mapping_scope,priority:1"`
	VendorSlug      string              `gorm:"column:vendor_slug;size:100;not null;uniqueIndex:idx_mapping_scope,priority:2;index"`
	CompanyID       *uint               `gorm:"column:company_id;uniqueIndex:idx_mapping_scope,priority:3"`
	SKU             string              `gorm:"column:sku;size:100"`
	Cost            decimal.NullDecimal `gorm:"column:cost;type:decimal(10,2)"`
	MAP             decimal.NullDecimal `gorm:"column:map_price;type:decimal(10,2)"`
	MSRP            decimal.NullDecimal `gorm:"column:msrp;type:decimal(10,2)"`
	Quantity        int                 `gorm:"column:quantity;not null;default:0"`
	LastPriceUpdate time.Time           `gorm:"column:last_price_update"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName implements gorm's tabler.
func (VendorMapping) TableName() string { return "vendor_mappings" }

func (m VendorMapping) toDomain() reconcile.Mapping {
	return reconcile.Mapping{
		ID:         m.ID,
		ProductID:  m.ProductID,
		VendorSlug: m.VendorSlug,
		CompanyID:  m.CompanyID,
		Fields: reconcile.MappingFields{
			SKU:      m.SKU,
			Cost:     m.Cost,
			MAP:      m.MAP,
			MSRP:     m.MSRP,
			Quantity: m.Quantity,
		},
		LastPriceUpdate: m.LastPriceUpdate,
	}
}

func mappingFromDomain(m reconcile.Mapping) VendorMapping {
	return VendorMapping{
		ID:              m.ID,
		ProductID:       m.ProductID,
		VendorSlug:      m.VendorSlug,
		CompanyID:       m.CompanyID,
		SKU:             m.Fields.SKU,
		Cost:            m.Fields.Cost,
		MAP:             m.Fields.MAP,
		MSRP:            m.Fields.MSRP,
		Quantity:        m.Fields.Quantity,
		LastPriceUpdate: m.LastPriceUpdate,
	}
}
