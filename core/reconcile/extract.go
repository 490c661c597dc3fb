package reconcile

import (
	"fmt"

	"catalog-reconciler/core/utils"
)

// ExtractFunc computes candidate mapping fields from a row.
type ExtractFunc func(row VendorRow) (MappingFields, error)

// ExtractMapping is the default ExtractFunc. Prices accept currency symbols and
// thousands separators; blank prices are null; quantities accept decimal and
// "50+" style values.
func ExtractMapping(row VendorRow) (MappingFields, error) {
	var f MappingFields
	var err error

	f.SKU = utils.CleanText(row.SKU)
	if f.Cost, err = utils.ParsePrice(row.Cost); err != nil {
		return f, fmt.Errorf("cost: %w", err)
	}
	if f.MAP, err = utils.ParsePrice(row.MAP); err != nil {
		return f, fmt.Errorf("map: %w", err)
	}
	if f.MSRP, err = utils.ParsePrice(row.MSRP); err != nil {
		return f, fmt.Errorf("msrp: %w", err)
	}
	if f.Quantity, err = utils.ParseQuantity(row.Quantity); err != nil {
		return f, fmt.Errorf("quantity: %w", err)
	}
	return f, nil
}

// mergeMaster overlays the non-blank proposed fields onto current.
func mergeMaster(current, proposed MasterFields) MasterFields {
	merged := current
	set := func(dst *string, v string) {
		if v = utils.CleanText(v); v != "" {
			*dst = v
		}
	}
	set(&merged.Name, proposed.Name)
	set(&merged.Brand, proposed.Brand)
	set(&merged.Model, proposed.Model)
	set(&merged.ManufacturerPartNumber, proposed.ManufacturerPartNumber)
	set(&merged.Description, proposed.Description)
	set(&merged.ImageURL, proposed.ImageURL)
	set(&merged.ImageSource, proposed.ImageSource)
	set(&merged.Category, proposed.Category)
	set(&merged.Subcategory, proposed.Subcategory)
	return merged
}
