package priority

import "context"

// Vendor is a vendor-registry record as seen by the registry.
type Vendor struct {
	ID           uint
	Slug         string
	DisplayName  string
	PriorityRank *int
}

// VendorStore is the backing store of the vendor registry.
type VendorStore interface {
	// FindVendor returns the vendor whose slug, or failing that display name,
	// equals key (already trimmed and lower-cased). It returns nil, nil when
	// no vendor matches.
	FindVendor(ctx context.Context, key string) (*Vendor, error)

	// ListVendors returns every vendor ordered by ID.
	ListVendors(ctx context.Context) ([]Vendor, error)

	// UpdateRanks writes the given vendor ID -> rank assignments atomically.
	UpdateRanks(ctx context.Context, ranks map[uint]int) error
}
