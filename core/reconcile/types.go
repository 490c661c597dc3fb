package reconcile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Scope selects global (admin) mappings or one company's pricing overrides.
type Scope struct {
	// CompanyID is nil for the shared, global mapping.
	CompanyID *uint
}

// GlobalScope returns the admin/global scope.
func GlobalScope() Scope {
	return Scope{}
}

// CompanyScope returns the scope of a single company.
func CompanyScope(id uint) Scope {
	return Scope{CompanyID: &id}
}

// IsGlobal reports whether s is the global scope.
func (s Scope) IsGlobal() bool {
	return s.CompanyID == nil
}

// String returns a stable key such as "global" or "company-42".
func (s Scope) String() string {
	if s.CompanyID == nil {
		return "global"
	}
	return fmt.Sprintf("company-%d", *s.CompanyID)
}

// MasterFields are the non-pricing fields owned by one vendor at a time.
type MasterFields struct {
	Name                   string `json:"name"`
	Brand                  string `json:"brand"`
	Model                  string `json:"model"`
	ManufacturerPartNumber string `json:"manufacturer_part_number"`
	Description            string `json:"description"`
	ImageURL               string `json:"image_url"`
	ImageSource            string `json:"image_source"`
	Category               string `json:"category"`
	Subcategory            string `json:"subcategory"`
}

// IsZero reports whether no field is set.
func (f MasterFields) IsZero() bool {
	return f == MasterFields{}
}

// MasterProduct is a canonical catalog record keyed by UPC.
type MasterProduct struct {
	ID     uint
	UPC    string
	Source string
	Fields MasterFields
}

// OwnerSlug implements replacement.Owned.
func (p MasterProduct) OwnerSlug() string {
	return p.Source
}

// MappingFields are the vendor-specific, non-authoritative fields of a mapping.
type MappingFields struct {
	SKU      string
	Cost     decimal.NullDecimal
	MAP      decimal.NullDecimal
	MSRP     decimal.NullDecimal
	Quantity int
}

// Equal reports whether every tracked field matches.
func (f MappingFields) Equal(o MappingFields) bool {
	return f.SKU == o.SKU &&
		nullEqual(f.Cost, o.Cost) &&
		nullEqual(f.MAP, o.MAP) &&
		nullEqual(f.MSRP, o.MSRP) &&
		f.Quantity == o.Quantity
}

func nullEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

// Mapping is one vendor's record of a master product.
type Mapping struct {
	ID              uint
	ProductID       uint
	VendorSlug      string
	CompanyID       *uint
	Fields          MappingFields
	LastPriceUpdate time.Time
}

// VendorRow is one feed row already split into named fields by a column mapper.
// Values are raw text; the engine extracts typed values.
type VendorRow struct {
	// Line is the 1-based position of the row in the mapped input, for logging.
	Line     int
	UPC      string
	SKU      string
	Cost     string
	MAP      string
	MSRP     string
	Quantity string

	// Master optionally proposes non-pricing fields for the master record.
	Master *MasterFields
}

// MasterUpdate is a master-record overwrite approved by the Decider.
type MasterUpdate struct {
	ProductID uint
	UPC       string
	Source    string
	Fields    MasterFields
}

// Stats are the counters returned by a reconciliation run.
type Stats struct {
	RecordsAdded   int `json:"records_added"`
	RecordsUpdated int `json:"records_updated"`
	RecordsSkipped int `json:"records_skipped"`
	RecordsErrors  int `json:"records_errors"`

	// MastersUpdated counts master records whose owned fields were overwritten.
	MastersUpdated int `json:"masters_updated"`
}

// Plan is the set of writes computed for one batch.
type Plan struct {
	Vendor  string
	Scope   Scope
	Inserts []Mapping
	Updates []Mapping
	Masters []MasterUpdate
	Stats   Stats
}

// Options controls a reconciliation run.
type Options struct {
	// DryRun computes the plan without writing anything.
	DryRun bool

	// ManualOverride forces master-record proposals to replace the owner.
	ManualOverride bool
}
