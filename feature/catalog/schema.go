package catalog

import (
	"fmt"

	"catalog-reconciler/core/database"

	"gorm.io/gorm"
)

// Models lists every table owned by the catalog.
func Models() []any {
	return []any{&Vendor{}, &Product{}, &VendorMapping{}}
}

// Migrate creates or upgrades the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate catalog: %w", err)
	}
	return nil
}

// SchemaIssue is a column a live table lacks.
type SchemaIssue struct {
	Table   string   `json:"table"`
	Missing []string `json:"missing"`
}

// CheckSchema compares the live tables with the models and returns the
// columns that are missing. An empty result means the schema can be written.
func CheckSchema(db *gorm.DB) ([]SchemaIssue, error) {
	var issues []SchemaIssue
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}

		want := make([]string, 0, len(stmt.Schema.DBNames))
		want = append(want, stmt.Schema.DBNames...)

		missing, err := database.HasColumns(db, stmt.Schema.Table, want)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			issues = append(issues, SchemaIssue{Table: stmt.Schema.Table, Missing: missing})
		}
	}
	return issues, nil
}
