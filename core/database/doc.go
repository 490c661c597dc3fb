// Package database opens the catalog database through GORM and inspects its
// schema.
//
// Connect supports MySQL (the default), PostgreSQL and SQLite. SQLite is used
// by tests and single-node setups.
//
// # Schema Inspection
//
// GetTableColumns returns the live column list of a table, which the catalog
// feature compares against its models before a sync is allowed to write.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "vendor_mappings")
package database
