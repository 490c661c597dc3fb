// Package catalog stores vendors, master products and vendor mappings with
// GORM.
//
// The stores implement the capability interfaces of core/priority and
// core/reconcile, so the engines never see a *gorm.DB:
//
//   - VendorStore: priority.VendorStore
//   - ProductStore: reconcile.ProductStore
//   - MappingStore: reconcile.MappingStore
//
// Migrate creates the tables. CheckSchema reports columns a live database is
// missing, which happens when the tables are owned by another application.
package catalog
