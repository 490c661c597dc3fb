// Package loader registers HTTP features on the fiber app.
//
// A feature reports whether it is enabled; disabled features are skipped and
// their routes never exist. The start command disables sync and vendor admin
// when the catalog schema is incomplete.
//
//	mgr := loader.NewManager(log)
//	mgr.Register(vendorsync.NewFeature(service, log, schemaOK))
//	loaded, err := mgr.LoadAll(app)
package loader
