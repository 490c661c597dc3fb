// Package reconcile turns a batch of changed vendor rows into per-vendor mapping
// writes against the master catalog, and applies master-record overwrites when
// the replacement rules allow them.
//
// The engine depends only on capability interfaces (ProductStore, MappingStore,
// Decider). Concrete storage lives in feature/catalog.
//
// # Procedure
//
//  1. Normalize the UPC of every row; rows without a usable UPC are skipped.
//  2. Bulk-fetch the master products for the extracted UPC set.
//  3. Skip rows whose UPC has no master product. A pricing feed never creates
//     master products.
//  4. Bulk-fetch the vendor's existing mappings for the scope, keyed by product.
//  5. Extract candidate mapping fields per row. Missing mappings are queued for
//     insert, differing mappings for update, identical ones are skipped.
//  6. Insert the queued mappings as one batch, then run the queued updates in a
//     single transaction. The two are deliberately not atomic together.
//
// Master-record proposals carried by rows are decided by the Decider and written
// in their own transaction after the mapping batches.
//
// # Failure semantics
//
// Row-level problems are counted and never abort the batch. A failed batch
// write aborts that operation, is wrapped as a BackingStoreError and returned
// with the statistics gathered so far. Nothing is retried here.
//
// # Idempotence
//
// Re-running the same rows yields zero inserts and zero updates: every row
// compares equal and is counted as skipped.
//
// # Usage
//
//	engine := reconcile.NewEngine(products, mappings, decider, logger)
//	stats, err := engine.Reconcile(ctx, "lipseys", reconcile.GlobalScope(), rows, reconcile.Options{})
package reconcile
