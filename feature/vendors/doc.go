// Package vendors exposes the priority registry to operators.
//
//	GET    /vendors/:slug/rank     resolved rank and whether it was cached
//	PUT    /vendors/:slug          create a vendor or set its rank
//	DELETE /vendors/:slug/cache    drop the cached rank
//	GET    /vendors/consistency    rank sequence report
//	POST   /vendors/autofix        renumber ranks to 1..N
//
// AutoFix is the only route that rewrites ranks in bulk and is never called
// implicitly.
package vendors
