// Package metrics exposes Prometheus collectors for the reconciliation core.
//
// A nil *Metrics is valid and records nothing, so engines can be constructed
// without a registry in tests and one-shot CLI runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "catalog"

// Metrics bundles every collector the service publishes.
type Metrics struct {
	priorityLookups *prometheus.CounterVec
	records         *prometheus.CounterVec
	diffLines       *prometheus.GaugeVec
	syncRuns        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		priorityLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "priority",
			Name:      "lookups_total",
			Help:      "Vendor rank lookups by result (hit, miss, stale, sentinel).",
		}, []string{"result"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "records_total",
			Help:      "Reconciled vendor rows by outcome.",
		}, []string{"vendor", "outcome"}),
		diffLines: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "diff",
			Name:      "lines",
			Help:      "Line statistics of the last differential comparison per vendor.",
		}, []string{"vendor", "kind"}),
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Vendor sync runs by status (ok, unchanged, busy, error).",
		}, []string{"vendor", "status"}),
	}
	reg.MustRegister(m.priorityLookups, m.records, m.diffLines, m.syncRuns)
	return m
}

// PriorityLookup counts one rank lookup.
func (m *Metrics) PriorityLookup(result string) {
	if m == nil {
		return
	}
	m.priorityLookups.WithLabelValues(result).Inc()
}

// Records adds n rows with the given outcome (added, updated, skipped, errors).
func (m *Metrics) Records(vendor, outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.records.WithLabelValues(vendor, outcome).Add(float64(n))
}

// DiffLines records the statistics of the last comparison for vendor.
func (m *Metrics) DiffLines(vendor string, total, changed, added, removed int) {
	if m == nil {
		return
	}
	m.diffLines.WithLabelValues(vendor, "total").Set(float64(total))
	m.diffLines.WithLabelValues(vendor, "changed").Set(float64(changed))
	m.diffLines.WithLabelValues(vendor, "added").Set(float64(added))
	m.diffLines.WithLabelValues(vendor, "removed").Set(float64(removed))
}

// SyncRun counts one sync run.
func (m *Metrics) SyncRun(vendor, status string) {
	if m == nil {
		return
	}
	m.syncRuns.WithLabelValues(vendor, status).Inc()
}
