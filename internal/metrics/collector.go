// Package metrics exposes the published compose index and the query service
// to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kbdviz/kbdviz/compose"
)

const namespace = "kbdviz"

var (
	indexLetters = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "index", "letters"),
		"Number of base letters in the published index",
		[]string{"layout"}, nil,
	)
	indexEntries = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "index", "entries"),
		"Number of entries in the published index",
		[]string{"layout", "kind"}, nil,
	)
	indexDeadKeys = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "index", "dead_keys"),
		"Number of dead keys found on AltGr levels",
		[]string{"layout"}, nil,
	)
	indexUnindexed = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "index", "unindexed_characters"),
		"Characters found on the layout without a base letter",
		[]string{"layout"}, nil,
	)
	indexBuilds = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "index", "builds_total"),
		"Successful index builds",
		nil, nil,
	)
	indexBuildFailures = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "index", "build_failures_total"),
		"Failed index builds",
		nil, nil,
	)
	indexLastBuild = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "index", "last_build_timestamp_seconds"),
		"Unix time of the last successful index build",
		nil, nil,
	)
)

// indexCollector reads the holder on every scrape.
type indexCollector struct {
	holder *compose.Holder
}

// NewIndexCollector creates a collector reporting the index published by h.
func NewIndexCollector(h *compose.Holder) prometheus.Collector {
	return &indexCollector{holder: h}
}

// Describe implements the prometheus.Collector interface.
func (c *indexCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- indexLetters
	ch <- indexEntries
	ch <- indexDeadKeys
	ch <- indexUnindexed
	ch <- indexBuilds
	ch <- indexBuildFailures
	ch <- indexLastBuild
}

// Collect implements the prometheus.Collector interface.
func (c *indexCollector) Collect(ch chan<- prometheus.Metric) {
	idx := c.holder.Load()
	st := idx.Stats()
	name := idx.Layout()

	ch <- prometheus.MustNewConstMetric(indexLetters, prometheus.GaugeValue, float64(idx.Count()), name)
	ch <- prometheus.MustNewConstMetric(indexEntries, prometheus.GaugeValue, float64(st.DirectEntries), name, "direct")
	ch <- prometheus.MustNewConstMetric(indexEntries, prometheus.GaugeValue, float64(st.DeadKeyEntries), name, "dead_key")
	ch <- prometheus.MustNewConstMetric(indexDeadKeys, prometheus.GaugeValue, float64(st.DeadKeys), name)
	ch <- prometheus.MustNewConstMetric(indexUnindexed, prometheus.GaugeValue, float64(st.Unindexed), name)
	ch <- prometheus.MustNewConstMetric(indexBuilds, prometheus.CounterValue, float64(c.holder.Builds()))
	ch <- prometheus.MustNewConstMetric(indexBuildFailures, prometheus.CounterValue, float64(c.holder.Failures()))

	var last float64
	if t := c.holder.LastBuild(); !t.IsZero() {
		last = float64(t.UnixNano()) / 1e9
	}
	ch <- prometheus.MustNewConstMetric(indexLastBuild, prometheus.GaugeValue, last)
}
