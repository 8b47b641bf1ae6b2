package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements MetricsCollector using Prometheus
type Collector struct {
	nodesCreated   *prometheus.CounterVec
	treeFetches    prometheus.Counter
	forestSize     prometheus.Gauge
	createDuration prometheus.Histogram
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *Collector {
	return &Collector{
		nodesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treed_nodes_created_total",
				Help: "Total number of node create attempts by status",
			},
			[]string{"status"},
		),
		treeFetches: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "treed_tree_fetches_total",
				Help: "Total number of full-tree reads",
			},
		),
		forestSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "treed_forest_size",
				Help: "Current number of nodes in the forest",
			},
		),
		createDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "treed_node_create_duration_seconds",
				Help:    "Node create duration in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),
	}
}

// RecordNodeCreated counts a create attempt by outcome status
func (c *Collector) RecordNodeCreated(status string) {
	c.nodesCreated.WithLabelValues(status).Inc()
}

// ObserveCreateDuration records the duration of a node create
func (c *Collector) ObserveCreateDuration(duration time.Duration) {
	c.createDuration.Observe(duration.Seconds())
}

// SetForestSize sets the current number of nodes in the forest
func (c *Collector) SetForestSize(size int) {
	c.forestSize.Set(float64(size))
}

// RecordTreeFetched counts a full-tree read
func (c *Collector) RecordTreeFetched() {
	c.treeFetches.Inc()
}
