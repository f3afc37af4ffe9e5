package evictcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors a Cache reports into. A nil
// *Metrics records nothing.
type Metrics struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Inserts   prometheus.Counter
	Deletes   prometheus.Counter
	Evictions prometheus.Counter
	Size      prometheus.Gauge
}

// NewMetrics creates the collectors under namespace, labelled with the
// cache name, and registers them with reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer, namespace, cache string) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"cache": cache}
	return &Metrics{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cache_hits_total",
			Help:        "Total number of lookups that found their key",
			ConstLabels: labels,
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cache_misses_total",
			Help:        "Total number of lookups that did not find their key",
			ConstLabels: labels,
		}),
		Inserts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cache_inserts_total",
			Help:        "Total number of inserts and overwrites",
			ConstLabels: labels,
		}),
		Deletes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cache_deletes_total",
			Help:        "Total number of delete calls",
			ConstLabels: labels,
		}),
		Evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cache_evictions_total",
			Help:        "Total number of entries evicted to make room",
			ConstLabels: labels,
		}),
		Size: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "cache_size",
			Help:        "Current number of entries in the cache",
			ConstLabels: labels,
		}),
	}
}

func (m *Metrics) recordFind(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.Hits.Inc()
	} else {
		m.Misses.Inc()
	}
}

func (m *Metrics) recordInsert(evicted, size int) {
	if m == nil {
		return
	}
	m.Inserts.Inc()
	m.recordEvictions(evicted, size)
}

func (m *Metrics) recordDelete(size int) {
	if m == nil {
		return
	}
	m.Deletes.Inc()
	m.Size.Set(float64(size))
}

func (m *Metrics) recordEvictions(evicted, size int) {
	if m == nil {
		return
	}
	m.Evictions.Add(float64(evicted))
	m.Size.Set(float64(size))
}
