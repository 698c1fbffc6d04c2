// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mooleetzi/minidb/log"
)

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches the backend to prometheus.
// Meters created before the switch stay no-op; lazily loaded meters
// resolve against the new backend on first use.
func InitializePrometheusMetrics() {
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = newPrometheusMetrics()
	}
}

type prometheusMetrics struct {
	lock       sync.Mutex
	collectors map[string]prometheus.Collector
}

func newPrometheusMetrics() *prometheusMetrics {
	return &prometheusMetrics{
		collectors: make(map[string]prometheus.Collector),
	}
}

// getOrCreate returns the collector registered under name, creating
// and registering the one built by mk on first use.
func (p *prometheusMetrics) getOrCreate(name string, mk func() prometheus.Collector) prometheus.Collector {
	p.lock.Lock()
	defer p.lock.Unlock()
	if c, ok := p.collectors[name]; ok {
		return c
	}
	c := mk()
	if err := prometheus.Register(c); err != nil {
		logger.Warn("unable to register metric", "name", name, "error", err)
	}
	p.collectors[name] = c
	return c
}

func (p *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	c := p.getOrCreate(name, func() prometheus.Collector {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
	})
	return &promCountMeter{counter: c.(prometheus.Counter)}
}

func (p *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	c := p.getOrCreate(name, func() prometheus.Collector {
		return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
	})
	return &promCountVecMeter{counter: c.(*prometheus.CounterVec)}
}

func (p *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	c := p.getOrCreate(name, func() prometheus.Collector {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
	})
	return &promGaugeMeter{gauge: c.(prometheus.Gauge)}
}

func (p *prometheusMetrics) GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter {
	c := p.getOrCreate(name, func() prometheus.Collector {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
	})
	return &promGaugeVecMeter{gauge: c.(*prometheus.GaugeVec)}
}

func (p *prometheusMetrics) GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter {
	c := p.getOrCreate(name, func() prometheus.Collector {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   toFloatBuckets(buckets),
		})
	})
	return &promHistogramMeter{histogram: c.(prometheus.Histogram)}
}

func (p *prometheusMetrics) GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter {
	c := p.getOrCreate(name, func() prometheus.Collector {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   toFloatBuckets(buckets),
		}, labels)
	})
	return &promHistogramVecMeter{histogram: c.(*prometheus.HistogramVec)}
}

func (p *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.Handler()
}

func toFloatBuckets(buckets []int64) []float64 {
	if len(buckets) == 0 {
		return prometheus.DefBuckets
	}
	floats := make([]float64, len(buckets))
	for i, b := range buckets {
		floats[i] = float64(b)
	}
	return floats
}

type promCountMeter struct {
	counter prometheus.Counter
}

func (c *promCountMeter) Add(i int64) { c.counter.Add(float64(i)) }

type promCountVecMeter struct {
	counter *prometheus.CounterVec
}

func (c *promCountVecMeter) AddWithLabel(i int64, labels map[string]string) {
	c.counter.With(labels).Add(float64(i))
}

type promGaugeMeter struct {
	gauge prometheus.Gauge
}

func (g *promGaugeMeter) Add(i int64) { g.gauge.Add(float64(i)) }

func (g *promGaugeMeter) Set(i int64) { g.gauge.Set(float64(i)) }

type promGaugeVecMeter struct {
	gauge *prometheus.GaugeVec
}

func (g *promGaugeVecMeter) AddWithLabel(i int64, labels map[string]string) {
	g.gauge.With(labels).Add(float64(i))
}

func (g *promGaugeVecMeter) SetWithLabel(i int64, labels map[string]string) {
	g.gauge.With(labels).Set(float64(i))
}

type promHistogramMeter struct {
	histogram prometheus.Histogram
}

func (h *promHistogramMeter) Observe(i int64) { h.histogram.Observe(float64(i)) }

type promHistogramVecMeter struct {
	histogram *prometheus.HistogramVec
}

func (h *promHistogramVecMeter) ObserveWithLabels(i int64, labels map[string]string) {
	h.histogram.With(labels).Observe(float64(i))
}
