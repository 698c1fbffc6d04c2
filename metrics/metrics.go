// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics provides lazily registered process metrics. The
// package starts out as a no-op; a call to InitializePrometheusMetrics
// switches the backend so that instrumented packages pay nothing when
// metrics are disabled.
package metrics

import (
	"net/http"
	"sync"
)

const namespace = "minidb_metrics"

// metrics is the backend in use. Defaults to noop.
var metrics Metrics = &noopMetrics{}

// Metrics abstracts the metrics backend.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter
	GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	GetOrCreateHandler() http.Handler
}

// CountMeter is a monotonically increasing counter.
type CountMeter interface {
	Add(i int64)
}

// CountVecMeter is a counter partitioned by labels.
type CountVecMeter interface {
	AddWithLabel(i int64, labels map[string]string)
}

// GaugeMeter is a value that can go up and down.
type GaugeMeter interface {
	Add(i int64)
	Set(i int64)
}

// GaugeVecMeter is a gauge partitioned by labels.
type GaugeVecMeter interface {
	AddWithLabel(i int64, labels map[string]string)
	SetWithLabel(i int64, labels map[string]string)
}

// HistogramMeter tracks the distribution of observed values.
type HistogramMeter interface {
	Observe(i int64)
}

// HistogramVecMeter is a histogram partitioned by labels.
type HistogramVecMeter interface {
	ObserveWithLabels(i int64, labels map[string]string)
}

// HTTPHandler returns the handler exposing collected metrics.
func HTTPHandler() http.Handler { return metrics.GetOrCreateHandler() }

// Counter returns the named counter, creating it on first use.
func Counter(name string) CountMeter { return metrics.GetOrCreateCountMeter(name) }

// CounterVec returns the named labeled counter, creating it on first use.
func CounterVec(name string, labels []string) CountVecMeter {
	return metrics.GetOrCreateCountVecMeter(name, labels)
}

// Gauge returns the named gauge, creating it on first use.
func Gauge(name string) GaugeMeter { return metrics.GetOrCreateGaugeMeter(name) }

// GaugeVec returns the named labeled gauge, creating it on first use.
func GaugeVec(name string, labels []string) GaugeVecMeter {
	return metrics.GetOrCreateGaugeVecMeter(name, labels)
}

// Histogram returns the named histogram, creating it on first use.
func Histogram(name string, buckets []int64) HistogramMeter {
	return metrics.GetOrCreateHistogramMeter(name, buckets)
}

// HistogramVec returns the named labeled histogram, creating it on first use.
func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets)
}

// LazyLoad* defer meter creation to the first use, so package-level
// meter variables can be declared before the backend is chosen.

func LazyLoad[T any](f func() T) func() T {
	var (
		once sync.Once
		v    T
	)
	return func() T {
		once.Do(func() { v = f() })
		return v
	}
}

// LazyLoadCounter lazily creates the named counter.
func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

// LazyLoadCounterVec lazily creates the named labeled counter.
func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

// LazyLoadGauge lazily creates the named gauge.
func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

// LazyLoadGaugeVec lazily creates the named labeled gauge.
func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return LazyLoad(func() GaugeVecMeter { return GaugeVec(name, labels) })
}

// LazyLoadHistogram lazily creates the named histogram.
func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return LazyLoad(func() HistogramMeter { return Histogram(name, buckets) })
}
