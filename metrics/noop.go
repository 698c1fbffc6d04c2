// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

// noopMetrics discards everything. It is the default backend.
type noopMetrics struct{}

type noopMeter struct{}

func (*noopMetrics) GetOrCreateCountMeter(string) CountMeter { return &noopMeter{} }

func (*noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return &noopMeter{} }

func (*noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter { return &noopMeter{} }

func (*noopMetrics) GetOrCreateGaugeVecMeter(string, []string) GaugeVecMeter { return &noopMeter{} }

func (*noopMetrics) GetOrCreateHistogramMeter(string, []int64) HistogramMeter { return &noopMeter{} }

func (*noopMetrics) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return &noopMeter{}
}

func (*noopMetrics) GetOrCreateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "metrics not enabled", http.StatusNotFound)
	})
}

func (*noopMeter) Add(int64) {}

func (*noopMeter) AddWithLabel(int64, map[string]string) {}

func (*noopMeter) Set(int64) {}

func (*noopMeter) SetWithLabel(int64, map[string]string) {}

func (*noopMeter) Observe(int64) {}

func (*noopMeter) ObserveWithLabels(int64, map[string]string) {}
