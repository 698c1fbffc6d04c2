// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lruk

import "github.com/mooleetzi/minidb/metrics"

var (
	metricEvictions = metrics.LazyLoadCounter("replacer_eviction_count")
	metricAccesses  = metrics.LazyLoadCounterVec("replacer_access_count", []string{"type"})
)
