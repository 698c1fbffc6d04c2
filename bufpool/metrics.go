// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bufpool

import "github.com/mooleetzi/minidb/metrics"

var (
	metricPageOps         = metrics.LazyLoadCounterVec("bufpool_page_count", []string{"event"})
	metricEvictableFrames = metrics.LazyLoadGauge("bufpool_evictable_frames")
)
