// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats accumulates cache hit/miss counters. Safe for concurrent use.
type Stats struct {
	hits, misses atomic.Int64
	rateMilli    atomic.Int64
}

// Hit records a cache hit.
func (s *Stats) Hit() int64 { return s.hits.Add(1) }

// Miss records a cache miss.
func (s *Stats) Miss() int64 { return s.misses.Add(1) }

// Snapshot returns the counters and the overall hit rate, along with
// whether the rate moved since the previous call (0.1% granularity).
// The changed flag lets callers log only when something happened.
func (s *Stats) Snapshot() (hits, misses int64, rate float64, changed bool) {
	hits = s.hits.Load()
	misses = s.misses.Load()
	if lookups := hits + misses; lookups > 0 {
		rate = float64(hits) / float64(lookups)
	}
	milli := int64(rate * 1000)
	changed = s.rateMilli.Swap(milli) != milli
	return
}
