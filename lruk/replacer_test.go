// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lruk

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPanics(t *testing.T) {
	assert.Panics(t, func() { New(0, 2) })
	assert.Panics(t, func() { New(7, 0) })
}

func TestBounds(t *testing.T) {
	r := New(7, 2)

	err := r.RecordAccess(7, AccessUnknown)
	assert.Equal(t, ErrFrameOutOfRange, errors.Cause(err))
	err = r.SetEvictable(100, true)
	assert.Equal(t, ErrFrameOutOfRange, errors.Cause(err))
	err = r.Remove(7)
	assert.Equal(t, ErrFrameOutOfRange, errors.Cause(err))

	assert.NoError(t, r.RecordAccess(6, AccessUnknown))
}

func TestSetEvictable(t *testing.T) {
	r := New(7, 2)

	require.NoError(t, r.RecordAccess(1, AccessLookup))
	assert.Zero(t, r.Size(), "new frames start pinned")

	require.NoError(t, r.SetEvictable(1, true))
	assert.Equal(t, 1, r.Size())

	// redundant toggle is a no-op
	require.NoError(t, r.SetEvictable(1, true))
	assert.Equal(t, 1, r.Size())

	require.NoError(t, r.SetEvictable(1, false))
	assert.Zero(t, r.Size())

	// untracked frame is silently ignored
	require.NoError(t, r.SetEvictable(3, true))
	assert.Zero(t, r.Size())
}

func TestEvictEmpty(t *testing.T) {
	r := New(7, 2)

	_, ok := r.Evict()
	assert.False(t, ok)

	// a fully pinned replacer has no candidates either
	require.NoError(t, r.RecordAccess(0, AccessUnknown))
	require.NoError(t, r.RecordAccess(1, AccessUnknown))
	_, ok = r.Evict()
	assert.False(t, ok)
	assert.Zero(t, r.Size())
}

func TestYoungEvictedBeforeOld(t *testing.T) {
	r := New(7, 2)

	// frame 1 crosses into the old tier, frame 2 stays young
	require.NoError(t, r.RecordAccess(1, AccessUnknown))
	require.NoError(t, r.RecordAccess(1, AccessUnknown))
	require.NoError(t, r.RecordAccess(2, AccessUnknown))

	require.NoError(t, r.SetEvictable(1, true))
	require.NoError(t, r.SetEvictable(2, true))

	fid, ok := r.Evict()
	require.True(t, ok)
	assert.Equal(t, uint32(2), fid, "young frame goes first even though frame 1 is colder by first access")

	fid, ok = r.Evict()
	require.True(t, ok)
	assert.Equal(t, uint32(1), fid)
	assert.Zero(t, r.Size())
}

func TestPromotionBoundary(t *testing.T) {
	for _, k := range []int{2, 3, 5} {
		r := New(7, k)

		for i := 0; i < k-1; i++ {
			require.NoError(t, r.RecordAccess(4, AccessUnknown))
			_, young := r.young.index[4]
			assert.True(t, young, "k=%d: frame must stay young after %d accesses", k, i+1)
		}

		// the k-th access promotes, exactly then
		require.NoError(t, r.RecordAccess(4, AccessUnknown))
		_, young := r.young.index[4]
		_, old := r.old.index[4]
		assert.False(t, young, "k=%d", k)
		assert.True(t, old, "k=%d", k)

		// further accesses keep it old and cap the history at k
		require.NoError(t, r.RecordAccess(4, AccessUnknown))
		n, ok := r.old.index[4]
		require.True(t, ok, "k=%d", k)
		assert.Len(t, n.history, k)
		// newest first
		for i := 1; i < len(n.history); i++ {
			assert.Greater(t, n.history[i-1], n.history[i])
		}
	}
}

func TestImmediateOldEntryWithKOne(t *testing.T) {
	// with k == 1 there is no young phase at all
	r := New(7, 1)
	require.NoError(t, r.RecordAccess(3, AccessUnknown))
	_, old := r.old.index[3]
	assert.True(t, old)

	require.NoError(t, r.RecordAccess(2, AccessUnknown))
	require.NoError(t, r.RecordAccess(3, AccessUnknown))
	require.NoError(t, r.SetEvictable(2, true))
	require.NoError(t, r.SetEvictable(3, true))

	// plain LRU order: 2 is now the least recently touched
	fid, ok := r.Evict()
	require.True(t, ok)
	assert.Equal(t, uint32(2), fid)
}

func TestYoungMoveToTailOnTouch(t *testing.T) {
	r := New(7, 3)

	require.NoError(t, r.RecordAccess(1, AccessUnknown))
	require.NoError(t, r.RecordAccess(2, AccessUnknown))
	// second touch keeps 1 young (k=3) but moves it behind 2
	require.NoError(t, r.RecordAccess(1, AccessUnknown))

	require.NoError(t, r.SetEvictable(1, true))
	require.NoError(t, r.SetEvictable(2, true))

	fid, ok := r.Evict()
	require.True(t, ok)
	assert.Equal(t, uint32(2), fid)
}

func TestScenario(t *testing.T) {
	// the canonical LRU-K walkthrough: k=2, capacity 7
	r := New(7, 2)

	for fid := uint32(1); fid <= 6; fid++ {
		require.NoError(t, r.RecordAccess(fid, AccessLookup))
	}
	for fid := uint32(1); fid <= 6; fid++ {
		require.NoError(t, r.SetEvictable(fid, true))
	}
	assert.Equal(t, 6, r.Size())

	// 1..4 gain their second access and migrate to the old tier
	for fid := uint32(1); fid <= 4; fid++ {
		require.NoError(t, r.RecordAccess(fid, AccessLookup))
	}

	want := []uint32{5, 6, 1, 2}
	for _, w := range want {
		fid, ok := r.Evict()
		require.True(t, ok)
		assert.Equal(t, w, fid)
	}
	assert.Equal(t, 2, r.Size())
}

func TestScenarioWithPinned(t *testing.T) {
	r := New(7, 2)

	for fid := uint32(1); fid <= 6; fid++ {
		require.NoError(t, r.RecordAccess(fid, AccessLookup))
		require.NoError(t, r.SetEvictable(fid, true))
	}
	for fid := uint32(1); fid <= 4; fid++ {
		require.NoError(t, r.RecordAccess(fid, AccessLookup))
	}

	// pinning 6 makes the scan skip it
	require.NoError(t, r.SetEvictable(6, false))

	want := []uint32{5, 1, 2, 3}
	for _, w := range want {
		fid, ok := r.Evict()
		require.True(t, ok)
		assert.Equal(t, w, fid)
	}

	// unpinned again, 6 is back in line before the remaining old frame
	require.NoError(t, r.SetEvictable(6, true))
	fid, ok := r.Evict()
	require.True(t, ok)
	assert.Equal(t, uint32(6), fid)

	fid, ok = r.Evict()
	require.True(t, ok)
	assert.Equal(t, uint32(4), fid)
}

func TestRemove(t *testing.T) {
	r := New(7, 2)

	// absent frame is a no-op
	require.NoError(t, r.Remove(5))

	require.NoError(t, r.RecordAccess(1, AccessUnknown))
	err := r.Remove(1)
	assert.Equal(t, ErrNotEvictable, errors.Cause(err), "removing a pinned frame must fail")

	require.NoError(t, r.SetEvictable(1, true))
	assert.Equal(t, 1, r.Size())
	require.NoError(t, r.Remove(1))
	assert.Zero(t, r.Size())

	_, ok := r.Evict()
	assert.False(t, ok)

	// the history is gone; the frame re-enters young on next access
	require.NoError(t, r.RecordAccess(1, AccessUnknown))
	_, young := r.young.index[1]
	assert.True(t, young)

	// removal works on old-tier frames too
	require.NoError(t, r.RecordAccess(2, AccessUnknown))
	require.NoError(t, r.RecordAccess(2, AccessUnknown))
	require.NoError(t, r.SetEvictable(2, true))
	require.NoError(t, r.Remove(2))
	_, old := r.old.index[2]
	assert.False(t, old)
}

func TestEvictedFrameForgotten(t *testing.T) {
	r := New(7, 2)

	require.NoError(t, r.RecordAccess(1, AccessUnknown))
	require.NoError(t, r.RecordAccess(1, AccessUnknown))
	require.NoError(t, r.SetEvictable(1, true))

	fid, ok := r.Evict()
	require.True(t, ok)
	require.Equal(t, uint32(1), fid)

	// after eviction the frame is untracked: toggles are no-ops and a
	// new access starts a fresh young history
	require.NoError(t, r.SetEvictable(1, true))
	assert.Zero(t, r.Size())

	require.NoError(t, r.RecordAccess(1, AccessUnknown))
	n, young := r.young.index[1]
	require.True(t, young)
	assert.Len(t, n.history, 1)
}

func TestConcurrentAccess(t *testing.T) {
	const capacity = 64
	r := New(capacity, 3)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < 2000; i++ {
				fid := uint32(rng.Intn(capacity))
				switch rng.Intn(4) {
				case 0:
					assert.NoError(t, r.RecordAccess(fid, AccessLookup))
				case 1:
					assert.NoError(t, r.SetEvictable(fid, rng.Intn(2) == 0))
				case 2:
					r.Evict()
				default:
					// Remove is allowed to fail on pinned frames here
					if err := r.Remove(fid); err != nil {
						assert.Equal(t, ErrNotEvictable, errors.Cause(err))
					}
				}
			}
		}(int64(g))
	}
	wg.Wait()

	// drain and cross-check the evictable count
	size := r.Size()
	assert.GreaterOrEqual(t, size, 0)
	evicted := 0
	for {
		if _, ok := r.Evict(); !ok {
			break
		}
		evicted++
	}
	assert.Equal(t, size, evicted)
	assert.Zero(t, r.Size())
}
