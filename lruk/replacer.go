// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lruk implements the LRU-K frame-eviction policy for a
// fixed-capacity buffer pool.
//
// Frames are split into two tiers: a young tier for frames seen fewer
// than k times and an old tier for the rest. Young frames have no k-th
// access yet, so they are always evicted before old ones; within a tier
// the least recently touched frame goes first, so old frames are ordered
// by their latest access rather than by their k-th most recent one.
// Frames start out pinned and become eviction candidates only through
// SetEvictable.
package lruk

import (
	"sync"

	"github.com/pkg/errors"
)

// Errors signalling caller contract violations.
var (
	ErrFrameOutOfRange = errors.New("frame id out of range")
	ErrNotEvictable    = errors.New("frame not evictable")
)

// AccessType describes what kind of operation touched a frame. The
// policy records but does not differentiate them; the type feeds the
// access metrics label.
type AccessType byte

const (
	AccessUnknown AccessType = iota
	AccessLookup
	AccessScan
	AccessIndex
)

func (at AccessType) String() string {
	switch at {
	case AccessLookup:
		return "lookup"
	case AccessScan:
		return "scan"
	case AccessIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Replacer is the public facade of the policy. All methods are safe
// for concurrent use; each takes the latch for its full duration, so
// operations are linearizable with respect to one another.
//
// Timestamps come from an internal counter bumped once per recorded
// access. It is monotonic and collision-free, which keeps eviction
// order deterministic regardless of wall-clock granularity.
type Replacer struct {
	latch    sync.Mutex
	young    *container // frames with < k recorded accesses
	old      *container // frames with k recorded accesses
	size     int        // evictable frames across both tiers
	ts       uint64
	capacity int
	k        int
}

// New creates a replacer tracking up to capacity frames with a
// look-back depth of k.
func New(capacity, k int) *Replacer {
	if capacity < 1 || k < 1 {
		panic("invalid capacity or k for lruk.Replacer")
	}
	old := newContainer(k, nil)
	return &Replacer{
		young:    newContainer(k, old),
		old:      old,
		capacity: capacity,
		k:        k,
	}
}

// RecordAccess notes an access to the given frame, tracking it on
// first sight. New frames start out not evictable.
func (r *Replacer) RecordAccess(fid uint32, at AccessType) error {
	r.latch.Lock()
	defer r.latch.Unlock()

	if int(fid) >= r.capacity {
		return errors.Wrapf(ErrFrameOutOfRange, "record access: frame %d, capacity %d", fid, r.capacity)
	}
	r.ts++

	if n, ok := r.young.index[fid]; ok {
		r.young.updateNode(n, r.ts)
	} else if n, ok := r.old.index[fid]; ok {
		r.old.updateNode(n, r.ts)
	} else {
		r.young.addNode(&node{fid: fid, history: []uint64{r.ts}})
	}

	metricAccesses().AddWithLabel(1, map[string]string{"type": at.String()})
	return nil
}

// Evict removes and returns the best eviction candidate: the least
// recently touched evictable young frame, falling back to the old
// tier. Returns false if no frame is evictable.
func (r *Replacer) Evict() (uint32, bool) {
	r.latch.Lock()
	defer r.latch.Unlock()

	n := r.young.evict()
	if n == nil {
		n = r.old.evict()
	}
	if n == nil {
		return 0, false
	}
	r.size--
	metricEvictions().Add(1)
	return n.fid, true
}

// SetEvictable toggles whether the frame may be returned by Evict.
// Unknown frames and redundant toggles are ignored.
func (r *Replacer) SetEvictable(fid uint32, evictable bool) error {
	r.latch.Lock()
	defer r.latch.Unlock()

	if int(fid) >= r.capacity {
		return errors.Wrapf(ErrFrameOutOfRange, "set evictable: frame %d, capacity %d", fid, r.capacity)
	}

	n, ok := r.young.index[fid]
	if !ok {
		if n, ok = r.old.index[fid]; !ok {
			return nil
		}
	}
	if n.evictable == evictable {
		return nil
	}
	n.evictable = evictable
	if evictable {
		r.size++
	} else {
		r.size--
	}
	return nil
}

// Remove drops the frame and its access history regardless of its
// position. Removing an untracked frame is a no-op; removing a pinned
// frame is a contract violation.
func (r *Replacer) Remove(fid uint32) error {
	r.latch.Lock()
	defer r.latch.Unlock()

	if int(fid) >= r.capacity {
		return errors.Wrapf(ErrFrameOutOfRange, "remove: frame %d, capacity %d", fid, r.capacity)
	}

	c := r.young
	n, ok := c.index[fid]
	if !ok {
		c = r.old
		if n, ok = c.index[fid]; !ok {
			return nil
		}
	}
	if !n.evictable {
		return errors.Wrapf(ErrNotEvictable, "remove: frame %d", fid)
	}
	c.unlink(n)
	r.size--
	return nil
}

// Size returns the number of evictable frames.
func (r *Replacer) Size() int {
	r.latch.Lock()
	defer r.latch.Unlock()
	return r.size
}
