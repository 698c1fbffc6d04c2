// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lruk

import "container/list"

// node carries the per-frame bookkeeping. A node lives in exactly one
// container at a time.
type node struct {
	fid       uint32
	history   []uint64 // access timestamps, newest first, len <= k
	evictable bool
	elem      *list.Element
}

// push records ts as the newest access, dropping the oldest entry once
// k timestamps are kept.
func (n *node) push(ts uint64, k int) {
	if len(n.history) < k {
		n.history = append(n.history, 0)
	}
	copy(n.history[1:], n.history)
	n.history[0] = ts
}

// container is one tier of the replacer: a doubly linked list ordered
// least-recently-touched first, plus a frame-id index into it.
//
// The young tier holds frames with fewer than k recorded accesses and
// forwards a frame to its promote sibling (the old tier) the moment
// the k-th access arrives. The old tier has promote == nil.
type container struct {
	k       int
	nodes   *list.List // of *node
	index   map[uint32]*node
	promote *container
}

func newContainer(k int, promote *container) *container {
	return &container{
		k:       k,
		nodes:   list.New(),
		index:   make(map[uint32]*node),
		promote: promote,
	}
}

// addNode indexes n and appends it at the most-recently-touched end.
// A node that already carries k timestamps belongs in the next tier.
func (c *container) addNode(n *node) {
	if c.promote != nil && len(n.history) == c.k {
		c.promote.addNode(n)
		return
	}
	c.index[n.fid] = n
	n.elem = c.nodes.PushBack(n)
}

// updateNode records an access for a node currently owned by this
// container and moves it to the most-recently-touched end. When the
// update is the k-th recorded access of a young node, the node is
// unlinked and handed to the next tier instead.
func (c *container) updateNode(n *node, ts uint64) {
	if c.promote != nil && len(n.history)+1 >= c.k {
		c.unlink(n)
		c.promote.updateNode(n, ts)
		return
	}
	n.push(ts, c.k)
	if c.index[n.fid] != n {
		// arriving via promotion
		c.addNode(n)
		return
	}
	c.nodes.MoveToBack(n.elem)
}

// unlink removes n from the list and the index without touching its
// access history.
func (c *container) unlink(n *node) {
	c.nodes.Remove(n.elem)
	n.elem = nil
	delete(c.index, n.fid)
}

// evict unlinks and returns the least-recently-touched evictable node,
// or nil if every node is pinned.
func (c *container) evict() *node {
	for e := c.nodes.Front(); e != nil; e = e.Next() {
		n := e.Value.(*node)
		if n.evictable {
			c.unlink(n)
			return n
		}
	}
	return nil
}
