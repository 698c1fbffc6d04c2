// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

// Node is a single trie node. Nodes are immutable once linked into a
// trie; a mutation clones every node on the affected path and re-links
// the untouched subtrees, so a node may be shared by any number of
// trie versions.
type Node struct {
	children map[byte]*Node
	value    any
	isValue  bool
}

// clone returns a mutable copy of n. The children map is copied but
// the child nodes themselves stay shared.
func (n *Node) clone() *Node {
	cpy := &Node{
		value:   n.value,
		isValue: n.isValue,
	}
	if len(n.children) > 0 {
		cpy.children = make(map[byte]*Node, len(n.children))
		for b, c := range n.children {
			cpy.children[b] = c
		}
	}
	return cpy
}

// child returns the child for the given key byte, or nil.
func (n *Node) child(b byte) *Node {
	return n.children[b]
}

// setChild links c under key byte b, allocating the children map on
// first use. Must only be called on freshly cloned/created nodes.
func (n *Node) setChild(b byte, c *Node) {
	if n.children == nil {
		n.children = make(map[byte]*Node)
	}
	n.children[b] = c
}
