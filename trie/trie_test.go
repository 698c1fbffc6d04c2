// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	spew.Config.Indent = "    "
	spew.Config.DisableMethods = false
}

func TestEmptyTrie(t *testing.T) {
	var tr Trie
	assert.Nil(t, Get[string](tr, []byte("missing")))
	assert.Nil(t, Get[string](tr, nil))
}

func TestEmptyKey(t *testing.T) {
	var tr Trie
	tr2 := tr.Put(nil, "empty")

	got := Get[string](tr2, nil)
	require.NotNil(t, got)
	assert.Equal(t, "empty", *got)

	// the value at the root coexists with descendants
	tr3 := tr2.Put([]byte("a"), uint32(1))
	assert.Equal(t, "empty", *Get[string](tr3, nil))
	assert.Equal(t, uint32(1), *Get[uint32](tr3, []byte("a")))

	// removing the empty key keeps the children reachable
	tr4 := tr3.Remove(nil)
	assert.Nil(t, Get[string](tr4, nil))
	assert.Equal(t, uint32(1), *Get[uint32](tr4, []byte("a")))

	// removing the empty key from a childless valued root empties the trie
	assert.Nil(t, tr2.Remove(nil).root)
}

func TestPutGet(t *testing.T) {
	var tr Trie
	tr = tr.Put([]byte("ab"), uint32(1))
	tr = tr.Put([]byte("abc"), uint32(2))

	assert.Equal(t, uint32(1), *Get[uint32](tr, []byte("ab")))
	assert.Equal(t, uint32(2), *Get[uint32](tr, []byte("abc")))
	assert.Nil(t, Get[uint32](tr, []byte("a")))
	assert.Nil(t, Get[uint32](tr, []byte("abcd")))

	tr = tr.Remove([]byte("ab"))
	assert.Nil(t, Get[uint32](tr, []byte("ab")))
	assert.Equal(t, uint32(2), *Get[uint32](tr, []byte("abc")))
}

func TestPutReplaces(t *testing.T) {
	var tr Trie
	tr = tr.Put([]byte("abc"), uint32(5))
	tr = tr.Put([]byte("abc"), uint32(7))
	assert.Equal(t, uint32(7), *Get[uint32](tr, []byte("abc")))
}

func TestTypeDiscrimination(t *testing.T) {
	var tr Trie
	tr = tr.Put([]byte("k"), uint32(42))

	assert.Nil(t, Get[string](tr, []byte("k")))
	assert.Nil(t, Get[uint64](tr, []byte("k")))
	assert.Nil(t, Get[int32](tr, []byte("k")))
	require.NotNil(t, Get[uint32](tr, []byte("k")))
	assert.Equal(t, uint32(42), *Get[uint32](tr, []byte("k")))

	tr = tr.Put([]byte("k"), "now a string")
	assert.Nil(t, Get[uint32](tr, []byte("k")))
	assert.Equal(t, "now a string", *Get[string](tr, []byte("k")))
}

func TestPersistence(t *testing.T) {
	var base Trie
	base = base.Put([]byte("a"), uint32(1))
	base = base.Put([]byte("b"), uint32(2))

	derived := base.Put([]byte("a"), uint32(10))
	assert.Equal(t, uint32(1), *Get[uint32](base, []byte("a")), spew.Sdump(base.root))
	assert.Equal(t, uint32(10), *Get[uint32](derived, []byte("a")))

	removed := base.Remove([]byte("b"))
	assert.Equal(t, uint32(2), *Get[uint32](base, []byte("b")))
	assert.Nil(t, Get[uint32](removed, []byte("b")))
}

func TestRemove(t *testing.T) {
	var tr Trie
	tr = tr.Put([]byte("a"), uint32(1))
	tr = tr.Put([]byte("b"), uint32(2))

	tr = tr.Remove([]byte("a"))
	assert.Nil(t, Get[uint32](tr, []byte("a")))
	assert.Equal(t, uint32(2), *Get[uint32](tr, []byte("b")))

	// the root keeps only the 'b' child
	require.NotNil(t, tr.root)
	assert.Len(t, tr.root.children, 1)
	assert.NotNil(t, tr.root.child('b'))

	// removing the last key empties the trie
	tr = tr.Remove([]byte("b"))
	assert.Nil(t, tr.root)
}

func TestRemoveAbsent(t *testing.T) {
	var tr Trie
	assert.Nil(t, tr.Remove([]byte("x")).root)

	tr = tr.Put([]byte("abc"), uint32(1))
	same := tr.Remove([]byte("abd"))
	assert.Equal(t, uint32(1), *Get[uint32](same, []byte("abc")))

	// removing a strict prefix that holds no value changes nothing
	same = tr.Remove([]byte("ab"))
	assert.Equal(t, uint32(1), *Get[uint32](same, []byte("abc")))
}

func TestRemovePrunesPath(t *testing.T) {
	var tr Trie
	tr = tr.Put([]byte("abcde"), uint32(1))
	tr = tr.Put([]byte("ab"), uint32(2))

	// dropping the deep key must prune c, d and e but keep "ab"
	tr = tr.Remove([]byte("abcde"))
	assert.Nil(t, Get[uint32](tr, []byte("abcde")))
	assert.Equal(t, uint32(2), *Get[uint32](tr, []byte("ab")))
	assert.Empty(t, tr.root.child('a').child('b').children)

	checkNoDanglingNodes(t, tr)
}

// checkNoDanglingNodes walks the whole tree asserting that no
// reachable node is both valueless and childless.
func checkNoDanglingNodes(t *testing.T, tr Trie) {
	t.Helper()
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if !n.isValue && len(n.children) == 0 {
			t.Fatalf("dangling node reachable: %s", spew.Sdump(n))
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(tr.root)
}

func TestStructuralSharing(t *testing.T) {
	var tr Trie
	tr = tr.Put([]byte("ab"), uint32(1))
	tr = tr.Put([]byte("xy"), uint32(2))

	derived := tr.Put([]byte("abc"), uint32(3))

	// the 'x' subtree is off the mutated path and must be shared
	assert.Same(t, tr.root.child('x'), derived.root.child('x'))
	// everything on the path is fresh
	assert.NotSame(t, tr.root, derived.root)
	assert.NotSame(t, tr.root.child('a'), derived.root.child('a'))

	// Remove shares the same way
	removed := derived.Remove([]byte("abc"))
	assert.Same(t, derived.root.child('x'), removed.root.child('x'))
}

func TestGetAfterPutQuick(t *testing.T) {
	cfg := &quick.Config{MaxCount: 200}
	err := quick.Check(func(key []byte, value uint64) bool {
		var tr Trie
		got := Get[uint64](tr.Put(key, value), key)
		return got != nil && *got == value
	}, cfg)
	assert.NoError(t, err)
}

func TestRandomOps(t *testing.T) {
	f := fuzz.New().NumElements(1, 8)
	rng := rand.New(rand.NewSource(42))

	var tr Trie
	ref := make(map[string]uint64)
	for i := 0; i < 2000; i++ {
		var key []byte
		f.Fuzz(&key)
		if rng.Intn(4) == 0 {
			tr = tr.Remove(key)
			delete(ref, string(key))
		} else {
			v := rng.Uint64()
			tr = tr.Put(key, v)
			ref[string(key)] = v
		}
	}

	for k, want := range ref {
		got := Get[uint64](tr, []byte(k))
		require.NotNil(t, got, "key %q lost", k)
		assert.Equal(t, want, *got)
	}
	checkNoDanglingNodes(t, tr)

	// drain everything; the trie must end up empty
	for k := range ref {
		tr = tr.Remove([]byte(k))
	}
	assert.Nil(t, tr.root)
}

func TestMoveOnlyValue(t *testing.T) {
	// values need not be comparable or copyable in any special way;
	// pointer-typed values stand in for move-only holders
	type holder struct{ n uint32 }

	var tr Trie
	tr = tr.Put([]byte("h"), &holder{n: 9})

	got := Get[*holder](tr, []byte("h"))
	require.NotNil(t, got)
	assert.Equal(t, uint32(9), (*got).n)
	assert.Nil(t, Get[holder](tr, []byte("h")))
}
