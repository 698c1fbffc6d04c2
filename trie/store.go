// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"sync"

	"github.com/mooleetzi/minidb/cache"
)

// Store is a thread-safe, versioned wrapper around Trie. Writers are
// serialized and publish a fresh version on every mutation; readers
// grab a snapshot handle and work on it without any further locking.
// Recently published versions are kept in an LRU so point-in-time
// reads stay possible after later writes.
type Store struct {
	lock    sync.Mutex // guards current and version
	writeLk sync.Mutex // serializes writers
	current Trie
	version uint64

	history *cache.LRU // version -> Trie
}

// NewStore creates a store retaining up to historyLimit past versions
// (at least 16, the history cache's minimum size).
func NewStore(historyLimit int) *Store {
	return &Store{
		history: cache.NewLRU(historyLimit),
	}
}

// Snapshot returns the current trie handle. The snapshot is immutable
// and remains readable regardless of later writes.
func (s *Store) Snapshot() Trie {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.current
}

// Version returns the version number of the current trie.
func (s *Store) Version() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.version
}

// At returns the trie published as the given version, if it is still
// retained. Version 0 is the empty trie.
func (s *Store) At(version uint64) (Trie, bool) {
	if version == 0 {
		return Trie{}, true
	}
	s.lock.Lock()
	if version == s.version {
		cur := s.current
		s.lock.Unlock()
		return cur, true
	}
	s.lock.Unlock()

	if v, ok := s.history.Get(version); ok {
		return v.(Trie), true
	}
	return Trie{}, false
}

// Put maps key to value in a new version and returns its number.
func (s *Store) Put(key []byte, value any) uint64 {
	return s.publish(func(t Trie) Trie { return t.Put(key, value) })
}

// Remove unmaps key in a new version and returns its number.
func (s *Store) Remove(key []byte) uint64 {
	return s.publish(func(t Trie) Trie { return t.Remove(key) })
}

func (s *Store) publish(update func(Trie) Trie) uint64 {
	// The write lock keeps concurrent writers from both deriving from
	// the same base and silently dropping one another's updates. The
	// update itself runs outside the root lock so readers never wait
	// on path copying.
	s.writeLk.Lock()
	defer s.writeLk.Unlock()

	next := update(s.Snapshot())

	s.lock.Lock()
	s.version++
	s.current = next
	version := s.version
	s.lock.Unlock()

	s.history.Add(version, next)
	return version
}
