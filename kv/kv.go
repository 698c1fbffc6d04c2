// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value store interfaces the storage
// layers are written against.
package kv

// Getter reads values by key.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// Putter writes and deletes values by key.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Batch accumulates writes and commits them atomically.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Store is a full key-value store.
type Store interface {
	Getter
	Putter

	NewBatch() Batch
	IsNotFound(err error) bool
	Close() error
}
