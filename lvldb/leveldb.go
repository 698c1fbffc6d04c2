// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb implements kv.Store backed by LevelDB.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/mooleetzi/minidb/kv"
)

var _ kv.Store = (*LevelDB)(nil)

// Options tunes the underlying LevelDB instance.
type Options struct {
	CacheSize           int // cache budget in MiB: half block cache, a quarter write buffer
	FileDescriptorCache int
}

// LevelDB wraps a LevelDB instance into kv.Store.
type LevelDB struct {
	db *leveldb.DB
}

// New opens or creates the database at path.
func New(path string, options Options) (*LevelDB, error) {
	if options.CacheSize < 16 {
		options.CacheSize = 16
	}
	if options.FileDescriptorCache < 16 {
		options.FileDescriptorCache = 16
	}

	db, err := leveldb.OpenFile(path, &opt.Options{
		OpenFilesCacheCapacity: options.FileDescriptorCache,
		BlockCacheCapacity:     options.CacheSize / 2 * opt.MiB,
		WriteBuffer:            options.CacheSize / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*dberrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db: db}, nil
}

// NewMem creates a memory-backed instance, for tests mostly.
func NewMem() (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "open memdb")
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, nil)
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *LevelDB) Put(key, val []byte) error {
	return l.db.Put(key, val, nil)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

// IsNotFound reports whether err denotes a missing key.
func (l *LevelDB) IsNotFound(err error) bool {
	return errors.Cause(err) == leveldb.ErrNotFound
}

// NewBatch creates an atomic write batch.
func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{
		db:    l.db,
		batch: &leveldb.Batch{},
	}
}

// Close flushes and closes the database.
func (l *LevelDB) Close() error {
	return l.db.Close()
}

type batch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *batch) Put(key, val []byte) error {
	b.batch.Put(key, val)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *batch) Len() int {
	return b.batch.Len()
}

func (b *batch) Write() error {
	return b.db.Write(b.batch, nil)
}
