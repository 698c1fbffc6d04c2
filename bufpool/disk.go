// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bufpool

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"
	"github.com/qianbin/directcache"

	"github.com/mooleetzi/minidb/cache"
	"github.com/mooleetzi/minidb/kv"
	"github.com/mooleetzi/minidb/log"
)

var logger = log.WithContext("pkg", "bufpool")

// DiskManager persists fixed-size pages and hands out page ids.
type DiskManager interface {
	ReadPage(id PageID, buf []byte) error
	WritePage(id PageID, data []byte) error
	AllocatePage() (PageID, error)
	DeallocatePage(id PageID) error
	Close() error
}

var (
	pageBucket = kv.Bucket("p")
	metaBucket = kv.Bucket("m")
)

var nextPageKey = []byte("next-page-id")

// storeDisk implements DiskManager on a kv.Store. Written pages are
// compressed and checksummed; reads go through a byte cache first.
type storeDisk struct {
	store  kv.Store
	pages  kv.Getter
	writes kv.Putter
	meta   kv.Getter
	metaWr kv.Putter

	readCache *directcache.Cache
	stats     cache.Stats

	lock sync.Mutex // guards next
	next uint64
}

// NewStoreDisk creates a disk manager on the given store, taking
// ownership of it. cacheBytes bounds the read cache.
func NewStoreDisk(store kv.Store, cacheBytes int) (DiskManager, error) {
	d := &storeDisk{
		store:     store,
		pages:     pageBucket.NewGetter(store),
		writes:    pageBucket.NewPutter(store),
		meta:      metaBucket.NewGetter(store),
		metaWr:    metaBucket.NewPutter(store),
		readCache: directcache.New(cacheBytes),
	}

	// recover the allocation cursor
	val, err := d.meta.Get(nextPageKey)
	if err != nil {
		if !store.IsNotFound(err) {
			return nil, errors.Wrap(err, "load page allocator state")
		}
	} else {
		d.next = binary.BigEndian.Uint64(val)
	}
	return d, nil
}

func pageKey(id PageID) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], uint64(id))
	return key[:]
}

func (d *storeDisk) ReadPage(id PageID, buf []byte) error {
	if len(buf) != PageSize {
		return errors.Errorf("read page: buffer size %d, want %d", len(buf), PageSize)
	}
	key := pageKey(id)

	if val, ok := d.readCache.Get(key); ok && len(val) == PageSize {
		d.stats.Hit()
		copy(buf, val)
		return nil
	}
	d.stats.Miss()

	enc, err := d.pages.Get(key)
	if err != nil {
		if d.store.IsNotFound(err) {
			return errors.Errorf("read page: page %d not found", id)
		}
		return errors.Wrapf(err, "read page %d", id)
	}
	data, err := decodePage(enc)
	if err != nil {
		return errors.Wrapf(err, "read page %d", id)
	}
	copy(buf, data)
	d.readCache.Set(key, data)
	return nil
}

func (d *storeDisk) WritePage(id PageID, data []byte) error {
	if len(data) != PageSize {
		return errors.Errorf("write page: data size %d, want %d", len(data), PageSize)
	}
	enc, err := encodePage(data)
	if err != nil {
		return errors.Wrapf(err, "write page %d", id)
	}
	key := pageKey(id)
	if err := d.writes.Put(key, enc); err != nil {
		return errors.Wrapf(err, "write page %d", id)
	}
	d.readCache.Set(key, data)
	return nil
}

func (d *storeDisk) AllocatePage() (PageID, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	id := d.next
	var val [8]byte
	binary.BigEndian.PutUint64(val[:], id+1)
	if err := d.metaWr.Put(nextPageKey, val[:]); err != nil {
		return 0, errors.Wrap(err, "allocate page")
	}
	d.next = id + 1
	return PageID(id), nil
}

func (d *storeDisk) DeallocatePage(id PageID) error {
	key := pageKey(id)
	d.readCache.Del(key)
	return errors.Wrapf(d.writes.Delete(key), "deallocate page %d", id)
}

func (d *storeDisk) Close() error {
	hits, misses, rate, _ := d.stats.Snapshot()
	logger.Info("closing disk manager",
		"cacheHits", hits,
		"cacheMisses", misses,
		"cacheHitRate", rate,
	)
	return d.store.Close()
}
