// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bufpool implements a fixed-capacity buffer pool over a page
// store, with LRU-K victim selection.
package bufpool

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/mooleetzi/minidb/lruk"
)

// Errors reported by the pool.
var (
	ErrNoFreeFrame = errors.New("all frames pinned")
	ErrPagePinned  = errors.New("page still pinned")
)

// Pool caches up to capacity pages in memory. Victims are chosen by an
// LRU-K replacer; dirty victims are written back before their frame is
// reused.
type Pool struct {
	latch     sync.Mutex
	frames    []*Page
	pageTable map[PageID]uint32 // page id -> frame index
	free      []uint32
	replacer  *lruk.Replacer
	disk      DiskManager
}

// New creates a pool of capacity frames with look-back depth k.
func New(capacity, k int, disk DiskManager) *Pool {
	p := &Pool{
		frames:    make([]*Page, capacity),
		pageTable: make(map[PageID]uint32, capacity),
		free:      make([]uint32, 0, capacity),
		replacer:  lruk.New(capacity, k),
		disk:      disk,
	}
	for i := capacity - 1; i >= 0; i-- {
		p.frames[i] = &Page{}
		p.free = append(p.free, uint32(i))
	}
	return p
}

// Fetch pins and returns the page with the given id, reading it from
// disk on a pool miss. Callers must Unpin it eventually.
func (p *Pool) Fetch(id PageID) (*Page, error) {
	p.latch.Lock()
	defer p.latch.Unlock()

	if fi, ok := p.pageTable[id]; ok {
		page := p.frames[fi]
		page.pins++
		if err := p.touch(fi); err != nil {
			return nil, err
		}
		metricPageOps().AddWithLabel(1, map[string]string{"event": "hit"})
		return page, nil
	}
	metricPageOps().AddWithLabel(1, map[string]string{"event": "miss"})

	fi, err := p.victim()
	if err != nil {
		return nil, err
	}
	page := p.frames[fi]
	page.reset(id)
	if err := p.disk.ReadPage(id, page.data[:]); err != nil {
		// frame stays free for the next caller
		p.free = append(p.free, fi)
		return nil, err
	}
	page.pins = 1
	p.pageTable[id] = fi
	if err := p.touch(fi); err != nil {
		return nil, err
	}
	return page, nil
}

// NewPage allocates a fresh zeroed page, pinned and marked dirty so it
// reaches disk even if never written.
func (p *Pool) NewPage() (*Page, error) {
	p.latch.Lock()
	defer p.latch.Unlock()

	fi, err := p.victim()
	if err != nil {
		return nil, err
	}
	id, err := p.disk.AllocatePage()
	if err != nil {
		p.free = append(p.free, fi)
		return nil, err
	}
	page := p.frames[fi]
	page.reset(id)
	page.pins = 1
	page.dirty = true
	p.pageTable[id] = fi
	if err := p.touch(fi); err != nil {
		return nil, err
	}
	return page, nil
}

// Unpin drops one pin from the page. The dirty flag is sticky: once
// any unpinner reports modifications the page stays dirty until
// flushed. Returns false if the page is not resident or not pinned.
func (p *Pool) Unpin(id PageID, dirty bool) bool {
	p.latch.Lock()
	defer p.latch.Unlock()

	fi, ok := p.pageTable[id]
	if !ok {
		return false
	}
	page := p.frames[fi]
	if page.pins == 0 {
		return false
	}
	page.pins--
	if dirty {
		page.dirty = true
	}
	if page.pins == 0 {
		if err := p.replacer.SetEvictable(fi, true); err != nil {
			logger.Warn("unpin: set evictable", "frame", fi, "error", err)
		}
		metricEvictableFrames().Set(int64(p.replacer.Size()))
	}
	return true
}

// Flush writes the page to disk and clears its dirty flag.
func (p *Pool) Flush(id PageID) error {
	p.latch.Lock()
	defer p.latch.Unlock()

	fi, ok := p.pageTable[id]
	if !ok {
		return errors.Errorf("flush: page %d not resident", id)
	}
	return p.flushFrame(fi)
}

// FlushAll writes every resident page to disk.
func (p *Pool) FlushAll() error {
	p.latch.Lock()
	defer p.latch.Unlock()

	for _, fi := range p.pageTable {
		if err := p.flushFrame(fi); err != nil {
			return err
		}
	}
	return nil
}

// Delete evicts the page from the pool and deallocates it on disk.
// Deleting a non-resident page only deallocates; deleting a pinned
// page fails.
func (p *Pool) Delete(id PageID) error {
	p.latch.Lock()
	defer p.latch.Unlock()

	fi, ok := p.pageTable[id]
	if ok {
		page := p.frames[fi]
		if page.pins > 0 {
			return errors.Wrapf(ErrPagePinned, "delete page %d", id)
		}
		if err := p.replacer.Remove(fi); err != nil {
			return errors.Wrapf(err, "delete page %d", id)
		}
		delete(p.pageTable, id)
		page.reset(0)
		p.free = append(p.free, fi)
	}
	return p.disk.DeallocatePage(id)
}

// Evictable returns the number of frames currently eligible for
// eviction.
func (p *Pool) Evictable() int {
	return p.replacer.Size()
}

// Close flushes all resident pages and shuts the disk manager down.
func (p *Pool) Close() error {
	if err := p.FlushAll(); err != nil {
		return err
	}
	return p.disk.Close()
}

// touch records an access and pins the frame in the replacer. Callers
// hold the latch.
func (p *Pool) touch(fi uint32) error {
	if err := p.replacer.RecordAccess(fi, lruk.AccessLookup); err != nil {
		return errors.Wrap(err, "record access")
	}
	if err := p.replacer.SetEvictable(fi, false); err != nil {
		return errors.Wrap(err, "set evictable")
	}
	return nil
}

// victim returns a usable frame index, freeing one through the
// replacer when the free list is empty. Callers hold the latch.
func (p *Pool) victim() (uint32, error) {
	if n := len(p.free); n > 0 {
		fi := p.free[n-1]
		p.free = p.free[:n-1]
		return fi, nil
	}
	fi, ok := p.replacer.Evict()
	if !ok {
		return 0, ErrNoFreeFrame
	}
	page := p.frames[fi]
	if page.dirty {
		logger.Debug("write back dirty victim", "page", page.id, "frame", fi)
		if err := p.disk.WritePage(page.id, page.data[:]); err != nil {
			return 0, errors.Wrapf(err, "write back page %d", page.id)
		}
		metricPageOps().AddWithLabel(1, map[string]string{"event": "writeback"})
	}
	delete(p.pageTable, page.id)
	return fi, nil
}

// flushFrame writes one frame out. Callers hold the latch.
func (p *Pool) flushFrame(fi uint32) error {
	page := p.frames[fi]
	if err := p.disk.WritePage(page.id, page.data[:]); err != nil {
		return errors.Wrapf(err, "flush page %d", page.id)
	}
	page.dirty = false
	return nil
}
