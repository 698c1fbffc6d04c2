// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/rand"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/mooleetzi/minidb/bufpool"
	"github.com/mooleetzi/minidb/kv"
	"github.com/mooleetzi/minidb/lvldb"
	"github.com/mooleetzi/minidb/trie"
)

func trieAction(ctx *cli.Context) error {
	cfg, stop, err := setup(ctx)
	if err != nil {
		return err
	}
	defer stop()

	var (
		ops     = resolveInt(ctx, opsFlag.Name, cfg.Ops)
		workers = resolveInt(ctx, workersFlag.Name, cfg.Workers)
		keyLen  = ctx.Int(keyLenFlag.Name)
		history = ctx.Int(historyFlag.Name)
	)
	logger.Info("trie workload", "ops", ops, "workers", workers, "keyLen", keyLen)

	store := trie.NewStore(history)
	bar := pb.New(ops).Start()
	started := time.Now()

	var group errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		group.Go(func() error {
			rng := rand.New(rand.NewSource(int64(w)))
			key := make([]byte, keyLen)
			for i := 0; i < ops/workers; i++ {
				n := 1 + rng.Intn(keyLen)
				rng.Read(key[:n])
				switch rng.Intn(10) {
				case 0:
					store.Remove(key[:n])
				case 1, 2:
					trie.Get[uint64](store.Snapshot(), key[:n])
				default:
					store.Put(key[:n], rng.Uint64())
				}
				bar.Increment()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	bar.Finish()

	elapsed := time.Since(started)
	logger.Info("trie workload done",
		"version", store.Version(),
		"elapsed", elapsed,
		"opsPerSec", int(float64(ops)/elapsed.Seconds()),
	)
	return nil
}

func poolAction(ctx *cli.Context) error {
	cfg, stop, err := setup(ctx)
	if err != nil {
		return err
	}
	defer stop()

	var (
		dataDir  = resolveString(ctx, dataDirFlag.Name, cfg.DataDir)
		capacity = resolveInt(ctx, capacityFlag.Name, cfg.Capacity)
		k        = resolveInt(ctx, lookBackFlag.Name, cfg.K)
		pages    = resolveInt(ctx, pagesFlag.Name, cfg.Pages)
		ops      = resolveInt(ctx, opsFlag.Name, cfg.Ops)
	)

	var store kv.Store
	if dataDir == "" {
		logger.Info("using in-memory page store")
		if store, err = lvldb.NewMem(); err != nil {
			return err
		}
	} else {
		path := filepath.Join(dataDir, "pages.db")
		logger.Info("opening page store", "path", path)
		if store, err = lvldb.New(path, lvldb.Options{CacheSize: 64, FileDescriptorCache: 128}); err != nil {
			return err
		}
	}
	disk, err := bufpool.NewStoreDisk(store, 32<<20)
	if err != nil {
		return err
	}
	pool := bufpool.New(capacity, k, disk)
	defer pool.Close()

	logger.Info("pool workload", "capacity", capacity, "k", k, "pages", pages, "ops", ops)

	ids := make([]bufpool.PageID, 0, pages)
	for i := 0; i < pages; i++ {
		page, err := pool.NewPage()
		if err != nil {
			return errors.Wrap(err, "preallocate pages")
		}
		ids = append(ids, page.ID())
		if !pool.Unpin(page.ID(), true) {
			return errors.Errorf("unpin fresh page %d", page.ID())
		}
	}

	bar := pb.New(ops).Start()
	started := time.Now()
	rng := rand.New(rand.NewSource(0))
	for i := 0; i < ops; i++ {
		// zipf-ish skew: half the ops hit a tenth of the pages
		var id bufpool.PageID
		if rng.Intn(2) == 0 {
			id = ids[rng.Intn(1+pages/10)]
		} else {
			id = ids[rng.Intn(pages)]
		}
		page, err := pool.Fetch(id)
		if err != nil {
			return errors.Wrapf(err, "fetch page %d", id)
		}
		page.Data()[rng.Intn(bufpool.PageSize)]++
		pool.Unpin(id, true)
		bar.Increment()
	}
	bar.Finish()

	elapsed := time.Since(started)
	logger.Info("pool workload done",
		"evictable", pool.Evictable(),
		"elapsed", elapsed,
		"opsPerSec", int(float64(ops)/elapsed.Seconds()),
	)
	return nil
}
