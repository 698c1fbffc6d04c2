// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"runtime"
	"sync"
)

// Parallel executes functions pushed into the queue by cb on a pool of
// one worker per CPU. The returned channel closes after cb has
// returned and every queued function has finished.
func Parallel(cb func(queue chan<- func())) <-chan struct{} {
	queue := make(chan func(), 32)
	done := make(chan struct{})

	nWorker := runtime.NumCPU()
	var wg sync.WaitGroup
	wg.Add(nWorker)
	for i := 0; i < nWorker; i++ {
		go func() {
			defer wg.Done()
			for fn := range queue {
				fn()
			}
		}()
	}

	go func() {
		defer close(done)
		cb(queue)
		close(queue)
		wg.Wait()
	}()
	return done
}
