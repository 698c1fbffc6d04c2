// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoes(t *testing.T) {
	var g Goes
	var n atomic.Int32

	g.Go(func() { n.Add(1) })
	g.Go(func() { n.Add(1) })
	g.Wait()

	<-g.Done()
	assert.Equal(t, int32(2), n.Load())
}
