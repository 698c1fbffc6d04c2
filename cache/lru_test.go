// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/mooleetzi/minidb/cache"
)

func TestLRU(t *testing.T) {
	assert := assert.New(t)
	l := cache.NewLRU(16)

	loads := 0
	v, err := l.GetOrLoad("foo", func(any) (any, error) {
		loads++
		return "bar", nil
	})
	assert.NoError(err)
	assert.Equal("bar", v)

	// second lookup is served from cache
	v, err = l.GetOrLoad("foo", func(any) (any, error) {
		loads++
		return "bar", nil
	})
	assert.NoError(err)
	assert.Equal("bar", v)
	assert.Equal(1, loads)

	v, ok := l.Get("foo")
	assert.True(ok)
	assert.Equal("bar", v)

	l.Remove("foo")
	_, ok = l.Get("foo")
	assert.False(ok)
}

func TestLRULoadError(t *testing.T) {
	l := cache.NewLRU(16)
	want := errors.New("load failed")

	_, err := l.GetOrLoad("k", func(any) (any, error) {
		return nil, want
	})
	assert.Equal(t, want, errors.Cause(err))
	assert.Zero(t, l.Len())
}

func TestLRUEviction(t *testing.T) {
	l := cache.NewLRU(16)
	for i := 0; i < 100; i++ {
		l.Add(i, i)
	}
	assert.Equal(t, 16, l.Len())

	_, ok := l.Get(0)
	assert.False(t, ok)
	_, ok = l.Get(99)
	assert.True(t, ok)
}
