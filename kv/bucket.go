// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket provides logical key-space separation within one store by
// transparently prefixing every key.
type Bucket string

// NewGetter wraps src so that all reads happen inside the bucket.
func (b Bucket) NewGetter(src Getter) Getter {
	return &getter{string(b), src}
}

// NewPutter wraps src so that all writes happen inside the bucket.
func (b Bucket) NewPutter(src Putter) Putter {
	return &putter{string(b), src}
}

type getter struct {
	prefix string
	src    Getter
}

func (g *getter) Get(key []byte) ([]byte, error) {
	return g.src.Get(append([]byte(g.prefix), key...))
}

func (g *getter) Has(key []byte) (bool, error) {
	return g.src.Has(append([]byte(g.prefix), key...))
}

type putter struct {
	prefix string
	src    Putter
}

func (p *putter) Put(key, val []byte) error {
	return p.src.Put(append([]byte(p.prefix), key...), val)
}

func (p *putter) Delete(key []byte) error {
	return p.src.Delete(append([]byte(p.prefix), key...))
}
