// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bufpool

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// PageSize is the fixed on-disk and in-memory page payload size.
const PageSize = 4096

// PageID identifies a page within the pool's backing store.
type PageID uint64

// Page is one frame's worth of data. Pin/dirty state is guarded by the
// pool latch; the payload may only be touched while the caller holds a
// pin.
type Page struct {
	id    PageID
	pins  int
	dirty bool
	data  [PageSize]byte
}

// ID returns the page's identifier.
func (p *Page) ID() PageID { return p.id }

// Data returns the page payload. Valid while the caller holds a pin.
func (p *Page) Data() []byte { return p.data[:] }

// reset prepares the frame for reuse by another page.
func (p *Page) reset(id PageID) {
	p.id = id
	p.pins = 0
	p.dirty = false
	p.data = [PageSize]byte{}
}

// pageRecord is the on-disk form of a page: the snappy-compressed
// payload plus a checksum of the raw payload.
type pageRecord struct {
	Checksum []byte
	Payload  []byte
}

// encodePage serializes data for storage.
func encodePage(data []byte) ([]byte, error) {
	sum := blake2b.Sum256(data)
	enc, err := rlp.EncodeToBytes(&pageRecord{
		Checksum: sum[:],
		Payload:  snappy.Encode(nil, data),
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode page")
	}
	return enc, nil
}

// decodePage reverses encodePage, verifying the checksum.
func decodePage(enc []byte) ([]byte, error) {
	var rec pageRecord
	if err := rlp.DecodeBytes(enc, &rec); err != nil {
		return nil, errors.Wrap(err, "decode page")
	}
	data, err := snappy.Decode(nil, rec.Payload)
	if err != nil {
		return nil, errors.Wrap(err, "decompress page")
	}
	if len(data) != PageSize {
		return nil, errors.Errorf("decompressed page size %d, want %d", len(data), PageSize)
	}
	sum := blake2b.Sum256(data)
	if !bytes.Equal(sum[:], rec.Checksum) {
		return nil, errors.New("page checksum mismatch")
	}
	return data, nil
}
