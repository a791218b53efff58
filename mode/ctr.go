// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import (
	"github.com/TomCrypto/ordo/primitive"
	"github.com/TomCrypto/ordo/util"
)

// ctrDriver implements CTR (spec §4.4): a B-byte counter buffer, seeded
// from IV, is forward-permuted to fill a keystream buffer; once fully
// consumed the counter increments little-endian with carry. Output
// length equals input length; direction is ignored for keystream
// generation (encrypt and decrypt are the same XOR operation).
type ctrDriver struct {
	cs        primitive.BlockCipherState
	blockSize int
	counter   []byte
	ks        []byte
	ksPos     int
}

func (d *ctrDriver) Init(cs primitive.BlockCipherState, blockSize int, iv []byte, dir Direction, params any) error {
	if len(iv) != blockSize {
		return ErrArg
	}
	d.cs = cs
	d.blockSize = blockSize
	d.counter = append([]byte(nil), iv...)
	d.ks = make([]byte, blockSize)
	d.ksPos = blockSize // force regeneration on first byte
	return nil
}

func (d *ctrDriver) refill() {
	d.cs.Forward(d.ks, d.counter)
	util.IncCounter(d.counter)
	d.ksPos = 0
}

func (d *ctrDriver) Update(buf []byte) ([]byte, error) {
	for i := range buf {
		if d.ksPos == d.blockSize {
			d.refill()
		}
		buf[i] ^= d.ks[d.ksPos]
		d.ksPos++
	}
	return buf, nil
}

func (d *ctrDriver) Final() ([]byte, error) { return nil, nil }

func (d *ctrDriver) Copy() Driver {
	clone := &ctrDriver{
		blockSize: d.blockSize,
		counter:   append([]byte(nil), d.counter...),
		ks:        append([]byte(nil), d.ks...),
		ksPos:     d.ksPos,
	}
	if d.cs != nil {
		clone.cs = d.cs.Copy()
	}
	return clone
}

func (d *ctrDriver) Free() {
	zero(d.counter)
	zero(d.ks)
	d.counter = nil
	d.ks = nil
	if d.cs != nil {
		d.cs.Free()
		d.cs = nil
	}
}
