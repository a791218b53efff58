// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import "github.com/TomCrypto/ordo/primitive"

// ofbDriver implements OFB (spec §4.4): counter-like, but each next
// keystream block is the forward permutation of the *previous keystream
// block* (seed = IV), independent of plaintext/ciphertext. No padding;
// output length equals input length.
type ofbDriver struct {
	cs        primitive.BlockCipherState
	blockSize int
	state     []byte
	ks        []byte
	ksPos     int
}

func (d *ofbDriver) Init(cs primitive.BlockCipherState, blockSize int, iv []byte, dir Direction, params any) error {
	if len(iv) != blockSize {
		return ErrArg
	}
	d.cs = cs
	d.blockSize = blockSize
	d.state = append([]byte(nil), iv...)
	d.ks = make([]byte, blockSize)
	d.ksPos = blockSize
	return nil
}

func (d *ofbDriver) refill() {
	d.cs.Forward(d.ks, d.state)
	copy(d.state, d.ks)
	d.ksPos = 0
}

func (d *ofbDriver) Update(buf []byte) ([]byte, error) {
	for i := range buf {
		if d.ksPos == d.blockSize {
			d.refill()
		}
		buf[i] ^= d.ks[d.ksPos]
		d.ksPos++
	}
	return buf, nil
}

func (d *ofbDriver) Final() ([]byte, error) { return nil, nil }

func (d *ofbDriver) Copy() Driver {
	clone := &ofbDriver{
		blockSize: d.blockSize,
		state:     append([]byte(nil), d.state...),
		ks:        append([]byte(nil), d.ks...),
		ksPos:     d.ksPos,
	}
	if d.cs != nil {
		clone.cs = d.cs.Copy()
	}
	return clone
}

func (d *ofbDriver) Free() {
	zero(d.state)
	zero(d.ks)
	d.state = nil
	d.ks = nil
	if d.cs != nil {
		d.cs.Free()
		d.cs = nil
	}
}
