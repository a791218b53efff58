// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import "github.com/TomCrypto/ordo/primitive"

// cfbDriver implements CFB (spec §4.4): C_i = P_i XOR E(S_{i-1}), S_0 =
// IV, S_i = C_i on encrypt; P_i = C_i XOR E(S_{i-1}), S_i = C_i on
// decrypt. The chained state always advances on ciphertext, and only the
// cipher's forward permutation is ever used — the inverse permutation is
// never consulted, per spec §4.4. Like CTR/OFB, CFB is a keystream mode:
// output length always equals input length, so a block's keystream bytes
// are consumed one at a time rather than all at once, letting Update
// accept and emit input of any length with no buffering across calls.
type cfbDriver struct {
	cs        primitive.BlockCipherState
	blockSize int
	dir       Direction
	state     []byte
	ks        []byte
	ksPos     int
	next      []byte // chain bytes (ciphertext) accumulated for the in-flight block
}

func (d *cfbDriver) Init(cs primitive.BlockCipherState, blockSize int, iv []byte, dir Direction, params any) error {
	if len(iv) != blockSize {
		return ErrArg
	}
	d.cs = cs
	d.blockSize = blockSize
	d.dir = dir
	d.state = append([]byte(nil), iv...)
	d.ks = make([]byte, blockSize)
	d.ksPos = blockSize // force regeneration on first byte
	d.next = make([]byte, 0, blockSize)
	return nil
}

// refill advances the chain state to the just-completed block (a no-op
// the first time, since next starts empty and state already holds IV),
// then re-derives the keystream from the new state.
func (d *cfbDriver) refill() {
	copy(d.state, d.next)
	d.cs.Forward(d.ks, d.state)
	d.ksPos = 0
	d.next = d.next[:0]
}

func (d *cfbDriver) Update(buf []byte) ([]byte, error) {
	for i := range buf {
		if d.ksPos == d.blockSize {
			d.refill()
		}
		var chainByte byte
		if d.dir == Encrypt {
			buf[i] ^= d.ks[d.ksPos]
			chainByte = buf[i]
		} else {
			chainByte = buf[i]
			buf[i] ^= d.ks[d.ksPos]
		}
		d.next = append(d.next, chainByte)
		d.ksPos++
	}
	return buf, nil
}

func (d *cfbDriver) Final() ([]byte, error) { return nil, nil }

func (d *cfbDriver) Copy() Driver {
	clone := &cfbDriver{
		blockSize: d.blockSize,
		dir:       d.dir,
		state:     append([]byte(nil), d.state...),
		ks:        append([]byte(nil), d.ks...),
		ksPos:     d.ksPos,
		next:      append([]byte(nil), d.next...),
	}
	if d.cs != nil {
		clone.cs = d.cs.Copy()
	}
	return clone
}

func (d *cfbDriver) Free() {
	zero(d.state)
	zero(d.ks)
	zero(d.next)
	d.state = nil
	d.ks = nil
	d.next = nil
	if d.cs != nil {
		d.cs.Free()
		d.cs = nil
	}
}
