// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import (
	"github.com/TomCrypto/ordo/primitive"
	"github.com/TomCrypto/ordo/util"
)

// cbcDriver implements CBC (spec §4.4): C_i = E(P_i XOR C_{i-1}), C_0 =
// IV on encrypt; P_i = D(C_i) XOR C_{i-1} on decrypt. chain holds the
// previous ciphertext block (or the IV, before the first block).
type cbcDriver struct {
	cs        primitive.BlockCipherState
	blockSize int
	dir       Direction
	padding   bool
	chain     []byte
	buf       []byte
}

func (d *cbcDriver) Init(cs primitive.BlockCipherState, blockSize int, iv []byte, dir Direction, params any) error {
	if len(iv) != blockSize {
		return ErrArg
	}
	p := CBCParams{}
	switch v := params.(type) {
	case nil:
	case CBCParams:
		p = v
	case *CBCParams:
		if v != nil {
			p = *v
		}
	default:
		return ErrArg
	}
	d.cs = cs
	d.blockSize = blockSize
	d.dir = dir
	d.padding = p.Padding
	d.chain = append([]byte(nil), iv...)
	d.buf = nil
	return nil
}

func (d *cbcDriver) transformEncrypt(dst, src []byte) {
	xored := make([]byte, d.blockSize)
	copy(xored, src)
	util.XORBuffer(xored, d.chain)
	d.cs.Forward(dst, xored)
	d.chain = append(d.chain[:0], dst...)
}

func (d *cbcDriver) transformDecrypt(dst, src []byte) {
	d.cs.Inverse(dst, src)
	util.XORBuffer(dst, d.chain)
	d.chain = append(d.chain[:0], src...)
}

func (d *cbcDriver) transform(dst, src []byte) {
	if d.dir == Encrypt {
		d.transformEncrypt(dst, src)
	} else {
		d.transformDecrypt(dst, src)
	}
}

func (d *cbcDriver) Update(src []byte) ([]byte, error) {
	d.buf = append(d.buf, src...)
	holdLast := d.padding && d.dir == Decrypt
	return flushBlocks(&d.buf, d.blockSize, holdLast, d.transform), nil
}

func (d *cbcDriver) Final() ([]byte, error) {
	if !d.padding {
		if len(d.buf)%d.blockSize != 0 {
			return nil, ErrLeftover
		}
		return flushBlocks(&d.buf, d.blockSize, false, d.transform), nil
	}

	if d.dir == Encrypt {
		padded := util.Pad(d.buf, d.blockSize)
		out := make([]byte, len(padded))
		for i := 0; i < len(padded); i += d.blockSize {
			d.transformEncrypt(out[i:i+d.blockSize], padded[i:i+d.blockSize])
		}
		d.buf = nil
		return out, nil
	}

	if len(d.buf) != d.blockSize {
		return nil, ErrLeftover
	}
	plain := make([]byte, d.blockSize)
	d.transformDecrypt(plain, d.buf)
	d.buf = nil
	out, ok := util.Unpad(plain, d.blockSize)
	if !ok {
		return nil, ErrPadding
	}
	return out, nil
}

func (d *cbcDriver) Copy() Driver {
	clone := &cbcDriver{
		blockSize: d.blockSize,
		dir:       d.dir,
		padding:   d.padding,
		chain:     append([]byte(nil), d.chain...),
		buf:       append([]byte(nil), d.buf...),
	}
	if d.cs != nil {
		clone.cs = d.cs.Copy()
	}
	return clone
}

func (d *cbcDriver) Free() {
	zero(d.buf)
	zero(d.chain)
	d.buf = nil
	d.chain = nil
	if d.cs != nil {
		d.cs.Free()
		d.cs = nil
	}
}
