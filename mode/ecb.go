// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import (
	"github.com/TomCrypto/ordo/primitive"
	"github.com/TomCrypto/ordo/util"
)

type ecbDriver struct {
	cs        primitive.BlockCipherState
	blockSize int
	dir       Direction
	padding   bool
	buf       []byte
}

func (d *ecbDriver) Init(cs primitive.BlockCipherState, blockSize int, iv []byte, dir Direction, params any) error {
	if iv != nil && len(iv) != blockSize {
		return ErrArg
	}
	p := ECBParams{}
	switch v := params.(type) {
	case nil:
	case ECBParams:
		p = v
	case *ECBParams:
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
	d.buf = nil
	return nil
}

func (d *ecbDriver) transform(dst, src []byte) {
	if d.dir == Encrypt {
		d.cs.Forward(dst, src)
	} else {
		d.cs.Inverse(dst, src)
	}
}

func (d *ecbDriver) Update(src []byte) ([]byte, error) {
	d.buf = append(d.buf, src...)
	holdLast := d.padding && d.dir == Decrypt
	return flushBlocks(&d.buf, d.blockSize, holdLast, d.transform), nil
}

func (d *ecbDriver) Final() ([]byte, error) {
	if !d.padding {
		if len(d.buf)%d.blockSize != 0 {
			return nil, ErrLeftover
		}
		out := flushBlocks(&d.buf, d.blockSize, false, d.transform)
		return out, nil
	}

	if d.dir == Encrypt {
		padded := util.Pad(d.buf, d.blockSize)
		out := make([]byte, len(padded))
		for i := 0; i < len(padded); i += d.blockSize {
			d.cs.Forward(out[i:i+d.blockSize], padded[i:i+d.blockSize])
		}
		d.buf = nil
		return out, nil
	}

	if len(d.buf) != d.blockSize {
		return nil, ErrLeftover
	}
	plain := make([]byte, d.blockSize)
	d.cs.Inverse(plain, d.buf)
	d.buf = nil
	out, ok := util.Unpad(plain, d.blockSize)
	if !ok {
		return nil, ErrPadding
	}
	return out, nil
}

func (d *ecbDriver) Copy() Driver {
	clone := &ecbDriver{
		blockSize: d.blockSize,
		dir:       d.dir,
		padding:   d.padding,
		buf:       append([]byte(nil), d.buf...),
	}
	if d.cs != nil {
		clone.cs = d.cs.Copy()
	}
	return clone
}

func (d *ecbDriver) Free() {
	zero(d.buf)
	d.buf = nil
	if d.cs != nil {
		d.cs.Free()
		d.cs = nil
	}
}
