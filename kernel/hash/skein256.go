// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hash

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/TomCrypto/ordo/primitive"
)

// skeinRotations are Threefish-256's MIX rotation constants, duplicated
// from kernel/block's unexported table since Skein's UBI construction
// needs a tweak-parameterized variant of the same round structure (see
// threefishTweakedEncrypt below).
var skeinRotations = [8][2]uint{
	{14, 16}, {52, 57}, {23, 40}, {5, 37},
	{25, 33}, {46, 12}, {58, 22}, {32, 32},
}

func skeinMix(x0, x1 uint64, r uint) (uint64, uint64) {
	y0 := x0 + x1
	y1 := bits.RotateLeft64(x1, int(r)) ^ y0
	return y0, y1
}

// Skein256 is the hash kernel for Skein-256-256 (Skein v1.3), built
// directly from the specification's Threefish-256/UBI construction: no
// stdlib or pack equivalent exists for Skein (see DESIGN.md), so this is
// the one hash kernel written from scratch rather than wrapped.
//
// Skein256Params.OutBits rounds down to a byte boundary, per spec §9's
// resolution of the source's bits-vs-bytes inconsistency for Skein
// output length.
var Skein256 primitive.HashKernel = skein256Kernel{}

// Skein256Params is Skein-256's per-call init record (spec §4.2).
// Passing nil to NewState selects DefaultSkein256Params.
type Skein256Params struct {
	// Schema is the 4-byte configuration schema identifier; "SHA3" per
	// the reference Skein configuration string.
	Schema [4]byte

	// Version is the Skein version field; 1 per the v1.3 spec.
	Version uint16

	// OutBits is the desired digest length in bits; rounded down to a
	// byte boundary. Zero selects the kernel's native 256-bit output.
	OutBits int
}

// DefaultSkein256Params is Skein-256's default configuration: schema
// "SHA3", version 1, 256-bit output.
func DefaultSkein256Params() Skein256Params {
	return Skein256Params{Schema: [4]byte{'S', 'H', 'A', '3'}, Version: 1, OutBits: 256}
}

const (
	skeinBlockBytes = 32 // Nb: Threefish-256's block size.

	skeinTypeCFG = 4
	skeinTypeMSG = 48
	skeinTypeOUT = 63
)

type skein256Kernel struct{}

func (skein256Kernel) Name() string   { return "Skein-256" }
func (skein256Kernel) DigestLen() int { return 32 }
func (skein256Kernel) BlockLen() int  { return skeinBlockBytes }

func (skein256Kernel) NewState(params any) (primitive.HashState, error) {
	p := DefaultSkein256Params()
	switch v := params.(type) {
	case nil:
	case Skein256Params:
		p = v
	case *Skein256Params:
		if v != nil {
			p = *v
		}
	default:
		return nil, fmt.Errorf("skein256: unsupported params type %T", params)
	}
	if p.OutBits <= 0 {
		p.OutBits = 256
	}

	s := &skein256State{outLen: p.OutBits / 8}
	s.chain = skeinConfigure(p)
	return s, nil
}

type skein256State struct {
	chain   [4]uint64
	buf     []byte
	pos     uint64 // bytes of message absorbed into buf/chain so far
	outLen  int
	started bool
}

// skeinUBIBlock runs one UBI chaining step: G' = E_G(tweak)(block) XOR
// block, where block is exactly skeinBlockBytes long (zero-padded by the
// caller if the real input was shorter).
func skeinUBIBlock(chain [4]uint64, block []byte, position uint64, typeCode uint64, first, last bool) [4]uint64 {
	var p [4]uint64
	for i := 0; i < 4; i++ {
		p[i] = binary.LittleEndian.Uint64(block[i*8 : i*8+8])
	}

	t0 := position
	t1 := typeCode << 56
	if first {
		t1 |= 1 << 62
	}
	if last {
		t1 |= 1 << 63
	}

	e := threefishTweakedEncrypt(chain, [2]uint64{t0, t1}, p)

	var out [4]uint64
	for i := range out {
		out[i] = e[i] ^ p[i]
	}
	return out
}

// skeinConfigure runs the CFG UBI pass that derives the initial chaining
// value from an all-zero key and the configuration string (schema,
// version, desired output length in bits).
func skeinConfigure(p Skein256Params) [4]uint64 {
	cfg := make([]byte, skeinBlockBytes)
	copy(cfg[0:4], p.Schema[:])
	binary.LittleEndian.PutUint16(cfg[4:6], p.Version)
	binary.LittleEndian.PutUint64(cfg[8:16], uint64(p.OutBits))

	var zero [4]uint64
	return skeinUBIBlock(zero, cfg, skeinBlockBytes, skeinTypeCFG, true, true)
}

func (s *skein256State) OutputLen() int {
	if s.outLen <= 0 {
		return 32
	}
	return s.outLen
}

func (s *skein256State) Update(data []byte) {
	if len(data) == 0 {
		return
	}
	s.buf = append(s.buf, data...)

	for len(s.buf) > skeinBlockBytes {
		block := s.buf[:skeinBlockBytes]
		s.pos += skeinBlockBytes
		s.chain = skeinUBIBlock(s.chain, block, s.pos, skeinTypeMSG, !s.started, false)
		s.started = true
		s.buf = s.buf[skeinBlockBytes:]
	}
}

func (s *skein256State) Final(out []byte) {
	finalBlock := make([]byte, skeinBlockBytes)
	copy(finalBlock, s.buf)
	s.pos += uint64(len(s.buf))

	msgChain := skeinUBIBlock(s.chain, finalBlock, s.pos, skeinTypeMSG, !s.started, true)

	outLen := s.outLen
	if outLen <= 0 {
		outLen = 32
	}

	produced := 0
	counter := uint64(0)
	chain := msgChain
	for produced < outLen {
		ctrBlock := make([]byte, skeinBlockBytes)
		binary.LittleEndian.PutUint64(ctrBlock[0:8], counter)

		outChain := skeinUBIBlock(chain, ctrBlock, 8, skeinTypeOUT, true, true)

		outBlock := make([]byte, skeinBlockBytes)
		for i := 0; i < 4; i++ {
			binary.LittleEndian.PutUint64(outBlock[i*8:i*8+8], outChain[i])
		}

		n := copy(out[produced:min(len(out), produced+skeinBlockBytes)], outBlock)
		produced += n
		counter++
		if n == 0 {
			break
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (s *skein256State) Copy() primitive.HashState {
	clone := &skein256State{
		chain:   s.chain,
		buf:     append([]byte(nil), s.buf...),
		pos:     s.pos,
		outLen:  s.outLen,
		started: s.started,
	}
	return clone
}

func (s *skein256State) Free() {
	s.chain = [4]uint64{}
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.buf = nil
}

// threefishTweakedEncrypt is Threefish-256 parameterized by an explicit
// 128-bit tweak, as Skein's UBI construction requires. It duplicates the
// round structure in kernel/block's Threefish256 (which fixes the tweak
// at zero for use as a standalone block cipher primitive) because Skein
// needs a different tweak per UBI call; see DESIGN.md.
func threefishTweakedEncrypt(key [4]uint64, tweak [2]uint64, plain [4]uint64) [4]uint64 {
	const c240 = 0x1BD11BDAA9FC1A22
	const rounds = 72
	const subkeys = rounds/4 + 1

	var k [5]uint64
	copy(k[:4], key[:])
	k[4] = c240 ^ k[0] ^ k[1] ^ k[2] ^ k[3]

	t0, t1 := tweak[0], tweak[1]
	t := [3]uint64{t0, t1, t0 ^ t1}

	var ek [subkeys][4]uint64
	for sk := 0; sk < subkeys; sk++ {
		ek[sk][0] = k[sk%5]
		ek[sk][1] = k[(sk+1)%5]
		ek[sk][2] = k[(sk+2)%5] + t[sk%3]
		ek[sk][3] = k[(sk+3)%5] + uint64(sk)
	}

	v := plain
	for d := 0; d < rounds; d++ {
		if d%4 == 0 {
			sk := d / 4
			v[0] += ek[sk][0]
			v[1] += ek[sk][1]
			v[2] += ek[sk][2]
			v[3] += ek[sk][3]
		}

		r := skeinRotations[d%8]
		v[0], v[1] = skeinMix(v[0], v[1], r[0])
		v[2], v[3] = skeinMix(v[2], v[3], r[1])
		v[1], v[3] = v[3], v[1]
	}

	last := ek[subkeys-1]
	v[0] += last[0]
	v[1] += last[1]
	v[2] += last[2]
	v[3] += last[3]

	return v
}
