// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package block

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/TomCrypto/ordo/primitive"
)

// Threefish256BlockSize is Threefish-256's block size in bytes (four
// 64-bit words).
const Threefish256BlockSize = 32

const (
	threefish256Rounds  = 72
	threefish256Subkeys = threefish256Rounds/4 + 1 // 19
	threefish256C240    = 0x1BD11BDAA9FC1A22
)

// threefish256Rotations are the MIX rotation constants for each of the
// two MIX operations per round, indexed by round-mod-8, per the Skein
// v1.3 specification's Threefish-256 tables.
var threefish256Rotations = [8][2]uint{
	{14, 16}, {52, 57}, {23, 40}, {5, 37},
	{25, 33}, {46, 12}, {58, 22}, {32, 32},
}

// Threefish256 is the block-cipher kernel for Threefish-256, encoded
// directly from the Skein v1.3 specification's MIX/permute description,
// per spec §1's instruction that kernel bit-twiddling be sourced from
// the primitive's own spec rather than invented here. No third-party
// Threefish implementation appeared in the retrieval pack (see
// DESIGN.md), so unlike AES/MD5/SHA-1/SHA-256/RC4 this kernel is
// hand-written rather than wrapped.
//
// This kernel operates with an all-zero 128-bit tweak; Ordo's registry
// does not expose a tweak parameter, since the spec's block-cipher
// contract (key in, plaintext/ciphertext block out) has no tweak slot.
var Threefish256 primitive.BlockCipherKernel = threefish256Kernel{}

type threefish256Kernel struct{}

func (threefish256Kernel) Name() string { return "Threefish-256" }

func (threefish256Kernel) Limits() primitive.Limits {
	return primitive.Limits{KeyMin: 32, KeyMax: 32, KeyMul: 1, BlockSize: Threefish256BlockSize}
}

func (threefish256Kernel) NewState() primitive.BlockCipherState { return &threefish256State{} }

type threefish256State struct {
	ek  [threefish256Subkeys][4]uint64
	key []byte
}

func (s *threefish256State) Init(key []byte) error {
	if len(key) != 32 {
		return fmt.Errorf("threefish256: key must be 32 bytes, got %d", len(key))
	}

	var k [5]uint64
	for i := 0; i < 4; i++ {
		k[i] = binary.LittleEndian.Uint64(key[i*8 : i*8+8])
	}
	k[4] = threefish256C240 ^ k[0] ^ k[1] ^ k[2] ^ k[3]

	// Tweak is fixed at zero: t[0] = t[1] = 0, so t[2] = t0^t1 = 0.
	var t [3]uint64

	for sk := 0; sk < threefish256Subkeys; sk++ {
		s.ek[sk][0] = k[sk%5]
		s.ek[sk][1] = k[(sk+1)%5]
		s.ek[sk][2] = k[(sk+2)%5] + t[sk%3]
		s.ek[sk][3] = k[(sk+3)%5] + uint64(sk)
	}

	s.key = append([]byte(nil), key...)
	return nil
}

func threefish256Mix(x0, x1 uint64, r uint) (uint64, uint64) {
	y0 := x0 + x1
	y1 := bits.RotateLeft64(x1, int(r)) ^ y0
	return y0, y1
}

func threefish256Unmix(y0, y1 uint64, r uint) (x0, x1 uint64) {
	x1 = bits.RotateLeft64(y1^y0, -int(r))
	x0 = y0 - x1
	return
}

func (s *threefish256State) Forward(dst, src []byte) {
	var v [4]uint64
	for i := 0; i < 4; i++ {
		v[i] = binary.LittleEndian.Uint64(src[i*8 : i*8+8])
	}

	for d := 0; d < threefish256Rounds; d++ {
		if d%4 == 0 {
			sk := d / 4
			v[0] += s.ek[sk][0]
			v[1] += s.ek[sk][1]
			v[2] += s.ek[sk][2]
			v[3] += s.ek[sk][3]
		}

		r := threefish256Rotations[d%8]
		v[0], v[1] = threefish256Mix(v[0], v[1], r[0])
		v[2], v[3] = threefish256Mix(v[2], v[3], r[1])
		v[1], v[3] = v[3], v[1]
	}

	last := s.ek[threefish256Subkeys-1]
	v[0] += last[0]
	v[1] += last[1]
	v[2] += last[2]
	v[3] += last[3]

	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(dst[i*8:i*8+8], v[i])
	}
}

func (s *threefish256State) Inverse(dst, src []byte) {
	var v [4]uint64
	for i := 0; i < 4; i++ {
		v[i] = binary.LittleEndian.Uint64(src[i*8 : i*8+8])
	}

	last := s.ek[threefish256Subkeys-1]
	v[0] -= last[0]
	v[1] -= last[1]
	v[2] -= last[2]
	v[3] -= last[3]

	for d := threefish256Rounds - 1; d >= 0; d-- {
		v[1], v[3] = v[3], v[1]

		r := threefish256Rotations[d%8]
		v[2], v[3] = threefish256Unmix(v[2], v[3], r[1])
		v[0], v[1] = threefish256Unmix(v[0], v[1], r[0])

		if d%4 == 0 {
			sk := d / 4
			v[0] -= s.ek[sk][0]
			v[1] -= s.ek[sk][1]
			v[2] -= s.ek[sk][2]
			v[3] -= s.ek[sk][3]
		}
	}

	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(dst[i*8:i*8+8], v[i])
	}
}

func (s *threefish256State) Copy() primitive.BlockCipherState {
	clone := &threefish256State{ek: s.ek, key: append([]byte(nil), s.key...)}
	return clone
}

func (s *threefish256State) Free() {
	for i := range s.key {
		s.key[i] = 0
	}
	s.key = nil
	s.ek = [threefish256Subkeys][4]uint64{}
}
