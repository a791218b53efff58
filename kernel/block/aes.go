// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package block implements Ordo's block-cipher kernels: AES (via
// crypto/aes, per FIPS 197), Threefish-256 (per the Skein v1.3
// specification), and NullCipher (an identity transform used to test the
// mode drivers in isolation). Kernels are pure transforms; all streaming
// state lives in the primitive.BlockCipherState each kernel produces.
package block

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/TomCrypto/ordo/primitive"
)

// AESBlockSize is the AES block size in bytes, fixed by FIPS 197.
const AESBlockSize = 16

// AES is the block-cipher kernel for AES-128/192/256, grounded on
// ctrdrbg.newDRBG's use of crypto/aes.NewCipher: spec §1 places the AES
// round function itself out of this library's scope, to be supplied by
// "their respective specifications" — crypto/aes is that specification's
// reference implementation in the Go ecosystem.
var AES primitive.BlockCipherKernel = aesKernel{}

type aesKernel struct{}

func (aesKernel) Name() string { return "AES" }

func (aesKernel) Limits() primitive.Limits {
	return primitive.Limits{KeyMin: 16, KeyMax: 32, KeyMul: 8, BlockSize: AESBlockSize}
}

func (aesKernel) NewState() primitive.BlockCipherState { return &aesState{} }

type aesState struct {
	block cipher.Block
	key   []byte
}

func (s *aesState) Init(key []byte) error {
	b, err := aes.NewCipher(key)
	if err != nil {
		s.Free()
		return err
	}
	s.block = b
	s.key = append([]byte(nil), key...)
	return nil
}

func (s *aesState) Forward(dst, src []byte) { s.block.Encrypt(dst, src) }
func (s *aesState) Inverse(dst, src []byte) { s.block.Decrypt(dst, src) }

func (s *aesState) Copy() primitive.BlockCipherState {
	clone := &aesState{}
	_ = clone.Init(s.key)
	return clone
}

func (s *aesState) Free() {
	for i := range s.key {
		s.key[i] = 0
	}
	s.key = nil
	s.block = nil
}
