// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package block

import "github.com/TomCrypto/ordo/primitive"

// NullCipherBlockSize is NullCipher's declared block size; chosen to
// match AES so mode drivers can be exercised against either kernel
// interchangeably in tests.
const NullCipherBlockSize = 16

// NullCipher is the identity block cipher: Forward and Inverse both copy
// src to dst unchanged, and any key length is admissible. It exists
// solely to test the mode drivers' framing logic in isolation from a
// real cipher kernel, per original_source's nullcipher.h test-harness
// role (see SPEC_FULL §4).
var NullCipher primitive.BlockCipherKernel = nullCipherKernel{}

type nullCipherKernel struct{}

func (nullCipherKernel) Name() string { return "NullCipher" }

func (nullCipherKernel) Limits() primitive.Limits {
	return primitive.Limits{KeyMin: 0, KeyMax: 256, KeyMul: 1, BlockSize: NullCipherBlockSize}
}

func (nullCipherKernel) NewState() primitive.BlockCipherState { return &nullCipherState{} }

type nullCipherState struct{}

func (s *nullCipherState) Init(key []byte) error { return nil }

func (s *nullCipherState) Forward(dst, src []byte) { copy(dst, src) }
func (s *nullCipherState) Inverse(dst, src []byte) { copy(dst, src) }

func (s *nullCipherState) Copy() primitive.BlockCipherState { return &nullCipherState{} }

func (s *nullCipherState) Free() {}
