// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package stream implements Ordo's stream-cipher kernels. RC4 wraps
// crypto/rc4 directly, per RFC 6229 and spec §1's instruction that S-box
// scheduling bit-twiddling lives outside this library.
package stream

import (
	"crypto/rc4"

	"github.com/TomCrypto/ordo/primitive"
)

// RC4 is the stream-cipher kernel for RC4.
var RC4 primitive.StreamCipherKernel = rc4Kernel{}

type rc4Kernel struct{}

func (rc4Kernel) Name() string { return "RC4" }

func (rc4Kernel) Limits() primitive.Limits {
	return primitive.Limits{KeyMin: 1, KeyMax: 256, KeyMul: 1}
}

func (rc4Kernel) NewState() primitive.StreamCipherState { return &rc4State{} }

type rc4State struct {
	cipher *rc4.Cipher
	key    []byte
}

func (s *rc4State) Init(key []byte) error {
	c, err := rc4.NewCipher(key)
	if err != nil {
		return err
	}
	s.cipher = c
	s.key = append([]byte(nil), key...)
	return nil
}

func (s *rc4State) Update(buf []byte) {
	if len(buf) == 0 {
		return
	}
	s.cipher.XORKeyStream(buf, buf)
}

func (s *rc4State) Copy() primitive.StreamCipherState {
	// rc4.Cipher is a plain value type (256-entry permutation table plus
	// two byte indices), so copying it by value preserves the exact
	// keystream position — re-Init-ing from the key would instead reset
	// to the start of the stream, violating the copy-independence
	// invariant (spec §3 invariant 2 / §8 property 7).
	clonedCipher := *s.cipher
	return &rc4State{cipher: &clonedCipher, key: append([]byte(nil), s.key...)}
}

func (s *rc4State) Free() {
	for i := range s.key {
		s.key[i] = 0
	}
	s.key = nil
	s.cipher = nil
}
