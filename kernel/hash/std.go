// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package hash implements Ordo's hash-function kernels: MD5, SHA-1, and
// SHA-256 wrap the Go standard library's compression functions directly
// (per spec §1, the compression function itself is out of this
// library's scope); Skein-256 is encoded from the Skein v1.3
// specification, since no stdlib or pack equivalent exists;
// BLAKE2b-256/BLAKE2s-256 wrap golang.org/x/crypto, registered as
// domain-stack additions beyond the spec's required hash set.
package hash

import (
	"encoding"
	"fmt"
	"hash"

	"github.com/TomCrypto/ordo/primitive"
)

// stdHashKernel adapts any stdlib-shaped hash.Hash constructor (one that
// also implements encoding.BinaryMarshaler/Unmarshaler, as MD5/SHA-1/
// SHA-256/BLAKE2b/BLAKE2s all do) into a primitive.HashKernel.
type stdHashKernel struct {
	name      string
	digestLen int
	blockLen  int
	newHash   func() hash.Hash
}

func (k stdHashKernel) Name() string   { return k.name }
func (k stdHashKernel) DigestLen() int { return k.digestLen }
func (k stdHashKernel) BlockLen() int  { return k.blockLen }

func (k stdHashKernel) NewState(params any) (primitive.HashState, error) {
	if params != nil {
		return nil, fmt.Errorf("%s: no init params supported", k.name)
	}
	return &stdHashState{kernel: k, h: k.newHash()}, nil
}

type stdHashState struct {
	kernel stdHashKernel
	h      hash.Hash
}

func (s *stdHashState) OutputLen() int { return s.kernel.digestLen }

func (s *stdHashState) Update(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_, _ = s.h.Write(buf)
}

func (s *stdHashState) Final(out []byte) {
	sum := s.h.Sum(nil)
	copy(out, sum)
}

func (s *stdHashState) Copy() primitive.HashState {
	marshaler, ok := s.h.(encoding.BinaryMarshaler)
	if !ok {
		panic(fmt.Sprintf("%s: underlying hash.Hash does not support cloning", s.kernel.name))
	}
	data, err := marshaler.MarshalBinary()
	if err != nil {
		panic(fmt.Sprintf("%s: marshal state: %v", s.kernel.name, err))
	}

	clone := s.kernel.newHash()
	unmarshaler, ok := clone.(encoding.BinaryUnmarshaler)
	if !ok {
		panic(fmt.Sprintf("%s: underlying hash.Hash does not support cloning", s.kernel.name))
	}
	if err := unmarshaler.UnmarshalBinary(data); err != nil {
		panic(fmt.Sprintf("%s: unmarshal state: %v", s.kernel.name, err))
	}

	return &stdHashState{kernel: s.kernel, h: clone}
}

func (s *stdHashState) Free() {
	s.h.Reset()
	s.h = nil
}
