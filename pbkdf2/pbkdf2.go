// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package pbkdf2 implements Ordo's context-free key-derivation driver
// (spec §4.7, RFC 2898) built over package hmac: iterated HMAC blocks are
// XOR-accumulated per RFC 2898 §5.2 and truncated to the caller's
// requested output length.
package pbkdf2

import (
	"encoding/binary"
	"errors"

	"github.com/TomCrypto/ordo/hmac"
	"github.com/TomCrypto/ordo/primitive"
	"github.com/TomCrypto/ordo/util"
)

// ErrArg is returned when iterations < 1, per spec §4.7.
var ErrArg = errors.New("pbkdf2: iterations must be >= 1")

// Derive computes out_len bytes of derived key material from password
// and salt using hash as the underlying PRF, writing the result to out
// (which must have length outLen). It is context-free: no state outlives
// the call.
func Derive(hash primitive.HashKernel, password, salt []byte, iterations, outLen int, out []byte) error {
	if iterations < 1 {
		return ErrArg
	}
	if len(out) < outLen {
		return errors.New("pbkdf2: out too small for outLen")
	}

	digestLen := hash.DigestLen()
	numBlocks := (outLen + digestLen - 1) / digestLen

	produced := 0
	for i := 1; i <= numBlocks; i++ {
		block, err := blockF(hash, password, salt, iterations, i)
		if err != nil {
			return err
		}
		n := copy(out[produced:outLen], block)
		produced += n
	}
	return nil
}

// blockF computes T_i = U_1 XOR U_2 XOR ... XOR U_iterations, where
// U_1 = HMAC(password, salt || BE32(blockIndex)) and
// U_k = HMAC(password, U_{k-1}).
func blockF(hash primitive.HashKernel, password, salt []byte, iterations, blockIndex int) ([]byte, error) {
	var be [4]byte
	binary.BigEndian.PutUint32(be[:], uint32(blockIndex))

	u, err := hmacSum(hash, password, salt, be[:])
	if err != nil {
		return nil, err
	}

	t := append([]byte(nil), u...)
	for k := 2; k <= iterations; k++ {
		u, err = hmacSum(hash, password, u)
		if err != nil {
			return nil, err
		}
		util.XORBuffer(t, u)
	}
	return t, nil
}

// hmacSum computes HMAC(hash, password, concat(parts...)) in one shot.
func hmacSum(hash primitive.HashKernel, password []byte, parts ...[]byte) ([]byte, error) {
	ctx, err := hmac.Alloc(hash)
	if err != nil {
		return nil, err
	}
	defer ctx.Free()

	if err := ctx.Init(password, nil); err != nil {
		return nil, err
	}
	for _, p := range parts {
		if err := ctx.Update(p); err != nil {
			return nil, err
		}
	}
	out := make([]byte, ctx.OutputLen())
	if err := ctx.Final(out); err != nil {
		return nil, err
	}
	return out, nil
}
