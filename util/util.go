// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package util provides the small, primitive-agnostic helpers shared by
// every streaming driver in Ordo: constant-time comparison, buffer XOR,
// little-endian counter increment, and PKCS#7-style block padding.
//
// Only Pad allocates (it returns buf extended by the padding bytes), and
// none of them can fail except by returning a bool/error for malformed
// padding.
package util

import "crypto/subtle"

// CTCompare returns true iff a and b have equal length and agree on every
// byte. Runtime does not depend on the position of the first differing
// byte; it wraps crypto/subtle.ConstantTimeCompare.
func CTCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// XORBuffer XORs src into dst in place, writing min(len(dst), len(src))
// bytes. It is used by CBC chaining and by PBKDF2's accumulation of HMAC
// blocks.
func XORBuffer(dst, src []byte) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] ^= src[i]
	}
}

// IncCounter increments the byte slice v, treated as an unsigned integer
// in little-endian order, by one. Carry propagates from the low-order
// byte (index 0) toward the high-order byte; overflow wraps silently to
// all-zero, matching spec's counter increment contract.
func IncCounter(v []byte) {
	for i := 0; i < len(v); i++ {
		v[i]++
		if v[i] != 0 {
			return
		}
	}
}

// Pad appends PKCS#7-style padding to buf so its length becomes a
// multiple of blockSize: p = blockSize - (len(buf) mod blockSize) bytes,
// each of value p, with p always in [1, blockSize].
func Pad(buf []byte, blockSize int) []byte {
	p := blockSize - (len(buf) % blockSize)
	padding := make([]byte, p)
	for i := range padding {
		padding[i] = byte(p)
	}
	return append(buf, padding...)
}

// Unpad validates and strips PKCS#7-style padding from the final block of
// buf. It reports ok=false if the padding byte p is outside [1, blockSize]
// or if any of the final p bytes do not equal p. All p trailing bytes are
// checked before branching on validity, to reduce padding-oracle risk per
// spec's design notes.
func Unpad(buf []byte, blockSize int) (out []byte, ok bool) {
	if len(buf) == 0 || len(buf) < blockSize {
		return nil, false
	}

	p := int(buf[len(buf)-1])
	valid := p >= 1 && p <= blockSize

	// Always scan all blockSize trailing bytes (not just the claimed p)
	// so the validation cost does not vary with p.
	mismatch := 0
	for i := 0; i < blockSize; i++ {
		idx := len(buf) - 1 - i
		want := p
		if i >= p {
			// outside the claimed padding region: compare against itself
			// (always matches) so this branch never reveals p via timing.
			want = int(buf[idx])
		}
		if int(buf[idx]) != want {
			mismatch++
		}
	}

	if !valid || mismatch != 0 {
		return nil, false
	}
	return buf[:len(buf)-p], true
}
