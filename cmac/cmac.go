// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package cmac implements CMAC (NIST SP 800-38B), a keyed block-cipher
// MAC registered alongside HMAC (SPEC_FULL §3 domain-stack addition —
// spec's §4.6 HMAC section does not preclude a second MAC construction).
// Subkey derivation and the streaming Write/Sum shape are grounded on the
// vendored CMAC implementation carried by the rest of the retrieval pack
// (rclone's vendored hirochachacha/go-smb2 cmac.go), adapted to operate
// over any primitive.BlockCipherState instead of a fixed crypto/cipher
// block size, and reworked into Ordo's Allocate/Init/Update/Final/Copy/
// Free driver discipline.
package cmac

import (
	"errors"

	"github.com/TomCrypto/ordo/primitive"
)

const (
	r64  = 0x1b
	r128 = 0x87
)

// Phase mirrors the other drivers' lifecycle.
type Phase int

const (
	Allocated Phase = iota
	Initialized
	Updating
	Finalized
)

var (
	// ErrWrongPhase is returned when Update or Final is called outside
	// the phases spec's invariant 1 permits (applied here by analogy to
	// HMAC/digest, since CMAC is a domain-stack addition, not in spec).
	ErrWrongPhase = errors.New("cmac: operation not legal in current phase")

	// ErrNilKernel is returned by Alloc when passed a nil cipher kernel.
	ErrNilKernel = errors.New("cmac: nil block cipher kernel")

	// ErrBlockSize is returned by Init when the bound cipher's block
	// size is neither 8 nor 16 bytes, the only sizes CMAC's irreducible
	// polynomial constants in this package cover.
	ErrBlockSize = errors.New("cmac: unsupported cipher block size")
)

// Context is one streaming CMAC session.
type Context struct {
	kernel primitive.BlockCipherKernel
	cs     primitive.BlockCipherState

	blockSize int
	k1, k2    []byte
	ci        []byte
	pos       int

	phase Phase
}

// Alloc returns a fresh context bound to kernel, in the Allocated phase.
func Alloc(kernel primitive.BlockCipherKernel) (*Context, error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	return &Context{kernel: kernel, phase: Allocated}, nil
}

// Init schedules key and derives the two CMAC subkeys (SP 800-38B §6.1).
func (ctx *Context) Init(key []byte) error {
	n := ctx.kernel.Limits().BlockSize

	var r byte
	switch n {
	case 8:
		r = r64
	case 16:
		r = r128
	default:
		return ErrBlockSize
	}

	cs := ctx.kernel.NewState()
	if err := cs.Init(key); err != nil {
		return err
	}

	k1 := make([]byte, n)
	cs.Forward(k1, k1)
	if shiftLeft1(k1, k1) != 0 {
		k1[n-1] ^= r
	}
	k2 := make([]byte, n)
	if shiftLeft1(k1, k2) != 0 {
		k2[n-1] ^= r
	}

	ctx.cs = cs
	ctx.blockSize = n
	ctx.k1 = k1
	ctx.k2 = k2
	ctx.ci = make([]byte, n)
	ctx.pos = 0
	ctx.phase = Initialized
	return nil
}

// Update absorbs len(buf) more message bytes.
func (ctx *Context) Update(buf []byte) error {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return ErrWrongPhase
	}
	for _, b := range buf {
		if ctx.pos >= ctx.blockSize {
			ctx.cs.Forward(ctx.ci, ctx.ci)
			ctx.pos = 0
		}
		ctx.ci[ctx.pos] ^= b
		ctx.pos++
	}
	ctx.phase = Updating
	return nil
}

// Final writes exactly OutputLen() bytes (the cipher's block size) to
// mac, selecting k1 if the message ended on an exact block boundary and
// k2 otherwise (applying 10* padding to the final partial block).
func (ctx *Context) Final(mac []byte) error {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return ErrWrongPhase
	}

	k := ctx.k1
	if ctx.pos < ctx.blockSize {
		k = ctx.k2
	}

	digest := make([]byte, ctx.blockSize)
	for i := 0; i < ctx.blockSize; i++ {
		digest[i] = ctx.ci[i] ^ k[i]
	}
	if ctx.pos < ctx.blockSize {
		digest[ctx.pos] ^= 0x80
	}
	ctx.cs.Forward(digest, digest)
	copy(mac, digest)

	ctx.phase = Finalized
	return nil
}

// OutputLen reports how many bytes Final will write: the bound cipher's
// block size.
func (ctx *Context) OutputLen() int { return ctx.blockSize }

// Copy returns an independent, deep-copied clone of ctx.
func (ctx *Context) Copy() *Context {
	clone := &Context{
		kernel:    ctx.kernel,
		blockSize: ctx.blockSize,
		k1:        append([]byte(nil), ctx.k1...),
		k2:        append([]byte(nil), ctx.k2...),
		ci:        append([]byte(nil), ctx.ci...),
		pos:       ctx.pos,
		phase:     ctx.phase,
	}
	if ctx.cs != nil {
		clone.cs = ctx.cs.Copy()
	}
	return clone
}

// Free zeroizes ctx's subkeys, chaining buffer, and cipher state.
func (ctx *Context) Free() {
	zero(ctx.k1)
	zero(ctx.k2)
	zero(ctx.ci)
	ctx.k1, ctx.k2, ctx.ci = nil, nil, nil
	if ctx.cs != nil {
		ctx.cs.Free()
		ctx.cs = nil
	}
	ctx.phase = Finalized
}

// Phase reports ctx's current lifecycle position.
func (ctx *Context) Phase() Phase { return ctx.phase }

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// shiftLeft1 left-shifts src by one bit into dst (which may alias src),
// returning the bit shifted out of the most significant byte.
func shiftLeft1(src, dst []byte) byte {
	var carry byte
	for i := len(src) - 1; i >= 0; i-- {
		next := src[i] >> 7
		dst[i] = src[i]<<1 | carry
		carry = next
	}
	return carry
}
