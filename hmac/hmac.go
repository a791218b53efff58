// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package hmac implements Ordo's keyed-hash construction (spec §4.6,
// RFC 2104) over any registered primitive.HashKernel. An hmac.Context
// owns one inner digest state and the outer pad; the outer digest state
// is created in Final. Its key-derived pad buffers are stored in secmem
// and zeroized on Free.
package hmac

import (
	"errors"

	"github.com/TomCrypto/ordo/primitive"
	"github.com/TomCrypto/ordo/secmem"
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
	// the phases spec's invariant 1 permits.
	ErrWrongPhase = errors.New("hmac: operation not legal in current phase")

	// ErrNilKernel is returned by Alloc when passed a nil hash kernel.
	ErrNilKernel = errors.New("hmac: nil hash kernel")
)

// Context is one streaming HMAC session.
type Context struct {
	kernel primitive.HashKernel
	params any

	inner primitive.HashState

	outerPad  *secmem.Region
	outputLen int

	phase Phase
}

// Alloc returns a fresh context bound to kernel, in the Allocated phase.
func Alloc(kernel primitive.HashKernel) (*Context, error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	return &Context{kernel: kernel, phase: Allocated}, nil
}

// Init derives the inner/outer pads from key (pre-hashing it first if
// longer than the bound hash's compression block length, per RFC 2104),
// and primes the inner digest with the inner pad already absorbed.
// params is passed through to the underlying hash kernel (e.g.
// hash.Skein256Params); nil selects defaults.
func (ctx *Context) Init(key []byte, params any) error {
	blockLen := ctx.kernel.BlockLen()

	k := key
	if len(k) > blockLen {
		st, err := ctx.kernel.NewState(params)
		if err != nil {
			return err
		}
		st.Update(k)
		sum := make([]byte, st.OutputLen())
		st.Final(sum)
		st.Free()
		k = sum
	}

	keyRegion, err := secmem.Alloc(blockLen)
	if err != nil {
		return err
	}
	defer keyRegion.Free()
	padded, _ := keyRegion.Bytes()
	copy(padded, k)

	innerRegion, err := secmem.Alloc(blockLen)
	if err != nil {
		return err
	}
	defer innerRegion.Free()
	innerPad, _ := innerRegion.Bytes()

	outerRegion, err := secmem.Alloc(blockLen)
	if err != nil {
		return err
	}
	outerPad, _ := outerRegion.Bytes()

	for i := 0; i < blockLen; i++ {
		innerPad[i] = padded[i] ^ 0x36
		outerPad[i] = padded[i] ^ 0x5c
	}

	inner, err := ctx.kernel.NewState(params)
	if err != nil {
		outerRegion.Free()
		return err
	}
	inner.Update(innerPad)

	ctx.inner = inner
	ctx.outerPad = outerRegion
	ctx.outputLen = inner.OutputLen()
	ctx.params = params
	ctx.phase = Initialized
	return nil
}

// Update absorbs len(buf) more message bytes into the inner digest.
func (ctx *Context) Update(buf []byte) error {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return ErrWrongPhase
	}
	ctx.inner.Update(buf)
	ctx.phase = Updating
	return nil
}

// Final finalizes the inner digest, then hashes outerPad || innerDigest
// through a fresh outer digest, writing OutputLen() bytes to mac.
func (ctx *Context) Final(mac []byte) error {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return ErrWrongPhase
	}

	innerSum := make([]byte, ctx.inner.OutputLen())
	ctx.inner.Final(innerSum)

	outer, err := ctx.kernel.NewState(ctx.params)
	if err != nil {
		ctx.phase = Finalized
		return err
	}
	outerPad, _ := ctx.outerPad.Bytes()
	outer.Update(outerPad)
	outer.Update(innerSum)
	outer.Final(mac)
	outer.Free()

	ctx.phase = Finalized
	return nil
}

// OutputLen reports how many bytes Final will write, once Init has run.
func (ctx *Context) OutputLen() int { return ctx.outputLen }

// Copy returns an independent, deep-copied clone of ctx.
func (ctx *Context) Copy() (*Context, error) {
	clone := &Context{kernel: ctx.kernel, params: ctx.params, outputLen: ctx.outputLen, phase: ctx.phase}
	if ctx.inner != nil {
		clone.inner = ctx.inner.Copy()
	}
	if ctx.outerPad != nil {
		outerPadSrc, err := ctx.outerPad.Bytes()
		if err != nil {
			return nil, err
		}
		region, err := secmem.Alloc(len(outerPadSrc))
		if err != nil {
			return nil, err
		}
		dst, _ := region.Bytes()
		copy(dst, outerPadSrc)
		clone.outerPad = region
	}
	return clone, nil
}

// Free zeroizes ctx's inner digest state and pad buffers.
func (ctx *Context) Free() {
	if ctx.inner != nil {
		ctx.inner.Free()
		ctx.inner = nil
	}
	if ctx.outerPad != nil {
		ctx.outerPad.Free()
		ctx.outerPad = nil
	}
	ctx.phase = Finalized
}

// Phase reports ctx's current lifecycle position.
func (ctx *Context) Phase() Phase { return ctx.phase }
