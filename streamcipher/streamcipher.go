// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package streamcipher is Ordo's streaming stream-cipher driver (spec
// §4.3): identical phase discipline to package digest, but Update XORs
// keystream into the caller's buffer in place instead of accumulating a
// compression state, and there is no Final output.
package streamcipher

import (
	"errors"

	"github.com/TomCrypto/ordo/primitive"
)

// Phase mirrors package digest's lifecycle positions, minus Finalized's
// distinct meaning: a stream-cipher context has no final output, so
// Finalized here only means "no further Update calls permitted".
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
	ErrWrongPhase = errors.New("streamcipher: operation not legal in current phase")

	// ErrNilKernel is returned by Alloc when passed a nil kernel.
	ErrNilKernel = errors.New("streamcipher: nil stream cipher kernel")
)

// Context is one streaming stream-cipher's state: a bound kernel, its
// opaque keystream state, and the current phase.
type Context struct {
	kernel primitive.StreamCipherKernel
	state  primitive.StreamCipherState
	phase  Phase
}

// Alloc returns a fresh context bound to kernel, in the Allocated phase.
func Alloc(kernel primitive.StreamCipherKernel) (*Context, error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	return &Context{kernel: kernel, phase: Allocated}, nil
}

// Init schedules key and any kernel-specific setup, transitioning ctx to
// Initialized. Key-length admissibility failures (spec's ORDO_KEY_LEN)
// are surfaced as the kernel's own error.
func (ctx *Context) Init(key []byte) error {
	st := ctx.kernel.NewState()
	if err := st.Init(key); err != nil {
		return err
	}
	ctx.state = st
	ctx.phase = Initialized
	return nil
}

// Update XORs the next len(buf) keystream bytes into buf in place. Legal
// only in Initialized or Updating phase; an empty buf is a no-op.
func (ctx *Context) Update(buf []byte) error {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return ErrWrongPhase
	}
	ctx.state.Update(buf)
	ctx.phase = Updating
	return nil
}

// Final closes ctx: stream ciphers emit no final output (spec §4.3), so
// this only transitions the phase, refusing further Update calls.
func (ctx *Context) Final() error {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return ErrWrongPhase
	}
	ctx.phase = Finalized
	return nil
}

// Copy returns an independent, deep-copied clone of ctx.
func (ctx *Context) Copy() *Context {
	clone := &Context{kernel: ctx.kernel, phase: ctx.phase}
	if ctx.state != nil {
		clone.state = ctx.state.Copy()
	}
	return clone
}

// Free zeroizes ctx's keystream state. Safe even if Init never ran.
func (ctx *Context) Free() {
	if ctx.state != nil {
		ctx.state.Free()
		ctx.state = nil
	}
	ctx.phase = Finalized
}

// Phase reports ctx's current lifecycle position.
func (ctx *Context) Phase() Phase { return ctx.phase }
