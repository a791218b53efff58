// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package digest is Ordo's streaming hash driver (spec §4.2): it turns a
// primitive.HashKernel into an Allocate/Init/Update/Final/Copy/Free state
// machine, the same phase discipline every driver in this module follows.
package digest

import (
	"errors"
	"fmt"

	"github.com/TomCrypto/ordo/primitive"
)

// Phase is a driver's position in the Allocated -> Initialized ->
// Updating -> Finalized lifecycle (spec §3 "Streaming context").
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
	ErrWrongPhase = errors.New("digest: operation not legal in current phase")

	// ErrFinalized names the already-finalized condition. Update and
	// Final report a finalized context with ErrWrongPhase; no function
	// in this package returns ErrFinalized.
	ErrFinalized = errors.New("digest: context already finalized")
)

// Context is one streaming digest's state: a bound hash kernel, its
// opaque compression state, and the current phase.
type Context struct {
	kernel primitive.HashKernel
	state  primitive.HashState
	phase  Phase
}

// Alloc returns a fresh context bound to kernel, in the Allocated phase.
// kernel must not be nil.
func Alloc(kernel primitive.HashKernel) (*Context, error) {
	if kernel == nil {
		return nil, fmt.Errorf("digest: alloc: %w", ErrNilKernel)
	}
	return &Context{kernel: kernel, phase: Allocated}, nil
}

// ErrNilKernel is returned by Alloc when passed a nil kernel.
var ErrNilKernel = errors.New("digest: nil hash kernel")

// Init prepares ctx for Update calls. params is the kernel-specific init
// record (e.g. hash.Skein256Params); nil selects the kernel's defaults.
// Init may be called again on an Allocated or Finalized context to reuse
// it for a fresh message.
func (ctx *Context) Init(params any) error {
	st, err := ctx.kernel.NewState(params)
	if err != nil {
		return err
	}
	ctx.state = st
	ctx.phase = Initialized
	return nil
}

// Update absorbs len(buf) more message bytes. Legal only in Initialized
// or Updating phase; buf may be empty.
func (ctx *Context) Update(buf []byte) error {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return ErrWrongPhase
	}
	ctx.state.Update(buf)
	ctx.phase = Updating
	return nil
}

// OutputLen reports how many bytes Final will write, once Init has run.
func (ctx *Context) OutputLen() int {
	if ctx.state != nil {
		return ctx.state.OutputLen()
	}
	return ctx.kernel.DigestLen()
}

// Final writes exactly OutputLen() bytes to out, then transitions ctx to
// Finalized. Legal from Initialized (empty message) or Updating.
func (ctx *Context) Final(out []byte) error {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return ErrWrongPhase
	}
	ctx.state.Final(out)
	ctx.phase = Finalized
	return nil
}

// Copy returns an independent clone of ctx: the clone's kernel state is
// deep-copied (spec invariant 2), so subsequent Update/Final calls on
// either context do not affect the other.
func (ctx *Context) Copy() *Context {
	clone := &Context{kernel: ctx.kernel, phase: ctx.phase}
	if ctx.state != nil {
		clone.state = ctx.state.Copy()
	}
	return clone
}

// Free zeroizes ctx's kernel state. Safe to call even if Init never ran
// or failed.
func (ctx *Context) Free() {
	if ctx.state != nil {
		ctx.state.Free()
		ctx.state = nil
	}
	ctx.phase = Finalized
}

// Phase reports ctx's current lifecycle position.
func (ctx *Context) Phase() Phase { return ctx.phase }
