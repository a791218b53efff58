// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package blockcipher is Ordo's block-encrypt driver (spec §4.5): it
// composes a primitive.BlockCipherKernel with a mode.Driver into one
// streaming context, propagating key-length, IV-length, leftover, and
// padding failures from whichever layer first detects them.
package blockcipher

import (
	"errors"

	"github.com/TomCrypto/ordo/mode"
	"github.com/TomCrypto/ordo/primitive"
)

// Phase mirrors the other drivers' Allocated -> Initialized -> Updating
// -> Finalized lifecycle.
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
	ErrWrongPhase = errors.New("blockcipher: operation not legal in current phase")

	// ErrNilKernel is returned by Alloc when passed a nil cipher kernel.
	ErrNilKernel = errors.New("blockcipher: nil block cipher kernel")
)

// Re-exported so callers need only import this package for the common
// case of selecting a direction and mode params.
type (
	Direction = mode.Direction
	ECBParams = mode.ECBParams
	CBCParams = mode.CBCParams
)

const (
	Encrypt = mode.Encrypt
	Decrypt = mode.Decrypt
)

// Context is one block-encrypt streaming session: a key-scheduled cipher
// state wrapped by a bound mode driver.
type Context struct {
	kernel primitive.BlockCipherKernel
	modeID mode.ID
	driver mode.Driver
	phase  Phase
}

// Alloc returns a fresh context bound to kernel and the mode id, in the
// Allocated phase.
func Alloc(kernel primitive.BlockCipherKernel, modeID mode.ID) (*Context, error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	return &Context{kernel: kernel, modeID: modeID, phase: Allocated}, nil
}

// Init schedules key, binds iv and dir, and applies mode-specific params
// (nil selects the mode's defaults). Failure modes: the cipher kernel's
// own key-length error, mode.ErrArg (bad IV length or malformed params).
func (ctx *Context) Init(key, iv []byte, dir Direction, params any) error {
	cs := ctx.kernel.NewState()
	if err := cs.Init(key); err != nil {
		return err
	}

	d, err := mode.New(ctx.modeID)
	if err != nil {
		cs.Free()
		return err
	}

	blockSize := ctx.kernel.Limits().BlockSize
	if err := d.Init(cs, blockSize, iv, dir, params); err != nil {
		cs.Free()
		return err
	}

	ctx.driver = d
	ctx.phase = Initialized
	return nil
}

// Update feeds src through the bound mode, returning any output bytes it
// can now emit. Legal only in Initialized or Updating phase.
func (ctx *Context) Update(src []byte) ([]byte, error) {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return nil, ErrWrongPhase
	}
	out, err := ctx.driver.Update(src)
	if err != nil {
		ctx.phase = Finalized
		return nil, err
	}
	ctx.phase = Updating
	return out, nil
}

// Final flushes any buffered input, applying or verifying padding per
// the bound mode, and transitions ctx to Finalized. Possible failures:
// mode.ErrLeftover (padding disabled, non-aligned input), mode.ErrPadding
// (decrypt padding check failed).
func (ctx *Context) Final() ([]byte, error) {
	if ctx.phase != Initialized && ctx.phase != Updating {
		return nil, ErrWrongPhase
	}
	out, err := ctx.driver.Final()
	ctx.phase = Finalized
	return out, err
}

// Copy returns an independent, deep-copied clone of ctx.
func (ctx *Context) Copy() *Context {
	clone := &Context{kernel: ctx.kernel, modeID: ctx.modeID, phase: ctx.phase}
	if ctx.driver != nil {
		clone.driver = ctx.driver.Copy()
	}
	return clone
}

// Free zeroizes ctx's cipher and mode state.
func (ctx *Context) Free() {
	if ctx.driver != nil {
		ctx.driver.Free()
		ctx.driver = nil
	}
	ctx.phase = Finalized
}

// Phase reports ctx's current lifecycle position.
func (ctx *Context) Phase() Phase { return ctx.phase }
