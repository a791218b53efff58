// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package mode implements Ordo's block-mode streaming state machines
// (spec §4.4): ECB, CBC, CTR, CFB, OFB. Each mode buffers up to one
// pending block of input, consults the bound block cipher's forward/
// inverse permutation, and (for ECB/CBC) applies or verifies PKCS#7-style
// padding on Final.
package mode

import (
	"errors"

	"github.com/TomCrypto/ordo/primitive"
)

// Direction selects which of the cipher's two permutations a mode
// consults, and (for ECB/CBC) whether Final applies or verifies padding.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

// ID identifies one registered block-mode by name, mirroring the dense
// per-type identifiers primitive.Registry uses for the other three
// primitive kinds.
type ID int

const (
	ECB ID = iota
	CBC
	CTR
	CFB
	OFB
)

var (
	// ErrLeftover is returned by Final when padding is disabled and the
	// total input length was not a multiple of the block size.
	ErrLeftover = errors.New("mode: final called with non-block-aligned input and padding disabled")

	// ErrPadding is returned by Final on decrypt when the final block's
	// PKCS#7 padding fails validation.
	ErrPadding = errors.New("mode: padding verification failed")

	// ErrArg is returned by Init when iv has the wrong length for the
	// mode, or params is malformed for the mode.
	ErrArg = errors.New("mode: malformed argument")

	// ErrUnknownMode is returned by New for an unrecognized ID.
	ErrUnknownMode = errors.New("mode: unknown mode id")
)

// ECBParams configures ECB: Padding enables/disables PKCS#7 framing.
type ECBParams struct{ Padding bool }

// CBCParams configures CBC: Padding enables/disables PKCS#7 framing.
type CBCParams struct{ Padding bool }

// Driver is one block mode's streaming state machine. blockcipher.Context
// composes a Driver with a primitive.BlockCipherState to build the
// block-encrypt driver of spec §4.5.
type Driver interface {
	// Init binds cs (an already key-scheduled cipher state) and iv,
	// selects dir, and applies mode-specific params (nil selects
	// defaults). blockSize must equal cs's cipher's block size.
	Init(cs primitive.BlockCipherState, blockSize int, iv []byte, dir Direction, params any) error

	// Update consumes src, returning any complete output blocks it can
	// now emit. May return a nil/empty slice if src did not complete a
	// block.
	Update(src []byte) ([]byte, error)

	// Final flushes any buffered input, applying or verifying padding as
	// configured, and returns the last output bytes.
	Final() ([]byte, error)

	// Copy returns an independent, deep-copied clone, including its own
	// copy of the bound cipher state.
	Copy() Driver

	// Free zeroizes internal buffers.
	Free()
}

// New returns a fresh, not-yet-Init'd Driver for id.
func New(id ID) (Driver, error) {
	switch id {
	case ECB:
		return &ecbDriver{}, nil
	case CBC:
		return &cbcDriver{}, nil
	case CTR:
		return &ctrDriver{}, nil
	case CFB:
		return &cfbDriver{}, nil
	case OFB:
		return &ofbDriver{}, nil
	default:
		return nil, ErrUnknownMode
	}
}

// Name returns id's registry name, matching the strings blockcipher/ordo
// register the mode under.
func (id ID) Name() string {
	switch id {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case CTR:
		return "CTR"
	case CFB:
		return "CFB"
	case OFB:
		return "OFB"
	default:
		return "unknown"
	}
}

// flushBlocks drains complete blocks from buf, applying transform to
// each, and returns the concatenated output. When holdLast is true, the
// final complete block in buf is left buffered (used by ECB/CBC decrypt
// with padding enabled, which must not emit a block before Final can
// unpad it).
func flushBlocks(buf *[]byte, blockSize int, holdLast bool, transform func(dst, src []byte)) []byte {
	blocks := len(*buf) / blockSize
	if holdLast {
		if blocks == 0 {
			return nil
		}
		blocks--
	}
	if blocks == 0 {
		return nil
	}

	out := make([]byte, blocks*blockSize)
	for i := 0; i < blocks; i++ {
		src := (*buf)[i*blockSize : (i+1)*blockSize]
		transform(out[i*blockSize:(i+1)*blockSize], src)
	}
	*buf = append([]byte(nil), (*buf)[blocks*blockSize:]...)
	return out
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
