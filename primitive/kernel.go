// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package primitive

// BlockCipherKernel is the immutable descriptor for one block-cipher
// primitive: a name, its key/block-size limits, and a factory for fresh
// kernel state. Kernels are pure transforms; all streaming state lives in
// the BlockCipherState they produce.
type BlockCipherKernel interface {
	Name() string
	Limits() Limits
	NewState() BlockCipherState
}

// BlockCipherState is one block cipher's opaque, key-scheduled state. A
// driver never inspects its internals; it only calls Init once, then
// Forward/Inverse any number of times, then Free exactly once.
type BlockCipherState interface {
	// Init schedules key, returning an error (e.g. bad key length) if
	// key is not admissible. On error, the state is left in a
	// zeroized, Free-safe condition.
	Init(key []byte) error

	// Forward encrypts exactly one block: len(src) == len(dst) ==
	// the kernel's block size.
	Forward(dst, src []byte)

	// Inverse decrypts exactly one block.
	Inverse(dst, src []byte)

	// Copy returns an independent, deep-copied clone of this state.
	Copy() BlockCipherState

	// Free zeroizes all key material and internal state. Free is safe
	// to call even if Init failed or was never called.
	Free()
}

// StreamCipherKernel is the immutable descriptor for one stream-cipher
// primitive.
type StreamCipherKernel interface {
	Name() string
	Limits() Limits
	NewState() StreamCipherState
}

// StreamCipherState is one stream cipher's opaque keystream state.
type StreamCipherState interface {
	// Init schedules key and prepares the keystream generator.
	Init(key []byte) error

	// Update XORs the next len(buf) keystream bytes into buf in place.
	// Calling Update with an empty buf is a no-op.
	Update(buf []byte)

	// Copy returns an independent, deep-copied clone of this state.
	Copy() StreamCipherState

	// Free zeroizes all key material and internal state.
	Free()
}

// HashKernel is the immutable descriptor for one hash-function
// primitive.
type HashKernel interface {
	Name() string
	DigestLen() int
	BlockLen() int

	// NewState returns fresh, Init-ready state. params is the
	// primitive-specific init record described by spec §4.2 (e.g.
	// Skein256Params); nil selects defaults.
	NewState(params any) (HashState, error)
}

// HashState is one hash function's opaque compression state.
type HashState interface {
	// Update absorbs len(buf) more message bytes. May be called with
	// an empty buf, and any number of times.
	Update(buf []byte)

	// OutputLen reports how many bytes Final will write. Equal to the
	// owning kernel's DigestLen() unless init params requested a
	// different output length (e.g. Skein256Params.OutBits).
	OutputLen() int

	// Final writes exactly OutputLen() bytes to out and renders the
	// state unusable for further Update calls.
	Final(out []byte)

	// Copy returns an independent, deep-copied clone of this state.
	Copy() HashState

	// Free zeroizes internal state.
	Free()
}
