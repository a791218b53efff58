// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package primitive

import "fmt"

// blockEntry, streamEntry, hashEntry, modeEntry are the registry's
// per-primitive bookkeeping: the declared name plus (for kernels) the
// immutable descriptor.
type blockEntry struct {
	name   string
	kernel BlockCipherKernel
}

type streamEntry struct {
	name   string
	kernel StreamCipherKernel
}

type hashEntry struct {
	name   string
	kernel HashKernel
}

type modeEntry struct {
	name string
}

// Registry is Ordo's primitive table: one ordered list, name index, and
// default selection per Type. A Registry is built by one goroutine via
// the Register* methods and is safe for concurrent reads once
// construction is complete (the caller is responsible for not calling
// Register* concurrently with reads or with each other, matching spec
// §5's init-once-then-read-only model).
type Registry struct {
	blocks     []ID
	blockByID  map[ID]blockEntry
	blockNames map[string]ID
	blockDef   ID

	streams     []ID
	streamByID  map[ID]streamEntry
	streamNames map[string]ID
	streamDef   ID

	hashes     []ID
	hashByID   map[ID]hashEntry
	hashNames  map[string]ID
	hashDef    ID

	modes     []ID
	modeByID  map[ID]modeEntry
	modeNames map[string]ID
	modeDef   ID
}

// NewRegistry returns an empty Registry ready for Register* calls.
func NewRegistry() *Registry {
	return &Registry{
		blockByID:  map[ID]blockEntry{},
		blockNames: map[string]ID{},
		streamByID: map[ID]streamEntry{},
		streamNames: map[string]ID{},
		hashByID:   map[ID]hashEntry{},
		hashNames:  map[string]ID{},
		modeByID:   map[ID]modeEntry{},
		modeNames:  map[string]ID{},
	}
}

// RegisterBlockCipher adds a block cipher kernel under id, with name.
// Registering the same id twice overwrites the prior entry's fields but
// not its position in the ordered list.
func (r *Registry) RegisterBlockCipher(id ID, name string, kernel BlockCipherKernel) {
	if _, exists := r.blockByID[id]; !exists {
		r.blocks = append(r.blocks, id)
	}
	r.blockByID[id] = blockEntry{name: name, kernel: kernel}
	r.blockNames[name] = id
}

// RegisterStreamCipher adds a stream cipher kernel under id, with name.
func (r *Registry) RegisterStreamCipher(id ID, name string, kernel StreamCipherKernel) {
	if _, exists := r.streamByID[id]; !exists {
		r.streams = append(r.streams, id)
	}
	r.streamByID[id] = streamEntry{name: name, kernel: kernel}
	r.streamNames[name] = id
}

// RegisterHash adds a hash kernel under id, with name.
func (r *Registry) RegisterHash(id ID, name string, kernel HashKernel) {
	if _, exists := r.hashByID[id]; !exists {
		r.hashes = append(r.hashes, id)
	}
	r.hashByID[id] = hashEntry{name: name, kernel: kernel}
	r.hashNames[name] = id
}

// RegisterMode adds a block-mode name under id. Modes have no kernel:
// their state machine lives in package mode, parameterized by whichever
// block cipher is bound at blockcipher.Alloc time.
func (r *Registry) RegisterMode(id ID, name string) {
	if _, exists := r.modeByID[id]; !exists {
		r.modes = append(r.modes, id)
	}
	r.modeByID[id] = modeEntry{name: name}
	r.modeNames[name] = id
}

// SetDefault declares id as the default primitive of type t. Passing an
// id not yet registered under t is a programmer error and panics, since
// defaults are only ever set during static registry construction.
func (r *Registry) SetDefault(t Type, id ID) {
	switch t {
	case BlockCipher:
		if _, ok := r.blockByID[id]; !ok {
			panic(fmt.Sprintf("primitive: SetDefault(BlockCipher, %d): not registered", id))
		}
		r.blockDef = id
	case StreamCipher:
		if _, ok := r.streamByID[id]; !ok {
			panic(fmt.Sprintf("primitive: SetDefault(StreamCipher, %d): not registered", id))
		}
		r.streamDef = id
	case Hash:
		if _, ok := r.hashByID[id]; !ok {
			panic(fmt.Sprintf("primitive: SetDefault(Hash, %d): not registered", id))
		}
		r.hashDef = id
	case Mode:
		if _, ok := r.modeByID[id]; !ok {
			panic(fmt.Sprintf("primitive: SetDefault(Mode, %d): not registered", id))
		}
		r.modeDef = id
	}
}

// ByType returns the ordered list of IDs registered under t.
func (r *Registry) ByType(t Type) []ID {
	switch t {
	case BlockCipher:
		return append([]ID(nil), r.blocks...)
	case StreamCipher:
		return append([]ID(nil), r.streams...)
	case Hash:
		return append([]ID(nil), r.hashes...)
	case Mode:
		return append([]ID(nil), r.modes...)
	default:
		return nil
	}
}

// ByName resolves name to an ID under t. Name comparison is case
// sensitive and exact, per spec §4.1. ok is false if no primitive of
// that type carries that name.
func (r *Registry) ByName(t Type, name string) (id ID, ok bool) {
	switch t {
	case BlockCipher:
		id, ok = r.blockNames[name]
	case StreamCipher:
		id, ok = r.streamNames[name]
	case Hash:
		id, ok = r.hashNames[name]
	case Mode:
		id, ok = r.modeNames[name]
	}
	return
}

// Name resolves id (of type t) back to its declared name.
func (r *Registry) Name(t Type, id ID) (string, bool) {
	switch t {
	case BlockCipher:
		e, ok := r.blockByID[id]
		return e.name, ok
	case StreamCipher:
		e, ok := r.streamByID[id]
		return e.name, ok
	case Hash:
		e, ok := r.hashByID[id]
		return e.name, ok
	case Mode:
		e, ok := r.modeByID[id]
		return e.name, ok
	default:
		return "", false
	}
}

// Default returns the declared default ID for t.
func (r *Registry) Default(t Type) ID {
	switch t {
	case BlockCipher:
		return r.blockDef
	case StreamCipher:
		return r.streamDef
	case Hash:
		return r.hashDef
	case Mode:
		return r.modeDef
	default:
		return 0
	}
}

// Avail reports whether id is registered under t in this binary.
func (r *Registry) Avail(t Type, id ID) bool {
	switch t {
	case BlockCipher:
		_, ok := r.blockByID[id]
		return ok
	case StreamCipher:
		_, ok := r.streamByID[id]
		return ok
	case Hash:
		_, ok := r.hashByID[id]
		return ok
	case Mode:
		_, ok := r.modeByID[id]
		return ok
	default:
		return false
	}
}

// BlockCipherKernel returns the kernel registered under id, or nil if
// absent.
func (r *Registry) BlockCipherKernel(id ID) BlockCipherKernel {
	return r.blockByID[id].kernel
}

// StreamCipherKernel returns the kernel registered under id, or nil if
// absent.
func (r *Registry) StreamCipherKernel(id ID) StreamCipherKernel {
	return r.streamByID[id].kernel
}

// HashKernel returns the kernel registered under id, or nil if absent.
func (r *Registry) HashKernel(id ID) HashKernel {
	return r.hashByID[id].kernel
}

// Query answers a capability question about the primitive id of type t.
// Unknown t/id combinations, or questions not applicable to t, return 0.
func (r *Registry) Query(t Type, id ID, q Question, hint int) int {
	switch t {
	case BlockCipher:
		k := r.BlockCipherKernel(id)
		if k == nil {
			return 0
		}
		switch q {
		case KeyLenQ:
			return k.Limits().KeyLenFor(hint)
		case BlockSizeQ:
			return k.Limits().BlockSize
		}
	case StreamCipher:
		k := r.StreamCipherKernel(id)
		if k == nil {
			return 0
		}
		if q == KeyLenQ {
			return k.Limits().KeyLenFor(hint)
		}
	case Hash:
		k := r.HashKernel(id)
		if k == nil {
			return 0
		}
		switch q {
		case DigestLenQ:
			return k.DigestLen()
		case BlockLenQ:
			return k.BlockLen()
		}
	}
	return 0
}

// Limits returns the block-cipher id's key/block-size limits record, or
// the zero value if id is not a registered block cipher.
func (r *Registry) Limits(id ID) Limits {
	if k := r.BlockCipherKernel(id); k != nil {
		return k.Limits()
	}
	return Limits{}
}
