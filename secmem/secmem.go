// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package secmem provides locked, zeroize-on-free memory regions. In this
// module, package hmac keeps its key-derived pad buffers in secmem
// regions; the other drivers and the kernels hold their key material and
// state in ordinary Go memory, not in secmem.
//
// Two policies are available, selected at construction time: Direct
// allocates and page-locks a fresh region per call; Pool serves requests
// from a fixed number of pre-locked, fixed-size slots guarded by a single
// mutex whose critical sections cover allocation and release only. The
// pool exists so secret material never touches swap even if a later
// direct allocation would fail, per spec §4.8.
package secmem

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPoolExhausted is returned by Alloc when Policy == Pool and every
// slot is currently checked out.
var ErrPoolExhausted = errors.New("secmem: pool exhausted")

// ErrFreed is returned by Bytes on a Region that has already been freed.
var ErrFreed = errors.New("secmem: use after free")

// Region is a handle to a zeroize-on-free allocation. The zero value is
// not usable; obtain a Region via Manager.Alloc.
type Region struct {
	buf     []byte
	freed   bool
	lockErr error

	// fromSlot is the pool slot index this region was served from, or -1
	// if it was a Direct allocation (or a zero-length handle).
	fromSlot int
	mgr      *Manager
}

// Bytes returns the region's backing slice. It is valid to call Bytes on
// a zero-length region; it returns a non-nil, zero-length slice. Calling
// Bytes after Free returns ErrFreed.
func (r *Region) Bytes() ([]byte, error) {
	if r.freed {
		return nil, ErrFreed
	}
	return r.buf, nil
}

// LockErr reports the error (if any) encountered while page-locking this
// region. Under the Direct policy this is advisory and does not prevent
// use of the region.
func (r *Region) LockErr() error {
	return r.lockErr
}

// Free zeroizes the region's contents and releases it back to its pool
// slot (Pool policy) or unlocks and discards it (Direct policy).
// Free is unconditional and idempotent: calling it twice is a no-op on
// the second call, and it always zeroizes before release, even if the
// region was only partially initialized.
func (r *Region) Free() {
	if r.freed {
		return
	}
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.freed = true

	if r.fromSlot >= 0 && r.mgr != nil {
		r.mgr.releaseSlot(r.fromSlot)
		return
	}
	if r.mgr != nil {
		_ = unlockPages(r.buf)
	}
}

// slot is one fixed-size entry in the pool's backing region.
type slot struct {
	data []byte
}

// Manager is a configured secure-memory allocator. The zero value is not
// usable; construct one with New.
type Manager struct {
	cfg Config

	mu        sync.Mutex
	slots     []slot
	free      []int
	poolBytes []byte
}

// New constructs a Manager per cfg (after applying opts). When
// cfg.Policy == Pool, New page-locks the entire pool region up front and
// fails if that lock cannot be obtained, per spec §9's resolution that a
// lock failure during pool initialization is fatal only for the pool
// policy.
func New(opts ...Option) (*Manager, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Manager{cfg: cfg}

	if cfg.Policy == Pool {
		if cfg.PoolSize <= 0 || cfg.PoolWord <= 0 {
			return nil, fmt.Errorf("secmem: invalid pool dimensions (%d slots of %d bytes)", cfg.PoolSize, cfg.PoolWord)
		}
		m.poolBytes = make([]byte, cfg.PoolSize*cfg.PoolWord)
		if err := lockPages(m.poolBytes); err != nil {
			return nil, fmt.Errorf("secmem: pool lock failed: %w", err)
		}
		m.slots = make([]slot, cfg.PoolSize)
		m.free = make([]int, cfg.PoolSize)
		for i := 0; i < cfg.PoolSize; i++ {
			m.slots[i].data = m.poolBytes[i*cfg.PoolWord : (i+1)*cfg.PoolWord]
			m.free[i] = i
		}
	}

	return m, nil
}

// Alloc returns a zeroize-on-free Region of the given size. size == 0 is
// legal and always succeeds, returning a unique, dereference-safe,
// zero-length handle.
func (m *Manager) Alloc(size int) (*Region, error) {
	if size < 0 {
		return nil, fmt.Errorf("secmem: negative size %d", size)
	}
	if size == 0 {
		// Back the zero-length slice with a distinct one-byte array so
		// every zero-size handle remains a unique, dereferenceable
		// (if empty) allocation.
		backing := make([]byte, 1)
		return &Region{buf: backing[:0], fromSlot: -1, mgr: m}, nil
	}

	if m.cfg.Policy == Pool && size <= m.cfg.PoolWord {
		idx, ok := m.acquireSlot()
		if !ok {
			return nil, ErrPoolExhausted
		}
		return &Region{buf: m.slots[idx].data[:size], fromSlot: idx, mgr: m}, nil
	}

	buf := make([]byte, size)
	var lockErr error
	if err := lockPages(buf); err != nil {
		if !m.cfg.LockAdvisory {
			return nil, fmt.Errorf("secmem: lock failed: %w", err)
		}
		lockErr = err
	}
	return &Region{buf: buf, fromSlot: -1, lockErr: lockErr, mgr: m}, nil
}

func (m *Manager) acquireSlot() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.free) == 0 {
		return 0, false
	}
	idx := m.free[len(m.free)-1]
	m.free = m.free[:len(m.free)-1]
	return idx, true
}

func (m *Manager) releaseSlot(idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.free = append(m.free, idx)
}

// Default is the package-level Manager used by the package-level Alloc
// when the caller has not constructed its own Manager, configured with
// DefaultConfig (Direct policy, advisory locking).
var Default = mustDefault()

func mustDefault() *Manager {
	m, err := New()
	if err != nil {
		// DefaultConfig's Direct policy never fails construction.
		panic(fmt.Sprintf("secmem: default manager init failed: %v", err))
	}
	return m
}

// Alloc allocates size bytes of secure memory from the Default manager.
func Alloc(size int) (*Region, error) { return Default.Alloc(size) }
