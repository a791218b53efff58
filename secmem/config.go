// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package secmem

// Policy selects how secmem satisfies allocation requests.
type Policy int

const (
	// Direct allocates a fresh, page-locked region per call. Simple, but
	// each allocation pays the cost of a locking syscall.
	Direct Policy = iota

	// Pool pre-allocates PoolSize slots of PoolWord bytes each from a
	// single locked region, guarded by one mutex whose critical sections
	// cover alloc and free only. Requests larger than PoolWord fall back
	// to Direct. The pool exists to guarantee secret material never hits
	// swap even under late allocator failure, per spec §4.8.
	Pool
)

// Config holds the tunable parameters for the secure memory subsystem.
type Config struct {
	// Policy selects Direct or Pool allocation.
	Policy Policy

	// PoolSize is the number of fixed-size slots in the pool, used only
	// when Policy == Pool.
	PoolSize int

	// PoolWord is the size in bytes of each pool slot, used only when
	// Policy == Pool.
	PoolWord int

	// LockAdvisory controls whether a page-lock failure is fatal.
	//
	// When true (the DefaultConfig value), a lock failure is advisory:
	// the allocation still succeeds, with the lock error recorded on the
	// Region for inspection. When false, Alloc fails with the lock
	// error. When Policy == Pool, lock
	// failure during pool construction is always fatal regardless of
	// this field, per spec §9's resolution of the mem_lock open question.
	LockAdvisory bool
}

const (
	defaultPoolSize = 1024
	defaultPoolWord = 32
)

// DefaultConfig returns the recommended configuration: Direct policy with
// advisory locking, matching a library that has not opted into the fixed
// pool.
func DefaultConfig() Config {
	return Config{
		Policy:       Direct,
		PoolSize:     defaultPoolSize,
		PoolWord:     defaultPoolWord,
		LockAdvisory: true,
	}
}

// Option configures a Config in place, following the functional-options
// pattern used throughout this module's constructors.
type Option func(*Config)

// WithPolicy selects the allocation policy.
func WithPolicy(p Policy) Option { return func(c *Config) { c.Policy = p } }

// WithPoolSize sets the number of slots in the pool (Policy == Pool only).
func WithPoolSize(n int) Option { return func(c *Config) { c.PoolSize = n } }

// WithPoolWord sets the size in bytes of each pool slot (Policy == Pool only).
func WithPoolWord(n int) Option { return func(c *Config) { c.PoolWord = n } }

// WithLockAdvisory controls whether a Direct-policy lock failure is
// fatal (false) or merely recorded (true).
func WithLockAdvisory(advisory bool) Option {
	return func(c *Config) { c.LockAdvisory = advisory }
}
