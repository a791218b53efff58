// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package osrand

// Backend selects which entropy source a Reader draws from.
type Backend int

const (
	// SystemBackend reads directly from the OS CSPRNG (crypto/rand,
	// itself /dev/urandom on POSIX or CryptGenRandom on Windows). This
	// is the default and is what spec §4.9 calls os_random.
	SystemBackend Backend = iota

	// ChaCha20Backend generates output from a ChaCha20 stream seeded
	// from the OS CSPRNG and rekeyed after MaxBytesPerKey bytes, trading
	// one syscall per Read for in-process ChaCha20 keystream generation.
	ChaCha20Backend
)

// Config holds the tunable parameters for an osrand Reader.
type Config struct {
	// Backend selects the entropy source.
	Backend Backend

	// Shards is the number of independent generator pools, each
	// reducing contention under concurrent use. Only meaningful for
	// ChaCha20Backend; SystemBackend always delegates straight to
	// crypto/rand, which is already safe for concurrent use.
	Shards int

	// MaxInitRetries bounds how many times generator construction is
	// retried before NewReader gives up.
	MaxInitRetries int

	// MaxBytesPerKey is the output threshold, in bytes, after which a
	// ChaCha20Backend generator rekeys from fresh OS entropy.
	MaxBytesPerKey uint64
}

const (
	defaultShards         = 4
	defaultInitRetries    = 3
	defaultMaxBytesPerKey = 1 << 30
)

// DefaultConfig returns the recommended configuration: SystemBackend,
// which is the closest match to spec §4.9's os_random contract.
func DefaultConfig() Config {
	return Config{
		Backend:        SystemBackend,
		Shards:         defaultShards,
		MaxInitRetries: defaultInitRetries,
		MaxBytesPerKey: defaultMaxBytesPerKey,
	}
}

// Option configures a Config in place.
type Option func(*Config)

// WithBackend selects the entropy source.
func WithBackend(b Backend) Option { return func(c *Config) { c.Backend = b } }

// WithShards sets the number of generator shards (ChaCha20Backend only).
func WithShards(n int) Option { return func(c *Config) { c.Shards = n } }

// WithMaxInitRetries sets the generator-construction retry budget.
func WithMaxInitRetries(n int) Option { return func(c *Config) { c.MaxInitRetries = n } }

// WithMaxBytesPerKey sets the ChaCha20Backend rekey threshold.
func WithMaxBytesPerKey(n uint64) Option { return func(c *Config) { c.MaxBytesPerKey = n } }
