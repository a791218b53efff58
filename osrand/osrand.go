// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package osrand implements spec §4.9's OS CSPRNG adapter: deliver n
// pseudorandom bytes or fail. The default backend is a thin, always-loops
// wrapper over crypto/rand (POSIX /dev/urandom, Windows CryptGenRandom).
// An optional ChaCha20 backend trades one syscall per Read for in-process
// ChaCha20 keystream generation, rekeying periodically from the same OS
// source.
package osrand

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// ErrUnavailable is returned when no entropy source is available on the
// current platform; it is the osrand-level counterpart of spec's
// ORDO_FAIL for os_random.
var ErrUnavailable = errors.New("osrand: no entropy source available")

// Reader is a cryptographically secure byte source with an inspectable,
// non-secret Config.
type Reader interface {
	io.Reader
	Config() Config
}

// systemReader delegates directly to crypto/rand.
type systemReader struct {
	cfg Config
}

func (r *systemReader) Config() Config { return r.cfg }

func (r *systemReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, err := io.ReadFull(rand.Reader, b)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n, nil
}

// chachaGen is one shard's ChaCha20 keystream generator: a cipher plus a
// usage counter, rekeyed from fresh OS entropy after cfg.MaxBytesPerKey
// bytes of output.
type chachaGen struct {
	mu     sync.Mutex
	cfg    *Config
	cipher *chacha20.Cipher
	usage  uint64
}

func newChaChaGen(cfg *Config) (*chachaGen, error) {
	g := &chachaGen{cfg: cfg}
	if err := g.rekeyLocked(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *chachaGen) rekeyLocked() error {
	seed := make([]byte, chacha20.KeySize+chacha20.NonceSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c, err := chacha20.NewUnauthenticatedCipher(seed[:chacha20.KeySize], seed[chacha20.KeySize:])
	if err != nil {
		return fmt.Errorf("osrand: chacha20 init failed: %w", err)
	}
	g.cipher = c
	g.usage = 0
	return nil
}

func (g *chachaGen) Read(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.usage >= g.cfg.MaxBytesPerKey {
		if err := g.rekeyLocked(); err != nil {
			return 0, err
		}
	}

	zero := make([]byte, len(b))
	g.cipher.XORKeyStream(b, zero)
	g.usage += uint64(len(b))
	return len(b), nil
}

// chachaReader fans Read calls out across a shard of chachaGen instances,
// grounded on prng.reader's sync.Pool-per-shard shape.
type chachaReader struct {
	cfg   Config
	pools []*sync.Pool
}

func newChaChaReader(cfg Config) (Reader, error) {
	pools := make([]*sync.Pool, cfg.Shards)
	for i := range pools {
		cfg := cfg
		pools[i] = &sync.Pool{
			New: func() interface{} {
				var (
					g   *chachaGen
					err error
				)
				for r := 0; r < cfg.MaxInitRetries; r++ {
					if g, err = newChaChaGen(&cfg); err == nil {
						return g
					}
				}
				panic(fmt.Sprintf("osrand: chacha20 pool init failed after %d retries: %v", cfg.MaxInitRetries, err))
			},
		}

		var panicErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					panicErr = fmt.Errorf("osrand: chacha20 pool init failed: %v", r)
				}
			}()
			item := pools[i].Get()
			pools[i].Put(item)
		}()
		if panicErr != nil {
			return nil, panicErr
		}
	}
	return &chachaReader{cfg: cfg, pools: pools}, nil
}

func (r *chachaReader) Config() Config { return r.cfg }

func (r *chachaReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	shard := 0
	if n := len(r.pools); n > 1 {
		shard = int(shardSeed()) % n
	}
	g := r.pools[shard].Get().(*chachaGen)
	defer r.pools[shard].Put(g)
	return g.Read(b)
}

// shardSeed draws one byte of OS entropy to pick a shard. Not security
// sensitive: it only balances load across pools.
func shardSeed() byte {
	var b [1]byte
	_, _ = rand.Read(b[:])
	return b[0]
}

// NewReader constructs a Reader per cfg (after applying opts).
func NewReader(opts ...Option) (Reader, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch cfg.Backend {
	case SystemBackend:
		return &systemReader{cfg: cfg}, nil
	case ChaCha20Backend:
		return newChaChaReader(cfg)
	default:
		return nil, fmt.Errorf("osrand: unknown backend %d", cfg.Backend)
	}
}

// Default is the package-level SystemBackend reader used by OSRandom.
var Default = &systemReader{cfg: DefaultConfig()}

// OSRandom fills out with len(out) pseudorandom bytes, or returns
// ErrUnavailable if the platform has no entropy source. It is the
// package-level entry point for spec §4.9's os_random.
func OSRandom(out []byte) error {
	_, err := Default.Read(out)
	return err
}

// OrdoRandom is an alias of OSRandom. spec §9 resolves the source's
// disagreement between ordo_random and os_random by treating them as
// identical in this core; the name is reserved for a future DRBG, not
// implemented as a separate generator here.
var OrdoRandom = OSRandom
