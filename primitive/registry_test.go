// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeBlockKernel struct {
	name   string
	limits Limits
}

func (f fakeBlockKernel) Name() string      { return f.name }
func (f fakeBlockKernel) Limits() Limits    { return f.limits }
func (f fakeBlockKernel) NewState() BlockCipherState { return nil }

func TestRegistryByTypeByNameDefault(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := NewRegistry()
	aes := fakeBlockKernel{name: "AES", limits: Limits{KeyMin: 16, KeyMax: 32, KeyMul: 8, BlockSize: 16}}
	null := fakeBlockKernel{name: "NullCipher", limits: Limits{KeyMin: 0, KeyMax: 0, KeyMul: 1, BlockSize: 16}}

	r.RegisterBlockCipher(1, aes.name, aes)
	r.RegisterBlockCipher(2, null.name, null)
	r.SetDefault(BlockCipher, 1)

	ids := r.ByType(BlockCipher)
	is.Equal([]ID{1, 2}, ids)

	id, ok := r.ByName(BlockCipher, "AES")
	is.True(ok)
	is.Equal(ID(1), id)

	_, ok = r.ByName(BlockCipher, "nonexistent")
	is.False(ok)

	name, ok := r.Name(BlockCipher, 2)
	is.True(ok)
	is.Equal("NullCipher", name)

	is.Equal(ID(1), r.Default(BlockCipher))
	is.True(r.Avail(BlockCipher, 2))
	is.False(r.Avail(BlockCipher, 99))
}

func TestRegistryNameCaseSensitiveExact(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := NewRegistry()
	r.RegisterBlockCipher(1, "AES", fakeBlockKernel{name: "AES"})

	_, ok := r.ByName(BlockCipher, "aes")
	is.False(ok)
	_, ok = r.ByName(BlockCipher, "AE")
	is.False(ok)
}

func TestQueryUnknownReturnsZero(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := NewRegistry()
	is.Equal(0, r.Query(BlockCipher, 999, KeyLenQ, 16))
	is.Equal(0, r.Query(Hash, 999, DigestLenQ, 0))
}

func TestLimitsKeyLenFor(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	l := Limits{KeyMin: 16, KeyMax: 32, KeyMul: 8, BlockSize: 16}
	is.Equal(16, l.KeyLenFor(0))
	is.Equal(16, l.KeyLenFor(16))
	is.Equal(24, l.KeyLenFor(17))
	is.Equal(24, l.KeyLenFor(24))
	is.Equal(32, l.KeyLenFor(33))

	// Enumerate admissible lengths by iterating hint+1 until the value
	// repeats, per spec §3's KeyLenQ contract.
	seen := []int{}
	prev := -1
	hint := 0
	for {
		v := l.KeyLenFor(hint)
		if v == prev {
			break
		}
		seen = append(seen, v)
		prev = v
		hint = v + 1
	}
	is.Equal([]int{16, 24, 32}, seen)
}

func TestSetDefaultPanicsOnUnregistered(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := NewRegistry()
	is.Panics(func() {
		r.SetDefault(BlockCipher, 42)
	})
}
