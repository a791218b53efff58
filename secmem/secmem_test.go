// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package secmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocZeroSize(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r, err := Alloc(0)
	require.NoError(t, err)
	b, err := r.Bytes()
	is.NoError(err)
	is.NotNil(b)
	is.Equal(0, len(b))
}

func TestAllocFreeZeroizes(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r, err := Alloc(32)
	require.NoError(t, err)
	b, _ := r.Bytes()
	for i := range b {
		b[i] = 0xAA
	}

	r.Free()
	is.True(r.freed)
	for _, v := range b {
		is.Equal(byte(0), v)
	}

	_, err = r.Bytes()
	is.ErrorIs(err, ErrFreed)
}

func TestFreeIdempotent(t *testing.T) {
	t.Parallel()
	r, err := Alloc(16)
	require.NoError(t, err)
	r.Free()
	r.Free() // must not panic
}

func TestPoolPolicySlotsReused(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m, err := New(WithPolicy(Pool), WithPoolSize(2), WithPoolWord(32))
	require.NoError(t, err)

	r1, err := m.Alloc(16)
	require.NoError(t, err)
	r2, err := m.Alloc(16)
	require.NoError(t, err)

	_, err = m.Alloc(16)
	is.ErrorIs(err, ErrPoolExhausted)

	r1.Free()
	r3, err := m.Alloc(16)
	is.NoError(err)
	is.NotNil(r3)

	r2.Free()
	r3.Free()
}

func TestPoolFallsBackToDirectForLargeRequests(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m, err := New(WithPolicy(Pool), WithPoolSize(1), WithPoolWord(16))
	require.NoError(t, err)

	r, err := m.Alloc(64)
	require.NoError(t, err)
	b, _ := r.Bytes()
	is.Equal(64, len(b))
	r.Free()
}
