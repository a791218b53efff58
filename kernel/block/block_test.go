// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package block

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomCrypto/ordo/primitive"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestAESFIPS197Vector(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plain := mustHex(t, "00112233445566778899aabbccddeeff")
	wantCipher := mustHex(t, "69c4e0d86a7b0430d8cdb78070b4c55a")

	st := AES.NewState()
	require.NoError(t, st.Init(key))

	got := make([]byte, AESBlockSize)
	st.Forward(got, plain)
	is.Equal(wantCipher, got)

	back := make([]byte, AESBlockSize)
	st.Inverse(back, got)
	is.Equal(plain, back)
}

func TestAESCopyIndependence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	key := make([]byte, 16)
	st := AES.NewState()
	require.NoError(t, st.Init(key))

	clone := st.Copy()
	plain := make([]byte, 16)
	a := make([]byte, 16)
	b := make([]byte, 16)
	st.Forward(a, plain)
	clone.Forward(b, plain)
	is.Equal(a, b)

	st.Free()
	// clone remains usable after st is freed.
	c := make([]byte, 16)
	clone.Forward(c, plain)
	is.Equal(a, c)
	clone.Free()
}

func TestThreefish256RoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	plain := make([]byte, Threefish256BlockSize)
	for i := range plain {
		plain[i] = byte(0xA0 + i)
	}

	st := Threefish256.NewState()
	require.NoError(t, st.Init(key))

	cipher := make([]byte, Threefish256BlockSize)
	st.Forward(cipher, plain)
	is.False(bytes.Equal(cipher, plain))

	back := make([]byte, Threefish256BlockSize)
	st.Inverse(back, cipher)
	is.Equal(plain, back)
}

func TestThreefish256RejectsBadKeyLength(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	st := Threefish256.NewState()
	is.Error(st.Init(make([]byte, 16)))
}

func TestNullCipherIsIdentity(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	st := NullCipher.NewState()
	require.NoError(t, st.Init(nil))

	plain := []byte("0123456789abcdef")
	out := make([]byte, len(plain))
	st.Forward(out, plain)
	is.Equal(plain, out)
	st.Inverse(out, plain)
	is.Equal(plain, out)
}

func TestBlockKernelLimits(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	is.Equal(primitive.Limits{KeyMin: 16, KeyMax: 32, KeyMul: 8, BlockSize: 16}, AES.Limits())
	is.Equal(primitive.Limits{KeyMin: 32, KeyMax: 32, KeyMul: 1, BlockSize: 32}, Threefish256.Limits())
}
