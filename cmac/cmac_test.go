// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package cmac_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomCrypto/ordo/cmac"
	"github.com/TomCrypto/ordo/kernel/block"
)

// NIST SP 800-38B, Appendix D.1: AES-128 CMAC test vectors.
func TestCMACAES128NISTVectors(t *testing.T) {
	t.Parallel()

	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")

	cases := []struct {
		name string
		msg  string
		want string
	}{
		{"empty", "", "bb1d6929e95937287fa37d129b756746"},
		{
			"16 bytes",
			"6bc1bee22e409f96e93d7e117393172a",
			"070a16b46b4d4144f79bdd9dd04a287c",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			msg, err := hex.DecodeString(tc.msg)
			require.NoError(t, err)

			ctx, err := cmac.Alloc(block.AES)
			require.NoError(t, err)
			require.NoError(t, ctx.Init(key))
			require.NoError(t, ctx.Update(msg))

			mac := make([]byte, ctx.OutputLen())
			require.NoError(t, ctx.Final(mac))

			assert.Equal(t, tc.want, hex.EncodeToString(mac))
			ctx.Free()
		})
	}
}

func TestCMACStreamingSplitEquivalence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	msg := []byte("the quick brown fox jumps over the lazy dog, repeated for length")

	whole, err := cmac.Alloc(block.AES)
	require.NoError(t, err)
	require.NoError(t, whole.Init(key))
	require.NoError(t, whole.Update(msg))
	wantMac := make([]byte, whole.OutputLen())
	require.NoError(t, whole.Final(wantMac))

	split, err := cmac.Alloc(block.AES)
	require.NoError(t, err)
	require.NoError(t, split.Init(key))
	for i := 0; i < len(msg); i += 9 {
		end := i + 9
		if end > len(msg) {
			end = len(msg)
		}
		require.NoError(t, split.Update(msg[i:end]))
	}
	gotMac := make([]byte, split.OutputLen())
	require.NoError(t, split.Final(gotMac))

	is.Equal(wantMac, gotMac)
}

func TestCMACCopyIndependence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")

	src, err := cmac.Alloc(block.AES)
	require.NoError(t, err)
	require.NoError(t, src.Init(key))
	require.NoError(t, src.Update([]byte("prefix")))

	dst := src.Copy()

	require.NoError(t, src.Update([]byte("-tail")))
	srcMac := make([]byte, src.OutputLen())
	require.NoError(t, src.Final(srcMac))

	dstMac := make([]byte, dst.OutputLen())
	require.NoError(t, dst.Final(dstMac))

	want, err := cmac.Alloc(block.AES)
	require.NoError(t, err)
	require.NoError(t, want.Init(key))
	require.NoError(t, want.Update([]byte("prefix")))
	wantMac := make([]byte, want.OutputLen())
	require.NoError(t, want.Final(wantMac))

	is.Equal(wantMac, dstMac)
	is.NotEqual(srcMac, dstMac)
}

func TestCMACAllocNilKernel(t *testing.T) {
	t.Parallel()
	_, err := cmac.Alloc(nil)
	assert.ErrorIs(t, err, cmac.ErrNilKernel)
}
