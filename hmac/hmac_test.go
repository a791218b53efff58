// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hmac_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomCrypto/ordo/hmac"
	"github.com/TomCrypto/ordo/kernel/hash"
)

func TestHMACSHA1KnownVector(t *testing.T) {
	t.Parallel()

	ctx, err := hmac.Alloc(hash.SHA1)
	require.NoError(t, err)
	require.NoError(t, ctx.Init([]byte("key"), nil))
	require.NoError(t, ctx.Update([]byte("The quick brown fox jumps over the lazy dog")))

	mac := make([]byte, ctx.OutputLen())
	require.NoError(t, ctx.Final(mac))

	assert.Equal(t, "de7c9b85b8b78aa6bc8a7a36f70a90701c9db4d9", hex.EncodeToString(mac))
	ctx.Free()
}

func TestHMACLongKeyIsPreHashed(t *testing.T) {
	t.Parallel()

	longKey := make([]byte, 200) // longer than SHA-1's 64-byte block length
	for i := range longKey {
		longKey[i] = byte(i)
	}

	ctx, err := hmac.Alloc(hash.SHA1)
	require.NoError(t, err)
	require.NoError(t, ctx.Init(longKey, nil))
	require.NoError(t, ctx.Update([]byte("message")))
	mac := make([]byte, ctx.OutputLen())
	require.NoError(t, ctx.Final(mac))

	assert.Len(t, mac, 20)
	assert.NotEqual(t, make([]byte, 20), mac)

	// Keying with SHA-1(longKey) directly must give the same MAC.
	st, err := hash.SHA1.NewState(nil)
	require.NoError(t, err)
	st.Update(longKey)
	hashedKey := make([]byte, st.OutputLen())
	st.Final(hashedKey)

	ref, err := hmac.Alloc(hash.SHA1)
	require.NoError(t, err)
	require.NoError(t, ref.Init(hashedKey, nil))
	require.NoError(t, ref.Update([]byte("message")))
	refMac := make([]byte, ref.OutputLen())
	require.NoError(t, ref.Final(refMac))

	assert.Equal(t, refMac, mac)
}

func TestHMACStreamingSplitEquivalence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	msg := []byte("the quick brown fox jumps over the lazy dog, repeated for length")
	key := []byte("shared secret key")

	whole, err := hmac.Alloc(hash.SHA256)
	require.NoError(t, err)
	require.NoError(t, whole.Init(key, nil))
	require.NoError(t, whole.Update(msg))
	wantMac := make([]byte, whole.OutputLen())
	require.NoError(t, whole.Final(wantMac))

	split, err := hmac.Alloc(hash.SHA256)
	require.NoError(t, err)
	require.NoError(t, split.Init(key, nil))
	for i := 0; i < len(msg); i += 7 {
		end := i + 7
		if end > len(msg) {
			end = len(msg)
		}
		require.NoError(t, split.Update(msg[i:end]))
	}
	gotMac := make([]byte, split.OutputLen())
	require.NoError(t, split.Final(gotMac))

	is.Equal(wantMac, gotMac)
}

func TestHMACUpdateAfterFinalFails(t *testing.T) {
	t.Parallel()

	ctx, err := hmac.Alloc(hash.SHA256)
	require.NoError(t, err)
	require.NoError(t, ctx.Init([]byte("key"), nil))
	require.NoError(t, ctx.Update([]byte("x")))
	mac := make([]byte, ctx.OutputLen())
	require.NoError(t, ctx.Final(mac))

	assert.ErrorIs(t, ctx.Update([]byte("y")), hmac.ErrWrongPhase)
}

func TestHMACCopyIndependence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	src, err := hmac.Alloc(hash.SHA256)
	require.NoError(t, err)
	require.NoError(t, src.Init([]byte("key"), nil))
	require.NoError(t, src.Update([]byte("prefix")))

	dst, err := src.Copy()
	require.NoError(t, err)

	require.NoError(t, src.Update([]byte("-tail")))
	srcMac := make([]byte, src.OutputLen())
	require.NoError(t, src.Final(srcMac))

	dstMac := make([]byte, dst.OutputLen())
	require.NoError(t, dst.Final(dstMac))

	want, err := hmac.Alloc(hash.SHA256)
	require.NoError(t, err)
	require.NoError(t, want.Init([]byte("key"), nil))
	require.NoError(t, want.Update([]byte("prefix")))
	wantMac := make([]byte, want.OutputLen())
	require.NoError(t, want.Final(wantMac))

	is.Equal(wantMac, dstMac)
	is.NotEqual(srcMac, dstMac)
}

func TestHMACAllocNilKernel(t *testing.T) {
	t.Parallel()
	_, err := hmac.Alloc(nil)
	assert.ErrorIs(t, err, hmac.ErrNilKernel)
}
