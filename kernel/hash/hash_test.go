// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomCrypto/ordo/primitive"
)

func digestOf(t *testing.T, k primitive.HashKernel, msg string) string {
	t.Helper()
	st, err := k.NewState(nil)
	require.NoError(t, err)
	st.Update([]byte(msg))
	out := make([]byte, k.DigestLen())
	st.Final(out)
	return hex.EncodeToString(out)
}

func TestSHA1Vectors(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	is.Equal("da39a3ee5e6b4b0d3255bfef95601890afd80709", digestOf(t, SHA1, ""))
	is.Equal("a9993e364706816aba3e25717850c26c9cd0d89d", digestOf(t, SHA1, "abc"))
	is.Equal(
		"84983e441c3bd26ebaae4aa1f95129e5e54670f1",
		digestOf(t, SHA1, "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"),
	)
}

func TestMD5Vector(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", digestOf(t, MD5, "hello world"))
}

func TestSHA256StreamingSplitEquivalence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	msg := []byte("the quick brown fox jumps over the lazy dog, repeated for length")

	whole, err := SHA256.NewState(nil)
	require.NoError(t, err)
	whole.Update(msg)
	wantOut := make([]byte, SHA256.DigestLen())
	whole.Final(wantOut)

	split, err := SHA256.NewState(nil)
	require.NoError(t, err)
	for i := 0; i < len(msg); i += 7 {
		end := i + 7
		if end > len(msg) {
			end = len(msg)
		}
		split.Update(msg[i:end])
	}
	gotOut := make([]byte, SHA256.DigestLen())
	split.Final(gotOut)

	is.Equal(wantOut, gotOut)
}

func TestHashCopyIndependence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	src, err := SHA256.NewState(nil)
	require.NoError(t, err)
	src.Update([]byte("prefix"))

	dst := src.Copy()

	src.Update([]byte("-tail"))
	srcOut := make([]byte, SHA256.DigestLen())
	src.Final(srcOut)

	dstOut := make([]byte, SHA256.DigestLen())
	dst.Final(dstOut)

	want, err := SHA256.NewState(nil)
	require.NoError(t, err)
	want.Update([]byte("prefix"))
	wantOut := make([]byte, SHA256.DigestLen())
	want.Final(wantOut)

	is.Equal(wantOut, dstOut)
	is.NotEqual(srcOut, dstOut)
}

func TestBlake2KernelsProduceDigestLenBytes(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	for _, k := range []primitive.HashKernel{BLAKE2b256, BLAKE2s256} {
		st, err := k.NewState(nil)
		require.NoError(t, err)
		st.Update([]byte("ordo"))
		out := make([]byte, k.DigestLen())
		st.Final(out)
		is.Equal(32, k.DigestLen())
		is.NotEqual(make([]byte, 32), out)
	}
}

func TestSkein256DefaultOutputLength(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	st, err := Skein256.NewState(nil)
	require.NoError(t, err)
	st.Update([]byte("ordo skein test vector input"))
	out := make([]byte, Skein256.DigestLen())
	st.Final(out)
	is.Equal(32, len(out))
	is.NotEqual(make([]byte, 32), out)
}

func TestSkein256EmptyMessage(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	st, err := Skein256.NewState(nil)
	require.NoError(t, err)
	out := make([]byte, Skein256.DigestLen())
	st.Final(out)
	is.NotEqual(make([]byte, 32), out)
}

func TestSkein256StreamingSplitEquivalence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	msg := make([]byte, 100)
	for i := range msg {
		msg[i] = byte(i)
	}

	whole, err := Skein256.NewState(nil)
	require.NoError(t, err)
	whole.Update(msg)
	wantOut := make([]byte, 32)
	whole.Final(wantOut)

	split, err := Skein256.NewState(nil)
	require.NoError(t, err)
	for i := 0; i < len(msg); i += 9 {
		end := i + 9
		if end > len(msg) {
			end = len(msg)
		}
		split.Update(msg[i:end])
	}
	gotOut := make([]byte, 32)
	split.Final(gotOut)

	is.Equal(wantOut, gotOut)
}

func TestSkein256CustomOutputBits(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	params := Skein256Params{Schema: [4]byte{'S', 'H', 'A', '3'}, Version: 1, OutBits: 512}
	st, err := Skein256.NewState(params)
	require.NoError(t, err)
	is.Equal(64, st.OutputLen())
	st.Update([]byte("longer output request"))
	out := make([]byte, st.OutputLen())
	st.Final(out)
	is.NotEqual(make([]byte, 64), out)
}
