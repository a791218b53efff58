// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package osrand

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSRandomNotAllZero(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	buf := make([]byte, 1024)
	require.NoError(t, OSRandom(buf))
	is.False(bytes.Equal(buf, make([]byte, 1024)))
}

func TestOrdoRandomIsOSRandom(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	buf := make([]byte, 64)
	is.NoError(OrdoRandom(buf))
}

func TestSystemReaderEmptyBufferNoOp(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	n, err := Default.Read(nil)
	is.NoError(err)
	is.Equal(0, n)
}

func TestChaCha20BackendProducesDistinctOutput(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r, err := NewReader(WithBackend(ChaCha20Backend), WithShards(1))
	require.NoError(t, err)

	a := make([]byte, 128)
	b := make([]byte, 128)
	_, err = r.Read(a)
	require.NoError(t, err)
	_, err = r.Read(b)
	require.NoError(t, err)

	is.False(bytes.Equal(a, b))
	is.False(bytes.Equal(a, make([]byte, 128)))
}

func TestChaCha20BackendRekeys(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r, err := NewReader(WithBackend(ChaCha20Backend), WithShards(1), WithMaxBytesPerKey(64))
	require.NoError(t, err)

	buf := make([]byte, 256)
	_, err = r.Read(buf)
	is.NoError(err)

	// The first Read used 256 bytes of a 64-byte budget, so this Read
	// starts with a rekey.
	_, err = r.Read(buf)
	is.NoError(err)
	is.False(bytes.Equal(buf, make([]byte, 256)))
}

func TestReaderConfigRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r, err := NewReader(WithBackend(ChaCha20Backend), WithShards(2))
	require.NoError(t, err)
	cfg := r.Config()
	is.Equal(ChaCha20Backend, cfg.Backend)
	is.Equal(2, cfg.Shards)
}
