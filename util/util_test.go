// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCTCompare(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	is.True(CTCompare([]byte("abc"), []byte("abc")))
	is.False(CTCompare([]byte("abc"), []byte("abd")))
	is.False(CTCompare([]byte("abc"), []byte("ab")))
	is.True(CTCompare(nil, nil))
}

func TestXORBuffer(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	dst := []byte{0x00, 0xff, 0x0f}
	XORBuffer(dst, []byte{0xff, 0xff, 0xf0})
	is.Equal([]byte{0xff, 0x00, 0xff}, dst)
}

func TestIncCounter(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cases := []struct {
		in, want []byte
	}{
		{[]byte{0x00}, []byte{0x01}},
		{[]byte{0xff}, []byte{0x00}},
		{[]byte{0xff, 0x00}, []byte{0x00, 0x01}},
		{[]byte{0xff, 0xff}, []byte{0x00, 0x00}},
	}
	for _, c := range cases {
		v := append([]byte(nil), c.in...)
		IncCounter(v)
		is.Equal(c.want, v)
	}
}

func TestPadUnpadRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	for length := 0; length < 34; length++ {
		plain := make([]byte, length)
		for i := range plain {
			plain[i] = byte(i)
		}

		padded := Pad(append([]byte(nil), plain...), 16)
		is.Equal(0, len(padded)%16)
		is.GreaterOrEqual(len(padded), length+1)

		unpadded, ok := Unpad(padded, 16)
		is.True(ok)
		is.Equal(plain, unpadded)
	}
}

func TestUnpadRejectsInvalid(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	// Last byte out of range.
	buf := make([]byte, 16)
	buf[15] = 0
	_, ok := Unpad(buf, 16)
	is.False(ok)

	buf[15] = 17
	_, ok = Unpad(buf, 16)
	is.False(ok)

	// Claimed padding bytes do not match.
	buf2 := make([]byte, 16)
	buf2[15] = 4
	buf2[14] = 4
	buf2[13] = 3 // should be 4
	buf2[12] = 4
	_, ok = Unpad(buf2, 16)
	is.False(ok)
}
