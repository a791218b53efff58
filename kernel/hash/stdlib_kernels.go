// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"hash"

	"github.com/TomCrypto/ordo/primitive"
)

// MD5 is the hash kernel for MD5 (RFC 1321): 16-byte digest, 64-byte
// compression block.
var MD5 primitive.HashKernel = stdHashKernel{
	name:      "MD5",
	digestLen: md5.Size,
	blockLen:  md5.BlockSize,
	newHash:   func() hash.Hash { return md5.New() },
}

// SHA1 is the hash kernel for SHA-1 (FIPS 180-4): 20-byte digest,
// 64-byte compression block.
var SHA1 primitive.HashKernel = stdHashKernel{
	name:      "SHA-1",
	digestLen: sha1.Size,
	blockLen:  sha1.BlockSize,
	newHash:   func() hash.Hash { return sha1.New() },
}

// SHA256 is the hash kernel for SHA-256 (FIPS 180-4): 32-byte digest,
// 64-byte compression block.
var SHA256 primitive.HashKernel = stdHashKernel{
	name:      "SHA-256",
	digestLen: sha256.Size,
	blockLen:  sha256.BlockSize,
	newHash:   func() hash.Hash { return sha256.New() },
}
