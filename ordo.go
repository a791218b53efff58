// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package ordo is the library's high-level façade (spec §4.10): one-shot
// Digest/HMAC/EncryptBlock/EncryptStream/PBKDF2 helpers that allocate,
// init, update once, finalize, and free a streaming context, plus Init
// (idempotent registry construction) and Version.
//
// Callers needing streaming behavior (multiple Update calls, Copy) should
// use the digest/streamcipher/blockcipher/hmac packages directly; this
// package only wraps the common allocate-once-and-finish case.
package ordo

import (
	"errors"
	"sync"

	"github.com/TomCrypto/ordo/blockcipher"
	"github.com/TomCrypto/ordo/cmac"
	"github.com/TomCrypto/ordo/digest"
	"github.com/TomCrypto/ordo/hmac"
	"github.com/TomCrypto/ordo/kernel/block"
	"github.com/TomCrypto/ordo/kernel/hash"
	"github.com/TomCrypto/ordo/kernel/stream"
	"github.com/TomCrypto/ordo/mode"
	"github.com/TomCrypto/ordo/pbkdf2"
	"github.com/TomCrypto/ordo/primitive"
	"github.com/TomCrypto/ordo/streamcipher"
	"github.com/TomCrypto/ordo/version"
)

// BlockCipherID, StreamCipherID, and HashID are distinct Go types, each
// wrapping primitive.ID, so that the compiler rejects passing (say) a
// block-cipher identifier where a hash identifier is expected. Without
// this, AES and MD5 would both be the dense identifier 0 in their
// respective registry tables, and ordo.Digest(ordo.AES, …) would
// silently resolve to MD5's hash kernel instead of failing with Arg.
type (
	BlockCipherID  primitive.ID
	StreamCipherID primitive.ID
	HashID         primitive.ID
)

// Block-cipher identifiers, stable for the lifetime of one build.
const (
	AES BlockCipherID = iota
	Threefish256
	NullCipherID
)

// Stream-cipher identifiers.
const (
	RC4 StreamCipherID = iota
)

// Hash identifiers.
const (
	MD5 HashID = iota
	SHA1
	SHA256
	Skein256
	BLAKE2b256
	BLAKE2s256
)

// Block-mode identifiers, matching mode.ID's values exactly so the two
// can be converted between freely.
const (
	ECB primitive.ID = primitive.ID(mode.ECB)
	CBC primitive.ID = primitive.ID(mode.CBC)
	CTR primitive.ID = primitive.ID(mode.CTR)
	CFB primitive.ID = primitive.ID(mode.CFB)
	OFB primitive.ID = primitive.ID(mode.OFB)
)

var (
	initOnce sync.Once
	registry *primitive.Registry
	info     version.Info
)

// Init builds the registry and is idempotent: the first call probes the
// environment (via package version) and wires every kernel this build
// carries; subsequent calls are no-ops. Init must be called before any
// other function in this package; per spec §5, failing to do so yields
// implementation-defined behavior.
func Init() {
	initOnce.Do(func() {
		info = version.Current()

		r := primitive.NewRegistry()

		r.RegisterBlockCipher(primitive.ID(AES), "AES", block.AES)
		r.RegisterBlockCipher(primitive.ID(Threefish256), "Threefish-256", block.Threefish256)
		r.RegisterBlockCipher(primitive.ID(NullCipherID), "NullCipher", block.NullCipher)
		r.SetDefault(primitive.BlockCipher, primitive.ID(AES))

		r.RegisterStreamCipher(primitive.ID(RC4), "RC4", stream.RC4)
		r.SetDefault(primitive.StreamCipher, primitive.ID(RC4))

		r.RegisterHash(primitive.ID(MD5), "MD5", hash.MD5)
		r.RegisterHash(primitive.ID(SHA1), "SHA-1", hash.SHA1)
		r.RegisterHash(primitive.ID(SHA256), "SHA-256", hash.SHA256)
		r.RegisterHash(primitive.ID(Skein256), "Skein-256", hash.Skein256)
		r.RegisterHash(primitive.ID(BLAKE2b256), "BLAKE2b-256", hash.BLAKE2b256)
		r.RegisterHash(primitive.ID(BLAKE2s256), "BLAKE2s-256", hash.BLAKE2s256)
		r.SetDefault(primitive.Hash, primitive.ID(SHA256))

		r.RegisterMode(ECB, mode.ECB.Name())
		r.RegisterMode(CBC, mode.CBC.Name())
		r.RegisterMode(CTR, mode.CTR.Name())
		r.RegisterMode(CFB, mode.CFB.Name())
		r.RegisterMode(OFB, mode.OFB.Name())
		r.SetDefault(primitive.Mode, CTR)

		registry = r
	})
}

// Registry returns the process-wide registry built by Init. Calling it
// before Init has run returns nil, matching spec §5's "implementation
// defined behavior" for out-of-order calls.
func Registry() *primitive.Registry { return registry }

// Version reports this build's version record (SPEC_FULL §4 supplement),
// as probed once by Init. Before Init has run it returns the zero Info.
func Version() version.Info { return info }

// blockCipherKernel resolves id to a registered kernel, or Arg if id is
// not a registered block cipher.
func blockCipherKernel(id BlockCipherID) (primitive.BlockCipherKernel, Status) {
	k := registry.BlockCipherKernel(primitive.ID(id))
	if k == nil {
		return nil, Arg
	}
	return k, Success
}

func hashKernel(id HashID) (primitive.HashKernel, Status) {
	k := registry.HashKernel(primitive.ID(id))
	if k == nil {
		return nil, Arg
	}
	return k, Success
}

func streamCipherKernel(id StreamCipherID) (primitive.StreamCipherKernel, Status) {
	k := registry.StreamCipherKernel(primitive.ID(id))
	if k == nil {
		return nil, Arg
	}
	return k, Success
}

// Digest computes hash(msg) in one shot, writing exactly OutputLen bytes
// to out (params nil selects the kernel's defaults; see
// hash.Skein256Params for a kernel that honors a custom output length).
func Digest(hashID HashID, msg []byte, params any, out []byte) Status {
	k, st := hashKernel(hashID)
	if st != Success {
		return st
	}
	ctx, err := digest.Alloc(k)
	if err != nil {
		return Arg
	}
	defer ctx.Free()
	if err := ctx.Init(params); err != nil {
		return Fail
	}
	if err := ctx.Update(msg); err != nil {
		return Fail
	}
	if err := ctx.Final(out); err != nil {
		return Fail
	}
	return Success
}

// HMAC computes HMAC(hashID, key, msg) in one shot, writing exactly
// digest-length bytes to mac.
func HMAC(hashID HashID, key, msg, mac []byte) Status {
	k, st := hashKernel(hashID)
	if st != Success {
		return st
	}
	ctx, err := hmac.Alloc(k)
	if err != nil {
		return Arg
	}
	defer ctx.Free()
	if err := ctx.Init(key, nil); err != nil {
		return Fail
	}
	if err := ctx.Update(msg); err != nil {
		return Fail
	}
	if err := ctx.Final(mac); err != nil {
		return Fail
	}
	return Success
}

// CMAC computes CMAC(cipherID, key, msg) in one shot, writing exactly
// the cipher's block-size bytes to mac.
func CMAC(cipherID BlockCipherID, key, msg, mac []byte) Status {
	k, st := blockCipherKernel(cipherID)
	if st != Success {
		return st
	}
	ctx, err := cmac.Alloc(k)
	if err != nil {
		return Arg
	}
	defer ctx.Free()
	if err := ctx.Init(key); err != nil {
		return KeyLen
	}
	if err := ctx.Update(msg); err != nil {
		return Fail
	}
	if err := ctx.Final(mac); err != nil {
		return Fail
	}
	return Success
}

// EncryptBlock runs cipherID under modeID in one shot: key/iv/dir/params
// exactly as blockcipher.Context.Init expects. Returns the complete
// output (ciphertext on encrypt, plaintext on decrypt) or the first
// nonzero Status encountered.
func EncryptBlock(cipherID BlockCipherID, modeID mode.ID, key, iv []byte, dir blockcipher.Direction, params any, in []byte) ([]byte, Status) {
	k, st := blockCipherKernel(cipherID)
	if st != Success {
		return nil, st
	}
	ctx, err := blockcipher.Alloc(k, modeID)
	if err != nil {
		return nil, Arg
	}
	defer ctx.Free()

	if err := ctx.Init(key, iv, dir, params); err != nil {
		return nil, classifyBlockCipherErr(err)
	}
	out, err := ctx.Update(in)
	if err != nil {
		return nil, classifyBlockCipherErr(err)
	}
	tail, err := ctx.Final()
	if err != nil {
		return nil, classifyBlockCipherErr(err)
	}
	return append(out, tail...), Success
}

func classifyBlockCipherErr(err error) Status {
	switch {
	case errors.Is(err, mode.ErrLeftover):
		return Leftover
	case errors.Is(err, mode.ErrPadding):
		return Padding
	case errors.Is(err, mode.ErrArg):
		return Arg
	default:
		return KeyLen
	}
}

// EncryptStream runs streamID in one shot over in, returning the XORed
// result (encryption and decryption are the same operation for a
// keystream cipher).
func EncryptStream(streamID StreamCipherID, key []byte, in []byte) ([]byte, Status) {
	k, st := streamCipherKernel(streamID)
	if st != Success {
		return nil, st
	}
	ctx, err := streamcipher.Alloc(k)
	if err != nil {
		return nil, Arg
	}
	defer ctx.Free()

	if err := ctx.Init(key); err != nil {
		return nil, KeyLen
	}
	out := append([]byte(nil), in...)
	if err := ctx.Update(out); err != nil {
		return nil, Fail
	}
	if err := ctx.Final(); err != nil {
		return nil, Fail
	}
	return out, Success
}

// PBKDF2 derives outLen bytes of key material from password and salt
// using hashID as the underlying PRF, writing the result to out.
func PBKDF2(hashID HashID, password, salt []byte, iterations, outLen int, out []byte) Status {
	k, st := hashKernel(hashID)
	if st != Success {
		return st
	}
	if err := pbkdf2.Derive(k, password, salt, iterations, outLen, out); err != nil {
		if errors.Is(err, pbkdf2.ErrArg) {
			return Arg
		}
		return Fail
	}
	return Success
}
