// Copyright (c) 2012 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ed25519 implements the Ed25519 signature algorithm, per
// RFC 8032, with ZIP215 cofactored verification.
package ed25519

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/sha512"
	"io"
	"strconv"

	"github.com/spider-gazelle/ed25519"
	"github.com/spider-gazelle/ed25519/internal/edwards25519"
	"github.com/spider-gazelle/ed25519/internal/scalar"
)

const (
	// PublicKeySize is the size, in bytes, of public keys.
	PublicKeySize = 32
	// PrivateKeySize is the size, in bytes, of private keys, consisting
	// of a 32-byte seed and the 32-byte public key it derives.
	PrivateKeySize = 64
	// SignatureSize is the size, in bytes, of signatures.
	SignatureSize = 64
	// SeedSize is the size, in bytes, of private key seeds.
	SeedSize = 32
)

// PublicKey is the type of Ed25519 public keys.
type PublicKey []byte

// PrivateKey is the type of Ed25519 private keys. It implements
// crypto.Signer.
type PrivateKey []byte

// Public returns the PublicKey corresponding to priv.
func (priv PrivateKey) Public() crypto.PublicKey {
	publicKey := make([]byte, PublicKeySize)
	copy(publicKey, priv[SeedSize:])
	return PublicKey(publicKey)
}

// Seed returns the private key seed corresponding to priv. It is provided
// for interoperability with RFC 8032; most applications should store the
// original seed rather than the derived private key.
func (priv PrivateKey) Seed() []byte {
	seed := make([]byte, SeedSize)
	copy(seed, priv[:SeedSize])
	return seed
}

// Sign signs the message with priv and returns a signature. It implements
// crypto.Signer with the zero crypto.SignerOpts, and panics if opts.HashFunc()
// is not crypto.Hash(0) (Ed25519 is not pre-hashed).
func (priv PrivateKey) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) (signature []byte, err error) {
	if opts.HashFunc() != crypto.Hash(0) {
		panic("ed25519: cannot sign hashed message")
	}
	return Sign(priv, message), nil
}

// GenerateKey generates a public/private key pair using entropy from rand.
// If rand is nil, crypto/rand.Reader is used.
func GenerateKey(rnd io.Reader) (PublicKey, PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(rnd, seed); err != nil {
		return nil, nil, err
	}
	privateKey := NewKeyFromSeed(seed)
	publicKey := make([]byte, PublicKeySize)
	copy(publicKey, privateKey[SeedSize:])
	return publicKey, privateKey, nil
}

// NewKeyFromSeed calculates a private key from a seed. It will panic if
// len(seed) is neither SeedSize nor PrivateKeySize. This function is provided for interoperability
// with RFC 8032. RFC 8032's private keys correspond to seeds in this
// package. As allowed by spec.md section 6, a 64-byte "seed‖public-key"
// buffer (as emitted by other libraries) is also accepted; only the first
// 32 bytes are used.
func NewKeyFromSeed(seed []byte) PrivateKey {
	if len(seed) != SeedSize && len(seed) != PrivateKeySize {
		panic("ed25519: bad seed length: " + strconv.Itoa(len(seed)))
	}
	seed = seed[:SeedSize]

	digest := sha512.Sum512(seed)
	digest[0] &= 248
	digest[31] &= 63
	digest[31] |= 64

	s := scalar.New().SetUniformBytes(digest[:32])
	var A edwards25519.ProjP3
	edwards25519.ScalarBaseMult(&A, s)
	pub := A.Bytes()

	privateKey := make([]byte, PrivateKeySize)
	copy(privateKey, seed)
	copy(privateKey[SeedSize:], pub)
	return privateKey
}

// Sign signs the message with privateKey and returns a signature. It will
// panic if len(privateKey) is not PrivateKeySize.
func Sign(privateKey PrivateKey, message []byte) []byte {
	if len(privateKey) != PrivateKeySize {
		panic("ed25519: bad private key length: " + strconv.Itoa(len(privateKey)))
	}
	seed, publicKey := privateKey[:SeedSize], privateKey[SeedSize:]

	h := sha512.Sum512(seed)
	expandedSecretKey := make([]byte, 32)
	copy(expandedSecretKey, h[:32])
	expandedSecretKey[0] &= 248
	expandedSecretKey[31] &= 63
	expandedSecretKey[31] |= 64

	s := scalar.New().SetUniformBytes(expandedSecretKey)

	prefix := h[32:]
	r := scalar.Sha512ModQLE(prefix, message)

	var R edwards25519.ProjP3
	edwards25519.ScalarBaseMult(&R, r)
	encodedR := R.Bytes()

	k := scalar.Sha512ModQLE(encodedR, publicKey, message)

	S := scalar.New().MultiplyAdd(k, s, r)

	signature := make([]byte, SignatureSize)
	copy(signature[:32], encodedR)
	copy(signature[32:], S.Bytes())

	return signature
}

// Verify reports whether sig is a valid ZIP215 signature of message by
// publicKey, implementing the cofactored verification equation
// [8](S*B) == [8]R + [8](k*A) so that signatures whose R (or A) decodes
// with a non-canonical y >= p but satisfies the cofactor equation are
// still accepted, matching Zcash's ZIP215 validity rule.
//
// It does not panic on malformed input; instead it reports false.
// Verification is total: every failure is a false result, and
// VerifyWithError is the variant that reports which check failed.
func Verify(publicKey PublicKey, message, sig []byte) bool {
	if len(publicKey) != PublicKeySize || len(sig) != SignatureSize {
		return false
	}
	if sig[63]&0xE0 != 0 {
		// Top three bits of S must be zero (S < 2^253, which every S < L
		// satisfies), a cheap pre-check before the full range check below.
		return false
	}

	var A edwards25519.ProjP3
	if _, err := A.SetBytes(publicKey, false); err != nil {
		return false
	}
	A.Neg(&A)

	S, err := scalar.New().SetCanonicalBytes(sig[32:])
	if err != nil {
		return false
	}

	var R edwards25519.ProjP3
	if _, err := R.SetBytes(sig[:32], false); err != nil {
		return false
	}

	k := scalar.Sha512ModQLE(sig[:32], []byte(publicKey), message)

	// minus_A_times_k_plus_S_times_B = -k*A + S*B
	var kA, sB, rhs edwards25519.ProjP3
	edwards25519.MultiplyUnsafe(&kA, k, &A)
	edwards25519.ScalarBaseMult(&sB, S)
	rhs.Add(&kA, &sB)

	// Cofactor multiplication by 8 on both sides (three doublings) makes
	// the comparison closed under the 8-torsion coset, per ZIP215.
	var lhs8, rhs8 edwards25519.ProjP3
	lhs8.Double(&R)
	lhs8.Double(&lhs8)
	lhs8.Double(&lhs8)
	rhs8.Double(&rhs)
	rhs8.Double(&rhs8)
	rhs8.Double(&rhs8)

	return lhs8.Equal(&rhs8) == 1
}

// Equal reports whether priv and x have the same value.
func (priv PrivateKey) Equal(x PrivateKey) bool {
	return bytes.Equal(priv, x)
}

// Equal reports whether pub and x have the same value.
func (pub PublicKey) Equal(x PublicKey) bool {
	return bytes.Equal(pub, x)
}

// publicKeyError builds a curve25519.Error for this package's failures;
// exported functions above favor the bool/panic conventions of RFC 8032
// libraries, but VerifyWithError gives callers that want a Kind the
// ability to distinguish failures as spec.md section 7 requires.
func publicKeyError(kind curve25519.Kind, cause error) error {
	return curve25519.NewError("ed25519.Verify", kind, cause)
}

// VerifyWithError is Verify, but returns a *curve25519.Error identifying
// which precondition failed instead of collapsing every failure to false.
// Cryptographic mismatch (a well-formed signature that simply does not
// verify) is reported as InvalidSignature, as is an S that is not below L;
// a wrong-sized key or signature is reported as InvalidLength, an S with
// any of its top three bits set as InvalidEncoding, and a public key that
// does not decode as InvalidPoint, so callers can tell these apart.
func VerifyWithError(publicKey PublicKey, message, sig []byte) error {
	if len(publicKey) != PublicKeySize || len(sig) != SignatureSize {
		return publicKeyError(curve25519.InvalidLength, nil)
	}
	if sig[63]&0xE0 != 0 {
		return publicKeyError(curve25519.InvalidEncoding, nil)
	}
	var A edwards25519.ProjP3
	if _, err := A.SetBytes(publicKey, false); err != nil {
		return publicKeyError(curve25519.InvalidPoint, err)
	}
	if _, err := scalar.New().SetCanonicalBytes(sig[32:]); err != nil {
		return publicKeyError(curve25519.InvalidSignature, err)
	}
	if !Verify(publicKey, message, sig) {
		return publicKeyError(curve25519.InvalidSignature, nil)
	}
	return nil
}
