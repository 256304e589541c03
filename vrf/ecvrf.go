// Copyright (c) 2017 Yahoo Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vrf implements ECVRF-EDWARDS25519-SHA512-TAI, the Edwards25519
// verifiable random function built on top of this module's core group
// arithmetic: a prover holding an Ed25519 key produces, for any input
// alpha, both a pseudorandom output beta and a proof pi that lets anyone
// holding the public key check that beta really is the output the key
// owner would have produced for alpha, without learning the secret key.
package vrf

import (
	"crypto/sha512"
	"crypto/subtle"
	"errors"

	"github.com/spider-gazelle/ed25519/internal/edwards25519"
	"github.com/spider-gazelle/ed25519/internal/scalar"
)

const (
	// ProofSize is the size, in bytes, of a VRF proof: the 32-byte Gamma
	// point, a 16-byte truncated challenge, and a 32-byte response scalar.
	ProofSize = 80
	// OutputSize is the size, in bytes, of a VRF output (a SHA-512 digest).
	OutputSize = 64

	suiteString = 0x03 // ECVRF-EDWARDS25519-SHA512-TAI, per the IETF VRF draft
	zeroString  = 0x00
	oneString   = 0x01
	twoString   = 0x02
	threeString = 0x03

	// maxTryAndIncrement bounds hash_to_curve's retry loop; the probability
	// of needing more than a handful of attempts is astronomically small,
	// this is only a backstop against an infinite loop on a broken input.
	maxTryAndIncrement = 256
)

var (
	// ErrInvalidProof is returned when a proof is malformed: wrong length,
	// a Gamma that doesn't decode to a valid canonical point, or a c/s that
	// isn't a canonical scalar representative.
	ErrInvalidProof = errors.New("vrf: invalid proof encoding")
	// ErrInvalidPublicKey describes a public key that fails RFC 8032
	// canonical decoding or lands in the small-order subgroup. Verify
	// reports such a key as ok == false; no function in this package
	// returns this error.
	ErrInvalidPublicKey = errors.New("vrf: invalid public key")
)

// Prove computes a VRF proof pi for alpha under the Ed25519 private key sk
// (the standard 64-byte seed||public-key encoding, as produced by this
// module's ed25519 package), and returns it alongside an error. The only
// error is hashToCurve giving up after maxTryAndIncrement attempts.
func Prove(sk [64]byte, alpha []byte) (pi [ProofSize]byte, err error) {
	seed, pub := sk[:32], sk[32:64]

	digest := sha512.Sum512(seed)
	digest[0] &= 248
	digest[31] &= 63
	digest[31] |= 64
	x := scalar.New().SetUniformBytes(digest[:32])
	prefix := digest[32:]

	h, err := hashToCurve(pub, alpha)
	if err != nil {
		return pi, err
	}
	hString := h.Bytes()

	var gamma edwards25519.ProjP3
	edwards25519.ScalarMult(&gamma, x, h)
	gammaString := gamma.Bytes()

	k := scalar.Sha512ModQLE(prefix, hString)

	var kB, kH edwards25519.ProjP3
	edwards25519.ScalarBaseMult(&kB, k)
	edwards25519.ScalarMult(&kH, k, h)

	c := hashPoints(hString, gammaString, kB.Bytes(), kH.Bytes())
	s := scalar.New().MultiplyAdd(c, x, k)

	copy(pi[:32], gammaString)
	copy(pi[32:48], c.Bytes()[:16])
	copy(pi[48:80], s.Bytes())
	return pi, nil
}

// ProofToHash deterministically derives the 64-byte VRF output beta from a
// proof pi. It should only be called with a pi that decodeProof accepts;
// Verify already does this internally and returns beta itself on success.
func ProofToHash(pi [ProofSize]byte) (beta [OutputSize]byte, err error) {
	gamma, _, _, err := decodeProof(pi[:])
	if err != nil {
		return beta, err
	}
	copy(beta[:], gammaToHash(gamma))
	return beta, nil
}

// Verify checks pi as a proof that beta is the VRF output of pk on alpha,
// and returns beta alongside ok == true only if the proof is valid. A
// false return (with a zero beta) covers both a malformed proof/key and a
// well-formed proof that simply does not verify; callers that need to tell
// these apart should call decodeProof-adjacent helpers directly, the way
// ed25519.VerifyWithError distinguishes its own failure kinds.
func Verify(pk [32]byte, alpha []byte, pi [80]byte) (beta [OutputSize]byte, ok bool) {
	gamma, c, s, err := decodeProof(pi[:])
	if err != nil {
		return beta, false
	}

	y, err := new(edwards25519.ProjP3).SetBytes(pk[:], true)
	if err != nil {
		return beta, false
	}
	var cofactorY edwards25519.ProjP3
	cofactorMul(&cofactorY, y)
	if cofactorY.Equal(new(edwards25519.ProjP3).Zero()) == 1 {
		return beta, false
	}

	h, err := hashToCurve(pk[:], alpha)
	if err != nil {
		return beta, false
	}
	hString := h.Bytes()

	var negY, cY, sB, u edwards25519.ProjP3
	negY.Neg(y)
	edwards25519.MultiplyUnsafe(&cY, c, &negY)
	edwards25519.ScalarBaseMult(&sB, s)
	u.Add(&sB, &cY)

	var negGamma, cGamma, sH, v edwards25519.ProjP3
	negGamma.Neg(gamma)
	edwards25519.MultiplyUnsafe(&cGamma, c, &negGamma)
	edwards25519.MultiplyUnsafe(&sH, s, h)
	v.Add(&sH, &cGamma)

	cPrime := hashPoints(hString, gamma.Bytes(), u.Bytes(), v.Bytes())
	if subtle.ConstantTimeCompare(c.Bytes(), cPrime.Bytes()) != 1 {
		return beta, false
	}

	copy(beta[:], gammaToHash(gamma))
	return beta, true
}

// hashToCurve implements ECVRF_hash_to_curve_try_and_increment: repeatedly
// hash the public key, alpha and an incrementing counter until the digest
// decodes to a valid curve point, then clear the cofactor.
func hashToCurve(pk, alpha []byte) (*edwards25519.ProjP3, error) {
	h := sha512.New()
	for ctr := 0; ctr < maxTryAndIncrement; ctr++ {
		h.Reset()
		h.Write([]byte{suiteString, oneString})
		h.Write(pk)
		h.Write(alpha)
		h.Write([]byte{byte(ctr)})
		digest := h.Sum(nil)

		p, err := new(edwards25519.ProjP3).SetBytes(digest[:32], false)
		if err != nil {
			continue
		}
		var cleared edwards25519.ProjP3
		cofactorMul(&cleared, p)
		if cleared.Equal(new(edwards25519.ProjP3).Zero()) == 1 {
			continue
		}
		return &cleared, nil
	}
	return nil, errors.New("vrf: hash_to_curve exceeded try-and-increment bound")
}

// hashPoints implements ECVRF_hash_points: it hashes the four named points'
// canonical encodings and truncates the digest to a 128-bit integer,
// returned as a scalar (the top 16 bytes are always zero, so no reduction
// mod L is needed).
func hashPoints(p1, p2, p3, p4 []byte) *scalar.Scalar {
	h := sha512.New()
	h.Write([]byte{suiteString, twoString})
	h.Write(p1)
	h.Write(p2)
	h.Write(p3)
	h.Write(p4)
	h.Write([]byte{zeroString})
	digest := h.Sum(nil)

	var cBytes [32]byte
	copy(cBytes[:16], digest[:16])
	c, err := scalar.New().SetCanonicalBytes(cBytes[:])
	if err != nil {
		// cBytes's top 16 bytes are zero, so it is always < L; this is
		// unreachable.
		panic("vrf: truncated challenge unexpectedly out of range: " + err.Error())
	}
	return c
}

// gammaToHash implements the final steps of ECVRF_proof_to_hash: cofactor-
// clear Gamma and hash its encoding into the 64-byte output.
func gammaToHash(gamma *edwards25519.ProjP3) []byte {
	var cleared edwards25519.ProjP3
	cofactorMul(&cleared, gamma)
	h := sha512.New()
	h.Write([]byte{suiteString, threeString})
	h.Write(cleared.Bytes())
	h.Write([]byte{zeroString})
	return h.Sum(nil)
}

// cofactorMul sets v = 8*p via three doublings, clearing Ed25519's cofactor.
func cofactorMul(v, p *edwards25519.ProjP3) {
	v.Double(p)
	v.Double(v)
	v.Double(v)
}

// decodeProof parses an 80-byte proof into its Gamma point and c, s
// scalars, rejecting a non-canonical Gamma encoding or an out-of-range
// scalar, per RFC 8032's decode semantics for each component.
func decodeProof(pi []byte) (gamma *edwards25519.ProjP3, c, s *scalar.Scalar, err error) {
	if len(pi) != ProofSize {
		return nil, nil, nil, ErrInvalidProof
	}

	gamma, err = new(edwards25519.ProjP3).SetBytes(pi[:32], true)
	if err != nil {
		return nil, nil, nil, ErrInvalidProof
	}

	var cBytes [32]byte
	copy(cBytes[:16], pi[32:48])
	c, err = scalar.New().SetCanonicalBytes(cBytes[:])
	if err != nil {
		return nil, nil, nil, ErrInvalidProof
	}

	s, err = scalar.New().SetCanonicalBytes(pi[48:80])
	if err != nil {
		return nil, nil, nil, ErrInvalidProof
	}

	return gamma, c, s, nil
}
