// Copyright (c) 2012 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalar implements arithmetic modulo the prime order of the
// edwards25519 group,
//
//	L = 2^252 + 27742317777372353535851937790883648493.
//
// Scalars are kept as math/big.Int values reduced into [0, L), the same
// representation the reference big-integer implementation in this
// project's teacher pack (agl-ed25519's ed25519_ref.go) uses throughout.
// This is simpler to get right than a fixed-limb Barrett/Montgomery
// reduction and is explicitly allowed by the specification's constant-time
// note: big.Int is not a constant-time integer type, so Scalar arithmetic
// over secret data carries the same documented timing caveat as the
// teacher's reference implementation.
package scalar

import (
	"crypto/sha512"
	"errors"
	"math/big"
)

// L is the prime order of the edwards25519 group.
var L, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// ErrOutOfRange is returned by SetCanonicalBytes and Normalize when a
// scalar violates its required range.
var ErrOutOfRange = errors.New("scalar: value out of range")

// Scalar is an integer modulo L. The zero value is the additive identity.
type Scalar struct {
	v big.Int
}

// New returns a new zero Scalar.
func New() *Scalar {
	return &Scalar{}
}

// Set sets s = a and returns s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.v.Set(&a.v)
	return s
}

// reduce reduces s.v into [0, L).
func (s *Scalar) reduce() *Scalar {
	s.v.Mod(&s.v, L)
	return s
}

// SetUniformBytes implements sha512_modq_le: it treats buf (of any length,
// typically 64 bytes) as a little-endian integer and reduces it mod L.
func (s *Scalar) SetUniformBytes(buf []byte) *Scalar {
	be := make([]byte, len(buf))
	for i, b := range buf {
		be[len(buf)-1-i] = b
	}
	s.v.SetBytes(be)
	return s.reduce()
}

// Sha512ModQLE hashes the concatenation of parts with SHA-512 and reduces
// the 64-byte little-endian digest modulo L.
func Sha512ModQLE(parts ...[]byte) *Scalar {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	digest := h.Sum(nil)
	return New().SetUniformBytes(digest)
}

// SetCanonicalBytes sets s from a 32-byte little-endian encoding and
// requires 0 <= s < L, failing with ErrOutOfRange otherwise (per the
// strict decoding path used for signature `s` values).
func (s *Scalar) SetCanonicalBytes(buf []byte) (*Scalar, error) {
	if len(buf) != 32 {
		return nil, errors.New("scalar: invalid encoding length")
	}
	be := make([]byte, 32)
	for i, b := range buf {
		be[31-i] = b
	}
	v := new(big.Int).SetBytes(be)
	if v.Sign() < 0 || v.Cmp(L) >= 0 {
		return nil, ErrOutOfRange
	}
	s.v.Set(v)
	return s, nil
}

// Bytes returns the 32-byte little-endian canonical encoding of s.
func (s *Scalar) Bytes() []byte {
	var r Scalar
	r.Set(s).reduce()
	be := r.v.FillBytes(make([]byte, 32))
	out := make([]byte, 32)
	for i, b := range be {
		out[31-i] = b
	}
	return out
}

// Add sets s = a + b mod L and returns s.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	s.v.Add(&a.v, &b.v)
	return s.reduce()
}

// Subtract sets s = a - b mod L and returns s.
func (s *Scalar) Subtract(a, b *Scalar) *Scalar {
	s.v.Sub(&a.v, &b.v)
	return s.reduce()
}

// Negate sets s = -a mod L and returns s.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	s.v.Neg(&a.v)
	return s.reduce()
}

// Multiply sets s = a * b mod L and returns s.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	s.v.Mul(&a.v, &b.v)
	return s.reduce()
}

// MultiplyAdd sets s = a*b + c mod L and returns s.
func (s *Scalar) MultiplyAdd(a, b, c *Scalar) *Scalar {
	var t big.Int
	t.Mul(&a.v, &b.v)
	t.Add(&t, &c.v)
	s.v.Set(&t)
	return s.reduce()
}

// Equal reports whether s == t.
func (s *Scalar) Equal(t *Scalar) bool {
	return s.v.Cmp(&t.v) == 0
}

// IsZero reports whether s == 0.
func (s *Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// BigInt returns a copy of the scalar's value as a big.Int in [0, L).
func (s *Scalar) BigInt() *big.Int {
	return new(big.Int).Set(&s.v)
}

// SetBigInt sets s = n mod L (n may be negative or exceed L) and returns s.
func (s *Scalar) SetBigInt(n *big.Int) *Scalar {
	s.v.Set(n)
	return s.reduce()
}

// Normalize validates n against the range policy spec.md's
// normalize_scalar names: strict requires 0 < n < max; non-strict requires
// 0 <= n < max. It returns ErrOutOfRange on violation.
func Normalize(n *big.Int, max *big.Int, strict bool) error {
	if strict {
		if !(n.Sign() > 0 && n.Cmp(max) < 0) {
			return ErrOutOfRange
		}
		return nil
	}
	if !(n.Sign() >= 0 && n.Cmp(max) < 0) {
		return ErrOutOfRange
	}
	return nil
}

// NAF returns the width-w non-adjacent form of s as a little-endian slice
// of signed digits in (-2^(w-1), 2^(w-1)], one per bit position, most of
// which are zero. Used by the wNAF scalar multiplier; w must satisfy
// 256 % w == 0 per spec.md's precomputation invariant, which the caller
// (internal/edwards25519) validates before calling this. The digit type
// is int32 rather than int8 because spec.md's widest named window, w=16,
// produces digits up to 2^15 in magnitude.
func NAF(s *Scalar, w uint) []int32 {
	bitlen := 256
	digits := make([]int32, bitlen+1)

	n := new(big.Int).Set(&s.v)
	n.Mod(n, L)

	width := new(big.Int).Lsh(big.NewInt(1), w)      // 2^w
	halfWidth := new(big.Int).Lsh(big.NewInt(1), w-1) // 2^(w-1)

	i := 0
	for n.Sign() != 0 {
		if n.Bit(0) == 1 {
			mod := new(big.Int).Mod(n, width)
			d := mod.Int64()
			if d > halfWidth.Int64() {
				d -= width.Int64()
			}
			digits[i] = int32(d)
			n.Sub(n, big.NewInt(d))
		}
		n.Rsh(n, 1)
		i++
	}
	return digits[:i]
}
