// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x25519 implements the X25519 Diffie-Hellman function, per
// RFC 7748, using the Montgomery ladder over the Curve25519 u-line.
package x25519

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"github.com/spider-gazelle/ed25519"
	"github.com/spider-gazelle/ed25519/internal/field"
)

const (
	// ScalarSize is the size, in bytes, of the scalars accepted by
	// ScalarMult and ScalarBaseMult.
	ScalarSize = 32
	// PointSize is the size, in bytes, of the u-coordinates accepted
	// by ScalarMult and returned by ScalarMult and ScalarBaseMult.
	PointSize = 32
)

// Basepoint is the canonical Curve25519 base point, u = 9, per RFC 7748.
var Basepoint []byte

var basePoint = [32]byte{9}

func init() {
	Basepoint = basePoint[:]
}

// ErrInvalidSharedSecret is returned by ScalarMult when the output would
// be the all-zero string, per RFC 7748 section 6.1: this happens when the
// other party's point has small order, and the shared secret it would
// otherwise produce carries no entropy.
var ErrInvalidSharedSecret = curve25519.NewError("x25519.ScalarMult", curve25519.InvalidSharedSecret, nil)

// clamp applies RFC 7748's fixed bit manipulation to a 32-byte scalar:
// clear the low 3 bits, clear the top bit, set bit 254.
func clamp(scalar *[32]byte) {
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
}

// ScalarMult returns the Montgomery-ladder scalar multiplication
// scalar*point (scalar clamped first) as a new 32-byte slice, and an
// error. The error is ErrInvalidSharedSecret if the result is the
// all-zero string (point had small order).
func ScalarMult(scalar, point []byte) ([]byte, error) {
	var dst, in, base [32]byte
	if len(scalar) != ScalarSize || len(point) != PointSize {
		return nil, curve25519.NewError("x25519.ScalarMult", curve25519.InvalidLength, nil)
	}
	copy(in[:], scalar)
	copy(base[:], point)
	clamp(&in)

	montgomeryLadder(&dst, &in, &base)

	var zero [32]byte
	if subtle.ConstantTimeCompare(dst[:], zero[:]) == 1 {
		return nil, ErrInvalidSharedSecret
	}
	out := make([]byte, 32)
	copy(out, dst[:])
	return out, nil
}

// ScalarBaseMult returns scalar*Basepoint, as ScalarMult does.
func ScalarBaseMult(scalar []byte) ([]byte, error) {
	return ScalarMult(scalar, Basepoint)
}

// GenerateKey generates a random X25519 private scalar using entropy
// from rnd (crypto/rand.Reader if nil), clamps it per RFC 7748, and
// returns it alongside the corresponding public u-coordinate.
func GenerateKey(rnd io.Reader) (private, public []byte, err error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	private = make([]byte, ScalarSize)
	if _, err := io.ReadFull(rnd, private); err != nil {
		return nil, nil, err
	}
	clamp((*[32]byte)(private))
	public, err = ScalarBaseMult(private)
	if err != nil {
		return nil, nil, err
	}
	return private, public, nil
}

// montgomeryLadder implements the RFC 7748 section 5 ladder: 255
// iterations (bits 254 down to 0) of conditional-swap plus one
// doubling-and-differential-addition step, followed by recovery of the
// affine u-coordinate via field inversion.
func montgomeryLadder(dst, scalar, point *[32]byte) {
	// a24 = (486662-2)/4, the Montgomery curve coefficient used in the
	// doubling step below.
	const a24 = 121665

	var x1, x2, z2, x3, z3 field.Element
	var A, AA, B, BB, E, C, D, DA, CB field.Element
	x1.SetBytes(point[:])
	x2.One()
	z2.Zero()
	x3.Set(&x1)
	z3.One()

	swap := 0
	for pos := 254; pos >= 0; pos-- {
		b := int((scalar[pos/8] >> uint(pos&7)) & 1)
		swap ^= b
		x2.Swap(&x3, swap)
		z2.Swap(&z3, swap)
		swap = b

		A.Add(&x2, &z2)
		AA.Square(&A)
		B.Subtract(&x2, &z2)
		BB.Square(&B)
		E.Subtract(&AA, &BB)
		C.Add(&x3, &z3)
		D.Subtract(&x3, &z3)
		DA.Mul(&D, &A)
		CB.Mul(&C, &B)

		x3.Add(&DA, &CB)
		x3.Square(&x3)
		z3.Subtract(&DA, &CB)
		z3.Square(&z3)
		z3.Mul(&x1, &z3)

		x2.Mul(&AA, &BB)
		var a24E field.Element
		a24E.Mult32(&E, a24)
		a24E.Add(&a24E, &AA)
		z2.Mul(&E, &a24E)
	}
	x2.Swap(&x3, swap)
	z2.Swap(&z3, swap)

	z2.Invert(&z2)
	x2.Mul(&x2, &z2)
	x2.Bytes(dst[:])
}
