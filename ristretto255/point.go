// Copyright (c) 2019 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ristretto255 implements the Ristretto255 prime-order group
// built on top of the Edwards25519 curve, per the CFRG Ristretto draft.
// It eliminates the cofactor-8 small-subgroup gotchas of raw Edwards
// points by quotienting out the 8-torsion coset: every Ristretto point
// has exactly one canonical 32-byte encoding, and group equality
// accounts for the coset equivalences that make four distinct Edwards
// points represent the same Ristretto element.
package ristretto255

import (
	"crypto/rand"
	"io"

	"github.com/spider-gazelle/ed25519"
	"github.com/spider-gazelle/ed25519/internal/edwards25519"
	"github.com/spider-gazelle/ed25519/internal/field"
	"github.com/spider-gazelle/ed25519/internal/scalar"
)

// EncodedPointSize is the size, in bytes, of a canonical Ristretto255
// point encoding.
const EncodedPointSize = 32

// Point is an element of the Ristretto255 group. The zero value is NOT
// a valid point; use NewIdentityPoint or decode into a Point with
// Decode.
type Point struct {
	p edwards25519.ProjP3
}

// NewIdentityPoint returns the Ristretto255 identity element.
func NewIdentityPoint() *Point {
	p := &Point{}
	p.p.Zero()
	return p
}

// NewGeneratorPoint returns a fixed Ristretto255 generator, the image of
// the Edwards25519 base point under the quotient map. Any Edwards point
// not in the 8-torsion subgroup would serve equally well as a generator;
// this one is chosen for interoperability with other implementations
// that seed their generator the same way.
func NewGeneratorPoint() *Point {
	p := &Point{}
	p.p.Set(edwards25519.Base)
	return p
}

// Set sets v = u and returns v.
func (v *Point) Set(u *Point) *Point {
	v.p.Set(&u.p)
	return v
}

// Add sets v = p + q and returns v.
func (v *Point) Add(p, q *Point) *Point {
	v.p.Add(&p.p, &q.p)
	return v
}

// Subtract sets v = p - q and returns v.
func (v *Point) Subtract(p, q *Point) *Point {
	v.p.Sub(&p.p, &q.p)
	return v
}

// Negate sets v = -p and returns v.
func (v *Point) Negate(p *Point) *Point {
	v.p.Neg(&p.p)
	return v
}

// ScalarMult sets v = x*p using the constant-time wNAF engine, and
// returns v. x is normalized strictly into [0, L) first, matching
// spec.md's multiply(scalar, affine_base?) contract.
func (v *Point) ScalarMult(x *scalar.Scalar, p *Point) *Point {
	edwards25519.ScalarMult(&v.p, x, &p.p)
	return v
}

// ScalarBaseMult sets v = x*Generator and returns v.
func (v *Point) ScalarBaseMult(x *scalar.Scalar) *Point {
	edwards25519.ScalarBaseMult(&v.p, x)
	return v
}

// Equal reports whether v and u represent the same Ristretto255 element,
// via the two-branch coset test x1*y2 == y1*x2 OR y1*y2 == x1*x2 that
// accounts for the four Edwards representatives of one Ristretto point.
func (v *Point) Equal(u *Point) int {
	var x1y2, y1x2, y1y2, x1x2 field.Element
	x1y2.Mul(&v.p.X, &u.p.Y)
	y1x2.Mul(&v.p.Y, &u.p.X)
	y1y2.Mul(&v.p.Y, &u.p.Y)
	x1x2.Mul(&v.p.X, &u.p.X)

	return x1y2.Equal(&y1x2) | y1y2.Equal(&x1x2)
}

// Encode appends the 32-byte canonical encoding of v to b and returns
// the result, per the CFRG Ristretto draft's to_raw_bytes algorithm.
func (v *Point) Encode(b []byte) []byte {
	var u1, u2, u2Sq, invSqrt, d1, d2, zInv, tZInv, xZInv field.Element
	var x, y, s field.Element

	u1.Add(&v.p.Z, &v.p.Y)
	var zMinusY field.Element
	zMinusY.Subtract(&v.p.Z, &v.p.Y)
	u1.Mul(&u1, &zMinusY)

	u2.Mul(&v.p.X, &v.p.Y)
	u2Sq.Square(&u2)

	var u1u2Sq field.Element
	u1u2Sq.Mul(&u1, &u2Sq)
	invSqrt.UVRatio(new(field.Element).One(), &u1u2Sq)

	d1.Mul(&invSqrt, &u1)
	d2.Mul(&invSqrt, &u2)
	zInv.Mul(&d1, &d2)
	zInv.Mul(&zInv, &v.p.T)

	tZInv.Mul(&v.p.T, &zInv)
	if tZInv.IsNegative() == 1 {
		x.Mul(&v.p.Y, edwards25519.SqrtM1)
		y.Mul(&v.p.X, edwards25519.SqrtM1)
		d1.Mul(&d1, invSqrtAMinusD)
	} else {
		x.Set(&v.p.X)
		y.Set(&v.p.Y)
		d1.Set(&d2)
	}

	xZInv.Mul(&x, &zInv)
	if xZInv.IsNegative() == 1 {
		y.Negate(&y)
	}

	var zMinusY2 field.Element
	zMinusY2.Subtract(&v.p.Z, &y)
	s.Mul(&d1, &zMinusY2)
	s.Absolute(&s)

	var buf [32]byte
	s.Bytes(buf[:])
	return append(b, buf[:]...)
}

// Decode sets v to the point represented by the canonical 32-byte
// encoding in, and returns v and an error. The encoding is rejected with
// InvalidEncoding if it is not canonical (re-encoding it would not
// reproduce the same 32 bytes) or represents a negative s; it is
// rejected with InvalidPoint if the curve-equation recovery step fails,
// the recovered t is negative, or y == 0.
func (v *Point) Decode(in []byte) (*Point, error) {
	if len(in) != EncodedPointSize {
		return nil, curve25519.NewError("ristretto255.Decode", curve25519.InvalidLength, nil)
	}

	var s field.Element
	s.SetBytes(in)
	var reencoded [32]byte
	s.Bytes(reencoded[:])
	for i := range reencoded {
		if reencoded[i] != in[i] {
			return nil, curve25519.NewError("ristretto255.Decode", curve25519.InvalidEncoding, nil)
		}
	}
	if s.IsNegative() == 1 {
		return nil, curve25519.NewError("ristretto255.Decode", curve25519.InvalidEncoding, nil)
	}

	var ss, u1, u2, u2Sq, vv field.Element
	ss.Square(&s)
	u1.Subtract(new(field.Element).One(), &ss)
	u2.Add(new(field.Element).One(), &ss)
	u2Sq.Square(&u2)

	var du1Sq field.Element
	du1Sq.Square(&u1)
	du1Sq.Mul(&du1Sq, edwards25519.D)
	vv.Negate(&du1Sq)
	vv.Subtract(&vv, &u2Sq)

	var vu2Sq field.Element
	vu2Sq.Mul(&vv, &u2Sq)
	invSqrt, wasSquare := new(field.Element).UVRatio(new(field.Element).One(), &vu2Sq)
	if !wasSquare {
		return nil, curve25519.NewError("ristretto255.Decode", curve25519.InvalidPoint, nil)
	}

	var dx, dy, x, y, t field.Element
	dx.Mul(invSqrt, &u2)
	dy.Mul(invSqrt, &dx)
	dy.Mul(&dy, &vv)

	var twoS field.Element
	twoS.Add(&s, &s)
	x.Mul(&twoS, &dx)
	x.Absolute(&x)

	y.Mul(&u1, &dy)
	t.Mul(&x, &y)

	if t.IsNegative() == 1 || y.IsZero() == 1 {
		return nil, curve25519.NewError("ristretto255.Decode", curve25519.InvalidPoint, nil)
	}

	v.p.X.Set(&x)
	v.p.Y.Set(&y)
	v.p.Z.One()
	v.p.T.Set(&t)
	return v, nil
}

// Rand sets v to a uniformly random point, by hashing 64 random bytes
// with FromUniformBytes, and returns v.
func (v *Point) Rand(rnd io.Reader) (*Point, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var buf [64]byte
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return nil, err
	}
	return v.FromUniformBytes(buf[:]), nil
}
