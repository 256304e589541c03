// Copyright (c) 2019 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ristretto255

import (
	"github.com/spider-gazelle/ed25519/internal/edwards25519"
	"github.com/spider-gazelle/ed25519/internal/field"
)

// montgomeryA is the Curve25519 Montgomery coefficient A in y^2 = x^3 +
// A*x^2 + x, and montgomeryCoeff is sqrt(-(A+2)), the constant used to lift
// a Montgomery-curve point to its birationally equivalent Edwards25519
// point: x_ed = montgomeryCoeff*u/v, y_ed = (u-1)/(u+1).
var (
	montgomeryA     = feFromDecimal("486662")
	montgomeryCoeff = feFromDecimal("6853475219497561581579357271197624642482790079785650197046958215289687604742")
)

// mapToPoint sends a field element r to a point of the Edwards25519 curve
// via Elligator2 on the birationally equivalent Montgomery curve, followed
// by the standard Montgomery-to-Edwards lift. It takes the place of the
// draft's single-field MAP formula but does not compute the same function:
// its outputs differ from that formula's and are not confined to the even
// subgroup that Ristretto255 encodings cover (FromUniformBytes doubles its
// sum for that reason).
func mapToPoint(r *field.Element) *edwards25519.ProjP3 {
	var u, t1, v, negV, xAlt, vSq, avPlus1, num field.Element

	u.Square(r)
	u.Add(&u, &u) // u = 2*r^2

	t1.Add(&u, new(field.Element).One()) // t1 = u + 1

	var invT1 field.Element
	invT1.Invert(&t1)
	v.Mul(montgomeryA, &invT1)
	v.Negate(&v) // v = -A / (u + 1)

	// num = v^3 + A*v^2 + v = v*(v^2 + A*v + 1)
	vSq.Square(&v)
	avPlus1.Mult32(&v, 486662)
	avPlus1.Add(&avPlus1, &vSq)
	avPlus1.Add(&avPlus1, new(field.Element).One())
	num.Mul(&v, &avPlus1)

	_, isSquare := new(field.Element).UVRatio(&num, new(field.Element).One())
	cond := 0
	if isSquare {
		cond = 1
	}

	negV.Negate(&v)
	xAlt.Subtract(&negV, montgomeryA)

	var montX field.Element
	montX.Select(&v, &xAlt, cond)

	// y^2 = montX^3 + A*montX^2 + montX; this is a square by construction
	// of Elligator2, for either branch of montX above.
	var montXSq, montY2, aXSq field.Element
	montXSq.Square(&montX)
	aXSq.Mult32(&montX, 486662)
	aXSq.Mul(&aXSq, &montX)
	montY2.Mul(&montXSq, &montX)
	montY2.Add(&montY2, &aXSq)
	montY2.Add(&montY2, &montX)

	montY, _ := new(field.Element).UVRatio(&montY2, new(field.Element).One())

	// Canonical sign: the square root returned by UVRatio always has an
	// even LSB; restore the branch-dependent sign Elligator2 requires (even
	// when montX == v, odd when montX == xAlt) so that the lift below
	// reaches the correct one of the two curve points over montX.
	wantOdd := 1 - cond
	isOdd := montY.IsNegative()
	needFlip := wantOdd ^ isOdd
	var montYNeg field.Element
	montYNeg.Negate(montY)
	montY.Select(&montYNeg, montY, needFlip)

	return liftMontgomery(&montX, montY)
}

// liftMontgomery maps a Montgomery-curve point (u, v) to its Edwards25519
// image via x_ed = montgomeryCoeff*u/v, y_ed = (u-1)/(u+1). The v == 0 case
// (u == 0, the curve's 2-torsion point) is the map's one degeneracy and
// lands on the Edwards 2-torsion point (0, -1).
func liftMontgomery(u, v *field.Element) *edwards25519.ProjP3 {
	var p edwards25519.ProjP3

	if v.IsZero() == 1 {
		p.X.Zero()
		p.Y.Negate(new(field.Element).One())
		p.Z.One()
		p.T.Zero()
		return &p
	}

	var invV, xEd, yEd, uPlus1, invUPlus1, uMinus1 field.Element
	invV.Invert(v)
	xEd.Mul(montgomeryCoeff, u)
	xEd.Mul(&xEd, &invV)

	uPlus1.Add(u, new(field.Element).One())
	invUPlus1.Invert(&uPlus1)
	uMinus1.Subtract(u, new(field.Element).One())
	yEd.Mul(&uMinus1, &invUPlus1)

	p.X.Set(&xEd)
	p.Y.Set(&yEd)
	p.Z.One()
	p.T.Mul(&xEd, &yEd)
	return &p
}

// FromUniformBytes implements the Ristretto255 one-way map from a uniform
// 64-byte string to a group element, per the CFRG draft's hash-to-group
// construction: split the input into two 32-byte halves, reduce each to a
// field element, map each independently with mapToPoint, sum the
// results, and double the sum. Summing two independent map outputs, rather than using one
// directly, is what makes the overall map indistinguishable from uniform
// (a single Elligator-style map's image omits roughly half the curve).
func (v *Point) FromUniformBytes(b []byte) *Point {
	if len(b) != 64 {
		panic("ristretto255: FromUniformBytes requires a 64-byte input")
	}

	var r0, r1 field.Element
	r0.SetBytes(b[:32])
	r1.SetBytes(b[32:])

	p0 := mapToPoint(&r0)
	p1 := mapToPoint(&r1)

	v.p.Add(p0, p1)
	// mapToPoint's outputs are not confined to the even subgroup that
	// Ristretto255 encodings cover; doubling moves the sum into it, and
	// doubling is a bijection on the prime-order group, so the output
	// stays uniform.
	v.p.Double(&v.p)
	return v
}
