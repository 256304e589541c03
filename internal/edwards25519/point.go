// Copyright (c) 2017 George Tankersley. All rights reserved.
// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edwards25519 implements group logic for the twisted Edwards curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2
//
// better known as the curve used by the Ed25519 signature scheme, Curve25519's
// birational twist.
package edwards25519

import (
	"errors"

	"github.com/spider-gazelle/ed25519/internal/field"
)

// ErrInvalidPoint is returned by SetBytes when the encoding does not
// correspond to a point on the curve.
var ErrInvalidPoint = errors.New("edwards25519: invalid point encoding")

// ProjP1xP1 is the "completed" point representation (P1xP1 in ref10),
// the natural output of unified addition/doubling before it is folded
// back into P2 or P3 form.
type ProjP1xP1 struct {
	X, Y, Z, T field.Element
}

// ProjP2 is the projective representation (X:Y:Z), x = X/Z, y = Y/Z.
type ProjP2 struct {
	X, Y, Z field.Element
}

// ProjP3 is the extended projective representation (X:Y:Z:T),
// x = X/Z, y = Y/Z, x*y = T/Z. This is the representation used to
// store points at rest.
type ProjP3 struct {
	X, Y, Z, T field.Element
}

// ProjCached holds a precomputed combination of another point's
// coordinates, used as the addend in mixed addition.
type ProjCached struct {
	YplusX, YminusX, Z, T2d field.Element
}

// AffineCached is a ProjCached with Z implicitly 1, used for
// precomputation tables where points are normalized up front.
type AffineCached struct {
	YplusX, YminusX, T2d field.Element
}

func (v *ProjP1xP1) Zero() *ProjP1xP1 {
	v.X.Zero()
	v.Y.One()
	v.Z.One()
	v.T.One()
	return v
}

func (v *ProjP2) Zero() *ProjP2 {
	v.X.Zero()
	v.Y.One()
	v.Z.One()
	return v
}

// Zero sets v to the identity element (0, 1) and returns v.
func (v *ProjP3) Zero() *ProjP3 {
	v.X.Zero()
	v.Y.One()
	v.Z.One()
	v.T.Zero()
	return v
}

func (v *ProjCached) Zero() *ProjCached {
	v.YplusX.One()
	v.YminusX.One()
	v.Z.One()
	v.T2d.Zero()
	return v
}

func (v *AffineCached) Zero() *AffineCached {
	v.YplusX.One()
	v.YminusX.One()
	v.T2d.Zero()
	return v
}

// Set sets v = u and returns v.
func (v *ProjP3) Set(u *ProjP3) *ProjP3 {
	*v = *u
	return v
}

// Conversions.

func (v *ProjP2) FromP1xP1(p *ProjP1xP1) *ProjP2 {
	v.X.Mul(&p.X, &p.T)
	v.Y.Mul(&p.Y, &p.Z)
	v.Z.Mul(&p.Z, &p.T)
	return v
}

func (v *ProjP2) FromP3(p *ProjP3) *ProjP2 {
	v.X.Set(&p.X)
	v.Y.Set(&p.Y)
	v.Z.Set(&p.Z)
	return v
}

func (v *ProjP3) FromP1xP1(p *ProjP1xP1) *ProjP3 {
	v.X.Mul(&p.X, &p.T)
	v.Y.Mul(&p.Y, &p.Z)
	v.Z.Mul(&p.Z, &p.T)
	v.T.Mul(&p.X, &p.Y)
	return v
}

func (v *ProjP3) FromP2(p *ProjP2) *ProjP3 {
	v.X.Mul(&p.X, &p.Z)
	v.Y.Mul(&p.Y, &p.Z)
	v.Z.Square(&p.Z)
	v.T.Mul(&p.X, &p.Y)
	return v
}

func (v *ProjCached) FromP3(p *ProjP3) *ProjCached {
	v.YplusX.Add(&p.Y, &p.X)
	v.YminusX.Subtract(&p.Y, &p.X)
	v.Z.Set(&p.Z)
	v.T2d.Mul(&p.T, twoD)
	return v
}

// FromP3 builds an AffineCached from p, normalizing by Z so the cached
// form can be reused in mixed addition without carrying Z along.
func (v *AffineCached) FromP3(p *ProjP3) *AffineCached {
	v.YplusX.Add(&p.Y, &p.X)
	v.YminusX.Subtract(&p.Y, &p.X)
	v.T2d.Mul(&p.T, twoD)

	var invZ field.Element
	invZ.Invert(&p.Z)
	v.YplusX.Mul(&v.YplusX, &invZ)
	v.YminusX.Mul(&v.YminusX, &invZ)
	v.T2d.Mul(&v.T2d, &invZ)
	return v
}

// Addition, subtraction.

// Add sets v = p + q and returns v.
func (v *ProjP3) Add(p, q *ProjP3) *ProjP3 {
	var result ProjP1xP1
	var qCached ProjCached
	qCached.FromP3(q)
	result.Add(p, &qCached)
	v.FromP1xP1(&result)
	return v
}

// Sub sets v = p - q and returns v.
func (v *ProjP3) Sub(p, q *ProjP3) *ProjP3 {
	var result ProjP1xP1
	var qCached ProjCached
	qCached.FromP3(q)
	result.Sub(p, &qCached)
	v.FromP1xP1(&result)
	return v
}

// Add implements the a=-1 unified addition formula (Hisil-Wong-Carter-Dawson).
func (v *ProjP1xP1) Add(p *ProjP3, q *ProjCached) *ProjP1xP1 {
	var YplusX, YminusX, PP, MM, TT2d, ZZ2 field.Element

	YplusX.Add(&p.Y, &p.X)
	YminusX.Subtract(&p.Y, &p.X)

	PP.Mul(&YplusX, &q.YplusX)
	MM.Mul(&YminusX, &q.YminusX)
	TT2d.Mul(&p.T, &q.T2d)
	ZZ2.Mul(&p.Z, &q.Z)
	ZZ2.Add(&ZZ2, &ZZ2)

	v.X.Subtract(&PP, &MM)
	v.Y.Add(&PP, &MM)
	v.Z.Add(&ZZ2, &TT2d)
	v.T.Subtract(&ZZ2, &TT2d)
	return v
}

// Sub is Add with q negated (YplusX/YminusX swapped, T2d flipped).
func (v *ProjP1xP1) Sub(p *ProjP3, q *ProjCached) *ProjP1xP1 {
	var YplusX, YminusX, PP, MM, TT2d, ZZ2 field.Element

	YplusX.Add(&p.Y, &p.X)
	YminusX.Subtract(&p.Y, &p.X)

	PP.Mul(&YplusX, &q.YminusX)
	MM.Mul(&YminusX, &q.YplusX)
	TT2d.Mul(&p.T, &q.T2d)
	ZZ2.Mul(&p.Z, &q.Z)
	ZZ2.Add(&ZZ2, &ZZ2)

	v.X.Subtract(&PP, &MM)
	v.Y.Add(&PP, &MM)
	v.Z.Subtract(&ZZ2, &TT2d)
	v.T.Add(&ZZ2, &TT2d)
	return v
}

func (v *ProjP1xP1) AddAffine(p *ProjP3, q *AffineCached) *ProjP1xP1 {
	var YplusX, YminusX, PP, MM, TT2d, Z2 field.Element

	YplusX.Add(&p.Y, &p.X)
	YminusX.Subtract(&p.Y, &p.X)

	PP.Mul(&YplusX, &q.YplusX)
	MM.Mul(&YminusX, &q.YminusX)
	TT2d.Mul(&p.T, &q.T2d)
	Z2.Add(&p.Z, &p.Z)

	v.X.Subtract(&PP, &MM)
	v.Y.Add(&PP, &MM)
	v.Z.Add(&Z2, &TT2d)
	v.T.Subtract(&Z2, &TT2d)
	return v
}

func (v *ProjP1xP1) SubAffine(p *ProjP3, q *AffineCached) *ProjP1xP1 {
	var YplusX, YminusX, PP, MM, TT2d, Z2 field.Element

	YplusX.Add(&p.Y, &p.X)
	YminusX.Subtract(&p.Y, &p.X)

	PP.Mul(&YplusX, &q.YminusX)
	MM.Mul(&YminusX, &q.YplusX)
	TT2d.Mul(&p.T, &q.T2d)
	Z2.Add(&p.Z, &p.Z)

	v.X.Subtract(&PP, &MM)
	v.Y.Add(&PP, &MM)
	v.Z.Subtract(&Z2, &TT2d)
	v.T.Add(&Z2, &TT2d)
	return v
}

// Double implements the a=-1 dedicated doubling formula.
func (v *ProjP1xP1) Double(p *ProjP2) *ProjP1xP1 {
	var XX, YY, ZZ2, XplusYsq field.Element

	XX.Square(&p.X)
	YY.Square(&p.Y)
	ZZ2.Square(&p.Z)
	ZZ2.Add(&ZZ2, &ZZ2)
	XplusYsq.Add(&p.X, &p.Y)
	XplusYsq.Square(&XplusYsq)

	v.Y.Add(&YY, &XX)
	v.Z.Subtract(&YY, &XX)
	v.X.Subtract(&XplusYsq, &v.Y)
	v.T.Subtract(&ZZ2, &v.Z)
	return v
}

// Double sets v = 2*p and returns v.
func (v *ProjP3) Double(p *ProjP3) *ProjP3 {
	var p2 ProjP2
	p2.FromP3(p)
	var result ProjP1xP1
	result.Double(&p2)
	return v.FromP1xP1(&result)
}

// Neg sets v = -p and returns v.
func (v *ProjP3) Neg(p *ProjP3) *ProjP3 {
	v.X.Negate(&p.X)
	v.Y.Set(&p.Y)
	v.Z.Set(&p.Z)
	v.T.Negate(&p.T)
	return v
}

// Equal reports whether v and u represent the same point, using the
// projective cross-multiplication test.
//
// Credit: by @ebfull, https://github.com/dalek-cryptography/curve25519-dalek/pull/226/files
func (v *ProjP3) Equal(u *ProjP3) int {
	var t1, t2, t3, t4 field.Element
	t1.Mul(&v.X, &u.Z)
	t2.Mul(&u.X, &v.Z)
	t3.Mul(&v.Y, &u.Z)
	t4.Mul(&u.Y, &v.Z)
	return t1.Equal(&t2) & t3.Equal(&t4)
}

// IsOnCurve reports whether p satisfies the curve equation. Used for
// defense-in-depth in tests and when constructing points from raw
// coordinates rather than through SetBytes.
func IsOnCurve(x, y *field.Element) bool {
	var lh, y2, rh field.Element
	lh.Square(x)
	y2.Square(y)
	rh.Mul(&lh, &y2)
	rh.Mul(&rh, D)
	rh.Add(&rh, new(field.Element).One())
	lh.Negate(&lh)
	lh.Add(&lh, &y2)
	lh.Subtract(&lh, &rh)
	return lh.Equal(new(field.Element).Zero()) == 1
}

// Bytes returns the 32-byte compressed encoding of v: little-endian y
// with the sign of x folded into the top bit, per RFC 8032 section 5.1.2.
func (v *ProjP3) Bytes() []byte {
	var x, y, zinv field.Element
	zinv.Invert(&v.Z)
	x.Mul(&v.X, &zinv)
	y.Mul(&v.Y, &zinv)

	buf := make([]byte, 32)
	y.Bytes(buf)
	buf[31] |= byte(x.IsNegative() << 7)
	return buf
}

// SetBytes decodes a 32-byte compressed point per RFC 8032 section 5.1.3.
// If strict is true, the y-coordinate must be a canonical representative
// (y < p); ZIP215 verification uses strict = false to accept y in
// [0, 2^256) as required by the cofactored equation.
func (v *ProjP3) SetBytes(data []byte, strict bool) (*ProjP3, error) {
	if len(data) != 32 {
		return nil, ErrInvalidPoint
	}

	signBit := data[31] >> 7
	var yBytes [32]byte
	copy(yBytes[:], data)
	yBytes[31] &= 0x7f

	var y field.Element
	y.SetBytes(yBytes[:])

	if strict {
		var reencoded [32]byte
		y.Bytes(reencoded[:])
		for i := range reencoded {
			if reencoded[i] != yBytes[i] {
				return nil, ErrInvalidPoint
			}
		}
	}

	var y2, u, vv, x field.Element
	y2.Square(&y)
	u.Subtract(&y2, new(field.Element).One())     // y^2 - 1
	vv.Mul(D, &y2)
	vv.Add(&vv, new(field.Element).One()) // d*y^2 + 1

	_, valid := x.UVRatio(&u, &vv)
	if !valid {
		return nil, ErrInvalidPoint
	}
	// UVRatio always returns the even-LSB representative; negate to match
	// the sign bit carried in the encoding.
	if int(signBit) != 0 {
		x.Negate(&x)
	}
	if x.IsZero() == 1 && signBit == 1 {
		return nil, ErrInvalidPoint
	}

	v.X.Set(&x)
	v.Y.Set(&y)
	v.Z.One()
	v.T.Mul(&x, &y)
	return v, nil
}
