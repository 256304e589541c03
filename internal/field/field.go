// Copyright (c) 2017 George Tankersley. All rights reserved.
// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements fast arithmetic modulo 2^255-19.
package field

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"
)

// Element represents an element of the field GF(2^255-19). Note that this
// is not a cryptographically secure group, and should only be used to
// interact with point coordinates.
//
// This type works similarly to math/big.Int, and all arguments and
// receivers are allowed to alias.
//
// The zero value is a valid zero element.
type Element struct {
	// An element t represents the integer
	//     t.l0 + t.l1*2^51 + t.l2*2^102 + t.l3*2^153 + t.l4*2^204
	//
	// Between operations, all limbs are expected to be lower than 2^51,
	// except l0 which can be up to 2^51 + 2^13*19 due to carry propagation.
	l0 uint64
	l1 uint64
	l2 uint64
	l3 uint64
	l4 uint64
}

const maskLow51Bits uint64 = (1 << 51) - 1

var (
	feZero = &Element{0, 0, 0, 0, 0}
	feOne  = &Element{1, 0, 0, 0, 0}
	feTwo  = &Element{2, 0, 0, 0, 0}
)

// Zero sets v = 0 and returns v.
func (v *Element) Zero() *Element {
	*v = *feZero
	return v
}

// One sets v = 1 and returns v.
func (v *Element) One() *Element {
	*v = *feOne
	return v
}

// Two returns a fresh element equal to 2.
func Two() *Element {
	e := *feTwo
	return &e
}

// Set sets v = a and returns v.
func (v *Element) Set(a *Element) *Element {
	*v = *a
	return v
}

// carryPropagate1/2 brings the limbs below 52, 51, 51, 51, 51 bits. Split in
// two on purpose (inliner heuristics); the two must always be called together.
func (v *Element) carryPropagate1() *Element {
	v.l1 += v.l0 >> 51
	v.l0 &= maskLow51Bits
	v.l2 += v.l1 >> 51
	v.l1 &= maskLow51Bits
	v.l3 += v.l2 >> 51
	v.l2 &= maskLow51Bits
	return v
}

func (v *Element) carryPropagate2() *Element {
	v.l4 += v.l3 >> 51
	v.l3 &= maskLow51Bits
	v.l0 += (v.l4 >> 51) * 19
	v.l4 &= maskLow51Bits
	return v
}

// reduce reduces v modulo 2^255 - 19 and returns it.
func (v *Element) reduce() *Element {
	v.carryPropagate1().carryPropagate2()

	// v is now < 2^255 + 2^13*19, but we need v < 2^255 - 19. If v is in
	// [2^255-19, 2^255+2^13*19) then v+19 overflows 2^255-1, and c below
	// becomes 1; otherwise it stays 0.
	c := (v.l0 + 19) >> 51
	c = (v.l1 + c) >> 51
	c = (v.l2 + c) >> 51
	c = (v.l3 + c) >> 51
	c = (v.l4 + c) >> 51

	v.l0 += 19 * c

	v.l1 += v.l0 >> 51
	v.l0 &= maskLow51Bits
	v.l2 += v.l1 >> 51
	v.l1 &= maskLow51Bits
	v.l3 += v.l2 >> 51
	v.l2 &= maskLow51Bits
	v.l4 += v.l3 >> 51
	v.l3 &= maskLow51Bits
	v.l4 &= maskLow51Bits

	return v
}

// Add sets v = a + b and returns v.
func (v *Element) Add(a, b *Element) *Element {
	v.l0 = a.l0 + b.l0
	v.l1 = a.l1 + b.l1
	v.l2 = a.l2 + b.l2
	v.l3 = a.l3 + b.l3
	v.l4 = a.l4 + b.l4
	return v.carryPropagate1().carryPropagate2()
}

// Subtract sets v = a - b and returns v.
func (v *Element) Subtract(a, b *Element) *Element {
	// Add 2*p first so the subtraction never underflows, then subtract b
	// (which can be up to 2^255 + 2^13*19).
	v.l0 = (a.l0 + 0xFFFFFFFFFFFDA) - b.l0
	v.l1 = (a.l1 + 0xFFFFFFFFFFFFE) - b.l1
	v.l2 = (a.l2 + 0xFFFFFFFFFFFFE) - b.l2
	v.l3 = (a.l3 + 0xFFFFFFFFFFFFE) - b.l3
	v.l4 = (a.l4 + 0xFFFFFFFFFFFFE) - b.l4
	return v.carryPropagate1().carryPropagate2()
}

// Negate sets v = -a and returns v.
func (v *Element) Negate(a *Element) *Element {
	return v.Subtract(feZero, a)
}

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *Element) Select(a, b *Element, cond int) *Element {
	m := uint64(cond) * (1<<64 - 1)
	v.l0 = (m & a.l0) | (^m & b.l0)
	v.l1 = (m & a.l1) | (^m & b.l1)
	v.l2 = (m & a.l2) | (^m & b.l2)
	v.l3 = (m & a.l3) | (^m & b.l3)
	v.l4 = (m & a.l4) | (^m & b.l4)
	return v
}

// Swap swaps v and u if cond == 1, and leaves them unchanged if cond == 0.
func (v *Element) Swap(u *Element, cond int) {
	m := uint64(cond) * (1<<64 - 1)
	t := m & (v.l0 ^ u.l0)
	v.l0 ^= t
	u.l0 ^= t
	t = m & (v.l1 ^ u.l1)
	v.l1 ^= t
	u.l1 ^= t
	t = m & (v.l2 ^ u.l2)
	v.l2 ^= t
	u.l2 ^= t
	t = m & (v.l3 ^ u.l3)
	v.l3 ^= t
	u.l3 ^= t
	t = m & (v.l4 ^ u.l4)
	v.l4 ^= t
	u.l4 ^= t
}

func (v *Element) condNeg(u *Element, cond int) *Element {
	var tmp Element
	tmp.Negate(u)
	return v.Select(&tmp, u, cond)
}

// IsNegative returns 1 if v, interpreted as a canonical little-endian
// integer, has an odd least-significant bit, and 0 otherwise.
func (v *Element) IsNegative() int {
	var b [32]byte
	v.Bytes(b[:])
	return int(b[0] & 1)
}

// Absolute sets v = |u| (the representative with an even LSB) and returns v.
func (v *Element) Absolute(u *Element) *Element {
	return v.condNeg(u, u.IsNegative())
}

// IsZero returns 1 if v == 0, and 0 otherwise.
func (v *Element) IsZero() int {
	return v.Equal(feZero)
}

// Equal returns 1 if v == u, and 0 otherwise.
func (v *Element) Equal(u *Element) int {
	sa, sv := make([]byte, 32), make([]byte, 32)
	u.Bytes(sa)
	v.Bytes(sv)
	return subtle.ConstantTimeCompare(sa, sv)
}

// Mul sets v = x * y and returns v.
func (v *Element) Mul(x, y *Element) *Element {
	feMul(v, x, y)
	return v
}

// Square sets v = x * x and returns v.
func (v *Element) Square(x *Element) *Element {
	feSquare(v, x)
	return v
}

// Mult32 sets v = x * y (y a small uint32 multiplier) and returns v.
func (v *Element) Mult32(x *Element, y uint32) *Element {
	x0lo, x0hi := mul51(x.l0, y)
	x1lo, x1hi := mul51(x.l1, y)
	x2lo, x2hi := mul51(x.l2, y)
	x3lo, x3hi := mul51(x.l3, y)
	x4lo, x4hi := mul51(x.l4, y)
	v.l0 = x0lo + x4hi*19
	v.l1 = x1lo + x0hi
	v.l2 = x2lo + x1hi
	v.l3 = x3lo + x2hi
	v.l4 = x4lo + x3hi
	// hi parts are at most 32 bits plus a small excess, so no carry chain needed.
	return v
}

func mul51(a uint64, b uint32) (lo uint64, hi uint64) {
	mh, ml := bits.Mul64(a, uint64(b))
	lo = ml & maskLow51Bits
	hi = (mh << 13) | (ml >> 51)
	return
}

// Invert sets v = 1/z mod p and returns v. If z == 0, the result is zero
// (no error is returned; callers that need to distinguish the singular
// case use invert with explicit validity checking at a higher layer).
func (v *Element) Invert(z *Element) *Element {
	// Inversion via Fermat's little theorem: z^(p-2) mod p, computed with
	// the standard 254-squarings/11-multiplications addition chain.
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t Element

	z2.Square(z)
	t.Square(&z2)
	t.Square(&t)
	z9.Mul(&t, z)
	z11.Mul(&z9, &z2)
	t.Square(&z11)
	z2_5_0.Mul(&t, &z9)

	t.Square(&z2_5_0)
	for i := 0; i < 4; i++ {
		t.Square(&t)
	}
	z2_10_0.Mul(&t, &z2_5_0)

	t.Square(&z2_10_0)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_20_0.Mul(&t, &z2_10_0)

	t.Square(&z2_20_0)
	for i := 0; i < 19; i++ {
		t.Square(&t)
	}
	t.Mul(&t, &z2_20_0)

	t.Square(&t)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_50_0.Mul(&t, &z2_10_0)

	t.Square(&z2_50_0)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	z2_100_0.Mul(&t, &z2_50_0)

	t.Square(&z2_100_0)
	for i := 0; i < 99; i++ {
		t.Square(&t)
	}
	t.Mul(&t, &z2_100_0)

	t.Square(&t)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	t.Mul(&t, &z2_50_0)

	t.Square(&t)
	t.Square(&t)
	t.Square(&t)
	t.Square(&t)
	t.Square(&t)

	return v.Mul(&t, &z11)
}

// ErrNonInvertible is returned by InvertChecked when the input is zero.
var ErrNonInvertible = errors.New("field: element has no inverse (zero argument)")

// InvertChecked sets v = 1/z mod p and returns v, or fails with
// ErrNonInvertible if z == 0.
func (v *Element) InvertChecked(z *Element) (*Element, error) {
	if z.IsZero() == 1 {
		return nil, ErrNonInvertible
	}
	return v.Invert(z), nil
}

// InvertBatch inverts every non-zero element of in, writing the results to
// out (which may alias in), using Montgomery's trick: a single inversion
// plus O(n) multiplications. Zero elements are passed through untouched,
// and the corresponding output slot is left as the zero element; callers
// must never rely on batch-inverting a zero to produce a useful value.
func InvertBatch(out, in []Element) {
	if len(out) != len(in) {
		panic("field: InvertBatch length mismatch")
	}
	n := len(in)
	if n == 0 {
		return
	}

	scratch := make([]Element, n)
	acc := new(Element).One()
	for i := range in {
		scratch[i].Set(acc)
		if in[i].IsZero() == 0 {
			acc.Mul(acc, &in[i])
		}
	}

	accInv := new(Element).Invert(acc)

	for i := n - 1; i >= 0; i-- {
		if in[i].IsZero() == 1 {
			out[i].Zero()
			continue
		}
		var tmp Element
		tmp.Mul(accInv, &scratch[i])
		accInv.Mul(accInv, &in[i])
		out[i].Set(&tmp)
	}
}

// Pow2252_3 computes and returns (x^((p-5)/8), x^3), reusing the shared
// addition-chain prefix between the two. x^((p-5)/8) is the exponent used
// by RFC 8032's square-root recovery.
func (v *Element) Pow2252_3(x *Element) (pow *Element, cube *Element) {
	var z2, t0, t1, z9, z11 Element
	var z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, z2_250_0 Element

	z2.Square(x)
	t0.Square(&z2)
	t0.Square(&t0)
	z9.Mul(&t0, x)
	z11.Mul(&z9, &z2)
	t0.Square(&z11)
	z2_5_0.Mul(&t0, &z9)

	t0.Square(&z2_5_0)
	for i := 0; i < 4; i++ {
		t0.Square(&t0)
	}
	z2_10_0.Mul(&t0, &z2_5_0)

	t0.Square(&z2_10_0)
	for i := 0; i < 9; i++ {
		t0.Square(&t0)
	}
	z2_20_0.Mul(&t0, &z2_10_0)

	t0.Square(&z2_20_0)
	for i := 0; i < 19; i++ {
		t0.Square(&t0)
	}
	t0.Mul(&t0, &z2_20_0)

	t0.Square(&t0)
	for i := 0; i < 9; i++ {
		t0.Square(&t0)
	}
	z2_50_0.Mul(&t0, &z2_10_0)

	t0.Square(&z2_50_0)
	for i := 0; i < 49; i++ {
		t0.Square(&t0)
	}
	z2_100_0.Mul(&t0, &z2_50_0)

	t0.Square(&z2_100_0)
	for i := 0; i < 99; i++ {
		t0.Square(&t0)
	}
	t0.Mul(&t0, &z2_100_0)

	t0.Square(&t0)
	for i := 0; i < 49; i++ {
		t0.Square(&t0)
	}
	z2_250_0.Mul(&t0, &z2_50_0)

	t0.Square(&z2_250_0)
	t1.Square(&t0)
	if v == nil {
		v = new(Element)
	}
	v.Mul(&t1, x)

	cube = new(Element)
	cube.Mul(&z2, x)

	return v, cube
}

// SqrtM1 is a fixed square root of -1 mod p (2^((p-1)/4) mod p), used by
// UVRatio and by Ristretto255 decoding/encoding.
var SqrtM1 = feFromDecimal("19681161376707505956807079304988542015446066515923890162744021073123829784752")

func feFromDecimal(s string) *Element {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("field: invalid decimal constant " + s)
	}
	b := n.Bytes() // big-endian
	var buf [32]byte
	for i, bb := range b {
		buf[len(b)-1-i] = bb
	}
	return new(Element).SetBytes(buf[:])
}

// UVRatio implements the spec's uv_ratio(u, v): let
// x = u*v^3*(u*v^7)^((p-5)/8). If v*x^2 == u, x is a valid square root of
// u/v and is returned as-is. If v*x^2 == -u, u/v is still a square but the
// root needs rotation by SqrtM1. Otherwise u/v is not a square at all, and
// the (rotated) candidate is still returned so callers that must run in
// constant time never skip the final multiplication, but isValid is false.
// The returned root is always normalized to have an even canonical LSB.
func (v *Element) UVRatio(u, vv *Element) (value *Element, isValid bool) {
	var v3, v7, uv3, uv7, x Element
	v3.Square(vv)
	v3.Mul(&v3, vv)
	v7.Square(&v3)
	v7.Mul(&v7, vv)
	uv3.Mul(u, &v3)
	uv7.Mul(u, &v7)

	pow, _ := new(Element).Pow2252_3(&uv7)
	x.Mul(&uv3, pow)

	var vx2, check, negU, xTimesSqrtM1 Element
	vx2.Square(&x)
	check.Mul(vv, &vx2)
	negU.Negate(u)
	xTimesSqrtM1.Mul(&x, SqrtM1)

	correctSign := check.Equal(u)
	flippedSign := check.Equal(&negU)

	// Select the rotated root whenever the sign isn't already correct, so
	// the multiplication by SqrtM1 always happens regardless of branch.
	rotate := 1 - correctSign
	x.Select(&xTimesSqrtM1, &x, rotate)

	if v == nil {
		v = new(Element)
	}
	v.Absolute(&x)
	return v, correctSign == 1 || flippedSign == 1
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *Element) Bytes(out []byte) []byte {
	t := *v
	t.reduce()
	if len(out) != 32 {
		panic("field: wrong buffer size for Bytes")
	}
	for i := range out {
		out[i] = 0
	}
	var buf [8]byte
	limbs := [5]uint64{t.l0, t.l1, t.l2, t.l3, t.l4}
	for i, l := range limbs {
		bitsOffset := i * 51
		binary.LittleEndian.PutUint64(buf[:], l<<uint(bitsOffset%8))
		for j, bb := range buf {
			off := bitsOffset/8 + j
			if off >= len(out) {
				break
			}
			out[off] |= bb
		}
	}
	return out
}

// SetBytes sets v to x, a 32-byte little-endian encoding. Consistent with
// RFC 7748/8032, the top bit of the last byte is ignored and values in
// [2^255-19, 2^255) are accepted non-canonically (the caller is
// responsible for canonical-form checks where the protocol demands them).
func (v *Element) SetBytes(x []byte) *Element {
	if len(x) != 32 {
		panic("field: invalid input size for SetBytes")
	}

	v.l0 = binary.LittleEndian.Uint64(x[0:8]) & maskLow51Bits
	v.l1 = (binary.LittleEndian.Uint64(x[6:14]) >> 3) & maskLow51Bits
	v.l2 = (binary.LittleEndian.Uint64(x[12:20]) >> 6) & maskLow51Bits
	v.l3 = (binary.LittleEndian.Uint64(x[19:27]) >> 1) & maskLow51Bits
	v.l4 = (binary.LittleEndian.Uint64(x[24:32]) >> 12) & maskLow51Bits

	return v
}
