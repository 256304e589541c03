// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve25519

import (
	"sync"

	"github.com/spider-gazelle/ed25519/internal/edwards25519"
)

// EightTorsion holds the canonical 32-byte compressed encodings of the
// eight points of the curve's 8-torsion subgroup (the points P with
// 8*P == identity), in the fixed order {O, g, 2g, 3g, ..., 7g} for a
// representative generator g of order 8. Entry 0 is always the identity.
//
// These are exposed for small-subgroup checks (rejecting or canonicalizing
// low-order public keys) and for test vectors; they are not secret and
// callers may read them directly without synchronization.
var EightTorsion = [8][32]byte{
	{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0x26, 0xe8, 0x95, 0x8f, 0xc2, 0xb2, 0x27, 0xb0, 0x45, 0xc3, 0xf4, 0x89, 0xf2, 0xef, 0x98, 0xf0,
		0xd5, 0xdf, 0xac, 0x05, 0xd3, 0xc6, 0x33, 0x39, 0xb1, 0x38, 0x02, 0x88, 0x6d, 0x53, 0xfc, 0x05},
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0xc7, 0x17, 0x6a, 0x70, 0x3d, 0x4d, 0xd8, 0x4f, 0xba, 0x3c, 0x0b, 0x76, 0x0d, 0x10, 0x67, 0x0f,
		0x2a, 0x20, 0x53, 0xfa, 0x2c, 0x39, 0xcc, 0xc6, 0x4e, 0xc7, 0xfd, 0x77, 0x92, 0xac, 0x03, 0x7a},
	{0xec, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f},
	{0xc7, 0x17, 0x6a, 0x70, 0x3d, 0x4d, 0xd8, 0x4f, 0xba, 0x3c, 0x0b, 0x76, 0x0d, 0x10, 0x67, 0x0f,
		0x2a, 0x20, 0x53, 0xfa, 0x2c, 0x39, 0xcc, 0xc6, 0x4e, 0xc7, 0xfd, 0x77, 0x92, 0xac, 0x03, 0xfa},
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80},
	{0x26, 0xe8, 0x95, 0x8f, 0xc2, 0xb2, 0x27, 0xb0, 0x45, 0xc3, 0xf4, 0x89, 0xf2, 0xef, 0x98, 0xf0,
		0xd5, 0xdf, 0xac, 0x05, 0xd3, 0xc6, 0x33, 0x39, 0xb1, 0x38, 0x02, 0x88, 0x6d, 0x53, 0xfc, 0x85},
}

var (
	eightTorsionPointsOnce sync.Once
	eightTorsionPoints     [8]edwards25519.ProjP3
)

// EightTorsionPoints decodes EightTorsion into group elements, memoized
// on first use.
func EightTorsionPoints() [8]edwards25519.ProjP3 {
	eightTorsionPointsOnce.Do(func() {
		for i, enc := range EightTorsion {
			p, err := new(edwards25519.ProjP3).SetBytes(enc[:], false)
			if err != nil {
				panic("curve25519: built-in 8-torsion table entry failed to decode: " + err.Error())
			}
			eightTorsionPoints[i] = *p
		}
	})
	return eightTorsionPoints
}

// IsSmallOrder reports whether the compressed point encoding enc is one
// of the eight points of order dividing 8 -- the standard "small-order
// public key" rejection check used by some Ed25519 verification policies
// as a defense-in-depth measure beyond ZIP215's cofactored equation.
// It compares enc byte-for-byte against EightTorsion, so only those
// canonical encodings are recognized; a non-canonical encoding of a
// small-order point (one with y >= p) reports false.
func IsSmallOrder(enc []byte) bool {
	if len(enc) != 32 {
		return false
	}
	var buf [32]byte
	copy(buf[:], enc)
	for _, t := range EightTorsion {
		if buf == t {
			return true
		}
	}
	return false
}
