// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edwards25519

import (
	"math/big"

	"github.com/spider-gazelle/ed25519/internal/field"
)

func feFromDecimal(s string) *field.Element {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("edwards25519: invalid decimal constant " + s)
	}
	b := n.Bytes() // big-endian
	var buf [32]byte
	for i, bb := range b {
		buf[len(b)-1-i] = bb
	}
	return new(field.Element).SetBytes(buf[:])
}

// D is the twisted Edwards curve parameter d = -121665/121666 mod p.
var D = feFromDecimal("37095705934669439343138083508754565189542113879843219016388785533085940283555")

var twoD = new(field.Element).Add(D, D)

// SqrtM1 re-exports the field package's fixed square root of -1, used by
// point decoding and by Ristretto255.
var SqrtM1 = field.SqrtM1

// basepoint coordinates, per RFC 8032.
var baseX = feFromDecimal("15112221349535400772501151409588531511454012693041857206046113283949847762202")
var baseY = feFromDecimal("46316835694926478169428394003475163141307993866256225615783033603165251855960")

// Base is the standard Ed25519 base point B, in extended coordinates.
var Base = func() *ProjP3 {
	p := new(ProjP3)
	p.X.Set(baseX)
	p.Y.Set(baseY)
	p.Z.One()
	p.T.Mul(baseX, baseY)
	return p
}()
