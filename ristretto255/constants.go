// Copyright (c) 2019 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ristretto255

import (
	"math/big"

	"github.com/spider-gazelle/ed25519/internal/field"
)

func feFromDecimal(s string) *field.Element {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("ristretto255: invalid decimal constant " + s)
	}
	b := n.Bytes() // big-endian
	var buf [32]byte
	for i, bb := range b {
		buf[len(b)-1-i] = bb
	}
	return new(field.Element).SetBytes(buf[:])
}

// invSqrtAMinusD = 1/sqrt(a-d), a = -1. Used by Point.Encode.
var invSqrtAMinusD = feFromDecimal("54469307008909316920995813868745141605393597292927456921205312896311721017578")

// The draft's single-field MAP formula additionally names SQRT_AD_MINUS_ONE,
// ONE_MINUS_D_SQ and D_MINUS_ONE_SQ; this package computes its map a
// different way (see the comment on mapToPoint in elligator.go) and does not
// consume these three.
