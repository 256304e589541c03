// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalar

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func randomScalar(t *testing.T) *Scalar {
	t.Helper()
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		t.Fatal(err)
	}
	return New().SetUniformBytes(buf[:])
}

func TestAddMatchesBig(t *testing.T) {
	for i := 0; i < 200; i++ {
		a, b := randomScalar(t), randomScalar(t)

		var got Scalar
		got.Add(a, b)

		want := new(big.Int).Add(a.BigInt(), b.BigInt())
		want.Mod(want, L)

		if got.BigInt().Cmp(want) != 0 {
			t.Fatalf("Add mismatch: got %v want %v", got.BigInt(), want)
		}
	}
}

func TestMultiplyMatchesBig(t *testing.T) {
	for i := 0; i < 200; i++ {
		a, b := randomScalar(t), randomScalar(t)

		var got Scalar
		got.Multiply(a, b)

		want := new(big.Int).Mul(a.BigInt(), b.BigInt())
		want.Mod(want, L)

		if got.BigInt().Cmp(want) != 0 {
			t.Fatalf("Multiply mismatch: got %v want %v", got.BigInt(), want)
		}
	}
}

func TestMultiplyAddMatchesBig(t *testing.T) {
	for i := 0; i < 200; i++ {
		a, b, c := randomScalar(t), randomScalar(t), randomScalar(t)

		var got Scalar
		got.MultiplyAdd(a, b, c)

		want := new(big.Int).Mul(a.BigInt(), b.BigInt())
		want.Add(want, c.BigInt())
		want.Mod(want, L)

		if got.BigInt().Cmp(want) != 0 {
			t.Fatalf("MultiplyAdd mismatch: got %v want %v", got.BigInt(), want)
		}
	}
}

func TestNegateRoundTrip(t *testing.T) {
	for i := 0; i < 200; i++ {
		a := randomScalar(t)

		var neg, back Scalar
		neg.Negate(a)
		back.Negate(&neg)

		if !back.Equal(a) {
			t.Fatalf("-(-a) != a")
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	for i := 0; i < 200; i++ {
		a := randomScalar(t)
		b, err := New().SetCanonicalBytes(a.Bytes())
		if err != nil {
			t.Fatalf("SetCanonicalBytes rejected a canonical encoding: %v", err)
		}
		if !a.Equal(b) {
			t.Fatalf("round trip through Bytes/SetCanonicalBytes changed the value")
		}
	}
}

func TestSetCanonicalBytesRejectsOutOfRange(t *testing.T) {
	// L itself, little-endian, is out of range: valid scalars are < L.
	be := L.Bytes()
	buf := make([]byte, 32)
	for i, b := range be {
		buf[len(be)-1-i] = b
	}
	if _, err := New().SetCanonicalBytes(buf); err != ErrOutOfRange {
		t.Fatalf("SetCanonicalBytes(L) = %v, want ErrOutOfRange", err)
	}
}

func TestIsZero(t *testing.T) {
	if !New().IsZero() {
		t.Fatal("zero-value Scalar is not IsZero")
	}
	a := randomScalar(t)
	var sum Scalar
	sum.Add(a, sum.Negate(a))
	if !sum.IsZero() {
		t.Fatal("a + (-a) is not IsZero")
	}
}

func TestNAFReconstructsScalar(t *testing.T) {
	for _, w := range []uint{2, 4, 8, 16} {
		for i := 0; i < 50; i++ {
			s := randomScalar(t)
			digits := NAF(s, w)

			got := new(big.Int)
			pow := new(big.Int).SetInt64(1)
			for _, d := range digits {
				if d != 0 {
					term := new(big.Int).Mul(big.NewInt(int64(d)), pow)
					got.Add(got, term)
				}
				pow.Lsh(pow, 1)
			}
			got.Mod(got, L)

			if got.Cmp(s.BigInt()) != 0 {
				t.Fatalf("w=%d: NAF digits don't reconstruct the scalar: got %v want %v", w, got, s.BigInt())
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	max := big.NewInt(10)
	if err := Normalize(big.NewInt(5), max, true); err != nil {
		t.Fatalf("Normalize(5, 10, strict) = %v, want nil", err)
	}
	if err := Normalize(big.NewInt(0), max, true); err != ErrOutOfRange {
		t.Fatalf("Normalize(0, 10, strict) = %v, want ErrOutOfRange", err)
	}
	if err := Normalize(big.NewInt(0), max, false); err != nil {
		t.Fatalf("Normalize(0, 10, non-strict) = %v, want nil", err)
	}
	if err := Normalize(big.NewInt(10), max, false); err != ErrOutOfRange {
		t.Fatalf("Normalize(10, 10, non-strict) = %v, want ErrOutOfRange", err)
	}
}
