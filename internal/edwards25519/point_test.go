// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edwards25519

import (
	"bytes"
	"testing"

	"github.com/spider-gazelle/ed25519/internal/field"
)

func TestBaseIsOnCurve(t *testing.T) {
	if !IsOnCurve(&Base.X, &Base.Y) {
		t.Fatal("the base point does not satisfy the curve equation")
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	var id ProjP3
	id.Zero()
	enc := id.Bytes()
	want := make([]byte, 32)
	want[0] = 1
	if !bytes.Equal(enc, want) {
		t.Fatalf("identity encoding = %x, want %x", enc, want)
	}
	got, err := new(ProjP3).SetBytes(enc, true)
	if err != nil {
		t.Fatalf("SetBytes(identity): %v", err)
	}
	if got.Equal(&id) != 1 {
		t.Fatal("decoded identity != identity")
	}
}

func TestAddDoubleConsistency(t *testing.T) {
	var doubled, added ProjP3
	doubled.Double(Base)
	added.Add(Base, Base)
	if doubled.Equal(&added) != 1 {
		t.Fatal("Double(P) != Add(P, P)")
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	var sum, diff ProjP3
	sum.Add(Base, Base)
	diff.Sub(&sum, Base)
	if diff.Equal(Base) != 1 {
		t.Fatal("(P+P)-P != P")
	}
}

func TestNegCancels(t *testing.T) {
	var neg, sum ProjP3
	neg.Neg(Base)
	sum.Add(Base, &neg)

	var id ProjP3
	id.Zero()
	if sum.Equal(&id) != 1 {
		t.Fatal("P + (-P) != identity")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := Base
	for i := 0; i < 20; i++ {
		enc := p.Bytes()
		got, err := new(ProjP3).SetBytes(enc, true)
		if err != nil {
			t.Fatalf("round %d: SetBytes: %v", i, err)
		}
		if got.Equal(p) != 1 {
			t.Fatalf("round %d: decoded point != original", i)
		}
		var next ProjP3
		next.Add(p, Base)
		p = &next
	}
}

func TestSetBytesRejectsInvalidLength(t *testing.T) {
	if _, err := new(ProjP3).SetBytes(make([]byte, 31), true); err == nil {
		t.Fatal("SetBytes accepted a 31-byte input")
	}
	if _, err := new(ProjP3).SetBytes(make([]byte, 33), true); err == nil {
		t.Fatal("SetBytes accepted a 33-byte input")
	}
}

func TestSetBytesRejectsNonCanonicalXZero(t *testing.T) {
	// x == 0 with the sign bit set is explicitly invalid per RFC 8032
	// 5.1.3: -0 has no meaning, and the only valid y with x == 0 encodes
	// with a clear sign bit.
	var id ProjP3
	id.Zero()
	enc := id.Bytes()
	enc[31] |= 0x80
	if _, err := new(ProjP3).SetBytes(enc, true); err == nil {
		t.Fatal("SetBytes accepted x == 0 with the sign bit set")
	}
}

func TestEqualIsProjectiveInvariant(t *testing.T) {
	// Scale (X, Y, Z, T) by a nonzero constant; Equal must still hold.
	var scaled ProjP3
	var k field.Element
	k.SetBytes(bytes32(7))
	scaled.X.Mul(&Base.X, &k)
	scaled.Y.Mul(&Base.Y, &k)
	scaled.Z.Mul(&Base.Z, &k)
	scaled.T.Mul(&Base.T, &k)

	if scaled.Equal(Base) != 1 {
		t.Fatal("Equal is not invariant under projective rescaling")
	}
}

func bytes32(v uint64) []byte {
	var b [32]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b[:]
}
