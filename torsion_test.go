// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve25519

import (
	"testing"

	"github.com/spider-gazelle/ed25519/internal/edwards25519"
)

// TestEightTorsionEntryZeroIsIdentity is spec.md §8 scenario 4: the
// 8-torsion table's offset-0 entry is the identity element, encoded as
// 0x01 followed by 31 zero bytes.
func TestEightTorsionEntryZeroIsIdentity(t *testing.T) {
	want := [32]byte{0x01}
	if EightTorsion[0] != want {
		t.Fatalf("EightTorsion[0] = %x, want %x", EightTorsion[0], want)
	}

	points := EightTorsionPoints()
	var identity edwards25519.ProjP3
	identity.Zero()
	if points[0].Equal(&identity) != 1 {
		t.Fatal("EightTorsionPoints()[0] does not decode to the identity")
	}
}

// TestEightTorsionPointsHaveOrderDividingEight confirms every table
// entry really is 8-torsion: doubling it three times (an 8x scalar
// multiple) must land back on the identity.
func TestEightTorsionPointsHaveOrderDividingEight(t *testing.T) {
	points := EightTorsionPoints()
	var identity edwards25519.ProjP3
	identity.Zero()

	for i, p := range points {
		acc := p
		for d := 0; d < 3; d++ {
			acc.Double(&acc)
		}
		if acc.Equal(&identity) != 1 {
			t.Fatalf("entry %d: 8*P != identity", i)
		}
	}
}

// TestIsSmallOrderAcceptsTableEntriesAndRejectsGenerator exercises
// IsSmallOrder against the known 8-torsion table and against a point
// that is not small-order (the standard generator, order L).
func TestIsSmallOrderAcceptsTableEntriesAndRejectsGenerator(t *testing.T) {
	for i, enc := range EightTorsion {
		if !IsSmallOrder(enc[:]) {
			t.Fatalf("entry %d: IsSmallOrder = false, want true", i)
		}
	}

	if IsSmallOrder(edwards25519.Base.Bytes()) {
		t.Fatal("IsSmallOrder accepted the standard generator")
	}
	if IsSmallOrder(make([]byte, 31)) {
		t.Fatal("IsSmallOrder accepted a wrong-length input")
	}
}
