// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edwards25519

import (
	"sync"

	"github.com/spider-gazelle/ed25519/internal/field"
	"github.com/spider-gazelle/ed25519/internal/scalar"
)

// DefaultWindow is the wNAF window width used when callers don't request
// a specific one. w must divide evenly into the digit recoding used by
// scalar.NAF; 4 keeps the precomputed table at 4 points (2^(w-2)) while
// still cutting the number of additions roughly in half versus binary
// double-and-add.
const DefaultWindow = 4

var (
	ErrInvalidWindow = newWindowError()
)

func newWindowError() error {
	return &windowError{}
}

type windowError struct{}

func (*windowError) Error() string { return "edwards25519: window width must be one of {2, 4, 8, 16}" }

// validWindow reports whether w is one of spec.md §4.4's named window
// widths, each of which divides 256 evenly.
func validWindow(w uint) bool {
	switch w {
	case 2, 4, 8, 16:
		return true
	default:
		return false
	}
}

// precompTable holds the odd multiples 1*P, 3*P, 5*P, ..., needed by wNAF
// scalar multiplication against a fixed base point P, in AffineCached form
// so that mixed addition avoids a field inversion per step.
type precompTable struct {
	entries []AffineCached // entries[i] = (2i+1)*P
}

func buildPrecompTable(base *ProjP3, w uint) *precompTable {
	n := 1 << (w - 2) // number of odd multiples 1, 3, 5, ..., 2n-1
	if n < 1 {
		n = 1
	}
	entries := make([]AffineCached, n)

	var cur ProjP3
	cur.Set(base)
	entries[0].FromP3(&cur)

	var double ProjP3
	double.Double(base)
	var doubleCached ProjCached
	doubleCached.FromP3(&double)

	for i := 1; i < n; i++ {
		var sum ProjP1xP1
		sum.Add(&cur, &doubleCached)
		cur.FromP1xP1(&sum)
		entries[i].FromP3(&cur)
	}

	return &precompTable{entries: entries}
}

// tableCache memoizes precompTables keyed by (base point encoding, window
// width), built lazily and shared across goroutines via sync.Map plus a
// per-key singleflight-style mutex so concurrent first-use callers building
// the same table block on one builder instead of duplicating the work.
type tableCache struct {
	tables sync.Map // map[cacheKey]*cacheEntry
}

type cacheKey struct {
	point [32]byte
	w     uint
}

type cacheEntry struct {
	once  sync.Once
	table *precompTable
}

var globalTableCache tableCache

func (c *tableCache) get(base *ProjP3, w uint) *precompTable {
	key := cacheKey{w: w}
	copy(key.point[:], base.Bytes())

	v, _ := c.tables.LoadOrStore(key, &cacheEntry{})
	entry := v.(*cacheEntry)
	entry.once.Do(func() {
		entry.table = buildPrecompTable(base, w)
	})
	return entry.table
}

// basePrecomp is the cache entry for the standard generator, built once
// lazily on first use rather than at package init, so programs that never
// multiply by the base point never pay the precomputation cost.
var basePrecompOnce sync.Once
var basePrecomp *precompTable

func baseTable() *precompTable {
	basePrecompOnce.Do(func() {
		basePrecomp = buildPrecompTable(Base, DefaultWindow)
	})
	return basePrecomp
}

// ScalarMult sets v = s*base using windowed NAF recoding. Every iteration
// of the main loop doubles both accumulators and performs exactly one
// addition-or-subtraction, regardless of whether the recoded digit at that
// position was zero: a zero digit's addition lands in the parallel decoy
// accumulator F (spec.md §4.4/§9) rather than being skipped, and P and F
// are batch-normalized together at the end. It is not fully constant-time
// in s: the loop runs once per NAF digit, so its length follows the bit
// length of s; whether a step goes to P or F, and whether it adds or
// subtracts, is a branch on the digit; and scalar.NAF recodes s with
// math/big. See multiplyWithTable for the mechanics.
func ScalarMult(v *ProjP3, s *scalar.Scalar, base *ProjP3) *ProjP3 {
	return scalarMultWindow(v, s, base, DefaultWindow)
}

// ScalarBaseMult sets v = s*Base using the shared, lazily-built base-point
// precomputation table.
func ScalarBaseMult(v *ProjP3, s *scalar.Scalar) *ProjP3 {
	table := baseTable()
	return multiplyWithTable(v, s, table, DefaultWindow)
}

func scalarMultWindow(v *ProjP3, s *scalar.Scalar, base *ProjP3, w uint) *ProjP3 {
	table := globalTableCache.get(base, w)
	return multiplyWithTable(v, s, table, w)
}

// ScalarMultWithWindow is ScalarMult, but lets the caller tune the wNAF
// window width instead of taking DefaultWindow -- trading precomputation
// table size (2^(w-2) points, built once per (base, w) pair and cached)
// against the number of additions in the main loop. It returns
// ErrInvalidWindow if w is not one of {2, 4, 8, 16}.
func ScalarMultWithWindow(v *ProjP3, s *scalar.Scalar, base *ProjP3, w uint) (*ProjP3, error) {
	if !validWindow(w) {
		return nil, ErrInvalidWindow
	}
	return scalarMultWindow(v, s, base, w), nil
}

// multiplyWithTable runs the wNAF main loop against table, maintaining the
// true accumulator P alongside a decoy accumulator F per spec.md §4.4/§9:
// every zero digit absorbs a dummy add-or-subtract of the table's
// offset-0 entry into F (sign alternating by position, mirroring how a
// real nonzero digit's sign varies) instead of being skipped outright, so
// the number of group operations performed is independent of the
// scalar's NAF digit pattern. P and F are then batch-normalized together
// so the final conversion does the same work regardless of which digits
// were actually zero; F itself is discarded.
func multiplyWithTable(v *ProjP3, s *scalar.Scalar, table *precompTable, w uint) *ProjP3 {
	naf := scalar.NAF(s, w)
	decoyEntry := lookupAffine(table, 0) // the offset-0 entry, 1*base

	result := new(ProjP3).Zero()
	decoy := new(ProjP3).Zero()
	for i := len(naf) - 1; i >= 0; i-- {
		result.Double(result)
		decoy.Double(decoy)

		d := naf[i]
		if d == 0 {
			var tmp ProjP1xP1
			if i%2 == 0 {
				tmp.AddAffine(decoy, decoyEntry)
			} else {
				tmp.SubAffine(decoy, decoyEntry)
			}
			decoy.FromP1xP1(&tmp)
			continue
		}

		idx := d
		neg := false
		if idx < 0 {
			idx = -idx
			neg = true
		}
		entry := lookupAffine(table, int((idx-1)/2))

		if neg {
			var tmp ProjP1xP1
			tmp.SubAffine(result, entry)
			result.FromP1xP1(&tmp)
		} else {
			var tmp ProjP1xP1
			tmp.AddAffine(result, entry)
			result.FromP1xP1(&tmp)
		}
	}

	normalizeBatch(result, decoy)
	return v.Set(result)
}

// normalizeBatch converts p and f to Z=1 form via a single Montgomery's-
// trick batch inversion over both Z coordinates together, so the cost of
// the final affine conversion does not depend on whether f ever received
// a decoy addition.
func normalizeBatch(p, f *ProjP3) {
	zs := [2]field.Element{p.Z, f.Z}
	var invs [2]field.Element
	field.InvertBatch(invs[:], zs[:])

	p.X.Mul(&p.X, &invs[0])
	p.Y.Mul(&p.Y, &invs[0])
	p.T.Mul(&p.X, &p.Y)
	p.Z.One()

	f.X.Mul(&f.X, &invs[1])
	f.Y.Mul(&f.Y, &invs[1])
	f.T.Mul(&f.X, &f.Y)
	f.Z.One()
}

// lookupAffine constant-time-selects table.entries[idx]: it scans every
// entry and masks in the one whose position matches idx, so which digit
// the scalar carried at this step is not observable from the memory
// access pattern. wNAF digits are bounded by the window width used to
// build the table; an out-of-range idx indicates a caller bug (window
// mismatch between NAF and table), never attacker-controlled input.
func lookupAffine(table *precompTable, idx int) *AffineCached {
	var out AffineCached
	out.Zero()
	for i, e := range table.entries {
		cond := 0
		if i == idx {
			cond = 1
		}
		out.YplusX.Select(&e.YplusX, &out.YplusX, cond)
		out.YminusX.Select(&e.YminusX, &out.YminusX, cond)
		out.T2d.Select(&e.T2d, &out.T2d, cond)
	}
	return &out
}

// MultiplyUnsafe sets v = s*base using plain variable-time double-and-add.
// It must only ever be called on public data (verification equations,
// batch checks) -- never on a secret scalar or a secret base point --
// since its running time and memory access pattern both depend on s.
//
// As a documented shortcut (see SPEC_FULL.md open questions): when base
// is nil, v is set to s*Base using the shared base-point table instead of
// recomputing a fresh double-and-add ladder, since the base point itself
// is never secret and the table is already available.
func MultiplyUnsafe(v *ProjP3, s *scalar.Scalar, base *ProjP3) *ProjP3 {
	if base == nil {
		return ScalarBaseMult(v, s)
	}

	bits := s.BigInt().Bytes() // big-endian
	result := new(ProjP3).Zero()
	var baseCached ProjCached
	baseCached.FromP3(base)

	for _, byt := range bits {
		for bit := 7; bit >= 0; bit-- {
			result.Double(result)
			if (byt>>uint(bit))&1 == 1 {
				var tmp ProjP1xP1
				tmp.Add(result, &baseCached)
				result.FromP1xP1(&tmp)
			}
		}
	}

	return v.Set(result)
}
