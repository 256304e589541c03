// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve25519 collects the shared error type and the 8-torsion
// point table used by the sibling ed25519, x25519 and ristretto255
// packages. The field and group engines live under internal/ since they
// are an implementation detail of those three wire-level packages, not a
// public API in their own right.
package curve25519

import "fmt"

// Kind distinguishes the externally-relevant failure modes a caller of
// any package in this module may need to branch on.
type Kind int

const (
	_ Kind = iota
	// InvalidLength means an input byte slice was not the length the
	// operation requires (e.g. a 31-byte public key).
	InvalidLength
	// InvalidPoint means a compressed point encoding does not decode to
	// a point on the curve (for Ristretto255: the curve-equation recovery
	// fails, the recovered t is negative, or y is zero).
	InvalidPoint
	// InvalidSignature means signature verification failed.
	InvalidSignature
	// InvalidEncoding means a byte string failed a required canonical-
	// form check (non-reduced scalar, non-canonical field element, a
	// set top bit where one isn't permitted).
	InvalidEncoding
	// InvalidSharedSecret means an X25519 Diffie-Hellman computation
	// produced the all-zero output, per RFC 7748 section 6.1.
	InvalidSharedSecret
	// ScalarOutOfRange means a decoded scalar was not in [0, L).
	ScalarOutOfRange
	// InvalidWindow means a caller requested a wNAF window width outside
	// the supported range.
	InvalidWindow
	// NonInvertible means a field element inversion was attempted on
	// zero where the caller required a nonzero result.
	NonInvertible
)

func (k Kind) String() string {
	switch k {
	case InvalidLength:
		return "invalid length"
	case InvalidPoint:
		return "invalid point"
	case InvalidSignature:
		return "invalid signature"
	case InvalidEncoding:
		return "invalid encoding"
	case InvalidSharedSecret:
		return "invalid shared secret"
	case ScalarOutOfRange:
		return "scalar out of range"
	case InvalidWindow:
		return "invalid window"
	case NonInvertible:
		return "non-invertible element"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type every package in this module returns
// for its externally distinguishable failure modes. Callers branch on
// Kind rather than string-matching Error().
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "ed25519.Verify"
	Err  error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error for op/kind, optionally wrapping cause.
func NewError(op string, kind Kind, cause error) *Error {
	return &Error{Op: op, Kind: kind, Err: cause}
}
