// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ed25519

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/spider-gazelle/ed25519/internal/scalar"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid test hex %q: %v", s, err)
	}
	return b
}

// TestRFC8032Vector1 is RFC 8032 section 7.1's first Ed25519 test
// vector (the empty message).
func TestRFC8032Vector1(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	wantPub := mustHex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	wantSig := mustHex(t, "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b")

	priv := NewKeyFromSeed(seed)
	pub := priv.Public().(PublicKey)
	if !bytes.Equal(pub, wantPub) {
		t.Fatalf("public key = %x, want %x", []byte(pub), wantPub)
	}

	sig := Sign(priv, nil)
	if !bytes.Equal(sig, wantSig) {
		t.Fatalf("signature = %x, want %x", sig, wantSig)
	}
	if !Verify(pub, nil, sig) {
		t.Fatal("Verify rejected the RFC 8032 test vector 1 signature")
	}
}

// TestRFC8032Vector2 is RFC 8032 section 7.1's second Ed25519 test
// vector (a single-byte message, 0x72).
func TestRFC8032Vector2(t *testing.T) {
	seed := mustHex(t, "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb")
	wantPub := mustHex(t, "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c")
	msg := mustHex(t, "72")
	wantSig := mustHex(t, "92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da085ac1e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00")

	priv := NewKeyFromSeed(seed)
	pub := priv.Public().(PublicKey)
	if !bytes.Equal(pub, wantPub) {
		t.Fatalf("public key = %x, want %x", []byte(pub), wantPub)
	}

	sig := Sign(priv, msg)
	if !bytes.Equal(sig, wantSig) {
		t.Fatalf("signature = %x, want %x", sig, wantSig)
	}
	if !Verify(pub, msg, sig) {
		t.Fatal("Verify rejected the RFC 8032 test vector 2 signature")
	}
}

// TestVerifyRejectsSEqualToL is spec.md §8 scenario 3: a signature
// whose S component equals L itself (out of range; valid S is < L) must
// fail verification as InvalidSignature, not be silently reduced.
func TestVerifyRejectsSEqualToL(t *testing.T) {
	pub, priv, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("message")
	sig := Sign(priv, msg)

	be := scalar.L.Bytes()
	var lLE [32]byte
	for i, b := range be {
		lLE[len(be)-1-i] = b
	}
	tampered := append([]byte(nil), sig...)
	copy(tampered[32:], lLE[:])

	if Verify(pub, msg, tampered) {
		t.Fatal("Verify accepted a signature with S == L")
	}
	if err := VerifyWithError(pub, msg, tampered); err == nil {
		t.Fatal("VerifyWithError accepted a signature with S == L")
	}
}

func TestGenerateSignVerifyRoundTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		pub, priv, err := GenerateKey(nil)
		if err != nil {
			t.Fatalf("GenerateKey: %v", err)
		}
		msg := make([]byte, 1+i*17)
		if _, err := rand.Read(msg); err != nil {
			t.Fatal(err)
		}

		sig := Sign(priv, msg)
		if !Verify(pub, msg, sig) {
			t.Fatalf("round %d: Verify rejected a freshly produced signature", i)
		}
	}
}

func TestNewKeyFromSeedMatchesGenerateKey(t *testing.T) {
	pub, priv, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	derived := NewKeyFromSeed(priv.Seed())
	if !priv.Equal(derived) {
		t.Fatal("NewKeyFromSeed(priv.Seed()) != priv")
	}
	if !pub.Equal(derived.Public().(PublicKey)) {
		t.Fatal("NewKeyFromSeed's derived public key does not match")
	}
}

func TestNewKeyFromSeedAcceptsExpandedKey(t *testing.T) {
	// spec.md section 6 allows a 64-byte seed||public-key buffer as input,
	// as other libraries emit it; only the first 32 bytes matter.
	_, priv, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	derived := NewKeyFromSeed(priv) // priv is 64 bytes here
	if !priv.Equal(derived) {
		t.Fatal("NewKeyFromSeed on a 64-byte buffer did not reproduce the key")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	pub, priv, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("the quick brown fox")
	sig := Sign(priv, msg)

	tampered := append([]byte(nil), msg...)
	tampered[0] ^= 0x01
	if Verify(pub, tampered, sig) {
		t.Fatal("Verify accepted a signature over a tampered message")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	pub, priv, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("the quick brown fox")
	sig := Sign(priv, msg)
	sig[0] ^= 0x01
	if Verify(pub, msg, sig) {
		t.Fatal("Verify accepted a tampered signature")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	pub1, _, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	_, priv2, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("message")
	sig := Sign(priv2, msg)
	if Verify(pub1, msg, sig) {
		t.Fatal("Verify accepted a signature made with a different key")
	}
}

func TestVerifyRejectsMalformedInput(t *testing.T) {
	pub, priv, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("message")
	sig := Sign(priv, msg)

	if Verify(pub[:31], msg, sig) {
		t.Fatal("Verify accepted a truncated public key")
	}
	if Verify(pub, msg, sig[:63]) {
		t.Fatal("Verify accepted a truncated signature")
	}

	bigS := append([]byte(nil), sig...)
	bigS[63] |= 0xE0
	if Verify(pub, msg, bigS) {
		t.Fatal("Verify accepted a signature with S's top bits set")
	}
}

func TestVerifyWithErrorDistinguishesFailureKinds(t *testing.T) {
	pub, priv, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("message")
	sig := Sign(priv, msg)

	if err := VerifyWithError(pub[:31], msg, sig); err == nil {
		t.Fatal("VerifyWithError accepted a truncated public key")
	}

	tampered := append([]byte(nil), sig...)
	tampered[0] ^= 1
	if err := VerifyWithError(pub, msg, tampered); err == nil {
		t.Fatal("VerifyWithError accepted a tampered signature")
	}

	if err := VerifyWithError(pub, msg, sig); err != nil {
		t.Fatalf("VerifyWithError rejected a valid signature: %v", err)
	}
}

func TestPrivateKeyEqual(t *testing.T) {
	_, priv1, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	priv2 := make(PrivateKey, len(priv1))
	copy(priv2, priv1)
	if !priv1.Equal(priv2) {
		t.Fatal("identical private keys are not Equal")
	}
	priv2[0] ^= 1
	if priv1.Equal(priv2) {
		t.Fatal("differing private keys compare Equal")
	}
}

func TestSignerInterface(t *testing.T) {
	_, priv, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("signed via crypto.Signer")
	sig, err := priv.Sign(rand.Reader, msg, crypto.Hash(0))
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(priv.Public().(PublicKey), msg, sig) {
		t.Fatal("signature produced via crypto.Signer did not verify")
	}
}

func TestSignerRejectsNonZeroHash(t *testing.T) {
	_, priv, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Sign did not panic on a non-zero SignerOpts.HashFunc()")
		}
	}()
	priv.Sign(rand.Reader, []byte("message"), crypto.SHA512)
}
