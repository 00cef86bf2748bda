package fenc

import (
	"encoding/hex"
	"testing"
)

func testK6(t *testing.T) [SubkeySize]byte {
	t.Helper()
	var k [SubkeySize]byte
	copy(k[:], []byte("search-term-key!"))
	return k
}

func TestBuildBlindedTermsWellFormed(t *testing.T) {
	k6 := testK6(t)
	terms, err := BuildBlindedTerms([]byte("The quick brown fox jumps"), k6)
	if err != nil {
		t.Fatalf("BuildBlindedTerms: %v", err)
	}

	seen := make(map[string]struct{})
	for _, term := range terms {
		if len(term) != 64 {
			t.Errorf("term %q has length %d, want 64", term, len(term))
		}
		if _, err := hex.DecodeString(term); err != nil {
			t.Errorf("term %q is not valid hex: %v", term, err)
		}
		if term != stringsLower(term) {
			t.Errorf("term %q is not lowercase", term)
		}
		if _, dup := seen[term]; dup {
			t.Errorf("term %q appears more than once", term)
		}
		seen[term] = struct{}{}
	}
}

func stringsLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func TestBuildBlindedTermsInvalidUTF8(t *testing.T) {
	k6 := testK6(t)
	invalid := []byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa, 0xf9, 0xf8, 0xf7, 0xf6}
	terms, err := BuildBlindedTerms(invalid, k6)
	if !IsEncodingError(err) {
		t.Errorf("BuildBlindedTerms for invalid UTF-8 err = %v, want EncodingError", err)
	}
	if len(terms) != 0 {
		t.Errorf("BuildBlindedTerms for invalid UTF-8 = %v, want empty", terms)
	}
}

func TestSearchSoundness(t *testing.T) {
	k6 := testK6(t)
	terms, err := BuildBlindedTerms([]byte("The quick brown fox jumps"), k6)
	if err != nil {
		t.Fatalf("BuildBlindedTerms: %v", err)
	}

	mustMatch := func(query string) {
		t.Helper()
		blinded := BlindQuery(query, k6)
		if !containsTerm(terms, blinded) {
			t.Errorf("query %q should match but did not", query)
		}
	}
	mustNotMatch := func(query string) {
		t.Helper()
		blinded := BlindQuery(query, k6)
		if containsTerm(terms, blinded) {
			t.Errorf("query %q should not match but did", query)
		}
	}

	mustMatch("quick")
	mustMatch("quic*")
	mustMatch("brown")
	mustMatch("jumps")
	mustMatch("jump*")

	mustNotMatch("qui*") // below minimum prefix length 4
	mustNotMatch("jumped")
	mustNotMatch("the") // below MinTokenLen
	mustNotMatch("slow")
}

func TestBlindQueryNoTokenExtraction(t *testing.T) {
	k6 := testK6(t)
	// A query is normalized wholesale, never tokenized or prefix-expanded.
	a := BlindQuery("Quick", k6)
	b := BlindQuery("quick", k6)
	if a != b {
		t.Error("BlindQuery should be case-insensitive via normalization")
	}
	if BlindQuery("quick brown", k6) == BlindQuery("quick", k6) {
		t.Error("BlindQuery should blind a multi-word query as one string, not extract a token from it")
	}
}
