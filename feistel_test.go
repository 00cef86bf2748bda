package fenc

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func randSubkey(t *testing.T, seed byte) [SubkeySize]byte {
	t.Helper()
	var k [SubkeySize]byte
	for i := range k {
		k[i] = seed + byte(i)
	}
	return k
}

func TestFeistelRoundTrip(t *testing.T) {
	k1, k2, k3, k4 := randSubkey(t, 1), randSubkey(t, 17), randSubkey(t, 33), randSubkey(t, 49)
	c := NewFeistelCipher()

	sizes := []int{32, 33, 40, 64, 128, 257}
	for _, n := range sizes {
		block := make([]byte, n)
		if _, err := rand.Read(block); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}

		ct, err := c.Encrypt(k1, k2, k3, k4, block)
		if err != nil {
			t.Fatalf("Encrypt(%d bytes) returned error: %v", n, err)
		}
		if len(ct) != n {
			t.Fatalf("Encrypt(%d bytes) changed length to %d", n, len(ct))
		}

		pt, err := c.Decrypt(k1, k2, k3, k4, ct)
		if err != nil {
			t.Fatalf("Decrypt(%d bytes) returned error: %v", n, err)
		}
		if !bytes.Equal(pt, block) {
			t.Errorf("round trip for %d bytes: got %x, want %x", n, pt, block)
		}
	}
}

func TestFeistelBlockTooSmall(t *testing.T) {
	k1, k2, k3, k4 := randSubkey(t, 1), randSubkey(t, 2), randSubkey(t, 3), randSubkey(t, 4)
	c := NewFeistelCipher()

	if _, err := c.Encrypt(k1, k2, k3, k4, make([]byte, 31)); err != ErrBlockTooSmall {
		t.Errorf("Encrypt(31 bytes) = %v, want ErrBlockTooSmall", err)
	}
	if _, err := c.Decrypt(k1, k2, k3, k4, make([]byte, 0)); err != ErrBlockTooSmall {
		t.Errorf("Decrypt(0 bytes) = %v, want ErrBlockTooSmall", err)
	}
}

func TestOddRoundInvolution(t *testing.T) {
	k := randSubkey(t, 9)
	l := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	r := []byte("the right half of a feistel block, arbitrary length")

	l1, r1, err := oddRound(l, r, k)
	if err != nil {
		t.Fatalf("oddRound: %v", err)
	}
	l2, r2, err := oddRound(l1, r1, k)
	if err != nil {
		t.Fatalf("oddRound: %v", err)
	}

	if !bytes.Equal(l2, l) || !bytes.Equal(r2, r) {
		t.Errorf("oddRound is not self-inverse: got l=%x r=%x, want l=%x r=%x", l2, r2, l, r)
	}
}

func TestEvenRoundInvolution(t *testing.T) {
	k := randSubkey(t, 22)
	l := []byte{9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 255, 254, 253, 252, 251, 250}
	r := []byte("another arbitrary-length right half for the even round")

	l1, r1 := evenRound(l, r, k)
	l2, r2 := evenRound(l1, r1, k)

	if !bytes.Equal(l2, l) || !bytes.Equal(r2, r) {
		t.Errorf("evenRound is not self-inverse: got l=%x r=%x, want l=%x r=%x", l2, r2, l, r)
	}
}

func TestFeistelDifferentKeysDifferentCiphertext(t *testing.T) {
	c := NewFeistelCipher()
	block := []byte("0123456789abcdef0123456789abcdef0123456789abcdef")

	k1, k2, k3, k4 := randSubkey(t, 1), randSubkey(t, 2), randSubkey(t, 3), randSubkey(t, 4)
	ct1, err := c.Encrypt(k1, k2, k3, k4, block)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	k1b := randSubkey(t, 100)
	ct2, err := c.Encrypt(k1b, k2, k3, k4, block)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if bytes.Equal(ct1, ct2) {
		t.Error("changing k1 should change the ciphertext")
	}
}
