package crypto

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func TestSealRoundtrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s, err := NewSealer(key)
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}

	plaintext := []byte("tok123")
	box, err := s.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(box, plaintext) {
		t.Fatal("sealed box contains the plaintext")
	}

	got, err := s.Open(box)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("Open = %q, want %q", got, plaintext)
	}
}

func TestSealUniqueNonces(t *testing.T) {
	key, _ := GenerateKey()
	s, _ := NewSealer(key)

	a, _ := s.Seal([]byte("same"))
	b, _ := s.Seal([]byte("same"))
	if bytes.Equal(a, b) {
		t.Fatal("two seals of the same plaintext produced identical boxes")
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	key, _ := GenerateKey()
	s, _ := NewSealer(key)

	box, _ := s.Seal([]byte("tok123"))
	box[len(box)-1] ^= 0xff

	if _, err := s.Open(box); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Open(tampered) = %v, want ErrDecryptionFailed", err)
	}
}

func TestOpenRejectsShortBox(t *testing.T) {
	key, _ := GenerateKey()
	s, _ := NewSealer(key)

	if _, err := s.Open([]byte{1, 2, 3}); !errors.Is(err, ErrInvalidCiphertext) {
		t.Fatalf("Open(short) = %v, want ErrInvalidCiphertext", err)
	}
}

func TestOpenWrongKey(t *testing.T) {
	k1, _ := GenerateKey()
	k2, _ := GenerateKey()
	s1, _ := NewSealer(k1)
	s2, _ := NewSealer(k2)

	box, _ := s1.Seal([]byte("tok123"))
	if _, err := s2.Open(box); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Open with wrong key = %v, want ErrDecryptionFailed", err)
	}
}

func TestLoadOrCreateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.key")

	created, err := LoadOrCreateKey(path)
	if err != nil {
		t.Fatalf("LoadOrCreateKey (create): %v", err)
	}
	if len(created) != KeySize {
		t.Fatalf("key length = %d, want %d", len(created), KeySize)
	}

	loaded, err := LoadOrCreateKey(path)
	if err != nil {
		t.Fatalf("LoadOrCreateKey (load): %v", err)
	}
	if !bytes.Equal(created, loaded) {
		t.Fatal("second load returned a different key")
	}
}
