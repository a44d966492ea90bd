package pipeline

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/redeaux-corp/cryptopipe/internal/algo"
)

func TestSessionRoundTrip(t *testing.T) {
	suite := algo.Suite{Ciphers: []algo.CipherID{algo.ChaCha20}, Macs: []algo.MacID{algo.Poly1305MAC}}
	kdf := KdfSpec{Algorithm: algo.Argon2id, Time: 1, MemoryKiB: 8 * 1024, Parallelism: 1}
	password := []byte("a test password")
	secret := []byte("a secret pepper")

	plain := make([]byte, ChunkSize+12345)
	rand.Read(plain)

	var ciphertext bytes.Buffer
	if err := EncryptStream(context.Background(), bytes.NewReader(plain), &ciphertext, suite, kdf, password, secret, 3); err != nil {
		t.Fatalf("EncryptStream: %v", err)
	}

	if ciphertext.Len() != SaltSize+len(plain)+suite.MacOutputSize() {
		t.Fatalf("ciphertext length = %d, want %d", ciphertext.Len(), SaltSize+len(plain)+suite.MacOutputSize())
	}

	var out bytes.Buffer
	if err := DecryptStream(context.Background(), bytes.NewReader(ciphertext.Bytes()), &out, suite, kdf, password, secret, 3); err != nil {
		t.Fatalf("DecryptStream: %v", err)
	}

	if !bytes.Equal(out.Bytes(), plain) {
		t.Fatalf("round trip through EncryptStream/DecryptStream did not recover plaintext")
	}
}

func TestSessionWrongPasswordFailsAuthentication(t *testing.T) {
	suite := algo.Suite{Ciphers: []algo.CipherID{algo.AES256CTR}, Macs: []algo.MacID{algo.HMACSHA256}}
	kdf := KdfSpec{Algorithm: algo.Argon2i, Time: 1, MemoryKiB: 8 * 1024, Parallelism: 1}

	plain := []byte("secret message")
	var ciphertext bytes.Buffer
	if err := EncryptStream(context.Background(), bytes.NewReader(plain), &ciphertext, suite, kdf, []byte("right password"), nil, 1); err != nil {
		t.Fatalf("EncryptStream: %v", err)
	}

	var out bytes.Buffer
	err := DecryptStream(context.Background(), bytes.NewReader(ciphertext.Bytes()), &out, suite, kdf, []byte("wrong password"), nil, 1)
	if err == nil {
		t.Fatal("expected decryption with the wrong password to fail")
	}
}

func TestSessionOutOfRangeKdfParamsFailAsInvalidArgument(t *testing.T) {
	suite := algo.Suite{Ciphers: []algo.CipherID{algo.ChaCha20}, Macs: []algo.MacID{algo.Poly1305MAC}}
	kdf := KdfSpec{Algorithm: algo.Argon2id, Time: 1, MemoryKiB: 4, Parallelism: 1}

	var ciphertext bytes.Buffer
	err := EncryptStream(context.Background(), bytes.NewReader([]byte("hi")), &ciphertext, suite, kdf, []byte("password"), nil, 1)
	if err == nil {
		t.Fatal("expected EncryptStream to reject memory cost below the 8x parallelism floor")
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want it to wrap ErrInvalidArgument", err)
	}
	if errors.Is(err, ErrInternal) {
		t.Errorf("err = %v, should not also be classified as ErrInternal", err)
	}
}
