package pipeline

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/redeaux-corp/cryptopipe/internal/algo"
)

// buildSuite derives random key material for suite and returns the cipher
// key material prefix alongside the full key material, from which a fresh
// set of MAC instances can be built independently for the encrypt side and
// the decrypt side (Poly1305 is a one-time MAC per instance, so encrypt and
// decrypt must not share one).
func buildSuite(t *testing.T, suite algo.Suite) (cipherKeyMaterial, keyMaterial []byte) {
	t.Helper()
	keyMaterial = make([]byte, suite.KeyMaterialSize())
	if _, err := rand.Read(keyMaterial); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	cipherKeyMaterial = keyMaterial[:suite.CipherKeyMaterialSize()]
	return cipherKeyMaterial, keyMaterial
}

func macsFor(t *testing.T, suite algo.Suite, keyMaterial []byte) []algo.MAC {
	t.Helper()
	keys, err := suite.Build(keyMaterial)
	if err != nil {
		t.Fatalf("suite.Build: %v", err)
	}
	return keys.Macs
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	suites := []algo.Suite{
		{Ciphers: []algo.CipherID{algo.ChaCha20}, Macs: []algo.MacID{algo.Poly1305MAC}},
		{Ciphers: []algo.CipherID{algo.AES256CTR}, Macs: []algo.MacID{algo.HMACSHA256}},
		{Ciphers: []algo.CipherID{algo.AES128CTR, algo.ChaCha20}, Macs: []algo.MacID{algo.HMACSHA1, algo.Poly1305MAC}},
	}
	threadCounts := []int{1, 2, 4}
	sizes := []int{0, 100, ChunkSize - 1, ChunkSize, ChunkSize*3 + 77}

	for _, suite := range suites {
		for _, threads := range threadCounts {
			for _, size := range sizes {
				plain := make([]byte, size)
				rand.Read(plain)

				cipherKeyMaterial, keyMaterial := buildSuite(t, suite)
				encMacs := macsFor(t, suite, keyMaterial)

				var ciphertext bytes.Buffer
				if err := Encrypt(context.Background(), bytes.NewReader(plain), &ciphertext, suite, cipherKeyMaterial, encMacs, threads); err != nil {
					t.Fatalf("Encrypt(threads=%d, size=%d): %v", threads, size, err)
				}

				// Rebuild fresh MAC instances for decrypt: Poly1305 is a
				// one-time MAC and the encrypt-side instances have already
				// been finalized via Sum.
				decMacs := macsFor(t, suite, keyMaterial)

				var plainOut bytes.Buffer
				if err := Decrypt(context.Background(), bytes.NewReader(ciphertext.Bytes()), &plainOut, suite, cipherKeyMaterial, decMacs, threads); err != nil {
					t.Fatalf("Decrypt(threads=%d, size=%d): %v", threads, size, err)
				}

				if !bytes.Equal(plainOut.Bytes(), plain) {
					t.Fatalf("round trip mismatch (threads=%d, size=%d)", threads, size)
				}
			}
		}
	}
}

func TestTamperedCiphertextFailsAuthentication(t *testing.T) {
	suite := algo.Suite{Ciphers: []algo.CipherID{algo.ChaCha20}, Macs: []algo.MacID{algo.Poly1305MAC}}
	keyMaterial := make([]byte, suite.KeyMaterialSize())
	rand.Read(keyMaterial)
	cipherKeyMaterial := keyMaterial[:suite.CipherKeyMaterialSize()]

	keys1, err := suite.Build(keyMaterial)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	plain := make([]byte, 5000)
	rand.Read(plain)

	var ciphertext bytes.Buffer
	if err := Encrypt(context.Background(), bytes.NewReader(plain), &ciphertext, suite, cipherKeyMaterial, keys1.Macs, 2); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	tampered := ciphertext.Bytes()
	tampered[0] ^= 0xff

	keys2, err := suite.Build(keyMaterial)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var out bytes.Buffer
	err = Decrypt(context.Background(), bytes.NewReader(tampered), &out, suite, cipherKeyMaterial, keys2.Macs, 2)
	if !errors.Is(err, ErrAuthenticationFailure) {
		t.Fatalf("Decrypt on tampered ciphertext: got %v, want ErrAuthenticationFailure", err)
	}
}

func TestShortInputFailsWithErrShortInput(t *testing.T) {
	suite := algo.Suite{Ciphers: []algo.CipherID{algo.ChaCha20}, Macs: []algo.MacID{algo.Poly1305MAC}}
	keyMaterial := make([]byte, suite.KeyMaterialSize())
	rand.Read(keyMaterial)
	cipherKeyMaterial := keyMaterial[:suite.CipherKeyMaterialSize()]

	keys, err := suite.Build(keyMaterial)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Fewer bytes than the MAC tag size: cannot possibly contain a valid tag.
	short := make([]byte, 4)

	var out bytes.Buffer
	err = Decrypt(context.Background(), bytes.NewReader(short), &out, suite, cipherKeyMaterial, keys.Macs, 1)
	if !errors.Is(err, ErrShortInput) {
		t.Fatalf("Decrypt on short input: got %v, want ErrShortInput", err)
	}
}
