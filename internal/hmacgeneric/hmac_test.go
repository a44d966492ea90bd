package hmacgeneric

import (
	"bytes"
	stdhmac "crypto/hmac"
	"hash"
	"testing"

	"github.com/redeaux-corp/cryptopipe/internal/sha1"
	"github.com/redeaux-corp/cryptopipe/internal/sha256"
	stdsha1 "crypto/sha1"
	stdsha256 "crypto/sha256"
	stdsha512 "crypto/sha512"
	"github.com/redeaux-corp/cryptopipe/internal/sha512"
)

func TestMatchesStdlibHMAC(t *testing.T) {
	key := []byte("a 20-byte test key!!")
	msg := []byte("the quick brown fox jumps over the lazy dog, repeatedly, to fill more than one block")

	cases := []struct {
		name    string
		newHash func() hash.Hash
		stdNew  func() hash.Hash
	}{
		{"sha1", func() hash.Hash { return sha1.New() }, stdsha1.New},
		{"sha256", func() hash.Hash { return sha256.New() }, stdsha256.New},
		{"sha512", func() hash.Hash { return sha512.New(sha512.Variant512) }, stdsha512.New},
	}

	for _, c := range cases {
		got := New(c.newHash, key)
		got.Write(msg)
		gotSum := got.Sum(nil)

		want := stdhmac.New(c.stdNew, key)
		want.Write(msg)
		wantSum := want.Sum(nil)

		if !bytes.Equal(gotSum, wantSum) {
			t.Errorf("%s: HMAC mismatch: got %x, want %x", c.name, gotSum, wantSum)
		}
	}
}

func TestResetReabsorbsKey(t *testing.T) {
	key := []byte("reset-key")
	d := New(func() hash.Hash { return sha256.New() }, key)
	d.Write([]byte("message one"))
	first := d.Sum(nil)

	d.Reset()
	d.Write([]byte("message one"))
	second := d.Sum(nil)

	if !bytes.Equal(first, second) {
		t.Errorf("Reset did not reproduce the same HMAC: %x vs %x", first, second)
	}
}

func TestLongKeyIsHashed(t *testing.T) {
	// A key longer than the block size must be hashed down first (RFC 2104 §2).
	longKey := bytes.Repeat([]byte{0x5a}, 200)
	msg := []byte("payload")

	got := New(func() hash.Hash { return sha256.New() }, longKey)
	got.Write(msg)
	gotSum := got.Sum(nil)

	want := stdhmac.New(stdsha256.New, longKey)
	want.Write(msg)
	wantSum := want.Sum(nil)

	if !bytes.Equal(gotSum, wantSum) {
		t.Errorf("long-key HMAC mismatch: got %x, want %x", gotSum, wantSum)
	}
}
