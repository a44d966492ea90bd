package blake2b

import (
	"bytes"
	"testing"

	refblake2b "golang.org/x/crypto/blake2b"
)

func TestMatchesReferenceUnkeyed(t *testing.T) {
	sizes := []int{16, 32, 64}
	inputs := [][]byte{
		[]byte(""),
		[]byte("abc"),
		bytes.Repeat([]byte{0x42}, 513),
	}

	for _, size := range sizes {
		for _, in := range inputs {
			d, err := New(size)
			if err != nil {
				t.Fatalf("New(%d): %v", size, err)
			}
			d.Write(in)
			got := d.Sum(nil)

			ref, err := refblake2b.New(size, nil)
			if err != nil {
				t.Fatalf("reference New(%d): %v", size, err)
			}
			ref.Write(in)
			want := ref.Sum(nil)

			if !bytes.Equal(got, want) {
				t.Errorf("size=%d input=%q: got %x, want %x", size, in, got, want)
			}
		}
	}
}

func TestMatchesReferenceKeyed(t *testing.T) {
	key := []byte("a 17-byte test key")
	msg := []byte("the quick brown fox jumps over the lazy dog")

	d, err := NewKeyed(key, 32)
	if err != nil {
		t.Fatalf("NewKeyed: %v", err)
	}
	d.Write(msg)
	got := d.Sum(nil)

	ref, err := refblake2b.New(32, key)
	if err != nil {
		t.Fatalf("reference New: %v", err)
	}
	ref.Write(msg)
	want := ref.Sum(nil)

	if !bytes.Equal(got, want) {
		t.Errorf("keyed: got %x, want %x", got, want)
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	data := bytes.Repeat([]byte{0x5a}, 10000)

	d, _ := New(64)
	for i := 0; i < len(data); i += 333 {
		end := i + 333
		if end > len(data) {
			end = len(data)
		}
		d.Write(data[i:end])
	}
	streamed := d.Sum(nil)

	oneShot, _ := New(64)
	oneShot.Write(data)
	want := oneShot.Sum(nil)

	if !bytes.Equal(streamed, want) {
		t.Errorf("streamed write produced a different digest than one-shot write")
	}
}

func TestResetReabsorbsKey(t *testing.T) {
	key := []byte("reset-key")
	d, _ := NewKeyed(key, 32)
	d.Write([]byte("first message"))
	first := d.Sum(nil)

	d.Reset()
	d.Write([]byte("first message"))
	second := d.Sum(nil)

	if !bytes.Equal(first, second) {
		t.Errorf("Reset did not reproduce the same keyed digest: %x vs %x", first, second)
	}
}
