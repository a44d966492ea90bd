package sha256

import (
	"encoding/hex"
	"testing"
)

func TestVectors256(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, c := range cases {
		d := New()
		d.Write([]byte(c.in))
		got := hex.EncodeToString(d.Sum(nil))
		if got != c.want {
			t.Errorf("SHA-256(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestStreamingMatchesOneShot224(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i * 7)
	}

	d := New224()
	for i := 0; i < len(data); i += 97 {
		end := i + 97
		if end > len(data) {
			end = len(data)
		}
		d.Write(data[i:end])
	}
	streamed := d.Sum(nil)

	oneShot := New224()
	oneShot.Write(data)
	want := oneShot.Sum(nil)

	if hex.EncodeToString(streamed) != hex.EncodeToString(want) {
		t.Errorf("streamed SHA-224 write produced a different digest than one-shot write")
	}
	if len(streamed) != Size224 {
		t.Errorf("SHA-224 digest length = %d, want %d", len(streamed), Size224)
	}
}
