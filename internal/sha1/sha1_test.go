package sha1

import (
	"encoding/hex"
	"testing"
)

func TestVectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
	}

	for _, c := range cases {
		sum := Sum160([]byte(c.in))
		if got := hex.EncodeToString(sum[:]); got != c.want {
			t.Errorf("Sum160(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	data := make([]byte, 5000)
	for i := range data {
		data[i] = byte(i)
	}

	d := New()
	for i := 0; i < len(data); i += 137 {
		end := i + 137
		if end > len(data) {
			end = len(data)
		}
		d.Write(data[i:end])
	}
	streamed := d.Sum(nil)

	oneShot := New()
	oneShot.Write(data)
	want := oneShot.Sum(nil)

	if hex.EncodeToString(streamed) != hex.EncodeToString(want) {
		t.Errorf("streamed write produced a different digest than one-shot write")
	}
}
