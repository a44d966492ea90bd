package argon2

import (
	"encoding/binary"

	"github.com/redeaux-corp/cryptopipe/internal/blake2b"
)

// hashLong implements Argon2's H' variable-length hash (RFC 9106 §3.2):
// for outputs up to 64 bytes it is a single BLAKE2b call over
// LE32(len(out)) || in; for longer outputs it chains 64-byte BLAKE2b
// calls, emitting the first 32 bytes of each block, finishing with a
// short final block sized to exactly fill the remainder.
func hashLong(out, in []byte) {
	var lenPrefix [4]byte
	binary.LittleEndian.PutUint32(lenPrefix[:], uint32(len(out)))

	if len(out) <= blake2b.Size {
		d, _ := blake2b.New(len(out))
		d.Write(lenPrefix[:])
		d.Write(in)
		copy(out, d.Sum(nil))
		return
	}

	d, _ := blake2b.New(blake2b.Size)
	d.Write(lenPrefix[:])
	d.Write(in)
	v := d.Sum(nil)

	copy(out, v[:32])
	out = out[32:]

	for len(out) > blake2b.Size {
		d2, _ := blake2b.New(blake2b.Size)
		d2.Write(v)
		v = d2.Sum(nil)
		copy(out, v[:32])
		out = out[32:]
	}

	d3, _ := blake2b.New(len(out))
	d3.Write(v)
	copy(out, d3.Sum(nil))
}
