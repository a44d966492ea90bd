// Package sha256 implements SHA-224 and SHA-256 (FIPS 180-4) following the
// same hash.Hash shape as internal/sha1, grounded on
// original_source/include/crypto/SHA.h's templated 32-bit SHA family.
package sha256

import (
	"encoding/binary"
	"math/bits"
)

const (
	// Size256 is the checksum length of SHA-256.
	Size256 = 32
	// Size224 is the checksum length of SHA-224.
	Size224 = 28
	// BlockSize is the block size of both SHA-224 and SHA-256.
	BlockSize = 64
)

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var init256 = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var init224 = [8]uint32{
	0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939, 0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
}

// Digest implements hash.Hash for both SHA-224 and SHA-256, distinguished by
// the is224 flag set at construction.
type Digest struct {
	h     [8]uint32
	buf   [BlockSize]byte
	n     int
	len   uint64
	is224 bool
}

// New returns a SHA-256 Digest.
func New() *Digest {
	d := &Digest{}
	d.Reset()
	return d
}

// New224 returns a SHA-224 Digest.
func New224() *Digest {
	d := &Digest{is224: true}
	d.Reset()
	return d
}

func (d *Digest) Reset() {
	if d.is224 {
		d.h = init224
	} else {
		d.h = init256
	}
	d.n = 0
	d.len = 0
}

func (d *Digest) BlockSize() int { return BlockSize }

func (d *Digest) Size() int {
	if d.is224 {
		return Size224
	}
	return Size256
}

func (d *Digest) Write(p []byte) (int, error) {
	total := len(p)
	d.len += uint64(total)

	if d.n > 0 {
		c := copy(d.buf[d.n:], p)
		d.n += c
		p = p[c:]
		if d.n == BlockSize {
			block(&d.h, d.buf[:])
			d.n = 0
		}
	}
	for len(p) >= BlockSize {
		block(&d.h, p[:BlockSize])
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		d.n = copy(d.buf[:], p)
	}
	return total, nil
}

func (d *Digest) Sum(b []byte) []byte {
	cp := *d
	digest := cp.checkSum()
	if d.is224 {
		return append(b, digest[:Size224]...)
	}
	return append(b, digest[:]...)
}

func (d *Digest) checkSum() [Size256]byte {
	length := d.len
	var tmp [BlockSize]byte
	tmp[0] = 0x80
	if length%64 < 56 {
		d.Write(tmp[0 : 56-length%64])
	} else {
		d.Write(tmp[0 : 64+56-length%64])
	}

	length <<= 3
	binary.BigEndian.PutUint64(tmp[:8], length)
	d.Write(tmp[:8])

	var out [Size256]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}

func block(h *[8]uint32, p []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, dd, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for i := 0; i < 64; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := hh + s1 + ch + k[i] + w[i]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		hh = g
		g = f
		f = e
		e = dd + t1
		dd = c
		c = b
		b = a
		a = t1 + t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += dd
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}
