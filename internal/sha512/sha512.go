// Package sha512 implements SHA-512, SHA-384, SHA-512/224 and SHA-512/256
// (FIPS 180-4), grounded on original_source/include/crypto/SHA.h's 64-bit
// member of the SHA family and following the same hash.Hash shape as
// internal/sha1 and internal/sha256.
package sha512

import (
	"encoding/binary"
	"math/bits"
)

// Variant selects which member of the SHA-512 family a Digest computes.
type Variant int

const (
	Variant512 Variant = iota
	Variant384
	Variant512_224
	Variant512_256
)

const BlockSize = 128

// Size returns the checksum length in bytes for v.
func (v Variant) Size() int {
	switch v {
	case Variant384:
		return 48
	case Variant512_224:
		return 28
	case Variant512_256:
		return 32
	default:
		return 64
	}
}

var k = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

var init512 = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var init384 = [8]uint64{
	0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
	0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
}

var init512_224 = [8]uint64{
	0x8c3d37c819544da2, 0x73e1996689dcd4d6, 0x1dfab7ae32ff9c82, 0x679dd514582f9fcf,
	0x0f6d2b697bd44da8, 0x77e36f7304c48942, 0x3f9d85a86a1d36c8, 0x1112e6ad91d692a1,
}

var init512_256 = [8]uint64{
	0x22312194fc2bf72c, 0x9f555fa3c84c64c2, 0x2393b86b6f53b151, 0x963877195940eabd,
	0x96283ee2a88effe3, 0xbe5e1e2553863992, 0x2b0199fc2c85b8aa, 0x0eb72ddc81c52ca2,
}

// Digest implements hash.Hash for any Variant of the SHA-512 family.
type Digest struct {
	h   [8]uint64
	buf [BlockSize]byte
	n   int
	len uint64 // low 64 bits of bit length; hi carries overflow
	hi  uint64 // high bits of the bit length, for inputs >= 2^61 bytes
	v   Variant
}

// New returns a Digest for the given variant.
func New(v Variant) *Digest {
	d := &Digest{v: v}
	d.Reset()
	return d
}

func (d *Digest) Reset() {
	switch d.v {
	case Variant384:
		d.h = init384
	case Variant512_224:
		d.h = init512_224
	case Variant512_256:
		d.h = init512_256
	default:
		d.h = init512
	}
	d.n = 0
	d.len = 0
	d.hi = 0
}

func (d *Digest) BlockSize() int { return BlockSize }
func (d *Digest) Size() int      { return d.v.Size() }

func (d *Digest) addLen(n uint64) {
	bits := n << 3
	old := d.len
	d.len += bits
	if d.len < old {
		d.hi++
	}
	d.hi += n >> 61
}

func (d *Digest) Write(p []byte) (int, error) {
	total := len(p)
	d.addLen(uint64(total))

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
	return append(b, digest[:d.v.Size()]...)
}

func (d *Digest) checkSum() [64]byte {
	lenHi, lenLo := d.hi, d.len
	var tmp [BlockSize]byte
	tmp[0] = 0x80

	// pad using the raw byte length stored separately from the padding
	// write itself, since Write() would otherwise re-account for the pad.
	byteLen := d.len >> 3
	rem := byteLen % 128
	var padLen uint64
	if rem < 112 {
		padLen = 112 - rem
	} else {
		padLen = 128 + 112 - rem
	}
	d.writeRaw(tmp[:padLen])

	var lenBytes [16]byte
	binary.BigEndian.PutUint64(lenBytes[:8], lenHi)
	binary.BigEndian.PutUint64(lenBytes[8:], lenLo)
	d.writeRaw(lenBytes[:])

	var out [64]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint64(out[i*8:], s)
	}
	return out
}

// writeRaw feeds the padding/length trailer through the block function
// without touching the length accounting (which must reflect only the
// caller's real message bytes).
func (d *Digest) writeRaw(p []byte) {
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
}

func block(h *[8]uint64, p []byte) {
	var w [80]uint64
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint64(p[i*8:])
	}
	for i := 16; i < 80; i++ {
		s0 := bits.RotateLeft64(w[i-15], -1) ^ bits.RotateLeft64(w[i-15], -8) ^ (w[i-15] >> 7)
		s1 := bits.RotateLeft64(w[i-2], -19) ^ bits.RotateLeft64(w[i-2], -61) ^ (w[i-2] >> 6)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, dd, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for i := 0; i < 80; i++ {
		s1 := bits.RotateLeft64(e, -14) ^ bits.RotateLeft64(e, -18) ^ bits.RotateLeft64(e, -41)
		ch := (e & f) ^ (^e & g)
		t1 := hh + s1 + ch + k[i] + w[i]
		s0 := bits.RotateLeft64(a, -28) ^ bits.RotateLeft64(a, -34) ^ bits.RotateLeft64(a, -39)
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
