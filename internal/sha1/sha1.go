// Package sha1 implements the SHA-1 hash function (FIPS 180-4) as a
// hash.Hash, following the streaming init/update/final contract of
// original_source/include/crypto/SHA.h translated into the idiomatic
// Write/Sum/Reset shape used throughout this repository's hash primitives.
package sha1

import (
	"encoding/binary"
	"math/bits"
)

const (
	// Size is the length in bytes of a SHA-1 checksum.
	Size = 20
	// BlockSize is the block size in bytes of the SHA-1 hash function.
	BlockSize = 64
)

var initState = [5]uint32{
	0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0,
}

// Digest implements hash.Hash for SHA-1.
type Digest struct {
	h   [5]uint32
	buf [BlockSize]byte
	n   int
	len uint64
}

// New returns a new SHA-1 Digest.
func New() *Digest {
	d := &Digest{}
	d.Reset()
	return d
}

func (d *Digest) Reset() {
	d.h = initState
	d.n = 0
	d.len = 0
}

func (d *Digest) Size() int      { return Size }
func (d *Digest) BlockSize() int { return BlockSize }

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

// Sum appends the current hash to b and returns the resulting slice. It does
// not modify the underlying state (a copy is finalized).
func (d *Digest) Sum(b []byte) []byte {
	cp := *d
	hash := cp.checkSum()
	return append(b, hash[:]...)
}

func (d *Digest) checkSum() [Size]byte {
	length := d.len
	var tmp [BlockSize]byte
	tmp[0] = 0x80
	if length%64 < 56 {
		d.Write(tmp[0 : 56-length%64])
	} else {
		d.Write(tmp[0 : 64+56-length%64])
	}

	// Length in bits, big-endian.
	length <<= 3
	binary.BigEndian.PutUint64(tmp[:8], length)
	d.Write(tmp[:8])

	var out [Size]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}

// Sum160 computes the SHA-1 checksum of data in one call.
func Sum160(data []byte) [Size]byte {
	d := New()
	d.Write(data)
	return d.checkSum()
}

func block(h *[5]uint32, p []byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, dd, e := h[0], h[1], h[2], h[3], h[4]

	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = (b & c) | (^b & dd)
			k = 0x5A827999
		case i < 40:
			f = b ^ c ^ dd
			k = 0x6ED9EBA1
		case i < 60:
			f = (b & c) | (b & dd) | (c & dd)
			k = 0x8F1BBCDC
		default:
			f = b ^ c ^ dd
			k = 0xCA62C1D6
		}
		t := bits.RotateLeft32(a, 5) + f + e + k + w[i]
		e = dd
		dd = c
		c = bits.RotateLeft32(b, 30)
		b = a
		a = t
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += dd
	h[4] += e
}
