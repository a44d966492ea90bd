package argon2

import "math/bits"

// block is one 1024-byte Argon2 memory block, viewed as 128 little-endian
// 64-bit words, per original_source/include/crypto/argon2.h's block type.
type block [128]uint64

func (b *block) xorInto(a, c *block) {
	for i := range b {
		b[i] = a[i] ^ c[i]
	}
}

// compress implements Argon2's G compression function: R = X xor Y, Z =
// P(R) applied row-wise then column-wise over the 8x8 matrix of 16-byte
// (two-word) elements, and out = Z xor R (xored into any existing out
// contents when xorOut is true, matching pass > 0's "xor with old block"
// rule).
func compress(out, x, y *block, xorOut bool) {
	var r block
	for i := range r {
		r[i] = x[i] ^ y[i]
	}

	t := r

	for i := 0; i < 8; i++ {
		mix(
			&t[16*i], &t[16*i+1], &t[16*i+2], &t[16*i+3],
			&t[16*i+4], &t[16*i+5], &t[16*i+6], &t[16*i+7],
			&t[16*i+8], &t[16*i+9], &t[16*i+10], &t[16*i+11],
			&t[16*i+12], &t[16*i+13], &t[16*i+14], &t[16*i+15],
		)
	}

	for i := 0; i < 8; i++ {
		mix(
			&t[2*i], &t[2*i+1], &t[2*i+16], &t[2*i+17],
			&t[2*i+32], &t[2*i+33], &t[2*i+48], &t[2*i+49],
			&t[2*i+64], &t[2*i+65], &t[2*i+80], &t[2*i+81],
			&t[2*i+96], &t[2*i+97], &t[2*i+112], &t[2*i+113],
		)
	}

	if xorOut {
		for i := range out {
			out[i] ^= r[i] ^ t[i]
		}
	} else {
		for i := range out {
			out[i] = r[i] ^ t[i]
		}
	}
}

// mix applies two rounds of the BLAKe2b-derived quarter-round, once across
// each of the four 4-word groups and once across the diagonals, matching
// Argon2's P permutation over a 4x4 matrix of uint64 words.
func mix(t00, t01, t02, t03, t04, t05, t06, t07, t08, t09, t10, t11, t12, t13, t14, t15 *uint64) {
	v00, v01, v02, v03 := *t00, *t01, *t02, *t03
	v04, v05, v06, v07 := *t04, *t05, *t06, *t07
	v08, v09, v10, v11 := *t08, *t09, *t10, *t11
	v12, v13, v14, v15 := *t12, *t13, *t14, *t15

	v00, v04, v08, v12 = gB(v00, v04, v08, v12)
	v01, v05, v09, v13 = gB(v01, v05, v09, v13)
	v02, v06, v10, v14 = gB(v02, v06, v10, v14)
	v03, v07, v11, v15 = gB(v03, v07, v11, v15)

	v00, v05, v10, v15 = gB(v00, v05, v10, v15)
	v01, v06, v11, v12 = gB(v01, v06, v11, v12)
	v02, v07, v08, v13 = gB(v02, v07, v08, v13)
	v03, v04, v09, v14 = gB(v03, v04, v09, v14)

	*t00, *t01, *t02, *t03 = v00, v01, v02, v03
	*t04, *t05, *t06, *t07 = v04, v05, v06, v07
	*t08, *t09, *t10, *t11 = v08, v09, v10, v11
	*t12, *t13, *t14, *t15 = v12, v13, v14, v15
}

// gB is Argon2's variant of the BLAKE2b mixing function, using the
// doubled-low-32-bit-product term (fBlaMka) in place of plain addition.
func gB(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	a = fBlaMka(a, b)
	d = bits.RotateLeft64(d^a, -32)
	c = fBlaMka(c, d)
	b = bits.RotateLeft64(b^c, -24)
	a = fBlaMka(a, b)
	d = bits.RotateLeft64(d^a, -16)
	c = fBlaMka(c, d)
	b = bits.RotateLeft64(b^c, -63)
	return a, b, c, d
}

func fBlaMka(x, y uint64) uint64 {
	const mask32 = 0xffffffff
	xy := (x & mask32) * (y & mask32)
	return x + y + 2*xy
}
