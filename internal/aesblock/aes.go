// Package aesblock implements the AES block cipher (FIPS-197) in its
// 128/192/256-bit key variants, grounded on
// original_source/include/crypto/AES.h/.cpp's table-driven S-box/round
// structure, exposed as a crypto/cipher.Block-shaped type so internal/ctr
// can wrap it the same way the standard library wraps crypto/aes.
package aesblock

import "fmt"

const BlockSize = 16

var sbox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

var invSbox [256]byte

var rcon = [11]byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

func init() {
	for i, v := range sbox {
		invSbox[v] = byte(i)
	}
}

func xtime(b byte) byte {
	if b&0x80 != 0 {
		return (b << 1) ^ 0x1b
	}
	return b << 1
}

func mul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

// Cipher implements the AES block cipher for a 128, 192 or 256-bit key,
// matching the crypto/cipher.Block method set used by internal/ctr.
type Cipher struct {
	roundKeys [][4]byte // (rounds+1)*4 words, each word 4 bytes
	rounds    int
}

// New constructs a Cipher for the given key (16, 24 or 32 bytes).
func New(key []byte) (*Cipher, error) {
	var nk, nr int
	switch len(key) {
	case 16:
		nk, nr = 4, 10
	case 24:
		nk, nr = 6, 12
	case 32:
		nk, nr = 8, 14
	default:
		return nil, fmt.Errorf("aesblock: invalid key size %d", len(key))
	}

	c := &Cipher{rounds: nr}
	c.expandKey(key, nk, nr)
	return c, nil
}

func (c *Cipher) BlockSize() int { return BlockSize }

func (c *Cipher) expandKey(key []byte, nk, nr int) {
	total := 4 * (nr + 1)
	w := make([][4]byte, total)
	for i := 0; i < nk; i++ {
		copy(w[i][:], key[4*i:4*i+4])
	}
	var temp [4]byte
	for i := nk; i < total; i++ {
		temp = w[i-1]
		if i%nk == 0 {
			temp = [4]byte{temp[1], temp[2], temp[3], temp[0]}
			for j := range temp {
				temp[j] = sbox[temp[j]]
			}
			temp[0] ^= rcon[i/nk]
		} else if nk > 6 && i%nk == 4 {
			for j := range temp {
				temp[j] = sbox[temp[j]]
			}
		}
		for j := range temp {
			w[i][j] = w[i-nk][j] ^ temp[j]
		}
	}
	c.roundKeys = w
}

func (c *Cipher) addRoundKey(state *[16]byte, round int) {
	for col := 0; col < 4; col++ {
		w := c.roundKeys[round*4+col]
		state[col*4+0] ^= w[0]
		state[col*4+1] ^= w[1]
		state[col*4+2] ^= w[2]
		state[col*4+3] ^= w[3]
	}
}

func subBytes(state *[16]byte, box *[256]byte) {
	for i := range state {
		state[i] = box[state[i]]
	}
}

func shiftRows(state *[16]byte) {
	// state is column-major: state[col*4+row].
	var t [16]byte
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			srcCol := (col + row) % 4
			t[col*4+row] = state[srcCol*4+row]
		}
	}
	*state = t
}

func invShiftRows(state *[16]byte) {
	var t [16]byte
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			srcCol := (col - row + 4) % 4
			t[col*4+row] = state[srcCol*4+row]
		}
	}
	*state = t
}

func mixColumns(state *[16]byte) {
	for col := 0; col < 4; col++ {
		a0, a1, a2, a3 := state[col*4], state[col*4+1], state[col*4+2], state[col*4+3]
		state[col*4+0] = mul(a0, 2) ^ mul(a1, 3) ^ a2 ^ a3
		state[col*4+1] = a0 ^ mul(a1, 2) ^ mul(a2, 3) ^ a3
		state[col*4+2] = a0 ^ a1 ^ mul(a2, 2) ^ mul(a3, 3)
		state[col*4+3] = mul(a0, 3) ^ a1 ^ a2 ^ mul(a3, 2)
	}
}

func invMixColumns(state *[16]byte) {
	for col := 0; col < 4; col++ {
		a0, a1, a2, a3 := state[col*4], state[col*4+1], state[col*4+2], state[col*4+3]
		state[col*4+0] = mul(a0, 14) ^ mul(a1, 11) ^ mul(a2, 13) ^ mul(a3, 9)
		state[col*4+1] = mul(a0, 9) ^ mul(a1, 14) ^ mul(a2, 11) ^ mul(a3, 13)
		state[col*4+2] = mul(a0, 13) ^ mul(a1, 9) ^ mul(a2, 14) ^ mul(a3, 11)
		state[col*4+3] = mul(a0, 11) ^ mul(a1, 13) ^ mul(a2, 9) ^ mul(a3, 14)
	}
}

// Encrypt encrypts the single block src into dst.
func (c *Cipher) Encrypt(dst, src []byte) {
	var state [16]byte
	copy(state[:], src[:16])

	c.addRoundKey(&state, 0)
	for round := 1; round < c.rounds; round++ {
		subBytes(&state, &sbox)
		shiftRows(&state)
		mixColumns(&state)
		c.addRoundKey(&state, round)
	}
	subBytes(&state, &sbox)
	shiftRows(&state)
	c.addRoundKey(&state, c.rounds)

	copy(dst[:16], state[:])
}

// Decrypt decrypts the single block src into dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	var state [16]byte
	copy(state[:], src[:16])

	c.addRoundKey(&state, c.rounds)
	for round := c.rounds - 1; round > 0; round-- {
		invShiftRows(&state)
		subBytes(&state, &invSbox)
		c.addRoundKey(&state, round)
		invMixColumns(&state)
	}
	invShiftRows(&state)
	subBytes(&state, &invSbox)
	c.addRoundKey(&state, 0)

	copy(dst[:16], state[:])
}
