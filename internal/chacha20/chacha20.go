// Package chacha20 implements this project's ChaCha20 stream cipher
// variant, grounded on original_source/include/crypto/chacha20.h/.cpp.
// Deliberately NOT RFC 8439: the 64-bit block counter and 64-bit nonce
// split the state differently from the standard's 32-bit-counter/96-bit-
// nonce layout. This deviation is intentional and must be preserved
// exactly, not "corrected" to match RFC 8439 or golang.org/x/crypto/chacha20.
package chacha20

import (
	"encoding/binary"
	"math/bits"
)

const (
	// KeySize is the key length in bytes.
	KeySize = 32
	// NonceSize is the nonce length in bytes (64 bits, not RFC 8439's 96).
	NonceSize = 8
	// BlockSize is the keystream block size in bytes.
	BlockSize = 64
)

var sigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// Cipher is a streaming ChaCha20 keystream generator using a 64-bit
// counter and 64-bit nonce.
type Cipher struct {
	key     [8]uint32
	nonce   [2]uint32
	initCtr uint64
	counter uint64
	ks      [BlockSize]byte
	ksUsed  int
}

// New constructs a Cipher from a 32-byte key, 8-byte nonce and the initial
// 64-bit block counter.
func New(key [KeySize]byte, nonce [NonceSize]byte, initialCounter uint64) *Cipher {
	c := &Cipher{initCtr: initialCounter, counter: initialCounter, ksUsed: BlockSize}
	for i := 0; i < 8; i++ {
		c.key[i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	c.nonce[0] = binary.LittleEndian.Uint32(nonce[0:4])
	c.nonce[1] = binary.LittleEndian.Uint32(nonce[4:8])
	return c
}

// SetCounter replaces the active counter with initialCounter + blockOffset
// and discards any buffered keystream, matching the cipher-facade's
// set_counter(block_offset) contract shared by every cipher in this project.
func (c *Cipher) SetCounter(blockOffset uint64) {
	c.counter = c.initCtr + blockOffset
	c.ksUsed = BlockSize
}

func quarterRound(a, b, c, d *uint32) {
	*a += *b
	*d ^= *a
	*d = bits.RotateLeft32(*d, 16)
	*c += *d
	*b ^= *c
	*b = bits.RotateLeft32(*b, 12)
	*a += *b
	*d ^= *a
	*d = bits.RotateLeft32(*d, 8)
	*c += *d
	*b ^= *c
	*b = bits.RotateLeft32(*b, 7)
}

func (c *Cipher) block(out *[BlockSize]byte) {
	var x [16]uint32
	x[0], x[1], x[2], x[3] = sigma[0], sigma[1], sigma[2], sigma[3]
	copy(x[4:12], c.key[:])
	// Counter occupies words 12-13 (64 bits), nonce occupies words 14-15,
	// unlike RFC 8439's single 32-bit counter word + 3-word 96-bit nonce.
	x[12] = uint32(c.counter)
	x[13] = uint32(c.counter >> 32)
	x[14] = c.nonce[0]
	x[15] = c.nonce[1]

	working := x

	for i := 0; i < 10; i++ {
		quarterRound(&working[0], &working[4], &working[8], &working[12])
		quarterRound(&working[1], &working[5], &working[9], &working[13])
		quarterRound(&working[2], &working[6], &working[10], &working[14])
		quarterRound(&working[3], &working[7], &working[11], &working[15])
		quarterRound(&working[0], &working[5], &working[10], &working[15])
		quarterRound(&working[1], &working[6], &working[11], &working[12])
		quarterRound(&working[2], &working[7], &working[8], &working[13])
		quarterRound(&working[3], &working[4], &working[9], &working[14])
	}

	for i := range working {
		working[i] += x[i]
	}
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], working[i])
	}

	c.counter++
}

// BlockSize reports the ChaCha20 keystream block size (64 bytes).
func (c *Cipher) BlockSize() int { return BlockSize }

// XORKeyStream XORs len(src) bytes of keystream into dst, advancing the
// counter as needed. dst and src may overlap exactly.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	for i := 0; i < len(src); i++ {
		if c.ksUsed == BlockSize {
			c.block(&c.ks)
			c.ksUsed = 0
		}
		dst[i] = src[i] ^ c.ks[c.ksUsed]
		c.ksUsed++
	}
}
