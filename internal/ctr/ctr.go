// Package ctr implements CTR mode (NIST SP 800-38A) over any 16-byte block
// cipher, grounded on original_source/include/crypto/CTR_mode.h. The
// counter is a big-endian 128-bit value occupying the entire block, as the
// original's CTR_mode template does; SetCounter replaces the active
// counter rather than adding to it, matching set_counter(block_offset) in
// the original's cipher state machine.
package ctr

import "encoding/binary"

// Block is the subset of a block cipher CTR needs (satisfied by
// internal/aesblock.Cipher and by any crypto/cipher.Block).
type Block interface {
	BlockSize() int
	Encrypt(dst, src []byte)
}

// Stream implements AES-CTR keystream generation/XOR over an underlying
// Block cipher.
type Stream struct {
	block   Block
	initial [16]byte // initial counter value, as configured at construction
	counter [16]byte // current counter value
	ks      [16]byte
	ksUsed  int
}

// New constructs a CTR Stream with the given 16-byte initial counter value.
func New(block Block, initialCounter [16]byte) *Stream {
	s := &Stream{block: block, initial: initialCounter, counter: initialCounter, ksUsed: 16}
	return s
}

// SetCounter recomputes the active counter as initial_counter + blockOffset
// (as a 128-bit big-endian addition) and discards any buffered keystream,
// matching the original's non-cumulative set_counter semantics.
func (s *Stream) SetCounter(blockOffset uint64) {
	s.counter = addOffset(s.initial, blockOffset)
	s.ksUsed = 16
}

func addOffset(counter [16]byte, offset uint64) [16]byte {
	var off [16]byte
	binary.BigEndian.PutUint64(off[8:], offset)
	var out [16]byte
	carry := uint16(0)
	for i := 15; i >= 0; i-- {
		sum := uint16(counter[i]) + uint16(off[i]) + carry
		out[i] = byte(sum)
		carry = sum >> 8
	}
	return out
}

func incr(counter *[16]byte) {
	for i := 15; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			return
		}
	}
}

// BlockSize reports the underlying block cipher's block size (16 for AES).
func (s *Stream) BlockSize() int { return s.block.BlockSize() }

// XORKeyStream XORs len(src) bytes of keystream into dst, advancing the
// counter as needed. dst and src may overlap exactly.
func (s *Stream) XORKeyStream(dst, src []byte) {
	for i := 0; i < len(src); i++ {
		if s.ksUsed == 16 {
			s.block.Encrypt(s.ks[:], s.counter[:])
			incr(&s.counter)
			s.ksUsed = 0
		}
		dst[i] = src[i] ^ s.ks[s.ksUsed]
		s.ksUsed++
	}
}
