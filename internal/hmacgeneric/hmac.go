// Package hmacgeneric implements RFC 2104 HMAC generically over any
// hash.Hash constructor, mirroring the template<typename Hash> shape of
// original_source/include/crypto/HMAC.h. This project's HMAC
// variants all use a fixed 32-byte key regardless of the underlying hash;
// that fixed-width convention is enforced by internal/algo, not here — this
// package accepts any key length, as RFC 2104 itself does.
package hmacgeneric

import "hash"

// Digest implements hash.Hash for HMAC over an arbitrary hash constructor.
// It relies on the underlying hash's Sum not mutating its receiver, which
// every hash in this repository (internal/sha1, internal/sha256,
// internal/sha512, internal/blake2b, internal/blake2s) guarantees by
// finalizing a copy of its state.
type Digest struct {
	newHash func() hash.Hash
	ipad    []byte
	opad    []byte
	inner   hash.Hash
}

// New returns an HMAC Digest using newHash() as the underlying hash and key
// as the HMAC key, per RFC 2104 §2.
func New(newHash func() hash.Hash, key []byte) *Digest {
	d := &Digest{newHash: newHash}
	d.setKey(key)
	return d
}

func (d *Digest) setKey(key []byte) {
	h := d.newHash()
	blockSize := h.BlockSize()

	if len(key) > blockSize {
		h.Write(key)
		key = h.Sum(nil)
	}

	d.ipad = make([]byte, blockSize)
	d.opad = make([]byte, blockSize)
	copy(d.ipad, key)
	copy(d.opad, key)
	for i := range d.ipad {
		d.ipad[i] ^= 0x36
		d.opad[i] ^= 0x5c
	}

	d.inner = d.newHash()
	d.inner.Write(d.ipad)
}

func (d *Digest) Write(p []byte) (int, error) { return d.inner.Write(p) }
func (d *Digest) Size() int                   { return d.newHash().Size() }
func (d *Digest) BlockSize() int              { return d.inner.BlockSize() }

// Reset restores the digest to the state right after the key was absorbed,
// discarding any message bytes written since.
func (d *Digest) Reset() {
	d.inner = d.newHash()
	d.inner.Write(d.ipad)
}

func (d *Digest) Sum(b []byte) []byte {
	innerSum := d.inner.Sum(nil)
	outer := d.newHash()
	outer.Write(d.opad)
	outer.Write(innerSum)
	return append(b, outer.Sum(nil)...)
}
