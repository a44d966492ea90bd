// Package algo implements the small runtime-dispatch facades this project
// needs for cipher/mac/kdf selected by a CLI-supplied identifier, grounded on
// original_source/include/libencrypt/cipher.h/.cpp, mac.h/.cpp, kdf.h/.cpp.
// True polymorphic dispatch is an acceptable cost here: the hot path is
// per-chunk (internal/pipeline processes 1 MiB at a time), not per-byte.
package algo

import (
	"fmt"

	"github.com/redeaux-corp/cryptopipe/internal/aesblock"
	"github.com/redeaux-corp/cryptopipe/internal/chacha20"
	"github.com/redeaux-corp/cryptopipe/internal/ctr"
)

// CipherID identifies one of the supported stream ciphers.
type CipherID int

const (
	AES128CTR CipherID = iota
	AES192CTR
	AES256CTR
	ChaCha20
)

// ParseCipherID maps a CLI token (as accepted by -c) to a CipherID.
func ParseCipherID(s string) (CipherID, error) {
	switch s {
	case "aes-128-ctr":
		return AES128CTR, nil
	case "aes-192-ctr":
		return AES192CTR, nil
	case "aes-256-ctr":
		return AES256CTR, nil
	case "chacha20":
		return ChaCha20, nil
	default:
		return 0, fmt.Errorf("algo: unknown cipher algorithm %q", s)
	}
}

// KeyMaterialSize reports the number of key-derivation bytes this cipher's
// composite key layout consumes ("key(k/8 bytes) || counter" for AES-CTR,
// "key || counter || nonce" for ChaCha20).
func (id CipherID) KeyMaterialSize() int {
	switch id {
	case AES128CTR:
		return 16 + 16
	case AES192CTR:
		return 24 + 16
	case AES256CTR:
		return 32 + 16
	case ChaCha20:
		return chacha20.KeySize + 8 + chacha20.NonceSize
	default:
		return 0
	}
}

// StreamCipher is the common shape internal/pipeline drives: XOR a chunk
// of keystream into data, and reposition to an absolute block offset.
type StreamCipher interface {
	XORKeyStream(dst, src []byte)
	SetCounter(blockOffset uint64)
	BlockSize() int
}

// NewCipher builds a StreamCipher from id and its composite key material
// (exactly KeyMaterialSize(id) bytes, as produced by the KDF).
func NewCipher(id CipherID, keyMaterial []byte) (StreamCipher, error) {
	if len(keyMaterial) != id.KeyMaterialSize() {
		return nil, fmt.Errorf("algo: cipher key material must be %d bytes, got %d", id.KeyMaterialSize(), len(keyMaterial))
	}

	switch id {
	case AES128CTR, AES192CTR, AES256CTR:
		keyLen := id.KeyMaterialSize() - 16
		block, err := aesblock.New(keyMaterial[:keyLen])
		if err != nil {
			return nil, err
		}
		var counter [16]byte
		copy(counter[:], keyMaterial[keyLen:])
		return ctr.New(block, counter), nil

	case ChaCha20:
		var key [chacha20.KeySize]byte
		var nonce [chacha20.NonceSize]byte
		copy(key[:], keyMaterial[:32])
		initCounter := leU64(keyMaterial[32:40])
		copy(nonce[:], keyMaterial[40:48])
		return chacha20.New(key, nonce, initCounter), nil

	default:
		return nil, fmt.Errorf("algo: unknown cipher id %d", id)
	}
}

func leU64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
