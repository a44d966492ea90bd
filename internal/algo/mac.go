package algo

import (
	"fmt"
	"hash"

	"github.com/redeaux-corp/cryptopipe/internal/hmacgeneric"
	"github.com/redeaux-corp/cryptopipe/internal/poly1305"
	"github.com/redeaux-corp/cryptopipe/internal/sha1"
	"github.com/redeaux-corp/cryptopipe/internal/sha256"
	"github.com/redeaux-corp/cryptopipe/internal/sha512"
)

// MacID identifies one of the supported MAC algorithms.
type MacID int

const (
	HMACSHA1 MacID = iota
	HMACSHA256
	HMACSHA512
	Poly1305MAC
)

// hmacKeySize is the fixed HMAC key length this project uses regardless of
// the underlying hash, matching this project's fixed-width MAC key convention.
const hmacKeySize = 32

// ParseMacID maps a CLI token (as accepted by -m) to a MacID.
func ParseMacID(s string) (MacID, error) {
	switch s {
	case "hmac-sha1":
		return HMACSHA1, nil
	case "hmac-sha256":
		return HMACSHA256, nil
	case "hmac-sha512":
		return HMACSHA512, nil
	case "poly1305":
		return Poly1305MAC, nil
	default:
		return 0, fmt.Errorf("algo: unknown MAC algorithm %q", s)
	}
}

// KeyMaterialSize reports the number of key-derivation bytes this MAC
// consumes.
func (id MacID) KeyMaterialSize() int {
	switch id {
	case Poly1305MAC:
		return poly1305.KeySize
	default:
		return hmacKeySize
	}
}

// OutputSize reports the MAC's tag length in bytes.
func (id MacID) OutputSize() int {
	switch id {
	case HMACSHA1:
		return sha1.Size
	case HMACSHA256:
		return sha256.Size256
	case HMACSHA512:
		return 64
	case Poly1305MAC:
		return poly1305.TagSize
	default:
		return 0
	}
}

// MAC is the common shape internal/pipeline drives: absorb bytes, finalize
// a tag. Poly1305 is one-time-per-key, so Sum must be called at most once
// per MAC instance — internal/pipeline respects this by constructing one
// MAC per stream, never resetting it mid-stream.
type MAC interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
}

// NewMAC builds a MAC from id and its key material (exactly
// KeyMaterialSize(id) bytes).
func NewMAC(id MacID, keyMaterial []byte) (MAC, error) {
	if len(keyMaterial) != id.KeyMaterialSize() {
		return nil, fmt.Errorf("algo: MAC key material must be %d bytes, got %d", id.KeyMaterialSize(), len(keyMaterial))
	}

	switch id {
	case HMACSHA1:
		return hmacgeneric.New(func() hash.Hash { return sha1.New() }, keyMaterial), nil
	case HMACSHA256:
		return hmacgeneric.New(func() hash.Hash { return sha256.New() }, keyMaterial), nil
	case HMACSHA512:
		return hmacgeneric.New(func() hash.Hash { return sha512.New(sha512.Variant512) }, keyMaterial), nil
	case Poly1305MAC:
		var key [poly1305.KeySize]byte
		copy(key[:], keyMaterial)
		d := &poly1305.Digest{}
		d.Init(&key)
		return d, nil
	default:
		return nil, fmt.Errorf("algo: unknown MAC id %d", id)
	}
}
