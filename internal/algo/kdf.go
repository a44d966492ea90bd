package algo

import (
	"fmt"

	"github.com/redeaux-corp/cryptopipe/internal/argon2"
)

// ErrInvalidParams is argon2.ErrInvalidParams, re-exported so callers of
// DeriveKey don't need to import internal/argon2 directly just to classify
// its errors.
var ErrInvalidParams = argon2.ErrInvalidParams

// KdfID identifies one of the supported Argon2 addressing modes.
type KdfID int

const (
	Argon2i KdfID = iota
	Argon2d
	Argon2id
)

// ParseKdfID maps a CLI token (as accepted by -k's first field) to a KdfID.
func ParseKdfID(s string) (KdfID, error) {
	switch s {
	case "argon2i":
		return Argon2i, nil
	case "argon2d":
		return Argon2d, nil
	case "argon2id":
		return Argon2id, nil
	default:
		return 0, fmt.Errorf("algo: unknown KDF algorithm %q", s)
	}
}

func (id KdfID) argonType() argon2.Type {
	switch id {
	case Argon2i:
		return argon2.TypeI
	case Argon2d:
		return argon2.TypeD
	default:
		return argon2.TypeID
	}
}

// DeriveKey runs Argon2 with the given cost parameters to produce
// outputLen bytes of key material, dispatching on the algorithm the
// CLI selected by name.
func DeriveKey(id KdfID, password, salt, secret, associatedData []byte, time, memoryKiB, parallelism uint32, outputLen int) ([]byte, error) {
	params := argon2.Params{Time: time, MemoryKiB: memoryKiB, Parallelism: parallelism}
	return argon2.Key(id.argonType(), password, salt, secret, associatedData, params, outputLen)
}
