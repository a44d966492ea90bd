// Package argon2 implements Argon2i, Argon2d and Argon2id (RFC 9106) as the
// project's KDF, grounded on original_source/include/crypto/argon2.h/.cpp.
// Lane fill is parallelized across goroutines with a reusable barrier
// (internal/syncutil.Barrier) synchronizing every lane between slices,
// joined through golang.org/x/sync/errgroup — mirroring the original's
// persistent per-lane worker threads plus phase-counter barrier, adapted
// to Go's goroutine-per-lane idiom.
package argon2

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/redeaux-corp/cryptopipe/internal/blake2b"
	"github.com/redeaux-corp/cryptopipe/internal/syncutil"
)

// Type selects the addressing mode.
type Type uint32

const (
	TypeD Type = iota
	TypeI
	TypeID
)

const (
	syncPoints     = 4
	version        = 0x13
	minMemoryLanes = 2 * syncPoints // memory cost floor is minMemoryLanes * parallelism KiB, RFC 9106 §3.1
	maxParallelism = 1 << 24
	minTagLen      = 4
)

// ErrInvalidParams is returned by Key when the cost parameters fall outside
// the bounds RFC 9106 §3.1 requires, mirroring
// original_source/include/libencrypt/kdf.cpp's check().
var ErrInvalidParams = errors.New("argon2: invalid parameters")

// Params bundles the tunable Argon2 cost parameters.
type Params struct {
	Time        uint32 // iterations
	MemoryKiB   uint32 // memory cost in KiB
	Parallelism uint32 // lanes
}

// Key derives outputLen bytes from password, salt, an optional secret key
// and optional associated data, using the given Type and Params — the
// Argon2 instance derivation this project's KDF facade exposes.
func Key(mode Type, password, salt, key, associatedData []byte, p Params, outputLen int) ([]byte, error) {
	if p.Time == 0 {
		return nil, fmt.Errorf("%w: time cost must be >= 1", ErrInvalidParams)
	}
	if p.Parallelism == 0 || p.Parallelism >= maxParallelism {
		return nil, fmt.Errorf("%w: parallelism must be in [1, %d)", ErrInvalidParams, maxParallelism)
	}
	if p.MemoryKiB < minMemoryLanes*p.Parallelism {
		return nil, fmt.Errorf("%w: memory cost must be >= %d KiB for parallelism %d", ErrInvalidParams, minMemoryLanes*p.Parallelism, p.Parallelism)
	}
	if outputLen < minTagLen {
		return nil, fmt.Errorf("%w: output length must be >= %d bytes", ErrInvalidParams, minTagLen)
	}

	memoryBlocks := p.MemoryKiB
	memoryBlocks -= memoryBlocks % (syncPoints * p.Parallelism)
	laneLength := memoryBlocks / p.Parallelism
	segmentLength := laneLength / syncPoints

	h0 := initialHash(password, salt, key, associatedData, p, mode, outputLen)

	memory := make([]block, memoryBlocks)
	if err := initialBlocks(memory, h0, laneLength, p.Parallelism); err != nil {
		return nil, err
	}

	if err := fillMemory(memory, p, laneLength, segmentLength, memoryBlocks, mode); err != nil {
		return nil, err
	}

	return finalize(memory, laneLength, p.Parallelism, outputLen), nil
}

func initialHash(password, salt, key, ad []byte, p Params, mode Type, outputLen int) [64]byte {
	d, _ := blake2b.New(64)
	var u32 [4]byte
	putU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(u32[:], v)
		d.Write(u32[:])
	}
	writeWithLen := func(b []byte) {
		putU32(uint32(len(b)))
		d.Write(b)
	}

	putU32(p.Parallelism)
	putU32(uint32(outputLen))
	putU32(p.MemoryKiB)
	putU32(p.Time)
	putU32(version)
	putU32(uint32(mode))
	writeWithLen(password)
	writeWithLen(salt)
	writeWithLen(key)
	writeWithLen(ad)

	var out [64]byte
	copy(out[:], d.Sum(nil))
	return out
}

func initialBlocks(memory []block, h0 [64]byte, laneLength, parallelism uint32) error {
	var seed [72]byte
	copy(seed[:64], h0[:])

	for lane := uint32(0); lane < parallelism; lane++ {
		binary.LittleEndian.PutUint32(seed[68:], lane)

		binary.LittleEndian.PutUint32(seed[64:68], 0)
		var b0 [1024]byte
		hashLong(b0[:], seed[:])
		loadBlock(&memory[lane*laneLength+0], b0[:])

		binary.LittleEndian.PutUint32(seed[64:68], 1)
		var b1 [1024]byte
		hashLong(b1[:], seed[:])
		loadBlock(&memory[lane*laneLength+1], b1[:])
	}
	return nil
}

func loadBlock(b *block, raw []byte) {
	for i := range b {
		b[i] = binary.LittleEndian.Uint64(raw[i*8:])
	}
}

func storeBlock(raw []byte, b *block) {
	for i, w := range b {
		binary.LittleEndian.PutUint64(raw[i*8:], w)
	}
}

func fillMemory(memory []block, p Params, laneLength, segmentLength, totalBlocks uint32, mode Type) error {
	barrier := syncutil.NewBarrier(int(p.Parallelism))
	g, _ := errgroup.WithContext(context.Background())

	for lane := uint32(0); lane < p.Parallelism; lane++ {
		lane := lane
		g.Go(func() error {
			for pass := uint32(0); pass < p.Time; pass++ {
				for slice := uint32(0); slice < syncPoints; slice++ {
					fillSegment(memory, pass, slice, lane, laneLength, p.Parallelism, segmentLength, totalBlocks, p.Time, mode)
					barrier.Wait()
				}
			}
			return nil
		})
	}

	return g.Wait()
}

func finalize(memory []block, laneLength, parallelism uint32, outputLen int) []byte {
	var result block
	lastCol := laneLength - 1
	result = memory[lastCol]
	for lane := uint32(1); lane < parallelism; lane++ {
		other := memory[lane*laneLength+lastCol]
		for i := range result {
			result[i] ^= other[i]
		}
	}

	var raw [1024]byte
	storeBlock(raw[:], &result)

	out := make([]byte, outputLen)
	hashLong(out, raw[:])
	return out
}
