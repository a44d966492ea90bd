package pipeline

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/redeaux-corp/cryptopipe/internal/algo"
)

// ChunkSize is the fixed unit of work the pipeline reads, transforms and
// writes at a time: 1 MiB, a multiple of every supported cipher's block
// size (16 bytes for AES, 64 for ChaCha20).
const ChunkSize = 1 << 20

// workerCiphers builds one independent StreamCipher chain per worker
// goroutine, since a StreamCipher's internal counter is not safe for
// concurrent use, so each worker gets its own deep-cloned cipher chain.
func workerCiphers(suite algo.Suite, cipherKeyMaterial []byte) ([]algo.StreamCipher, error) {
	return suite.BuildCiphers(cipherKeyMaterial)
}

// seekCiphers repositions every cipher in chain to the block offset
// corresponding to chunk position pos, per cipher's own block size — the
// set_counter(block_offset) contract each StreamCipher implements.
func seekCiphers(chain []algo.StreamCipher, pos uint64) {
	for _, c := range chain {
		blocksPerChunk := uint64(ChunkSize / c.BlockSize())
		c.SetCounter(pos * blocksPerChunk)
	}
}

// Encrypt reads plaintext from r, writes ciphertext || tag(s) to w (it
// writes no salt; EncryptStream does that before calling it), and returns
// once the whole stream (and every worker) has finished.
// cipherKeyMaterial is the cipher-key prefix of the suite's KDF output;
// macs is the suite's shared, already-keyed MAC set.
func Encrypt(ctx context.Context, r io.Reader, w io.Writer, suite algo.Suite, cipherKeyMaterial []byte, macs []algo.MAC, threads int) error {
	in := NewInputMgr(r, ChunkSize, 0)
	out := NewOutputMgr(w)
	macMgr := NewMacMgr(macs)

	g, gctx := errgroup.WithContext(ctx)
	_ = gctx
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			chain, err := workerCiphers(suite, cipherKeyMaterial)
			if err != nil {
				return err
			}
			for {
				chunk, ok, err := in.NextChunk()
				if err != nil {
					out.Abort()
					macMgr.Abort()
					return err
				}
				if !ok {
					return nil
				}

				seekCiphers(chain, chunk.Pos)
				for _, c := range chain {
					c.XORKeyStream(chunk.Data, chunk.Data)
				}

				if !macMgr.Update(chunk.Pos, chunk.Data) {
					return fmt.Errorf("%w: aborted", ErrInternal)
				}
				if !out.Write(chunk.Pos, chunk.Data) {
					return fmt.Errorf("%w: aborted", ErrInternal)
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := out.Err(); err != nil {
		return err
	}

	if _, err := w.Write(macMgr.Sums()); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// Decrypt reads ciphertext || tag(s) from r, writes plaintext to w, and
// returns ErrAuthenticationFailure if the computed tag does not match the
// trailing tag(s) read from the stream. A mismatch is
// fatal but does not retract plaintext already written — callers must
// treat that output as tainted.
func Decrypt(ctx context.Context, r io.Reader, w io.Writer, suite algo.Suite, cipherKeyMaterial []byte, macs []algo.MAC, threads int) error {
	reserve := suite.MacOutputSize()
	in := NewInputMgr(r, ChunkSize, reserve)
	out := NewOutputMgr(w)
	macMgr := NewMacMgr(macs)

	g, gctx := errgroup.WithContext(ctx)
	_ = gctx
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			chain, err := workerCiphers(suite, cipherKeyMaterial)
			if err != nil {
				return err
			}
			for {
				chunk, ok, err := in.NextChunk()
				if err != nil {
					out.Abort()
					macMgr.Abort()
					return err
				}
				if !ok {
					return nil
				}

				if !macMgr.Update(chunk.Pos, chunk.Data) {
					return fmt.Errorf("%w: aborted", ErrInternal)
				}

				seekCiphers(chain, chunk.Pos)
				for i := len(chain) - 1; i >= 0; i-- {
					chain[i].XORKeyStream(chunk.Data, chunk.Data)
				}

				if !out.Write(chunk.Pos, chunk.Data) {
					return fmt.Errorf("%w: aborted", ErrInternal)
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := out.Err(); err != nil {
		return err
	}

	tail, err := in.Tail()
	if err != nil {
		return err
	}
	computed := macMgr.Sums()
	if subtle.ConstantTimeCompare(tail, computed) != 1 {
		return fmt.Errorf("%w", ErrAuthenticationFailure)
	}
	return nil
}
