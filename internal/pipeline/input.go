package pipeline

import (
	"fmt"
	"io"
	"sync"
)

// InputMgr is the pipeline's single sequential reader, shared by every
// worker. Workers call NextChunk to claim the next chunk of input data in
// order; the manager hands out strictly increasing chunk positions so each
// worker can independently seek its per-worker cipher to the right block
// offset and so MacMgr/OutputMgr know what position a finished chunk
// belongs to.
//
// In decrypt mode the manager holds back reserveSize trailing bytes at all
// times: the stream's authentication tag(s) cannot be distinguished from
// ciphertext until the whole input has been read, so output must never be
// released for bytes that might still turn out to be part of the tag. This
// is exactly why, per the original CLI's NOTES section, decryption should
// not be used in a shell pipeline — the reserve necessarily trails
// real-time consumption.
type InputMgr struct {
	mu          sync.Mutex
	r           io.Reader
	chunkSize   int
	reserveSize int
	buf         []byte
	eof         bool
	nextPos     uint64
	readErr     error
}

// NewInputMgr constructs an InputMgr over r. reserveSize is 0 when
// encrypting (nothing needs to be held back) and equal to the suite's
// combined MAC output size when decrypting.
func NewInputMgr(r io.Reader, chunkSize, reserveSize int) *InputMgr {
	return &InputMgr{r: r, chunkSize: chunkSize, reserveSize: reserveSize}
}

// Chunk is one unit of work: plaintext or ciphertext bytes at a known
// stream position.
type Chunk struct {
	Data []byte
	Pos  uint64 // chunk index, i.e. byte offset / chunkSize
}

// fill reads from the underlying reader until the buffer holds at least n
// bytes or EOF is reached.
func (m *InputMgr) fill(n int) error {
	for len(m.buf) < n && !m.eof {
		chunk := make([]byte, m.chunkSize)
		read, err := io.ReadFull(m.r, chunk)
		if read > 0 {
			m.buf = append(m.buf, chunk[:read]...)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			m.eof = true
		} else if err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	return nil
}

// NextChunk returns the next chunk of data available for processing, or
// ok=false once the payload is exhausted (with tail, if any, retrievable
// via Tail). It blocks (briefly, via an internal read) while more input is
// fetched from the underlying reader.
func (m *InputMgr) NextChunk() (c Chunk, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fill(m.chunkSize + m.reserveSize + 1); err != nil {
		return Chunk{}, false, err
	}

	available := len(m.buf) - m.reserveSize
	if available <= 0 {
		if m.eof && len(m.buf) < m.reserveSize {
			return Chunk{}, false, fmt.Errorf("%w", ErrShortInput)
		}
		return Chunk{}, false, nil
	}

	n := m.chunkSize
	if n > available {
		n = available
	}

	data := make([]byte, n)
	copy(data, m.buf[:n])
	m.buf = m.buf[n:]

	pos := m.nextPos
	m.nextPos++

	return Chunk{Data: data, Pos: pos}, true, nil
}

// Tail returns the reserveSize bytes held back at the end of the stream —
// the authentication tag(s) — once NextChunk has reported exhaustion. It
// must only be called after the final NextChunk call returned ok=false
// with a nil error.
func (m *InputMgr) Tail() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.buf) < m.reserveSize {
		return nil, fmt.Errorf("%w", ErrShortInput)
	}
	return m.buf[:m.reserveSize], nil
}
