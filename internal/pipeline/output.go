package pipeline

import (
	"fmt"
	"io"

	"github.com/redeaux-corp/cryptopipe/internal/syncutil"
)

// OutputMgr writes finished chunks to the underlying writer strictly in
// stream order, even though workers finish their cipher work out of order.
// It uses its own OrderedGate independent from MacMgr's, so writing chunk N
// can proceed as soon as chunk N is ready without waiting on the MAC's
// progress — MAC updates and output writes are two independently ordered
// sections, not one shared one.
type OutputMgr struct {
	w     io.Writer
	gate  *syncutil.OrderedGate
	werr  error
}

// NewOutputMgr constructs an OutputMgr writing to w, admitting chunks
// starting at position 0.
func NewOutputMgr(w io.Writer) *OutputMgr {
	return &OutputMgr{w: w, gate: syncutil.NewOrderedGate(0)}
}

// Write blocks until it is pos's turn, writes data, and admits the next
// position. It reports whether the gate is still live — a caller seeing
// false must abandon the pipeline immediately.
func (o *OutputMgr) Write(pos uint64, data []byte) bool {
	if !o.gate.Enter(pos) {
		return false
	}
	defer o.gate.Leave()

	if o.werr == nil {
		if _, err := o.w.Write(data); err != nil {
			o.werr = fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	return o.werr == nil
}

// Err returns the first write error encountered, if any.
func (o *OutputMgr) Err() error { return o.werr }

// Abort releases any workers blocked waiting for their turn to write.
func (o *OutputMgr) Abort() { o.gate.Abort() }
