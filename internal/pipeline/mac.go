package pipeline

import (
	"github.com/redeaux-corp/cryptopipe/internal/algo"
	"github.com/redeaux-corp/cryptopipe/internal/syncutil"
)

// MacMgr serializes MAC updates across every configured MAC in the suite
// so that, regardless of which worker finishes a chunk's cipher work
// first, every MAC sees ciphertext bytes in original stream order — the
// one invariant that is essential for authentication to mean anything.
type MacMgr struct {
	macs []algo.MAC
	gate *syncutil.OrderedGate
}

// NewMacMgr constructs a MacMgr over the suite's MACs, admitting updates
// starting at position 0.
func NewMacMgr(macs []algo.MAC) *MacMgr {
	return &MacMgr{macs: macs, gate: syncutil.NewOrderedGate(0)}
}

// Update blocks until it is pos's turn, feeds data to every MAC, and
// admits the next position. It reports whether the gate is still live.
func (m *MacMgr) Update(pos uint64, data []byte) bool {
	if !m.gate.Enter(pos) {
		return false
	}
	defer m.gate.Leave()

	for _, mac := range m.macs {
		mac.Write(data)
	}
	return true
}

// Abort releases any workers blocked waiting for their turn to update.
func (m *MacMgr) Abort() { m.gate.Abort() }

// Sums returns the finalized tag of every configured MAC, concatenated in
// suite order — the tag(s) half of the wire format's
// "[salt?] || ciphertext || tag(s)" layout.
func (m *MacMgr) Sums() []byte {
	var out []byte
	for _, mac := range m.macs {
		out = mac.Sum(out)
	}
	return out
}
