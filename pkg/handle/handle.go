// Package handle exposes the aligner behind integer handles and flat
// status codes, the contract embedders and FFI shims build on: no
// graph types cross the boundary, only handles, byte slices, strings
// and status ints.
package handle

import (
	"sync"

	"github.com/poagraph/poag/internal/poa"
)

// Status reports the outcome of a handle operation.
type Status int32

const (
	// StatusOK means the operation succeeded.
	StatusOK Status = 0

	// StatusInvalidHandle means the handle is unknown, already freed,
	// or an argument failed validation.
	StatusInvalidHandle Status = -1

	// StatusSeedFailed means the first sequence could not seed its graph.
	StatusSeedFailed Status = -2

	// StatusMergeFailed means aligning or folding a sequence failed.
	StatusMergeFailed Status = -3
)

// Handle identifies one graph owned by a Table. The zero Handle is
// never valid.
type Handle int64

// Table owns a set of graphs addressed by opaque handles. Handles stay
// invalid after FreeGraph; they are never reused. All methods are safe
// for concurrent use.
type Table struct {
	mu     sync.Mutex
	next   Handle
	graphs map[Handle]*poa.Graph
}

// NewTable returns an empty handle table.
func NewTable() *Table {
	return &Table{graphs: make(map[Handle]*poa.Graph)}
}

// CreateGraph allocates an empty graph and returns its handle.
func (t *Table) CreateGraph() Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.graphs[t.next] = poa.New()
	return t.next
}

// FreeGraph releases the graph behind h. Freeing an unknown or already
// freed handle is a no-op; later operations on h report
// StatusInvalidHandle.
func (t *Table) FreeGraph(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.graphs, h)
}

// AddSequence aligns seq into the graph behind h with a weight of one
// per base. Sequences are named seq_0, seq_1, ... in insertion order.
func (t *Table) AddSequence(h Handle, seq []byte, mismatch, gapOpen, gapExt uint32) Status {
	return t.AddSequenceWeighted(h, seq, 1, mismatch, gapOpen, gapExt)
}

// AddSequenceWeighted is AddSequence with every base counting weight
// times. Engine panics are converted to a failure status instead of
// crossing the boundary.
func (t *Table) AddSequenceWeighted(h Handle, seq []byte, weight, mismatch, gapOpen, gapExt uint32) (st Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.graphs[h]
	if !ok || len(seq) == 0 || weight == 0 {
		return StatusInvalidHandle
	}
	seeding := g.IsEmpty()
	defer func() {
		if recover() != nil {
			if seeding {
				st = StatusSeedFailed
			} else {
				st = StatusMergeFailed
			}
		}
	}()
	p := poa.Penalties{Mismatch: mismatch, GapOpen: gapOpen, GapExt: gapExt}
	if err := g.AddSequenceWeighted("", seq, int(weight), p); err != nil {
		if seeding {
			return StatusSeedFailed
		}
		return StatusMergeFailed
	}
	return StatusOK
}

// MSA returns one gapped row per sequence, in insertion order.
func (t *Table) MSA(h Handle) ([]string, Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.graphs[h]
	if !ok {
		return nil, StatusInvalidHandle
	}
	return g.MSA().Rows, StatusOK
}

// VariationGraph returns the graph serialized as GFA v1.0.
func (t *Table) VariationGraph(h Handle) (string, Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.graphs[h]
	if !ok {
		return "", StatusInvalidHandle
	}
	return g.GFA(), StatusOK
}
