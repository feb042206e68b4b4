package ledger

import (
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// Vertex wraps a transaction with the metadata the ledger derives for it.
// Only CumulativeWeight and IsFinal change after insertion, both
// monotonically: weight only grows and finality never flips back.
type Vertex struct {
	Tx               transaction.Tx `json:"tx"`
	CumulativeWeight uint64         `json:"cumulative_weight"`
	OwnWeight        uint64         `json:"own_weight"`
	IsFinal          bool           `json:"is_final"`
	Depth            uint64         `json:"depth"`
}

// newVertex constructs a vertex carrying its own weight of one.
func newVertex(tx transaction.Tx, depth uint64) *Vertex {
	return &Vertex{
		Tx:               tx,
		CumulativeWeight: 1,
		OwnWeight:        1,
		Depth:            depth,
	}
}

// Parents returns the two parent references of the wrapped transaction.
func (v *Vertex) Parents() [protocol.ParentCount]digest.Digest {
	return v.Tx.Data.Parents
}
