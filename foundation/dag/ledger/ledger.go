// Package ledger implements the DAG store: an arena of vertices keyed by
// transaction id, reverse child adjacency, the tip frontier and the
// incremental cumulative-weight algorithm that drives finality.
//
// The ledger is not internally thread safe. Exactly one logical writer must
// mutate it at a time; the state package provides that discipline.
package ledger

import (
	"fmt"
	"sort"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// Ledger owns the full vertex set and its derived collections. Nothing is
// ever removed from a ledger.
type Ledger struct {
	vertices   map[digest.Digest]*Vertex
	children   map[digest.Digest][]digest.Digest
	tips       []digest.Digest
	genesisID  digest.Digest
	hasGenesis bool
	maxDepth   uint64
}

// New constructs an empty ledger.
func New() *Ledger {
	return &Ledger{
		vertices: make(map[digest.Digest]*Vertex),
		children: make(map[digest.Digest][]digest.Digest),
	}
}

// Insert admits a transaction into the ledger. A duplicate id is rejected
// with ErrDuplicateTransaction and a non-genesis transaction whose parents
// are not all present is rejected with MissingParentError. A failed call
// leaves the ledger untouched. On success the adjacency, tip set, genesis
// identity and cumulative weights are all updated before returning.
func (l *Ledger) Insert(tx transaction.Tx) error {
	if _, exists := l.vertices[tx.ID]; exists {
		return ErrDuplicateTransaction
	}

	// A transaction is genesis only when both parents carry the zero
	// sentinel. A single sentinel parent is malformed and falls through
	// to the parent-existence check, which can never satisfy it.
	isGenesis := tx.Data.Parents[0].IsZero() && tx.Data.Parents[1].IsZero()

	// Reject before any mutation so failure has no partial effects.
	if !isGenesis {
		for _, parent := range tx.Data.Parents {
			if _, exists := l.vertices[parent]; !exists {
				return &MissingParentError{Parent: parent}
			}
		}
	}

	var depth uint64
	if len(l.vertices) > 0 {
		depth = l.maxDepth + 1
	}
	v := newVertex(tx, depth)

	if !isGenesis {
		for _, parent := range distinct(tx.Data.Parents) {
			l.children[parent] = append(l.children[parent], tx.ID)
			l.removeTip(parent)
		}
	}

	if isGenesis && !l.hasGenesis {
		l.genesisID = tx.ID
		l.hasGenesis = true
	}

	l.tips = append(l.tips, tx.ID)
	l.vertices[tx.ID] = v
	if depth > l.maxDepth {
		l.maxDepth = depth
	}

	l.propagateWeight(tx.ID)

	return nil
}

// propagateWeight walks the parent edges from the newly inserted vertex and
// adds one to the cumulative weight of every distinct ancestor. The visited
// set guarantees a single increment per ancestor per insertion even when the
// ancestor is reachable over multiple paths.
func (l *Ledger) propagateWeight(from digest.Digest) {
	visited := map[digest.Digest]bool{from: true}

	stack := make([]digest.Digest, 0, protocol.ParentCount)
	for _, parent := range l.vertices[from].Parents() {
		if !parent.IsZero() {
			stack = append(stack, parent)
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[id] {
			continue
		}
		visited[id] = true

		v, exists := l.vertices[id]
		if !exists {

			// Insert confirmed every parent chain is anchored in the
			// ledger, so a missing ancestor is a defect in this code.
			panic(fmt.Sprintf("ledger: ancestor %s not found during weight propagation", id))
		}

		v.CumulativeWeight++
		if v.CumulativeWeight >= protocol.FinalityThreshold {
			v.IsFinal = true
		}

		for _, parent := range v.Parents() {
			if !parent.IsZero() {
				stack = append(stack, parent)
			}
		}
	}
}

// SelectParents chooses the two tips a new transaction should approve. An
// empty ledger yields the zero digest pair, which is only legal for building
// a genesis transaction. A single tip is returned twice. With more tips the
// two deepest win; equal depths keep their relative order in the tip list,
// which records insertion order.
func (l *Ledger) SelectParents() [protocol.ParentCount]digest.Digest {
	switch len(l.tips) {
	case 0:
		return [protocol.ParentCount]digest.Digest{{}, {}}

	case 1:
		return [protocol.ParentCount]digest.Digest{l.tips[0], l.tips[0]}
	}

	sorted := make([]digest.Digest, len(l.tips))
	copy(sorted, l.tips)
	sort.SliceStable(sorted, func(i, j int) bool {
		return l.vertices[sorted[i]].Depth > l.vertices[sorted[j]].Depth
	})

	return [protocol.ParentCount]digest.Digest{sorted[0], sorted[1]}
}

// Balance computes the funds available to a public key with a full scan of
// the ledger: credit every transaction received, debit amount plus fee for
// every transaction sent to someone else. Self-directed transactions such as
// relay rewards never debit. A negative running total is clamped to zero.
func (l *Ledger) Balance(pub keys.PublicKey) uint64 {
	var balance int64

	for _, v := range l.vertices {
		data := v.Tx.Data

		if data.Recipient == pub {
			balance += int64(data.Amount)
		}

		if data.Sender == pub && data.Recipient != pub {
			balance -= int64(data.Amount)
			balance -= int64(data.Fee)
		}
	}

	if balance < 0 {
		return 0
	}
	return uint64(balance)
}

// Get returns a copy of the vertex for the specified transaction id.
func (l *Ledger) Get(id digest.Digest) (Vertex, bool) {
	v, exists := l.vertices[id]
	if !exists {
		return Vertex{}, false
	}
	return *v, true
}

// Tips returns a copy of the current tip set in insertion order.
func (l *Ledger) Tips() []digest.Digest {
	tips := make([]digest.Digest, len(l.tips))
	copy(tips, l.tips)
	return tips
}

// TransactionIDs returns the ids of every vertex in the ledger.
func (l *Ledger) TransactionIDs() []digest.Digest {
	ids := make([]digest.Digest, 0, len(l.vertices))
	for id := range l.vertices {
		ids = append(ids, id)
	}
	return ids
}

// GenesisID returns the id of the genesis vertex if one has been inserted.
func (l *Ledger) GenesisID() (digest.Digest, bool) {
	return l.genesisID, l.hasGenesis
}

// Depth returns the maximum depth of any vertex.
func (l *Ledger) Depth() uint64 {
	return l.maxDepth
}

// Len returns the number of vertices in the ledger.
func (l *Ledger) Len() int {
	return len(l.vertices)
}

// removeTip drops the specified id from the tip list if present.
func (l *Ledger) removeTip(id digest.Digest) {
	for i, tip := range l.tips {
		if tip == id {
			l.tips = append(l.tips[:i], l.tips[i+1:]...)
			return
		}
	}
}

// distinct collapses a duplicate parent pair, which occurs whenever a
// transaction approves a single tip twice.
func distinct(parents [protocol.ParentCount]digest.Digest) []digest.Digest {
	if parents[0] == parents[1] {
		return parents[:1]
	}
	return parents[:]
}
