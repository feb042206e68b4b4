package consensus

import (
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
)

// AllWeights recomputes the cumulative weight of every vertex from scratch,
// independent of the incremental algorithm the ledger runs at insertion
// time. Each vertex starts at its own weight of one, then contributes one to
// every distinct ancestor it can reach over parent edges. After any valid
// sequence of insertions the result must match the incrementally maintained
// weights, which makes this the verification oracle for that algorithm.
func AllWeights(l *ledger.Ledger) map[digest.Digest]uint64 {
	ids := l.TransactionIDs()

	weights := make(map[digest.Digest]uint64, len(ids))
	for _, id := range ids {
		weights[id] = 1
	}

	for _, id := range ids {
		visited := map[digest.Digest]bool{id: true}

		v, _ := l.Get(id)
		var stack []digest.Digest
		for _, parent := range v.Parents() {
			if !parent.IsZero() {
				stack = append(stack, parent)
			}
		}

		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if visited[current] {
				continue
			}
			visited[current] = true

			weights[current]++

			cv, exists := l.Get(current)
			if !exists {
				continue
			}
			for _, parent := range cv.Parents() {
				if !parent.IsZero() {
					stack = append(stack, parent)
				}
			}
		}
	}

	return weights
}

// ConfirmationScore maps a cumulative weight to a fraction of the finality
// threshold, capped at 1.
func ConfirmationScore(weight uint64) float64 {
	score := float64(weight) / float64(protocol.FinalityThreshold)
	if score > 1 {
		return 1
	}
	return score
}
