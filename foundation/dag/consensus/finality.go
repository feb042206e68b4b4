// Package consensus provides the read-only observers of ledger state: the
// finality rule, the from-scratch weight auditor, and the relay tracker that
// drives the Proof of Relay reward schedule.
package consensus

import (
	"fmt"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
)

// Set of confirmation states derived from stored weight.
const (
	StatusUnknown    = "unknown"
	StatusPending    = "pending"
	StatusConfirming = "confirming"
	StatusFinal      = "final"
)

// Status describes how far a transaction has progressed toward finality.
type Status struct {
	State  string `json:"state"`
	Weight uint64 `json:"weight,omitempty"`
	Needed uint64 `json:"needed,omitempty"`
}

// String implements the fmt.Stringer interface.
func (s Status) String() string {
	if s.State == StatusConfirming {
		return fmt.Sprintf("%s (%d/%d)", s.State, s.Weight, s.Needed)
	}
	return s.State
}

// IsFinal reports whether the transaction exists and its cumulative weight
// has reached the finality threshold.
func IsFinal(l *ledger.Ledger, id digest.Digest) bool {
	v, exists := l.Get(id)
	if !exists {
		return false
	}

	return v.CumulativeWeight >= protocol.FinalityThreshold
}

// StatusOf derives the confirmation status for a transaction: Unknown when
// absent, Final at or past the threshold, Confirming with any approvals
// below it, Pending with only its own weight.
func StatusOf(l *ledger.Ledger, id digest.Digest) Status {
	v, exists := l.Get(id)
	if !exists {
		return Status{State: StatusUnknown}
	}

	switch {
	case v.CumulativeWeight >= protocol.FinalityThreshold:
		return Status{State: StatusFinal}

	case v.CumulativeWeight > 1:
		return Status{State: StatusConfirming, Weight: v.CumulativeWeight, Needed: protocol.FinalityThreshold}
	}

	return Status{State: StatusPending}
}

// FinalTransactions returns the ids of every transaction that has reached
// finality.
func FinalTransactions(l *ledger.Ledger) []digest.Digest {
	var final []digest.Digest
	for _, id := range l.TransactionIDs() {
		if IsFinal(l, id) {
			final = append(final, id)
		}
	}

	return final
}
