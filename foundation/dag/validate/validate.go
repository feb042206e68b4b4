// Package validate implements admission control for candidate transactions.
// Check is a pure function over the transaction and the current ledger
// state: it reads, never mutates, and reports the first rule that fails.
package validate

import (
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// Check validates a candidate transaction against the current ledger state.
// The pipeline short-circuits: id, signature, then type-specific rules.
func Check(tx transaction.Tx, l *ledger.Ledger) error {
	if !tx.VerifyID() {
		return ErrInvalidID
	}

	if !tx.VerifySignature() {
		return ErrInvalidSignature
	}

	switch tx.Data.TxType {
	case transaction.TypeGenesis:
		return checkGenesis(tx, l)

	case transaction.TypeTransfer:
		return checkTransfer(tx, l)

	case transaction.TypeRelayReward:
		return checkRelayReward(tx, l)

	case transaction.TypeFounderGrant:
		return checkFounderGrant(tx, l)
	}

	return ErrInvalidID
}

// checkGenesis admits a genesis transaction only into a ledger that has none
// and only when both parents carry the zero sentinel.
func checkGenesis(tx transaction.Tx, l *ledger.Ledger) error {
	if _, exists := l.GenesisID(); exists {
		return ErrInvalidID
	}

	if !tx.Data.Parents[0].IsZero() || !tx.Data.Parents[1].IsZero() {
		return ErrParentNotFound
	}

	return nil
}

func checkTransfer(tx transaction.Tx, l *ledger.Ledger) error {
	if tx.Data.Amount == 0 {
		return ErrZeroAmount
	}

	if tx.Data.Amount > protocol.MaxSupply {
		return ErrExceedsMaxSupply
	}

	// Bounding the fee the same way keeps amount+fee below any overflow.
	if tx.Data.Fee > protocol.MaxSupply {
		return ErrExceedsMaxSupply
	}

	for _, parent := range tx.Data.Parents {
		if _, exists := l.Get(parent); !exists {
			return ErrParentNotFound
		}
	}

	balance := l.Balance(tx.Data.Sender)
	need := tx.Data.Amount + tx.Data.Fee
	if balance < need {
		return &InsufficientBalanceError{Have: balance, Need: need}
	}

	return nil
}

// checkRelayReward verifies the claim is self-directed, anchored to known
// parents and within the base reward bound. Whether the claimed amount is
// honest against relay activity is a network concern, not a local rule.
func checkRelayReward(tx transaction.Tx, l *ledger.Ledger) error {
	if tx.Data.Sender != tx.Data.Recipient {
		return ErrInvalidRelayReward
	}

	for _, parent := range tx.Data.Parents {
		if _, exists := l.Get(parent); !exists {
			return ErrParentNotFound
		}
	}

	if tx.Data.Amount > protocol.BaseRelayReward {
		return ErrInvalidRelayReward
	}

	return nil
}

// checkFounderGrant admits the one-time founder allocation through the
// general path so a node that receives the bootstrap pair from a peer can
// validate it: the sender must be the genesis signer, the amount must equal
// the protocol allocation, both parents must exist and no grant may already
// be present in the ledger.
func checkFounderGrant(tx transaction.Tx, l *ledger.Ledger) error {
	genesisID, exists := l.GenesisID()
	if !exists {
		return ErrInvalidFounderGrant
	}

	genesis, _ := l.Get(genesisID)
	if tx.Data.Sender != genesis.Tx.Data.Sender {
		return ErrInvalidFounderGrant
	}

	if tx.Data.Amount != protocol.FounderAllocation {
		return ErrInvalidFounderGrant
	}

	for _, parent := range tx.Data.Parents {
		if _, exists := l.Get(parent); !exists {
			return ErrParentNotFound
		}
	}

	for _, id := range l.TransactionIDs() {
		v, _ := l.Get(id)
		if v.Tx.Data.TxType == transaction.TypeFounderGrant {
			return ErrInvalidFounderGrant
		}
	}

	return nil
}
