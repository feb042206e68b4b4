package state

import (
	"errors"

	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/rhizanet/rhiza/foundation/dag/validate"
)

// SubmitWalletTransaction accepts a transaction from a wallet for inclusion
// in the ledger and shares it with the known peers.
func (s *State) SubmitWalletTransaction(tx transaction.Tx) error {
	if err := s.acceptTransaction(tx); err != nil {
		return err
	}

	s.Worker.SignalShareTx(tx)

	return nil
}

// SubmitNodeTransaction accepts a transaction gossiped by another node.
// Transactions already present in the ledger are not an error here since
// gossip echoes the same transaction along many paths.
func (s *State) SubmitNodeTransaction(tx transaction.Tx) error {
	err := s.acceptTransaction(tx)
	switch {
	case err == nil:
		s.Worker.SignalShareTx(tx)
		return nil

	case isDuplicate(err):
		return nil

	default:
		return err
	}
}

// =============================================================================

// acceptTransaction validates the transaction against the current ledger
// and, on success, admits and persists it under the write lock.
func (s *State) acceptTransaction(tx transaction.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Duplicates are resolved before the rule checks so a gossip echo of
	// an existing transaction never reads as a rule violation.
	if _, exists := s.ledger.Get(tx.ID); exists {
		return ledger.ErrDuplicateTransaction
	}

	if err := validate.Check(tx, s.ledger); err != nil {
		s.evHandler("state: acceptTransaction: rejected tx[%s]: %s", tx.ID, err)
		return err
	}

	if err := s.ledger.Insert(tx); err != nil {
		return err
	}

	if err := s.storage.Write(tx); err != nil {
		return err
	}

	s.evHandler("state: acceptTransaction: accepted %s tx[%s]", transaction.TypeName(tx.Data.TxType), tx.ID)

	return nil
}

// isDuplicate reports whether the error marks a transaction the ledger
// already holds.
func isDuplicate(err error) bool {
	return errors.Is(err, ledger.ErrDuplicateTransaction)
}
