package state

import (
	"errors"

	"github.com/rhizanet/rhiza/foundation/dag/consensus"
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/rhizanet/rhiza/foundation/dag/validate"
)

// ErrInvalidRelayProof is returned when a relay proof fails signature
// verification.
var ErrInvalidRelayProof = errors.New("relay proof signature is invalid")

// ErrUnknownRelayedTx is returned when a relay proof references a
// transaction the ledger does not hold.
var ErrUnknownRelayedTx = errors.New("relayed transaction not found in ledger")

// BuildRelayProof signs a relay attestation for the specified transaction
// with this node's key.
func (s *State) BuildRelayProof(relayedID digest.Digest, hopCount uint8) consensus.Proof {
	return consensus.NewProof(s.nodeKeys, relayedID, hopCount)
}

// SubmitRelayProof verifies a relay proof from the network and credits the
// relayer. The returned amount is the reward earned by this relay, zero
// once issuance reaches the supply cap.
func (s *State) SubmitRelayProof(proof consensus.Proof) (uint64, error) {
	if !proof.Verify() {
		return 0, ErrInvalidRelayProof
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ledger.Get(proof.TransactionID); !exists {
		return 0, ErrUnknownRelayedTx
	}

	reward := s.tracker.RecordRelay(proof.Relayer)
	s.evHandler("state: SubmitRelayProof: relayer[%s] hop[%d] reward[%d]", proof.Relayer, proof.HopCount, reward)

	return reward, nil
}

// RecordLocalRelay credits this node for relaying the specified transaction
// and, when the relay earns a reward, mints the self-directed reward claim
// into the ledger. The minted transaction is returned for sharing.
func (s *State) RecordLocalRelay(relayedID digest.Digest) (transaction.Tx, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reward := s.tracker.RecordRelay(s.nodeKeys.PublicKey())
	if reward == 0 {
		s.evHandler("state: RecordLocalRelay: relayed tx[%s]: issuance at supply cap", relayedID)
		return transaction.Tx{}, 0, nil
	}

	parents := s.ledger.SelectParents()
	nonce := s.tracker.Count(s.nodeKeys.PublicKey())

	tx := transaction.RelayReward(s.nodeKeys, reward, parents, nonce)

	if err := validate.Check(tx, s.ledger); err != nil {
		return transaction.Tx{}, 0, err
	}
	if err := s.ledger.Insert(tx); err != nil {
		return transaction.Tx{}, 0, err
	}
	if err := s.storage.Write(tx); err != nil {
		return transaction.Tx{}, 0, err
	}

	s.evHandler("state: RecordLocalRelay: reward tx[%s] amount[%d]", tx.ID, reward)

	return tx, reward, nil
}
