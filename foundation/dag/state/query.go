package state

import (
	"errors"
	"fmt"

	"github.com/rhizanet/rhiza/foundation/dag/consensus"
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/genesis"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/peer"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// ErrTxNotFound is returned when a queried transaction is not in the ledger.
var ErrTxNotFound = errors.New("transaction not found")

// QueryBalance returns the effective balance for the specified account.
func (s *State) QueryBalance(account keys.PublicKey) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.Balance(account)
}

// QueryTransaction returns the ledger vertex for the specified id.
func (s *State) QueryTransaction(id digest.Digest) (ledger.Vertex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, exists := s.ledger.Get(id)
	if !exists {
		return ledger.Vertex{}, ErrTxNotFound
	}

	return v, nil
}

// QueryStatus returns the confirmation status for the specified id.
func (s *State) QueryStatus(id digest.Digest) consensus.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return consensus.StatusOf(s.ledger, id)
}

// QueryTips returns the current approval frontier.
func (s *State) QueryTips() []digest.Digest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.Tips()
}

// QuerySelectParents returns two tips for a new transaction to approve.
func (s *State) QuerySelectParents() [protocol.ParentCount]digest.Digest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.SelectParents()
}

// QueryFinalTransactions returns the ids of every finalized transaction.
func (s *State) QueryFinalTransactions() []digest.Digest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return consensus.FinalTransactions(s.ledger)
}

// QueryLedgerSize returns the number of transactions in the ledger.
func (s *State) QueryLedgerSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.Len()
}

// QueryDepth returns the depth of the deepest transaction in the ledger.
func (s *State) QueryDepth() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.Depth()
}

// QueryRelayCount returns the number of relays recorded for the account.
func (s *State) QueryRelayCount(relayer keys.PublicKey) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tracker.Count(relayer)
}

// QueryNextReward returns the reward the account's next relay would earn
// under the current schedule. A preview, nothing is recorded.
func (s *State) QueryNextReward(relayer keys.PublicKey) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tracker.Reward(s.tracker.Count(relayer) + 1)
}

// QueryRelayTotals returns the network wide relay count and issued rewards
// observed by this node.
func (s *State) QueryRelayTotals() (relays uint64, rewards uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tracker.TotalRelays(), s.tracker.TotalRewards()
}

// QueryAllTransactions returns every transaction in insertion order, read
// back from the persistent store. Serving from the store keeps parents
// ahead of children for any peer replaying the list.
func (s *State) QueryAllTransactions() ([]transaction.Tx, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txs []transaction.Tx

	iter := s.storage.ForEach()
	for tx, err := iter.Next(); !iter.Done(); tx, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// AuditWeights recomputes every cumulative weight from scratch and compares
// the result against the incrementally maintained values. A mismatch means
// ledger corruption.
func (s *State) AuditWeights() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	oracle := consensus.AllWeights(s.ledger)
	for id, want := range oracle {
		v, exists := s.ledger.Get(id)
		if !exists {
			return fmt.Errorf("audit: tx %s missing from ledger", id)
		}
		if v.CumulativeWeight != want {
			return fmt.Errorf("audit: tx %s weight mismatch: have %d, want %d", id, v.CumulativeWeight, want)
		}
	}

	return nil
}

// =============================================================================

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveNodeKey returns the public key this node signs with.
func (s *State) RetrieveNodeKey() keys.PublicKey {
	return s.nodeKeys.PublicKey()
}

// RetrieveHost returns a copy of host information.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveKnownPeers retrieves a copy of the known peer list without
// this node.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}

// AddKnownPeer provides the ability to add a new peer to
// the known peer list.
func (s *State) AddKnownPeer(peer peer.Peer) bool {
	return s.knownPeers.Add(peer)
}

// RemoveKnownPeer provides the ability to remove a peer from
// the known peer list.
func (s *State) RemoveKnownPeer(peer peer.Peer) {
	s.knownPeers.Remove(peer)
}
