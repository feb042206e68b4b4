// Package state is the core API for the node and implements all the
// business rules and processing.
package state

import (
	"fmt"
	"sync"

	"github.com/rhizanet/rhiza/foundation/dag/consensus"
	"github.com/rhizanet/rhiza/foundation/dag/genesis"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/peer"
	"github.com/rhizanet/rhiza/foundation/dag/storage"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// EventHandler defines a function that is called when events
// occur in the processing of transactions.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for peer updates and transaction sharing.
type Worker interface {
	Shutdown()
	SignalShareTx(tx transaction.Tx)
}

// =============================================================================

// Config represents the configuration required to start
// the node.
type Config struct {
	NodeKeys   keys.KeyPair
	Host       string
	Storage    storage.Serializer
	KnownPeers *peer.PeerSet
	EvHandler  EventHandler
}

// State manages the transaction ledger.
type State struct {
	mu sync.RWMutex

	nodeKeys  keys.KeyPair
	host      string
	evHandler EventHandler

	knownPeers *peer.PeerSet
	genesis    genesis.Genesis
	ledger     *ledger.Ledger
	tracker    *consensus.Tracker
	storage    storage.Serializer

	Worker Worker
}

// New constructs a new state value for ledger management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Load the genesis file to get the launch parameters.
	genesis, err := genesis.Load()
	if err != nil {
		return nil, err
	}

	// Create the State to provide support for managing the ledger.
	state := State{
		nodeKeys:  cfg.NodeKeys,
		host:      cfg.Host,
		evHandler: ev,

		knownPeers: cfg.KnownPeers,
		genesis:    genesis,
		ledger:     ledger.New(),
		tracker:    consensus.NewTracker(),
		storage:    cfg.Storage,
	}

	// Replay any persisted transactions into the in-memory ledger. The
	// store iterates in insertion order so parents always precede children.
	if err := state.replayStorage(); err != nil {
		return nil, err
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {

	// Make sure the database file is properly closed.
	defer func() {
		s.storage.Close()
	}()

	// Stop all ledger writing activity.
	s.Worker.Shutdown()

	return nil
}

// Truncate resets the ledger both on disk and in memory.
func (s *State) Truncate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = ledger.New()
	s.tracker = consensus.NewTracker()

	return s.storage.Reset()
}

// =============================================================================

// replayStorage loads every persisted transaction back into the ledger.
func (s *State) replayStorage() error {
	iter := s.storage.ForEach()

	var count int
	for tx, err := iter.Next(); !iter.Done(); tx, err = iter.Next() {
		if err != nil {
			return fmt.Errorf("replaying transaction store: %w", err)
		}

		if err := s.ledger.Insert(tx); err != nil {
			return fmt.Errorf("replaying transaction %s: %w", tx.ID, err)
		}
		count++
	}

	if count > 0 {
		s.evHandler("state: replayStorage: loaded %d transactions", count)
	}

	return nil
}
