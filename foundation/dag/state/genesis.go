package state

import (
	"errors"

	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/rhizanet/rhiza/foundation/dag/validate"
)

// ErrChainAlreadySeeded is returned when InitGenesis runs against a ledger
// that already holds a genesis transaction.
var ErrChainAlreadySeeded = errors.New("ledger already holds a genesis transaction")

// InitGenesis seeds an empty ledger with the genesis transaction and the
// one-time founder grant. This is a privileged launch operation and runs
// only when the ledger is empty.
func (s *State) InitGenesis(genesisKeys keys.KeyPair) (transaction.Tx, transaction.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ledger.GenesisID(); exists {
		return transaction.Tx{}, transaction.Tx{}, ErrChainAlreadySeeded
	}

	gen := transaction.Genesis(genesisKeys)
	if err := validate.Check(gen, s.ledger); err != nil {
		return transaction.Tx{}, transaction.Tx{}, err
	}
	if err := s.ledger.Insert(gen); err != nil {
		return transaction.Tx{}, transaction.Tx{}, err
	}
	if err := s.storage.Write(gen); err != nil {
		return transaction.Tx{}, transaction.Tx{}, err
	}
	s.evHandler("state: InitGenesis: genesis tx[%s]", gen.ID)

	grant := transaction.FounderGrant(genesisKeys, s.genesis.FounderPublicKey, gen.ID)
	if err := validate.Check(grant, s.ledger); err != nil {
		return transaction.Tx{}, transaction.Tx{}, err
	}
	if err := s.ledger.Insert(grant); err != nil {
		return transaction.Tx{}, transaction.Tx{}, err
	}
	if err := s.storage.Write(grant); err != nil {
		return transaction.Tx{}, transaction.Tx{}, err
	}
	s.evHandler("state: InitGenesis: founder grant tx[%s] amount[%d]", grant.ID, grant.Data.Amount)

	return gen, grant, nil
}
