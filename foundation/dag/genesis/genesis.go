// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date              time.Time      `json:"date"`
	ChainName         string         `json:"chain_name"`         // Human readable name for this running instance.
	FounderPublicKey  keys.PublicKey `json:"founder_public_key"` // Account receiving the founder allocation.
	FounderAllocation uint64         `json:"founder_allocation"` // Units granted to the founder at launch.
	BaseRelayReward   uint64         `json:"base_relay_reward"`  // Reward for the first relay before decay.
	FinalityThreshold uint64         `json:"finality_threshold"` // Cumulative weight at which a transaction is final.
	MaxSupply         uint64         `json:"max_supply"`         // Hard cap on total issued units.
}

// New constructs a genesis with the protocol defaults for the specified
// founder account.
func New(founder keys.PublicKey) Genesis {
	return Genesis{
		Date:              time.Now().UTC(),
		ChainName:         "rhiza-mainnet",
		FounderPublicKey:  founder,
		FounderAllocation: protocol.FounderAllocation,
		BaseRelayReward:   protocol.BaseRelayReward,
		FinalityThreshold: protocol.FinalityThreshold,
		MaxSupply:         protocol.MaxSupply,
	}
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load() (Genesis, error) {
	path := "zblock/genesis.json"
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	err = json.Unmarshal(content, &genesis)
	if err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Save writes the genesis file to disk.
func (g Genesis) Save() error {
	path := "zblock/genesis.json"
	content, err := json.MarshalIndent(g, "", "    ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll("zblock", 0755); err != nil {
		return err
	}

	return os.WriteFile(path, content, 0644)
}
