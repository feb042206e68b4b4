// Package protocol declares the fixed constants every node sharing a ledger
// instance must agree on. Changing any of these values forks the network.
package protocol

// AddressHRP is the human-readable prefix for bech32m encoded addresses.
const AddressHRP = "rhz"

// UnitsPerRHZ is the number of smallest units in one whole RHZ.
const UnitsPerRHZ = 100_000_000

// MaxSupply is the total number of smallest units that can ever exist.
const MaxSupply = 21_000_000 * UnitsPerRHZ

// ParentCount is the number of parent references each transaction carries.
const ParentCount = 2

// FinalityThreshold is the cumulative weight at which a transaction is
// considered irreversibly confirmed.
const FinalityThreshold = 10

// BaseRelayReward is the reward in smallest units for a relay performed by a
// participant with fewer than RelayHalvingInterval recorded relays.
const BaseRelayReward = 1_000_000

// RelayHalvingInterval is the per-participant relay count at which the relay
// reward drops to the next step of the diminishing schedule.
const RelayHalvingInterval = 1_000

// FounderAllocation is the one-time genesis-adjacent grant, 5% of max supply.
const FounderAllocation = MaxSupply / 20
