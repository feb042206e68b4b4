package consensus

import (
	"encoding/binary"
	"time"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
)

// proofTag prefixes every relay proof signing payload.
const proofTag = "RELAY:"

// Proof is a signed claim that a node relayed a transaction.
type Proof struct {
	Relayer       keys.PublicKey `json:"relayer"`
	TransactionID digest.Digest  `json:"transaction_id"`
	HopCount      uint8          `json:"hop_count"`
	Timestamp     uint64         `json:"timestamp"`
	Signature     keys.Signature `json:"signature"`
}

// NewProof constructs a relay proof signed by the relayer's key pair.
func NewProof(kp keys.KeyPair, txID digest.Digest, hopCount uint8) Proof {
	timestamp := uint64(time.Now().UnixMilli())

	return Proof{
		Relayer:       kp.PublicKey(),
		TransactionID: txID,
		HopCount:      hopCount,
		Timestamp:     timestamp,
		Signature:     kp.Sign(proofSigningBytes(txID, hopCount, timestamp)),
	}
}

// Verify reports whether the proof's signature is valid for its contents.
func (p Proof) Verify() bool {
	return p.Relayer.Verify(proofSigningBytes(p.TransactionID, p.HopCount, p.Timestamp), p.Signature)
}

// proofSigningBytes builds the signing payload: ASCII tag bytes, the
// transaction digest, one hop-count byte and a little-endian timestamp.
func proofSigningBytes(txID digest.Digest, hopCount uint8, timestamp uint64) []byte {
	buf := make([]byte, 0, len(proofTag)+digest.Size+1+8)
	buf = append(buf, proofTag...)
	buf = append(buf, txID[:]...)
	buf = append(buf, hopCount)
	buf = binary.LittleEndian.AppendUint64(buf, timestamp)

	return buf
}

// =============================================================================

// Tracker maintains per-participant relay counters driving the diminishing
// reward schedule. It is not thread safe; the state package serializes
// access along with the ledger.
type Tracker struct {
	relayCounts  map[keys.PublicKey]uint64
	totalRelays  uint64
	totalRewards uint64
}

// NewTracker constructs an empty relay tracker.
func NewTracker() *Tracker {
	return &Tracker{
		relayCounts: make(map[keys.PublicKey]uint64),
	}
}

// RecordRelay increments the relayer's counter and the global counter, then
// computes the reward the relay earns. Once issuing the reward would push
// the running total past the maximum supply the reward is zero and the
// issued total does not move, but the counters still advance.
func (t *Tracker) RecordRelay(relayer keys.PublicKey) uint64 {
	t.relayCounts[relayer]++
	t.totalRelays++

	reward := t.Reward(t.relayCounts[relayer])

	if t.totalRewards+reward > protocol.MaxSupply {
		return 0
	}

	t.totalRewards += reward
	return reward
}

// Reward computes the reward for a participant with the specified relay
// count without mutating any counter. The schedule depends only on the
// count, never on identity: reward = base / (1 + count/halvingInterval)
// with integer division, so the reward is constant across each interval
// block and then steps down.
func (t *Tracker) Reward(count uint64) uint64 {
	return protocol.BaseRelayReward / (1 + count/protocol.RelayHalvingInterval)
}

// Count returns the number of relays recorded for a participant.
func (t *Tracker) Count(relayer keys.PublicKey) uint64 {
	return t.relayCounts[relayer]
}

// TotalRelays returns the number of relays recorded across all participants.
func (t *Tracker) TotalRelays() uint64 {
	return t.totalRelays
}

// TotalRewards returns the total rewards issued so far.
func (t *Tracker) TotalRewards() uint64 {
	return t.totalRewards
}
