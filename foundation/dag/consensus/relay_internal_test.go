package consensus

import (
	"testing"

	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
)

// This test presets the issued total, which no exported call can reach in a
// reasonable number of relays, so it lives inside the package.
func Test_SupplyCap(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}
	relayer := kp.PublicKey()

	tracker := Tracker{
		relayCounts:  make(map[keys.PublicKey]uint64),
		totalRewards: protocol.MaxSupply - 500,
	}

	// The base reward would push issuance past the cap.
	if got := tracker.RecordRelay(relayer); got != 0 {
		t.Fatalf("reward at the cap: got %d, want 0", got)
	}
	if got := tracker.TotalRewards(); got != protocol.MaxSupply-500 {
		t.Fatalf("issued total moved at the cap: got %d", got)
	}

	// The relay still counts even though it earned nothing.
	if got := tracker.Count(relayer); got != 1 {
		t.Fatalf("relay count: got %d, want 1", got)
	}
	if got := tracker.TotalRelays(); got != 1 {
		t.Fatalf("total relays: got %d, want 1", got)
	}

	// A reward that lands exactly on the cap is still issued.
	tracker.totalRewards = protocol.MaxSupply - protocol.BaseRelayReward
	if got := tracker.RecordRelay(relayer); got != protocol.BaseRelayReward {
		t.Fatalf("reward landing on the cap: got %d, want %d", got, protocol.BaseRelayReward)
	}
	if got := tracker.TotalRewards(); got != protocol.MaxSupply {
		t.Fatalf("issued total after landing on the cap: got %d, want %d", got, protocol.MaxSupply)
	}
}
