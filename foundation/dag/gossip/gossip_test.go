package gossip_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rhizanet/rhiza/foundation/dag/consensus"
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/gossip"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

func Test_RoundTrip(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}

	gen := transaction.Genesis(kp)
	tx := transaction.Transfer(kp, kp.PublicKey(), 42, [protocol.ParentCount]digest.Digest{gen.ID, gen.ID}, 1)
	proof := consensus.NewProof(kp, tx.ID, 2)
	now := uint64(time.Now().UnixMilli())

	messages := []gossip.Message{
		{Type: gossip.TypeNewTransaction, Tx: tx},
		{Type: gossip.TypeRelayAnnounce, Proof: proof},
		{Type: gossip.TypeSyncRequest, Missing: []digest.Digest{gen.ID, tx.ID}},
		{Type: gossip.TypeSyncResponse, Transactions: []transaction.Tx{gen, tx}},
		{Type: gossip.TypeTipAnnounce, Tips: []digest.Digest{tx.ID}, Depth: 5},
		{Type: gossip.TypePing, Timestamp: now},
		{Type: gossip.TypePong, Timestamp: now},
	}

	for _, msg := range messages {
		decoded, err := gossip.Decode(msg.Encode())
		if err != nil {
			t.Fatalf("decoding %s: %v", msg.TypeName(), err)
		}
		if !reflect.DeepEqual(decoded, msg) {
			t.Fatalf("round trip of %s: got %+v, want %+v", msg.TypeName(), decoded, msg)
		}
	}
}

func Test_RelayAnnounceVerifies(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}
	proof := consensus.NewProof(kp, digest.Sum([]byte("relayed")), 1)

	msg := gossip.Message{Type: gossip.TypeRelayAnnounce, Proof: proof}
	decoded, err := gossip.Decode(msg.Encode())
	if err != nil {
		t.Fatal(err)
	}

	if !decoded.Proof.Verify() {
		t.Fatal("decoded proof failed signature verification")
	}
}

func Test_Malformed(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}
	tx := transaction.Genesis(kp)

	tt := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"unknown type", []byte{200}},
		{"truncated transaction", gossip.Message{Type: gossip.TypeNewTransaction, Tx: tx}.Encode()[:20]},
		{"trailing bytes", append(gossip.Message{Type: gossip.TypePing, Timestamp: 1}.Encode(), 0)},
	}

	for _, tst := range tt {
		_, err := gossip.Decode(tst.buf)

		var de *gossip.DeserializationError
		if !errors.As(err, &de) {
			t.Fatalf("%s: want DeserializationError, got %v", tst.name, err)
		}
	}
}
