package memory_test

import (
	"testing"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/storage/memory"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

func Test_InsertionOrder(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}

	store, err := memory.New()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	gen := transaction.Genesis(kp)
	txs := []transaction.Tx{gen}
	for i := uint64(1); i <= 3; i++ {
		prev := txs[len(txs)-1]
		txs = append(txs, transaction.Transfer(kp, kp.PublicKey(), i, [protocol.ParentCount]digest.Digest{prev.ID, prev.ID}, i))
	}

	for _, tx := range txs {
		if err := store.Write(tx); err != nil {
			t.Fatal(err)
		}
	}

	var got []transaction.Tx
	iter := store.ForEach()
	for tx, err := iter.Next(); !iter.Done(); tx, err = iter.Next() {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, tx)
	}

	if len(got) != len(txs) {
		t.Fatalf("iterated %d transactions, want %d", len(got), len(txs))
	}
	for i := range txs {
		if got[i].ID != txs[i].ID {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ID, txs[i].ID)
		}
	}
}

func Test_Reset(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}

	store, err := memory.New()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Write(transaction.Genesis(kp)); err != nil {
		t.Fatal(err)
	}
	if err := store.Reset(); err != nil {
		t.Fatal(err)
	}

	iter := store.ForEach()
	if _, err := iter.Next(); !iter.Done() {
		t.Fatalf("store not empty after reset: %v", err)
	}
}
