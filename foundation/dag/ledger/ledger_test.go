package ledger_test

import (
	"errors"
	"testing"

	"github.com/rhizanet/rhiza/foundation/dag/consensus"
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Insert(t *testing.T) {
	t.Log("Given the need to validate transaction admission into the ledger.")
	{
		t.Logf("\tTest 0:\tWhen inserting a genesis followed by descendants.")
		{
			kp := genKeyPair(t)
			l := ledger.New()

			gen := transaction.Genesis(kp)
			if err := l.Insert(gen); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to insert the genesis transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to insert the genesis transaction.", success)

			if err := l.Insert(gen); !errors.Is(err, ledger.ErrDuplicateTransaction) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a duplicate id with ErrDuplicateTransaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a duplicate id with ErrDuplicateTransaction.", success)

			child := transfer(kp, 100, gen.ID, gen.ID, 1)
			if err := l.Insert(child); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to insert a child of the genesis: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to insert a child of the genesis.", success)

			genID, exists := l.GenesisID()
			if !exists || genID != gen.ID {
				t.Fatalf("\t%s\tTest 0:\tShould report the genesis id: got %s, exists %v", failed, genID, exists)
			}
			t.Logf("\t%s\tTest 0:\tShould report the genesis id.", success)
		}

		t.Logf("\tTest 1:\tWhen inserting a transaction with an unknown parent.")
		{
			kp := genKeyPair(t)
			l := ledger.New()

			gen := transaction.Genesis(kp)
			if err := l.Insert(gen); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to insert the genesis transaction: %v", failed, err)
			}

			unknown := digest.Sum([]byte("never inserted"))
			orphan := transfer(kp, 100, gen.ID, unknown, 1)

			err := l.Insert(orphan)
			var mpe *ledger.MissingParentError
			if !errors.As(err, &mpe) {
				t.Fatalf("\t%s\tTest 1:\tShould reject the orphan with MissingParentError: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the orphan with MissingParentError.", success)

			if mpe.Parent != unknown {
				t.Fatalf("\t%s\tTest 1:\tShould name the missing parent: got %s", failed, mpe.Parent)
			}
			t.Logf("\t%s\tTest 1:\tShould name the missing parent.", success)

			if l.Len() != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould leave the ledger untouched on failure: %d vertices", failed, l.Len())
			}
			if tips := l.Tips(); len(tips) != 1 || tips[0] != gen.ID {
				t.Fatalf("\t%s\tTest 1:\tShould leave the tip set untouched on failure: %v", failed, tips)
			}
			if v, _ := l.Get(gen.ID); v.CumulativeWeight != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould leave the weights untouched on failure: %d", failed, v.CumulativeWeight)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the ledger untouched on failure.", success)
		}

		t.Logf("\tTest 2:\tWhen a transaction carries one sentinel and one real parent.")
		{
			kp := genKeyPair(t)
			l := ledger.New()

			gen := transaction.Genesis(kp)
			if err := l.Insert(gen); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to insert the genesis transaction: %v", failed, err)
			}

			// The sentinel is never in the arena, so both shapes are
			// rejected whether the real parent exists or not.
			unknown := digest.Sum([]byte("not inserted"))
			shapes := []transaction.Tx{
				transfer(kp, 5, digest.Digest{}, unknown, 1),
				transfer(kp, 5, digest.Digest{}, gen.ID, 2),
			}

			for i, tx := range shapes {
				err := l.Insert(tx)
				var mpe *ledger.MissingParentError
				if !errors.As(err, &mpe) {
					t.Fatalf("\t%s\tTest 2:\tShould reject shape %d with MissingParentError: %v", failed, i, err)
				}
			}
			t.Logf("\t%s\tTest 2:\tShould reject a lone sentinel parent with MissingParentError.", success)

			if l.Len() != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould leave the ledger untouched: %d vertices", failed, l.Len())
			}
			if tips := l.Tips(); len(tips) != 1 || tips[0] != gen.ID {
				t.Fatalf("\t%s\tTest 2:\tShould leave the tip set untouched: %v", failed, tips)
			}
			if v, _ := l.Get(gen.ID); v.CumulativeWeight != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould leave the weights untouched: %d", failed, v.CumulativeWeight)
			}
			t.Logf("\t%s\tTest 2:\tShould keep the genesis as the only tip.", success)
		}
	}
}

func Test_Weights(t *testing.T) {
	t.Log("Given the need to validate incremental cumulative weight propagation.")
	{
		t.Logf("\tTest 0:\tWhen inserting a diamond of transactions.")
		{
			kp := genKeyPair(t)
			l := ledger.New()

			gen := transaction.Genesis(kp)
			a := transfer(kp, 10, gen.ID, gen.ID, 1)
			b := transfer(kp, 20, gen.ID, gen.ID, 2)
			c := transfer(kp, 30, a.ID, b.ID, 3)

			for _, tx := range []transaction.Tx{gen, a, b, c} {
				if err := l.Insert(tx); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to insert transaction %s: %v", failed, tx, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to insert the diamond.", success)

			want := map[digest.Digest]uint64{
				gen.ID: 4,
				a.ID:   2,
				b.ID:   2,
				c.ID:   1,
			}
			for id, w := range want {
				v, _ := l.Get(id)
				if v.CumulativeWeight != w {
					t.Fatalf("\t%s\tTest 0:\tShould compute weight %d for %s: got %d", failed, w, id, v.CumulativeWeight)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould add exactly one per distinct ancestor per insertion.", success)

			// A duplicate parent pair still counts as one approval path.
			d := transfer(kp, 40, c.ID, c.ID, 4)
			if err := l.Insert(d); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to insert a duplicate-parent transaction: %v", failed, err)
			}

			want = map[digest.Digest]uint64{
				gen.ID: 5,
				a.ID:   3,
				b.ID:   3,
				c.ID:   2,
				d.ID:   1,
			}
			for id, w := range want {
				v, _ := l.Get(id)
				if v.CumulativeWeight != w {
					t.Fatalf("\t%s\tTest 0:\tShould compute weight %d for %s after the duplicate-parent insert: got %d", failed, w, id, v.CumulativeWeight)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould count a duplicate parent pair once.", success)

			for id, w := range consensus.AllWeights(l) {
				v, _ := l.Get(id)
				if v.CumulativeWeight != w {
					t.Fatalf("\t%s\tTest 0:\tShould match the from-scratch recomputation for %s: stored %d, recomputed %d", failed, id, v.CumulativeWeight, w)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould match the from-scratch recomputation.", success)
		}
	}
}

func Test_Finality(t *testing.T) {
	t.Log("Given the need to validate the finality threshold over a chain.")
	{
		t.Logf("\tTest 0:\tWhen %d descendants accumulate behind a transaction.", protocol.FinalityThreshold)
		{
			kp := genKeyPair(t)
			l := ledger.New()

			gen := transaction.Genesis(kp)
			if err := l.Insert(gen); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to insert the genesis transaction: %v", failed, err)
			}

			chain := []transaction.Tx{gen}
			for i := uint64(1); i <= protocol.FinalityThreshold; i++ {
				prev := chain[len(chain)-1]
				tx := transfer(kp, 1, prev.ID, prev.ID, i)
				if err := l.Insert(tx); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to extend the chain: %v", failed, err)
				}
				chain = append(chain, tx)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to build the chain.", success)

			if v, _ := l.Get(gen.ID); !v.IsFinal {
				t.Fatalf("\t%s\tTest 0:\tShould mark the genesis final at weight %d.", failed, v.CumulativeWeight)
			}
			if !consensus.IsFinal(l, chain[1].ID) {
				t.Fatalf("\t%s\tTest 0:\tShould mark the first descendant final at the threshold.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould mark transactions at the threshold final.", success)

			if consensus.IsFinal(l, chain[2].ID) {
				t.Fatalf("\t%s\tTest 0:\tShould not mark a transaction below the threshold final.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not mark a transaction below the threshold final.", success)

			status := consensus.StatusOf(l, chain[2].ID)
			if status.State != consensus.StatusConfirming || status.Weight != protocol.FinalityThreshold-1 || status.Needed != protocol.FinalityThreshold {
				t.Fatalf("\t%s\tTest 0:\tShould report confirming with weight %d of %d: got %+v", failed, protocol.FinalityThreshold-1, protocol.FinalityThreshold, status)
			}
			t.Logf("\t%s\tTest 0:\tShould report confirming with the current weight.", success)

			finals := consensus.FinalTransactions(l)
			if len(finals) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould report exactly 2 final transactions: got %d", failed, len(finals))
			}
			t.Logf("\t%s\tTest 0:\tShould report exactly 2 final transactions.", success)
		}
	}
}

func Test_TipsAndParents(t *testing.T) {
	t.Log("Given the need to validate the tip frontier and parent selection.")
	{
		t.Logf("\tTest 0:\tWhen selecting parents at each ledger size.")
		{
			kp := genKeyPair(t)
			l := ledger.New()

			parents := l.SelectParents()
			if !parents[0].IsZero() || !parents[1].IsZero() {
				t.Fatalf("\t%s\tTest 0:\tShould yield the zero pair for an empty ledger: %v", failed, parents)
			}
			t.Logf("\t%s\tTest 0:\tShould yield the zero pair for an empty ledger.", success)

			gen := transaction.Genesis(kp)
			if err := l.Insert(gen); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to insert the genesis transaction: %v", failed, err)
			}

			parents = l.SelectParents()
			if parents[0] != gen.ID || parents[1] != gen.ID {
				t.Fatalf("\t%s\tTest 0:\tShould repeat a lone tip: %v", failed, parents)
			}
			t.Logf("\t%s\tTest 0:\tShould repeat a lone tip.", success)

			a := transfer(kp, 10, gen.ID, gen.ID, 1)
			b := transfer(kp, 20, gen.ID, gen.ID, 2)
			for _, tx := range []transaction.Tx{a, b} {
				if err := l.Insert(tx); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to insert transaction %s: %v", failed, tx, err)
				}
			}

			tips := l.Tips()
			if len(tips) != 2 || tips[0] != a.ID || tips[1] != b.ID {
				t.Fatalf("\t%s\tTest 0:\tShould hold both children as tips in insertion order: %v", failed, tips)
			}
			t.Logf("\t%s\tTest 0:\tShould drop an approved parent from the tip set.", success)

			// b was inserted later so it sits deeper and wins first slot.
			parents = l.SelectParents()
			if parents[0] != b.ID || parents[1] != a.ID {
				t.Fatalf("\t%s\tTest 0:\tShould pick the two deepest tips: %v", failed, parents)
			}
			t.Logf("\t%s\tTest 0:\tShould pick the two deepest tips.", success)
		}
	}
}

func Test_Balance(t *testing.T) {
	t.Log("Given the need to validate balance computation over the ledger.")
	{
		t.Logf("\tTest 0:\tWhen funds move between three accounts.")
		{
			kpG := genKeyPair(t)
			kpA := genKeyPair(t)
			kpB := genKeyPair(t)

			l := ledger.New()

			gen := transaction.Genesis(kpG)
			fund := transaction.Transfer(kpG, kpA.PublicKey(), 500, [protocol.ParentCount]digest.Digest{gen.ID, gen.ID}, 1)
			spend := transaction.Transfer(kpA, kpB.PublicKey(), 100, [protocol.ParentCount]digest.Digest{fund.ID, fund.ID}, 1)

			for _, tx := range []transaction.Tx{gen, fund, spend} {
				if err := l.Insert(tx); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to insert transaction %s: %v", failed, tx, err)
				}
			}

			if got := l.Balance(kpA.PublicKey()); got != 400 {
				t.Fatalf("\t%s\tTest 0:\tShould compute 400 for the sender: got %d", failed, got)
			}
			if got := l.Balance(kpB.PublicKey()); got != 100 {
				t.Fatalf("\t%s\tTest 0:\tShould compute 100 for the recipient: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould credit recipients and debit senders.", success)

			// The genesis signer spent funds it never received.
			if got := l.Balance(kpG.PublicKey()); got != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould clamp a negative running total to zero: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould clamp a negative running total to zero.", success)

			reward := transaction.RelayReward(kpA, 50, [protocol.ParentCount]digest.Digest{spend.ID, spend.ID}, 2)
			if err := l.Insert(reward); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to insert the reward transaction: %v", failed, err)
			}

			if got := l.Balance(kpA.PublicKey()); got != 450 {
				t.Fatalf("\t%s\tTest 0:\tShould credit a self-directed reward without a debit: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould credit a self-directed reward without a debit.", success)
		}
	}
}

// =============================================================================

func genKeyPair(t *testing.T) keys.KeyPair {
	t.Helper()

	kp, err := keys.Generate()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to generate a key pair: %v", failed, err)
	}
	return kp
}

func transfer(kp keys.KeyPair, amount uint64, parentA digest.Digest, parentB digest.Digest, nonce uint64) transaction.Tx {
	return transaction.Transfer(kp, kp.PublicKey(), amount, [protocol.ParentCount]digest.Digest{parentA, parentB}, nonce)
}
