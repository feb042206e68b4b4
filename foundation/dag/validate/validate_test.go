package validate_test

import (
	"errors"
	"math"
	"testing"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/rhizanet/rhiza/foundation/dag/validate"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Integrity(t *testing.T) {
	t.Log("Given the need to validate transaction integrity checks.")
	{
		t.Logf("\tTest 0:\tWhen a transaction has been tampered with.")
		{
			kpG := genKeyPair(t)
			kp := genKeyPair(t)
			l := seededLedger(t, kpG)

			fund := transaction.Transfer(kpG, kp.PublicKey(), 1000, parentPair(genesisID(t, l)), 1)
			if err := l.Insert(fund); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to fund the sender: %v", failed, err)
			}

			tx := transaction.Transfer(kp, kpG.PublicKey(), 10, parentPair(fund.ID), 1)

			if err := validate.Check(tx, l); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould accept the untampered transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould accept the untampered transaction.", success)

			tampered := tx
			tampered.Data.Amount = 999
			if err := validate.Check(tampered, l); !errors.Is(err, validate.ErrInvalidID) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a payload change with ErrInvalidID: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a payload change with ErrInvalidID.", success)

			forged := tx
			forged.Signature[0] ^= 0xff
			if err := validate.Check(forged, l); !errors.Is(err, validate.ErrInvalidSignature) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a signature change with ErrInvalidSignature: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a signature change with ErrInvalidSignature.", success)
		}
	}
}

func Test_Transfers(t *testing.T) {
	t.Log("Given the need to validate transfer admission rules.")
	{
		t.Logf("\tTest 0:\tWhen checking amount and parent rules.")
		{
			kp := genKeyPair(t)
			l := seededLedger(t, kp)
			genID := genesisID(t, l)

			zero := transaction.Transfer(kp, kp.PublicKey(), 0, parentPair(genID), 1)
			if err := validate.Check(zero, l); !errors.Is(err, validate.ErrZeroAmount) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a zero amount with ErrZeroAmount: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a zero amount with ErrZeroAmount.", success)

			huge := transaction.Transfer(kp, kp.PublicKey(), protocol.MaxSupply+1, parentPair(genID), 1)
			if err := validate.Check(huge, l); !errors.Is(err, validate.ErrExceedsMaxSupply) {
				t.Fatalf("\t%s\tTest 0:\tShould reject an amount past the supply cap with ErrExceedsMaxSupply: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject an amount past the supply cap with ErrExceedsMaxSupply.", success)

			// A fee chosen to wrap amount+fee around must not slip past
			// the balance rule.
			data := transaction.Transfer(kp, kp.PublicKey(), 10, parentPair(genID), 2).Data
			data.Fee = math.MaxUint64 - 5
			wrapped := transaction.New(data, kp)
			if err := validate.Check(wrapped, l); !errors.Is(err, validate.ErrExceedsMaxSupply) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a fee past the supply cap with ErrExceedsMaxSupply: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a fee past the supply cap with ErrExceedsMaxSupply.", success)

			unknown := digest.Sum([]byte("nowhere"))
			orphan := transaction.Transfer(kp, kp.PublicKey(), 10, [protocol.ParentCount]digest.Digest{genID, unknown}, 1)
			if err := validate.Check(orphan, l); !errors.Is(err, validate.ErrParentNotFound) {
				t.Fatalf("\t%s\tTest 0:\tShould reject an unknown parent with ErrParentNotFound: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject an unknown parent with ErrParentNotFound.", success)
		}

		t.Logf("\tTest 1:\tWhen the sender cannot cover the amount.")
		{
			kpG := genKeyPair(t)
			kpA := genKeyPair(t)
			kpB := genKeyPair(t)

			l := seededLedger(t, kpG)
			genID := genesisID(t, l)

			fund := transaction.Transfer(kpG, kpA.PublicKey(), 1_000_000, parentPair(genID), 1)
			if err := l.Insert(fund); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to fund the sender: %v", failed, err)
			}

			spend := transaction.Transfer(kpA, kpB.PublicKey(), 1_500_000, parentPair(fund.ID), 1)

			err := validate.Check(spend, l)
			var ibe *validate.InsufficientBalanceError
			if !errors.As(err, &ibe) {
				t.Fatalf("\t%s\tTest 1:\tShould reject the overdraft with InsufficientBalanceError: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the overdraft with InsufficientBalanceError.", success)

			if ibe.Have != 1_000_000 || ibe.Need != 1_500_000 {
				t.Fatalf("\t%s\tTest 1:\tShould report have 1000000 need 1500000: got have %d need %d", failed, ibe.Have, ibe.Need)
			}
			t.Logf("\t%s\tTest 1:\tShould report the available and required amounts.", success)
		}
	}
}

func Test_Genesis(t *testing.T) {
	t.Log("Given the need to validate genesis admission rules.")
	{
		t.Logf("\tTest 0:\tWhen a ledger already holds a genesis.")
		{
			kp := genKeyPair(t)
			l := seededLedger(t, kp)

			second := transaction.Genesis(kp)
			if err := validate.Check(second, l); !errors.Is(err, validate.ErrInvalidID) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a second genesis: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a second genesis.", success)
		}

		t.Logf("\tTest 1:\tWhen a genesis carries non-zero parents.")
		{
			kp := genKeyPair(t)
			l := ledger.New()

			data := transaction.Genesis(kp).Data
			data.Parents[0] = digest.Sum([]byte("not a sentinel"))
			bad := transaction.New(data, kp)

			if err := validate.Check(bad, l); !errors.Is(err, validate.ErrParentNotFound) {
				t.Fatalf("\t%s\tTest 1:\tShould reject non-sentinel parents: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject non-sentinel parents.", success)
		}
	}
}

func Test_RelayRewards(t *testing.T) {
	t.Log("Given the need to validate relay reward admission rules.")
	{
		t.Logf("\tTest 0:\tWhen checking reward claims against the rules.")
		{
			kp := genKeyPair(t)
			other := genKeyPair(t)
			l := seededLedger(t, kp)
			genID := genesisID(t, l)

			good := transaction.RelayReward(kp, protocol.BaseRelayReward, parentPair(genID), 1)
			if err := validate.Check(good, l); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould accept a claim at the base reward: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould accept a claim at the base reward.", success)

			data := good.Data
			data.Recipient = other.PublicKey()
			diverted := transaction.New(data, kp)
			if err := validate.Check(diverted, l); !errors.Is(err, validate.ErrInvalidRelayReward) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a claim directed at another account: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a claim directed at another account.", success)

			inflated := transaction.RelayReward(kp, protocol.BaseRelayReward+1, parentPair(genID), 2)
			if err := validate.Check(inflated, l); !errors.Is(err, validate.ErrInvalidRelayReward) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a claim above the base reward: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a claim above the base reward.", success)
		}
	}
}

func Test_FounderGrant(t *testing.T) {
	t.Log("Given the need to validate founder grant admission rules.")
	{
		t.Logf("\tTest 0:\tWhen the grant arrives over the general path.")
		{
			kpG := genKeyPair(t)
			founder := genKeyPair(t)

			l := seededLedger(t, kpG)
			genID := genesisID(t, l)

			grant := transaction.FounderGrant(kpG, founder.PublicKey(), genID)
			if err := validate.Check(grant, l); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould accept the grant from the genesis signer: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould accept the grant from the genesis signer.", success)

			if err := l.Insert(grant); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to insert the grant: %v", failed, err)
			}

			data := transaction.FounderGrant(kpG, founder.PublicKey(), genID).Data
			data.Nonce = 2
			again := transaction.New(data, kpG)
			if err := validate.Check(again, l); !errors.Is(err, validate.ErrInvalidFounderGrant) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a second grant: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a second grant.", success)
		}

		t.Logf("\tTest 1:\tWhen the grant breaks the signer or amount rules.")
		{
			kpG := genKeyPair(t)
			impostor := genKeyPair(t)
			founder := genKeyPair(t)

			l := seededLedger(t, kpG)
			genID := genesisID(t, l)

			forged := transaction.FounderGrant(impostor, founder.PublicKey(), genID)
			if err := validate.Check(forged, l); !errors.Is(err, validate.ErrInvalidFounderGrant) {
				t.Fatalf("\t%s\tTest 1:\tShould reject a grant not signed by the genesis signer: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a grant not signed by the genesis signer.", success)

			data := transaction.FounderGrant(kpG, founder.PublicKey(), genID).Data
			data.Amount = protocol.FounderAllocation - 1
			short := transaction.New(data, kpG)
			if err := validate.Check(short, l); !errors.Is(err, validate.ErrInvalidFounderGrant) {
				t.Fatalf("\t%s\tTest 1:\tShould reject a grant with the wrong amount: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a grant with the wrong amount.", success)
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

// seededLedger constructs a ledger holding only a genesis signed by kp.
func seededLedger(t *testing.T, kp keys.KeyPair) *ledger.Ledger {
	t.Helper()

	l := ledger.New()
	if err := l.Insert(transaction.Genesis(kp)); err != nil {
		t.Fatalf("\t%s\tShould be able to seed the ledger: %v", failed, err)
	}
	return l
}

func genesisID(t *testing.T, l *ledger.Ledger) digest.Digest {
	t.Helper()

	id, exists := l.GenesisID()
	if !exists {
		t.Fatalf("\t%s\tShould have a genesis in the ledger.", failed)
	}
	return id
}

func parentPair(id digest.Digest) [protocol.ParentCount]digest.Digest {
	return [protocol.ParentCount]digest.Digest{id, id}
}
