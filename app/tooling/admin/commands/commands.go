// Package commands contains the administrative commands for the ledger.
package commands

import (
	"errors"
	"fmt"

	"github.com/rhizanet/rhiza/foundation/dag/consensus"
	"github.com/rhizanet/rhiza/foundation/dag/genesis"
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/storage/disk"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/rhizanet/rhiza/foundation/dag/validate"
	"github.com/rhizanet/rhiza/foundation/dag/wallet"
	"github.com/rhizanet/rhiza/foundation/nameservice"
)

// Seed writes the genesis transaction and the founder grant into an empty
// ledger database. Run this once on the origin node before first start.
func Seed(args []string, strg *disk.Disk, l *ledger.Ledger) error {
	if l.Len() > 0 {
		return errors.New("ledger database is not empty")
	}

	gen, err := genesis.Load()
	if err != nil {
		return err
	}

	keysFolder := "zblock/accounts/"
	if len(args) == 3 {
		keysFolder = args[2]
	}

	ks, err := wallet.LoadKeyStore(keysFolder + "genesis.json")
	if err != nil {
		return err
	}
	genesisKeys, err := ks.KeyPair()
	if err != nil {
		return err
	}

	genTx := transaction.Genesis(genesisKeys)
	if err := validate.Check(genTx, l); err != nil {
		return err
	}
	if err := l.Insert(genTx); err != nil {
		return err
	}
	if err := strg.Write(genTx); err != nil {
		return err
	}

	grant := transaction.FounderGrant(genesisKeys, gen.FounderPublicKey, genTx.ID)
	if err := validate.Check(grant, l); err != nil {
		return err
	}
	if err := l.Insert(grant); err != nil {
		return err
	}
	if err := strg.Write(grant); err != nil {
		return err
	}

	fmt.Println("genesis:", genTx.ID)
	fmt.Println("grant:  ", grant.ID)
	return nil
}

// Balances prints the effective balance of every account seen in the ledger.
func Balances(args []string, ns *nameservice.NameService, l *ledger.Ledger) error {
	seen := make(map[string]bool)

	for _, id := range l.TransactionIDs() {
		v, _ := l.Get(id)

		sender := v.Tx.Data.Sender
		recipient := v.Tx.Data.Recipient

		if !seen[sender.String()] {
			seen[sender.String()] = true
			fmt.Printf("Account: %-10s  Address: %s  Balance: %d\n", ns.Lookup(sender), wallet.NewAddress(sender), l.Balance(sender))
		}
		if !seen[recipient.String()] {
			seen[recipient.String()] = true
			fmt.Printf("Account: %-10s  Address: %s  Balance: %d\n", ns.Lookup(recipient), wallet.NewAddress(recipient), l.Balance(recipient))
		}
	}

	return nil
}

// Transactions prints every transaction with its confirmation state.
func Transactions(args []string, ns *nameservice.NameService, l *ledger.Ledger) error {
	for _, id := range l.TransactionIDs() {
		v, _ := l.Get(id)
		status := consensus.StatusOf(l, id)

		fmt.Printf("%s  %-13s  %s -> %s  amount[%d]  weight[%d]  %s\n",
			id, transaction.TypeName(v.Tx.Data.TxType), ns.Lookup(v.Tx.Data.Sender), ns.Lookup(v.Tx.Data.Recipient),
			v.Tx.Data.Amount, v.CumulativeWeight, status)
	}

	return nil
}

// Audit recomputes all cumulative weights and compares them against the
// stored values.
func Audit(args []string, l *ledger.Ledger) error {
	oracle := consensus.AllWeights(l)

	var bad int
	for id, want := range oracle {
		v, exists := l.Get(id)
		if !exists || v.CumulativeWeight != want {
			fmt.Printf("MISMATCH %s: have %d, want %d\n", id, v.CumulativeWeight, want)
			bad++
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d weight mismatches", bad)
	}

	fmt.Printf("%d transactions audited, weights consistent\n", l.Len())
	return nil
}
