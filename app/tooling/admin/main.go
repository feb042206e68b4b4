// This program performs administrative tasks for the ledger database.
package main

import (
	"fmt"
	"os"

	"github.com/rhizanet/rhiza/app/tooling/admin/commands"
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/storage/disk"
	"github.com/rhizanet/rhiza/foundation/logger"
	"github.com/rhizanet/rhiza/foundation/nameservice"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	if len(os.Args) < 2 {
		fmt.Println("commands: seed | bals | trans | audit")
		return nil
	}

	dbPath := "zblock/ledger.db"
	if v := os.Getenv("ADMIN_DB_PATH"); v != "" {
		dbPath = v
	}

	strg, err := disk.New(dbPath)
	if err != nil {
		return err
	}
	defer strg.Close()

	// Replay the store into a ledger for the read commands.
	l := ledger.New()
	iter := strg.ForEach()
	for tx, err := iter.Next(); !iter.Done(); tx, err = iter.Next() {
		if err != nil {
			return fmt.Errorf("replaying transaction store: %w", err)
		}
		if err := l.Insert(tx); err != nil {
			return fmt.Errorf("replaying transaction %s: %w", tx.ID, err)
		}
	}

	ns, err := nameservice.New("zblock/accounts/")
	if err != nil {
		return fmt.Errorf("unable to load account names: %w", err)
	}

	return processCommands(os.Args, ns, strg, l)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args []string, ns *nameservice.NameService, strg *disk.Disk, l *ledger.Ledger) error {
	switch args[1] {
	case "seed":
		if err := commands.Seed(args, strg, l); err != nil {
			return fmt.Errorf("seeding ledger: %w", err)
		}
	case "bals":
		if err := commands.Balances(args, ns, l); err != nil {
			return fmt.Errorf("getting balances: %w", err)
		}
	case "trans":
		if err := commands.Transactions(args, ns, l); err != nil {
			return fmt.Errorf("getting transactions: %w", err)
		}
	case "audit":
		if err := commands.Audit(args, l); err != nil {
			return fmt.Errorf("auditing weights: %w", err)
		}
	default:
		fmt.Println("commands: seed | bals | trans | audit")
	}

	return nil
}
