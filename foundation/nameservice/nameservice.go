// Package nameservice reads a keystore folder and creates a name lookup
// for the accounts found there.
package nameservice

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/wallet"
)

// NameService maintains a map of accounts for name lookup.
type NameService struct {
	accounts map[keys.PublicKey]string
}

// New constructs a name service with the accounts from the specified
// keystore folder.
func New(root string) (*NameService, error) {
	ns := NameService{
		accounts: make(map[keys.PublicKey]string),
	}

	fn := func(fileName string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if path.Ext(fileName) != ".json" {
			return nil
		}

		ks, err := wallet.LoadKeyStore(fileName)
		if err != nil {
			return err
		}
		kp, err := ks.KeyPair()
		if err != nil {
			return err
		}

		ns.accounts[kp.PublicKey()] = strings.TrimSuffix(path.Base(fileName), ".json")

		return nil
	}

	if err := filepath.Walk(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified account.
func (ns *NameService) Lookup(account keys.PublicKey) string {
	name, exists := ns.accounts[account]
	if !exists {
		return account.String()
	}
	return name
}

// Copy returns a copy of the map of names and accounts.
func (ns *NameService) Copy() map[keys.PublicKey]string {
	cpy := make(map[keys.PublicKey]string, len(ns.accounts))
	for account, name := range ns.accounts {
		cpy[account] = name
	}
	return cpy
}
