package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
)

// KeyStore is the JSON document a wallet file holds. The secret key is
// stored hex encoded and unencrypted; protecting the file is the operator's
// job.
type KeyStore struct {
	SecretKey string `json:"secret_key"`
	PublicKey string `json:"public_key"`
	CreatedAt string `json:"created_at"`
}

// NewKeyStore captures a key pair into a storable document.
func NewKeyStore(kp keys.KeyPair) KeyStore {
	return KeyStore{
		SecretKey: hexutil.Encode(kp.SecretBytes()),
		PublicKey: kp.PublicKey().String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Save writes the keystore to the specified path, creating any missing
// parent directories.
func (ks KeyStore) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating keystore directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(ks, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding keystore: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing keystore: %w", err)
	}

	return nil
}

// LoadKeyStore reads a keystore document from disk.
func LoadKeyStore(path string) (KeyStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KeyStore{}, fmt.Errorf("reading keystore: %w", err)
	}

	var ks KeyStore
	if err := json.Unmarshal(data, &ks); err != nil {
		return KeyStore{}, fmt.Errorf("decoding keystore: %w", err)
	}

	return ks, nil
}

// KeyPair recovers the key pair from the stored secret key.
func (ks KeyStore) KeyPair() (keys.KeyPair, error) {
	secret, err := hexutil.Decode(ks.SecretKey)
	if err != nil {
		return keys.KeyPair{}, fmt.Errorf("decoding secret key: %w", err)
	}

	kp, err := keys.FromSecretBytes(secret)
	if err != nil {
		return keys.KeyPair{}, err
	}

	return kp, nil
}
