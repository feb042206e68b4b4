package wallet_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/wallet"
)

func Test_AddressDerivation(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}

	addr := wallet.NewAddress(kp.PublicKey())
	if !strings.HasPrefix(addr.String(), protocol.AddressHRP+"1") {
		t.Fatalf("address %q does not carry the %q prefix", addr, protocol.AddressHRP)
	}

	if _, err := wallet.ParseAddress(addr.String()); err != nil {
		t.Fatalf("parsing a derived address: %v", err)
	}

	payload, err := wallet.DecodeAddress(addr.String())
	if err != nil {
		t.Fatal(err)
	}

	hash := digest.Sum(kp.PublicKey().Bytes())
	if !bytes.Equal(payload, hash[:20]) {
		t.Fatal("address payload does not match the public key digest")
	}

	// Same key, same address.
	if again := wallet.NewAddress(kp.PublicKey()); again != addr {
		t.Fatalf("derivation is not deterministic: %q vs %q", again, addr)
	}
}

func Test_AddressParsing(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}
	addr := wallet.NewAddress(kp.PublicKey()).String()

	// Flipping a payload character breaks the checksum.
	flipped := []byte(addr)
	last := len(flipped) - 1
	if flipped[last] == 'q' {
		flipped[last] = 'p'
	} else {
		flipped[last] = 'q'
	}

	if _, err := wallet.ParseAddress(string(flipped)); !errors.Is(err, wallet.ErrInvalidEncoding) {
		t.Fatalf("tampered address: want ErrInvalidEncoding, got %v", err)
	}

	if _, err := wallet.ParseAddress("not an address"); !errors.Is(err, wallet.ErrInvalidEncoding) {
		t.Fatalf("garbage input: want ErrInvalidEncoding, got %v", err)
	}
}

func Test_KeyStore(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "accounts", "test.json")

	if err := wallet.NewKeyStore(kp).Save(path); err != nil {
		t.Fatal(err)
	}

	ks, err := wallet.LoadKeyStore(path)
	if err != nil {
		t.Fatal(err)
	}

	restored, err := ks.KeyPair()
	if err != nil {
		t.Fatal(err)
	}

	if restored.PublicKey() != kp.PublicKey() {
		t.Fatal("restored public key does not match")
	}

	// The restored pair must produce signatures the original key verifies.
	msg := []byte("keystore round trip")
	if !kp.PublicKey().Verify(msg, restored.Sign(msg)) {
		t.Fatal("restored key pair produced an invalid signature")
	}
}

func Test_KeyStoreErrors(t *testing.T) {
	if _, err := wallet.LoadKeyStore(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("loading a missing keystore should fail")
	}

	ks := wallet.KeyStore{SecretKey: "0xzz"}
	if _, err := ks.KeyPair(); err == nil {
		t.Fatal("recovering from a malformed secret should fail")
	}
}
