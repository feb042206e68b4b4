package genesis_test

import (
	"os"
	"testing"

	"github.com/rhizanet/rhiza/foundation/dag/genesis"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
)

// chdir switches the working directory for the duration of the test.
// testing.T.Chdir exists only in Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func Test_SaveLoad(t *testing.T) {
	chdir(t, t.TempDir())

	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}

	gen := genesis.New(kp.PublicKey())
	if gen.FounderAllocation != protocol.FounderAllocation {
		t.Fatalf("founder allocation: got %d, want %d", gen.FounderAllocation, protocol.FounderAllocation)
	}
	if gen.MaxSupply != protocol.MaxSupply {
		t.Fatalf("max supply: got %d, want %d", gen.MaxSupply, protocol.MaxSupply)
	}

	if err := gen.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := genesis.Load()
	if err != nil {
		t.Fatal(err)
	}

	if loaded.FounderPublicKey != gen.FounderPublicKey {
		t.Fatal("founder public key does not round trip")
	}
	if !loaded.Date.Equal(gen.Date) {
		t.Fatalf("date does not round trip: got %s, want %s", loaded.Date, gen.Date)
	}
	if loaded.ChainName != gen.ChainName || loaded.BaseRelayReward != gen.BaseRelayReward || loaded.FinalityThreshold != gen.FinalityThreshold {
		t.Fatalf("launch parameters do not round trip: %+v", loaded)
	}
}

func Test_LoadMissing(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := genesis.Load(); err == nil {
		t.Fatal("loading without a genesis file should fail")
	}
}
