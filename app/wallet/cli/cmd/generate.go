package cmd

import (
	"fmt"
	"log"

	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/wallet"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new key pair",
	Run:   generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) {
	kp, err := keys.Generate()
	if err != nil {
		log.Fatal(err)
	}

	ks := wallet.NewKeyStore(kp)
	if err := ks.Save(getKeyStorePath()); err != nil {
		log.Fatal(err)
	}

	fmt.Println("public key:", kp.PublicKey())
	fmt.Println("address:   ", wallet.NewAddress(kp.PublicKey()))
}
