package cmd

import (
	"fmt"
	"log"

	"github.com/rhizanet/rhiza/foundation/dag/wallet"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address for the specific wallet",
	Run:   addressRun,
}

func init() {
	rootCmd.AddCommand(addressCmd)
}

func addressRun(cmd *cobra.Command, args []string) {
	kp, err := loadKeyPair()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(wallet.NewAddress(kp.PublicKey()))
}
