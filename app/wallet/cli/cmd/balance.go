package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/spf13/cobra"
)

type balance struct {
	Account string `json:"account"`
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	kp, err := loadKeyPair()
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Get(fmt.Sprintf("%s/v1/balances/list/%s", nodeURL(), kp.PublicKey()))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var bal balance
	if err := json.NewDecoder(resp.Body).Decode(&bal); err != nil {
		log.Fatal(err)
	}

	fmt.Println("For Account:", bal.Address)
	fmt.Printf("%d units (%.8f RHZ)\n", bal.Balance, float64(bal.Balance)/float64(protocol.UnitsPerRHZ))
}
