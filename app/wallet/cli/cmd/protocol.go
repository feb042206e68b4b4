package cmd

import (
	"fmt"

	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/spf13/cobra"
)

var protocolCmd = &cobra.Command{
	Use:   "protocol",
	Short: "Print the protocol constants",
	Run:   protocolRun,
}

func init() {
	rootCmd.AddCommand(protocolCmd)
}

func protocolRun(cmd *cobra.Command, args []string) {
	fmt.Println("address prefix:     ", protocol.AddressHRP)
	fmt.Println("units per RHZ:      ", protocol.UnitsPerRHZ)
	fmt.Println("max supply:         ", protocol.MaxSupply)
	fmt.Println("parents per tx:     ", protocol.ParentCount)
	fmt.Println("finality threshold: ", protocol.FinalityThreshold)
	fmt.Println("base relay reward:  ", protocol.BaseRelayReward)
	fmt.Println("relay halving every:", protocol.RelayHalvingInterval)
	fmt.Println("founder allocation: ", protocol.FounderAllocation)
}
