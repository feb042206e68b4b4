package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/spf13/cobra"
)

type relayStats struct {
	Account      string `json:"account"`
	RelayCount   uint64 `json:"relay_count"`
	NextReward   uint64 `json:"next_reward"`
	TotalRelays  uint64 `json:"total_relays"`
	TotalRewards uint64 `json:"total_rewards"`
}

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Print your relay activity and the reward the next relay earns.",
	Run:   relayRun,
}

func init() {
	rootCmd.AddCommand(relayCmd)
}

func relayRun(cmd *cobra.Command, args []string) {
	kp, err := loadKeyPair()
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Get(fmt.Sprintf("%s/v1/relay/stats/%s", nodeURL(), kp.PublicKey()))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var stats relayStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		log.Fatal(err)
	}

	fmt.Println("For Account:", stats.Account)
	fmt.Println("relays recorded:", stats.RelayCount)
	fmt.Printf("next reward: %d units (%.8f RHZ)\n", stats.NextReward, float64(stats.NextReward)/float64(protocol.UnitsPerRHZ))
	fmt.Println("network relays:", stats.TotalRelays)
	fmt.Println("network rewards issued:", stats.TotalRewards)
}
