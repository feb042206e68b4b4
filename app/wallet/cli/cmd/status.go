package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [tx id]",
	Short: "Print the confirmation status of a transaction",
	Args:  cobra.ExactArgs(1),
	Run:   statusRun,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/tx/status/%s", nodeURL(), args[0]))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var status struct {
		State  string `json:"state"`
		Weight uint64 `json:"weight"`
		Needed uint64 `json:"needed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("state:  %s\n", status.State)
	if status.Weight > 0 {
		fmt.Printf("weight: %d of %d\n", status.Weight, status.Needed)
	}
}
