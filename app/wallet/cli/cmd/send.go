package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/spf13/cobra"
)

var (
	to     string
	amount uint64
	nonce  uint64
)

// sendCmd represents the send command.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a transfer",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Hex public key of the recipient.")
	sendCmd.Flags().Uint64VarP(&amount, "amount", "v", 0, "Amount to send in base units.")
	sendCmd.Flags().Uint64VarP(&nonce, "nonce", "n", 0, "Sender sequence number.")
}

func sendRun(cmd *cobra.Command, args []string) {
	kp, err := loadKeyPair()
	if err != nil {
		log.Fatal(err)
	}

	recipient, err := keys.PublicKeyFromString(to)
	if err != nil {
		log.Fatal(err)
	}

	// Ask the node which two tips the new transfer should approve.
	resp, err := http.Get(fmt.Sprintf("%s/v1/tips/select", nodeURL()))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var parents [protocol.ParentCount]digest.Digest
	if err := json.NewDecoder(resp.Body).Decode(&parents); err != nil {
		log.Fatal(err)
	}

	tx := transaction.Transfer(kp, recipient, amount, parents, nonce)

	data, err := json.Marshal(tx)
	if err != nil {
		log.Fatal(err)
	}

	submit, err := http.Post(fmt.Sprintf("%s/v1/tx/submit", nodeURL()), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer submit.Body.Close()

	body, _ := io.ReadAll(submit.Body)
	fmt.Println(string(body))
}
