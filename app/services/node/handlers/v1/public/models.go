package public

import (
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/ledger"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/rhizanet/rhiza/foundation/dag/wallet"
)

// balance is the account view returned by the balance endpoint.
type balance struct {
	Account string `json:"account"`
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// tx is the public view of a ledger transaction.
type tx struct {
	ID        digest.Digest    `json:"id"`
	Type      string           `json:"type"`
	Parents   [2]digest.Digest `json:"parents"`
	Sender    string           `json:"sender"`
	Recipient string           `json:"recipient"`
	Amount    uint64           `json:"amount"`
	Fee       uint64           `json:"fee"`
	Timestamp uint64           `json:"timestamp"`
	Nonce     uint64           `json:"nonce"`
	Memo      string           `json:"memo,omitempty"`
	Weight    uint64           `json:"weight"`
	Depth     uint64           `json:"depth"`
	Final     bool             `json:"final"`
}

// toTx builds the public transaction view from a ledger vertex.
func toTx(v ledger.Vertex) tx {
	return tx{
		ID:        v.Tx.ID,
		Type:      transaction.TypeName(v.Tx.Data.TxType),
		Parents:   v.Tx.Data.Parents,
		Sender:    wallet.NewAddress(v.Tx.Data.Sender).String(),
		Recipient: wallet.NewAddress(v.Tx.Data.Recipient).String(),
		Amount:    v.Tx.Data.Amount,
		Fee:       v.Tx.Data.Fee,
		Timestamp: v.Tx.Data.Timestamp,
		Nonce:     v.Tx.Data.Nonce,
		Memo:      v.Tx.Data.Memo,
		Weight:    v.CumulativeWeight,
		Depth:     v.Depth,
		Final:     v.IsFinal,
	}
}
