// Package transaction implements the immutable signed records stored in the
// ledger and the canonical byte encoding that derives their identity.
package transaction

import (
	"fmt"
	"time"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
)

// Set of transaction types.
const (
	TypeGenesis uint8 = iota
	TypeTransfer
	TypeRelayReward
	TypeFounderGrant
)

// TypeName returns a human readable name for a transaction type tag.
func TypeName(txType uint8) string {
	switch txType {
	case TypeGenesis:
		return "genesis"
	case TypeTransfer:
		return "transfer"
	case TypeRelayReward:
		return "relay-reward"
	case TypeFounderGrant:
		return "founder-grant"
	}
	return fmt.Sprintf("unknown(%d)", txType)
}

// =============================================================================

// TxData is the signed payload of a transaction. The canonical encoding of
// this value is what gets hashed for the id and signed by the sender.
type TxData struct {
	TxType    uint8                               `json:"tx_type"`
	Parents   [protocol.ParentCount]digest.Digest `json:"parents"`
	Sender    keys.PublicKey                      `json:"sender"`
	Recipient keys.PublicKey                      `json:"recipient"`
	Amount    uint64                              `json:"amount"`
	Fee       uint64                              `json:"fee"`
	Timestamp uint64                              `json:"timestamp"`
	Nonce     uint64                              `json:"nonce"`
	Memo      string                              `json:"memo,omitempty"`
}

// Tx is a complete transaction: the payload, its content id, and the
// sender's signature over the canonical payload encoding. Immutable once
// constructed.
type Tx struct {
	ID        digest.Digest  `json:"id"`
	Data      TxData         `json:"data"`
	Signature keys.Signature `json:"signature"`
}

// New hashes and signs the specified payload with the sender's key pair.
func New(data TxData, kp keys.KeyPair) Tx {
	signingBytes := data.SigningBytes()

	return Tx{
		ID:        digest.Sum(signingBytes),
		Data:      data,
		Signature: kp.Sign(signingBytes),
	}
}

// Genesis constructs the unique root transaction. Its two parents are the
// zero digest sentinel and it carries no value.
func Genesis(kp keys.KeyPair) Tx {
	data := TxData{
		TxType:    TypeGenesis,
		Parents:   [protocol.ParentCount]digest.Digest{{}, {}},
		Sender:    kp.PublicKey(),
		Recipient: kp.PublicKey(),
		Memo:      "Rhiza Genesis - The root of true decentralization",
	}

	return New(data, kp)
}

// FounderGrant constructs the one-time founder allocation anchored directly
// to the genesis transaction.
func FounderGrant(genesisKP keys.KeyPair, founder keys.PublicKey, genesisID digest.Digest) Tx {
	data := TxData{
		TxType:    TypeFounderGrant,
		Parents:   [protocol.ParentCount]digest.Digest{genesisID, genesisID},
		Sender:    genesisKP.PublicKey(),
		Recipient: founder,
		Amount:    protocol.FounderAllocation,
		Nonce:     1,
		Memo:      "Rhiza Founder Allocation - 5% genesis grant",
	}

	return New(data, genesisKP)
}

// Transfer constructs a value transfer to the specified recipient, approving
// the two parent transactions.
func Transfer(senderKP keys.KeyPair, recipient keys.PublicKey, amount uint64, parents [protocol.ParentCount]digest.Digest, nonce uint64) Tx {
	data := TxData{
		TxType:    TypeTransfer,
		Parents:   parents,
		Sender:    senderKP.PublicKey(),
		Recipient: recipient,
		Amount:    amount,
		Timestamp: uint64(time.Now().UnixMilli()),
		Nonce:     nonce,
	}

	return New(data, senderKP)
}

// RelayReward constructs a self-directed reward claim for relay activity.
func RelayReward(kp keys.KeyPair, reward uint64, parents [protocol.ParentCount]digest.Digest, nonce uint64) Tx {
	data := TxData{
		TxType:    TypeRelayReward,
		Parents:   parents,
		Sender:    kp.PublicKey(),
		Recipient: kp.PublicKey(),
		Amount:    reward,
		Timestamp: uint64(time.Now().UnixMilli()),
		Nonce:     nonce,
	}

	return New(data, kp)
}

// VerifyID recomputes the id from the canonical payload encoding and compares
// it against the stored id.
func (tx Tx) VerifyID() bool {
	return tx.ID == digest.Sum(tx.Data.SigningBytes())
}

// VerifySignature checks the signature against the canonical payload encoding
// and the sender's declared public key.
func (tx Tx) VerifySignature() bool {
	return tx.Data.Sender.Verify(tx.Data.SigningBytes(), tx.Signature)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s", TypeName(tx.Data.TxType), tx.ID)
}
