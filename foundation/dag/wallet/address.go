// Package wallet provides address derivation and the on-disk keystore used
// by the node daemon and the CLI. Neither is ledger logic; both build on the
// core digest and key primitives.
package wallet

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
)

// addressPayloadLen is the number of public key digest bytes carried in an
// address.
const addressPayloadLen = 20

// Set of address parsing errors.
var (
	ErrInvalidEncoding = errors.New("invalid address encoding")
	ErrInvalidHRP      = errors.New("invalid human-readable prefix")
	ErrInvalidLength   = errors.New("invalid address payload length")
)

// Address is the bech32m string form of an account: the first 20 bytes of
// the BLAKE3 digest of the public key under the protocol prefix.
type Address string

// NewAddress derives the address for a public key.
func NewAddress(pub keys.PublicKey) Address {
	hash := digest.Sum(pub.Bytes())

	conv, err := bech32.ConvertBits(hash[:addressPayloadLen], 8, 5, true)
	if err != nil {

		// Widening 8 bit groups to 5 bit groups cannot fail.
		panic(fmt.Sprintf("wallet: converting address bits: %s", err))
	}

	encoded, err := bech32.EncodeM(protocol.AddressHRP, conv)
	if err != nil {
		panic(fmt.Sprintf("wallet: encoding address: %s", err))
	}

	return Address(encoded)
}

// ParseAddress validates an address string: prefix, bech32m checksum and
// payload length all have to hold.
func ParseAddress(s string) (Address, error) {
	payload, err := DecodeAddress(s)
	if err != nil {
		return "", err
	}

	if len(payload) != addressPayloadLen {
		return "", ErrInvalidLength
	}

	return Address(s), nil
}

// DecodeAddress recovers the 20 byte public key digest payload from an
// address string.
func DecodeAddress(s string) ([]byte, error) {
	hrp, conv, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return nil, ErrInvalidEncoding
	}

	if version != bech32.VersionM {
		return nil, ErrInvalidEncoding
	}

	if hrp != protocol.AddressHRP {
		return nil, ErrInvalidHRP
	}

	payload, err := bech32.ConvertBits(conv, 5, 8, false)
	if err != nil {
		return nil, ErrInvalidEncoding
	}

	if len(payload) != addressPayloadLen {
		return nil, ErrInvalidLength
	}

	return payload, nil
}

// String implements the fmt.Stringer interface.
func (a Address) String() string {
	return string(a)
}
