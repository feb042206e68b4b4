// Package digest provides the content addressing used to identify
// transactions in the ledger.
package digest

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"lukechampine.com/blake3"
)

// Size is the length in bytes of a digest.
const Size = 32

// Digest is a 32 byte BLAKE3 hash of arbitrary content. The zero value is a
// reserved sentinel meaning "no parent" and is only legal on the genesis
// transaction.
type Digest [Size]byte

// Sum hashes the specified byte sequences together into a single digest.
func Sum(data ...[]byte) Digest {
	h := blake3.New(Size, nil)
	for _, d := range data {
		h.Write(d)
	}

	var dg Digest
	copy(dg[:], h.Sum(nil))
	return dg
}

// FromBytes constructs a digest from a raw 32 byte slice.
func FromBytes(data []byte) (Digest, error) {
	if len(data) != Size {
		return Digest{}, fmt.Errorf("digest must be %d bytes, got %d", Size, len(data))
	}

	var dg Digest
	copy(dg[:], data)
	return dg, nil
}

// FromString constructs a digest from its hex string form.
func FromString(s string) (Digest, error) {
	data, err := hexutil.Decode(s)
	if err != nil {
		return Digest{}, fmt.Errorf("decoding digest: %w", err)
	}

	return FromBytes(data)
}

// IsZero reports whether this is the reserved all-zero sentinel.
func (dg Digest) IsZero() bool {
	return dg == Digest{}
}

// Bytes returns the digest as a byte slice.
func (dg Digest) Bytes() []byte {
	return bytes.Clone(dg[:])
}

// String implements the fmt.Stringer interface.
func (dg Digest) String() string {
	return hexutil.Encode(dg[:])
}

// MarshalText implements the encoding.TextMarshaler interface so digests
// serialize as hex strings in JSON documents and map keys.
func (dg Digest) MarshalText() ([]byte, error) {
	return []byte(hexutil.Encode(dg[:])), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (dg *Digest) UnmarshalText(data []byte) error {
	d, err := FromString(string(data))
	if err != nil {
		return err
	}

	*dg = d
	return nil
}
