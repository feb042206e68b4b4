package transaction

import (
	"encoding/binary"
	"fmt"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/protocol"
)

// The canonical payload encoding is the signing and id basis for every
// transaction and must be bit-for-bit reproducible: 1 byte type tag, two
// 32 byte parent digests, two 32 byte public keys, then amount, fee,
// timestamp and nonce as 8 byte little-endian integers, a 1 byte memo flag
// and, when the flag is set, an 8 byte little-endian length prefix followed
// by the UTF-8 memo bytes. An empty memo encodes as absent.

// fixedLen is the size of the encoding before the optional memo.
const fixedLen = 1 + protocol.ParentCount*digest.Size + 2*keys.PublicKeySize + 4*8 + 1

// SigningBytes returns the canonical encoding of the payload.
func (data TxData) SigningBytes() []byte {
	size := fixedLen
	if data.Memo != "" {
		size += 8 + len(data.Memo)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, data.TxType)
	for _, parent := range data.Parents {
		buf = append(buf, parent[:]...)
	}
	buf = append(buf, data.Sender[:]...)
	buf = append(buf, data.Recipient[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, data.Amount)
	buf = binary.LittleEndian.AppendUint64(buf, data.Fee)
	buf = binary.LittleEndian.AppendUint64(buf, data.Timestamp)
	buf = binary.LittleEndian.AppendUint64(buf, data.Nonce)

	if data.Memo == "" {
		buf = append(buf, 0)
		return buf
	}

	buf = append(buf, 1)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(data.Memo)))
	buf = append(buf, data.Memo...)

	return buf
}

// decodeData parses a canonical payload encoding and returns the number of
// bytes consumed so callers can decode data followed by trailing fields.
func decodeData(buf []byte) (TxData, int, error) {
	if len(buf) < fixedLen {
		return TxData{}, 0, fmt.Errorf("payload too short: %d bytes", len(buf))
	}

	var data TxData
	n := 0

	data.TxType = buf[n]
	n++

	for i := range data.Parents {
		copy(data.Parents[i][:], buf[n:n+digest.Size])
		n += digest.Size
	}
	copy(data.Sender[:], buf[n:n+keys.PublicKeySize])
	n += keys.PublicKeySize
	copy(data.Recipient[:], buf[n:n+keys.PublicKeySize])
	n += keys.PublicKeySize

	data.Amount = binary.LittleEndian.Uint64(buf[n:])
	data.Fee = binary.LittleEndian.Uint64(buf[n+8:])
	data.Timestamp = binary.LittleEndian.Uint64(buf[n+16:])
	data.Nonce = binary.LittleEndian.Uint64(buf[n+24:])
	n += 32

	flag := buf[n]
	n++

	switch flag {
	case 0:
		return data, n, nil

	case 1:
		if len(buf) < n+8 {
			return TxData{}, 0, fmt.Errorf("payload truncated at memo length")
		}
		memoLen := binary.LittleEndian.Uint64(buf[n:])
		n += 8

		if uint64(len(buf)-n) < memoLen {
			return TxData{}, 0, fmt.Errorf("payload truncated at memo: need %d bytes, have %d", memoLen, len(buf)-n)
		}
		data.Memo = string(buf[n : n+int(memoLen)])
		n += int(memoLen)

		return data, n, nil
	}

	return TxData{}, 0, fmt.Errorf("invalid memo flag: %d", flag)
}

// =============================================================================

// Encode produces the wire form of a full transaction: the canonical payload
// encoding followed by the 64 byte signature. The id is not transmitted
// since it is recomputed on decode.
func (tx Tx) Encode() []byte {
	signingBytes := tx.Data.SigningBytes()

	buf := make([]byte, 0, len(signingBytes)+keys.SignatureSize)
	buf = append(buf, signingBytes...)
	buf = append(buf, tx.Signature[:]...)

	return buf
}

// Decode parses the wire form of a full transaction, recomputing its id from
// the canonical payload bytes.
func Decode(buf []byte) (Tx, error) {
	data, n, err := decodeData(buf)
	if err != nil {
		return Tx{}, fmt.Errorf("decoding payload: %w", err)
	}

	if len(buf) != n+keys.SignatureSize {
		return Tx{}, fmt.Errorf("invalid transaction length: %d bytes after payload", len(buf)-n)
	}

	tx := Tx{
		ID:   digest.Sum(buf[:n]),
		Data: data,
	}
	copy(tx.Signature[:], buf[n:])

	return tx, nil
}
