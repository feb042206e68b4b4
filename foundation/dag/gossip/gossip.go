// Package gossip defines the wire messages peers exchange and their binary
// encoding. Only the serialization contract lives here; how tip sets get
// reconciled between peers is a transport-layer concern.
package gossip

import (
	"encoding/binary"
	"fmt"

	"github.com/rhizanet/rhiza/foundation/dag/consensus"
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// Set of message type tags.
const (
	TypeNewTransaction uint8 = iota
	TypeRelayAnnounce
	TypeSyncRequest
	TypeSyncResponse
	TypeTipAnnounce
	TypePing
	TypePong
)

// Message is the tagged union carried between peers. The Type tag selects
// which of the remaining fields are meaningful.
type Message struct {
	Type         uint8
	Tx           transaction.Tx
	Proof        consensus.Proof
	Missing      []digest.Digest
	Transactions []transaction.Tx
	Tips         []digest.Digest
	Depth        uint64
	Timestamp    uint64
}

// TypeName returns a human readable name for logging.
func (m Message) TypeName() string {
	switch m.Type {
	case TypeNewTransaction:
		return "NewTransaction"
	case TypeRelayAnnounce:
		return "RelayAnnounce"
	case TypeSyncRequest:
		return "SyncRequest"
	case TypeSyncResponse:
		return "SyncResponse"
	case TypeTipAnnounce:
		return "TipAnnounce"
	case TypePing:
		return "Ping"
	case TypePong:
		return "Pong"
	}
	return fmt.Sprintf("Unknown(%d)", m.Type)
}

// DeserializationError reports a message that could not be decoded, carrying
// the underlying cause.
type DeserializationError struct {
	Err error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialization error: %s", e.Err)
}

// Unwrap supports errors.Is/As inspection of the cause.
func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// =============================================================================

// Encode produces the wire form of the message: a 1 byte type tag followed
// by the payload for that type. Variable length collections carry 4 byte
// little-endian count and length prefixes.
func (m Message) Encode() []byte {
	buf := []byte{m.Type}

	switch m.Type {
	case TypeNewTransaction:
		buf = appendTx(buf, m.Tx)

	case TypeRelayAnnounce:
		buf = append(buf, m.Proof.Relayer[:]...)
		buf = append(buf, m.Proof.TransactionID[:]...)
		buf = append(buf, m.Proof.HopCount)
		buf = binary.LittleEndian.AppendUint64(buf, m.Proof.Timestamp)
		buf = append(buf, m.Proof.Signature[:]...)

	case TypeSyncRequest:
		buf = appendDigests(buf, m.Missing)

	case TypeSyncResponse:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.Transactions)))
		for _, tx := range m.Transactions {
			buf = appendTx(buf, tx)
		}

	case TypeTipAnnounce:
		buf = appendDigests(buf, m.Tips)
		buf = binary.LittleEndian.AppendUint64(buf, m.Depth)

	case TypePing, TypePong:
		buf = binary.LittleEndian.AppendUint64(buf, m.Timestamp)
	}

	return buf
}

// Decode parses the wire form of a message. Any malformed input is reported
// as a DeserializationError with the underlying cause.
func Decode(buf []byte) (Message, error) {
	if len(buf) == 0 {
		return Message{}, &DeserializationError{Err: fmt.Errorf("empty message")}
	}

	msg := Message{Type: buf[0]}
	r := reader{buf: buf[1:]}

	switch msg.Type {
	case TypeNewTransaction:
		msg.Tx = r.tx()

	case TypeRelayAnnounce:
		copy(msg.Proof.Relayer[:], r.take(keys.PublicKeySize))
		copy(msg.Proof.TransactionID[:], r.take(digest.Size))
		if hop := r.take(1); hop != nil {
			msg.Proof.HopCount = hop[0]
		}
		msg.Proof.Timestamp = r.uint64()
		copy(msg.Proof.Signature[:], r.take(keys.SignatureSize))

	case TypeSyncRequest:
		msg.Missing = r.digests()

	case TypeSyncResponse:
		n := r.uint32()
		for i := uint32(0); i < n && r.err == nil; i++ {
			msg.Transactions = append(msg.Transactions, r.tx())
		}

	case TypeTipAnnounce:
		msg.Tips = r.digests()
		msg.Depth = r.uint64()

	case TypePing, TypePong:
		msg.Timestamp = r.uint64()

	default:
		return Message{}, &DeserializationError{Err: fmt.Errorf("unknown message type %d", msg.Type)}
	}

	if r.err != nil {
		return Message{}, &DeserializationError{Err: r.err}
	}
	if len(r.buf) != 0 {
		return Message{}, &DeserializationError{Err: fmt.Errorf("%d trailing bytes", len(r.buf))}
	}

	return msg, nil
}

// =============================================================================

func appendTx(buf []byte, tx transaction.Tx) []byte {
	wire := tx.Encode()
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(wire)))
	return append(buf, wire...)
}

func appendDigests(buf []byte, ids []digest.Digest) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(ids)))
	for _, id := range ids {
		buf = append(buf, id[:]...)
	}
	return buf
}

// reader consumes a message payload, latching the first error so decode
// logic can stay linear.
type reader struct {
	buf []byte
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.err = fmt.Errorf("truncated message: need %d bytes, have %d", n, len(r.buf))
		return nil
	}

	data := r.buf[:n]
	r.buf = r.buf[n:]
	return data
}

func (r *reader) uint32() uint32 {
	data := r.take(4)
	if data == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(data)
}

func (r *reader) uint64() uint64 {
	data := r.take(8)
	if data == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(data)
}

func (r *reader) tx() transaction.Tx {
	n := r.uint32()
	data := r.take(int(n))
	if data == nil {
		return transaction.Tx{}
	}

	tx, err := transaction.Decode(data)
	if err != nil {
		r.err = err
		return transaction.Tx{}
	}
	return tx
}

func (r *reader) digests() []digest.Digest {
	n := r.uint32()

	var ids []digest.Digest
	for i := uint32(0); i < n; i++ {
		data := r.take(digest.Size)
		if data == nil {
			return nil
		}

		var id digest.Digest
		copy(id[:], data)
		ids = append(ids, id)
	}
	return ids
}
