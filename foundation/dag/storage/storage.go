// Package storage declares the behavior required of any implementation that
// persists admitted transactions across restarts. Implementations must
// preserve insertion order on iteration so a replay never hits a
// transaction before its parents.
package storage

import (
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// Serializer interface represents the behavior required to be implemented
// by any package providing support for storing and reading the ledger.
type Serializer interface {
	Write(tx transaction.Tx) error
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the stored transactions in
// insertion order.
type Iterator interface {
	Next() (transaction.Tx, error)
	Done() bool
}
