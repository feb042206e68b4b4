// Package memory implements transaction persistence in memory. Useful for
// testing and ephemeral nodes.
package memory

import (
	"errors"
	"sync"

	"github.com/rhizanet/rhiza/foundation/dag/storage"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// Memory represents the serialization implementation for keeping transactions
// in memory. This implements the storage.Serializer interface.
type Memory struct {
	mu  sync.RWMutex
	txs []transaction.Tx
}

// New constructs an empty in-memory transaction store.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to release.
func (m *Memory) Close() error {
	return nil
}

// Write appends the transaction to the in-memory store.
func (m *Memory) Write(tx transaction.Tx) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txs = append(m.txs, tx)
	return nil
}

// ForEach returns an iterator to walk through all the stored transactions
// in insertion order.
func (m *Memory) ForEach() storage.Iterator {
	return &memoryIterator{store: m}
}

// Reset clears out every stored transaction.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txs = nil
	return nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking through
// the stored transactions. This implements the storage.Iterator interface.
type memoryIterator struct {
	store *Memory
	next  int
	eot   bool
}

// Next retrieves the next transaction from the store.
func (mi *memoryIterator) Next() (transaction.Tx, error) {
	mi.store.mu.RLock()
	defer mi.store.mu.RUnlock()

	if mi.next >= len(mi.store.txs) {
		mi.eot = true
		return transaction.Tx{}, errors.New("end of transactions")
	}

	tx := mi.store.txs[mi.next]
	mi.next++
	return tx, nil
}

// Done returns the end of transactions value.
func (mi *memoryIterator) Done() bool {
	return mi.eot
}
