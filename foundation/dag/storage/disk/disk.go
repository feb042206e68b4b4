// Package disk implements transaction persistence on a LevelDB database.
// Transactions are stored under 8 byte big-endian sequence keys so LevelDB's
// key order is the ledger's insertion order.
package disk

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rhizanet/rhiza/foundation/dag/storage"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Disk represents the serialization implementation for reading and storing
// transactions in a LevelDB database. This implements the storage.Serializer
// interface.
type Disk struct {
	db      *leveldb.DB
	nextSeq uint64
}

// New opens or creates the LevelDB database at the specified path.
func New(dbPath string) (*Disk, error) {
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("opening transaction store: %w", err)
	}

	d := Disk{
		db: db,
	}

	// The next sequence number follows the highest key already present.
	iter := db.NewIterator(nil, nil)
	if iter.Last() {
		d.nextSeq = binary.BigEndian.Uint64(iter.Key()) + 1
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		db.Close()
		return nil, fmt.Errorf("scanning transaction store: %w", err)
	}

	return &d, nil
}

// Close releases the underlying database.
func (d *Disk) Close() error {
	return d.db.Close()
}

// Write appends the wire encoding of the transaction under the next
// sequence key.
func (d *Disk) Write(tx transaction.Tx) error {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], d.nextSeq)

	if err := d.db.Put(key[:], tx.Encode(), nil); err != nil {
		return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
	}

	d.nextSeq++
	return nil
}

// ForEach returns an iterator to walk through all the stored transactions
// in insertion order.
func (d *Disk) ForEach() storage.Iterator {
	return &diskIterator{iter: d.db.NewIterator(nil, nil)}
}

// Reset clears out every stored transaction.
func (d *Disk) Reset() error {
	batch := new(leveldb.Batch)

	iter := d.db.NewIterator(&util.Range{}, nil)
	for iter.Next() {
		batch.Delete(iter.Key())
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("scanning transaction store: %w", err)
	}

	if err := d.db.Write(batch, nil); err != nil {
		return fmt.Errorf("clearing transaction store: %w", err)
	}

	d.nextSeq = 0
	return nil
}

// =============================================================================

// diskIterator represents the iteration implementation for walking through
// the stored transactions. This implements the storage.Iterator interface.
type diskIterator struct {
	iter iterator
	eot  bool
}

// iterator is the subset of the LevelDB iterator behavior the walk needs.
type iterator interface {
	Next() bool
	Value() []byte
	Release()
	Error() error
}

// Next retrieves the next transaction from the database.
func (di *diskIterator) Next() (transaction.Tx, error) {
	if di.eot {
		return transaction.Tx{}, errors.New("end of transactions")
	}

	if !di.iter.Next() {
		di.eot = true
		di.iter.Release()

		if err := di.iter.Error(); err != nil {
			return transaction.Tx{}, fmt.Errorf("iterating transaction store: %w", err)
		}
		return transaction.Tx{}, errors.New("end of transactions")
	}

	tx, err := transaction.Decode(di.iter.Value())
	if err != nil {
		return transaction.Tx{}, fmt.Errorf("decoding stored transaction: %w", err)
	}

	return tx, nil
}

// Done returns the end of transactions value.
func (di *diskIterator) Done() bool {
	return di.eot
}
