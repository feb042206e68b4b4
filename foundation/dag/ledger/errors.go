package ledger

import (
	"errors"
	"fmt"

	"github.com/rhizanet/rhiza/foundation/dag/digest"
)

// ErrDuplicateTransaction is returned by Insert when the transaction id is
// already present in the ledger.
var ErrDuplicateTransaction = errors.New("duplicate transaction")

// ErrInvalidTransaction is reserved for structural defects that are not
// covered by a more specific error. No current rule produces it.
var ErrInvalidTransaction = errors.New("invalid transaction")

// MissingParentError is returned by Insert when a non-genesis transaction
// names a parent that is not in the ledger.
type MissingParentError struct {
	Parent digest.Digest
}

// Error implements the error interface.
func (e *MissingParentError) Error() string {
	return fmt.Sprintf("missing parent transaction: %s", e.Parent)
}
