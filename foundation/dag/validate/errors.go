package validate

import (
	"errors"
	"fmt"
)

// Set of admission errors. These are value types used to report rejected
// transactions to the caller; the validator never panics on malformed input.
var (
	ErrInvalidID           = errors.New("invalid transaction id")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrZeroAmount          = errors.New("zero amount transfer")
	ErrExceedsMaxSupply    = errors.New("amount exceeds maximum supply")
	ErrParentNotFound      = errors.New("parent transaction not found")
	ErrInvalidRelayReward  = errors.New("relay reward exceeds allowed amount")
	ErrInvalidFounderGrant = errors.New("invalid founder grant")

	// ErrSelfReference and ErrInvalidTimestamp are reserved for checks the
	// admission pipeline does not perform yet. No rule produces them.
	ErrSelfReference    = errors.New("self-referencing parents")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// InsufficientBalanceError reports a transfer whose sender cannot cover the
// amount plus fee against the local ledger state.
type InsufficientBalanceError struct {
	Have uint64
	Need uint64
}

// Error implements the error interface.
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %d, need %d", e.Have, e.Need)
}
