package domain

import (
	"errors"
	"fmt"
)

var (
	// Entry errors
	ErrInvalidAmount = errors.New("amount is not a valid decimal number")

	// Journal errors
	ErrCannotRevert   = errors.New("last append cannot be reverted")
	ErrMalformedEntry = errors.New("entry header does not match date/payee format")
)

// LedgerCliError reports a non-zero exit from the external ledger engine.
// Stderr carries whatever the engine printed before exiting.
type LedgerCliError struct {
	Stderr string
	Err    error
}

func (e *LedgerCliError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ledger cli failed: %s", e.Stderr)
	}
	return fmt.Sprintf("ledger cli failed: %v", e.Err)
}

func (e *LedgerCliError) Unwrap() error {
	return e.Err
}
