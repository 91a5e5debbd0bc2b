package ledger

import "errors"

// Errors returned by ledger mutations. They are wrapped with the offending
// value, so test with errors.Is.
var (
	ErrInvalidName      = errors.New("participant name is empty")
	ErrDuplicateName    = errors.New("participant name already exists")
	ErrUnknownPayer     = errors.New("payer is not a participant")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrDuplicateExpense = errors.New("participant already has an expense")
)
