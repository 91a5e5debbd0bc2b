package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/evenbetter/backend/internal/auth"
	"github.com/evenbetter/backend/internal/ledger"
	"github.com/evenbetter/backend/internal/preferences"
	"github.com/evenbetter/backend/internal/storage"
)

// errSessionRequired is returned when a handler runs without a session in context.
var errSessionRequired = errors.New("session token required")

// codeOf maps domain errors to Connect codes.
func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, ledger.ErrInvalidName),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, preferences.ErrUnsupportedLanguage),
		errors.Is(err, preferences.ErrUnsupportedCurrency):
		return connect.CodeInvalidArgument
	case errors.Is(err, ledger.ErrDuplicateName),
		errors.Is(err, ledger.ErrDuplicateExpense):
		return connect.CodeAlreadyExists
	case errors.Is(err, ledger.ErrUnknownPayer),
		errors.Is(err, storage.ErrSessionNotFound):
		return connect.CodeNotFound
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, errSessionRequired):
		return connect.CodeUnauthenticated
	default:
		return connect.CodeInternal
	}
}

// toConnectError wraps err with the matching Connect code.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	return connect.NewError(codeOf(err), err)
}
