package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// trip does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, return date before departure).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrInvalidPrice is returned by ledger operations when a price is zero or
// negative. It wraps ErrValidation so handlers only need one errors.Is check
// for the 400 path.
var ErrInvalidPrice = fmt.Errorf("%w: price must be positive", ErrValidation)
