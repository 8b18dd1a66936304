// Package services holds the marketplace business rules. Each service
// operates on the store interfaces so the rules can be exercised without a
// live database.
package services

import (
	"errors"
	"fmt"

	"localmarket/store"
)

// Business error taxonomy. Controllers map these to HTTP statuses; none of
// them is fatal to the process.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("not authorized")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrPersistence  = errors.New("storage unavailable")
)

// storeErr translates store failures into the service taxonomy.
func storeErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
