package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrCatalogLoad    = errors.New("catalog load failed")
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrOrderPersist   = errors.New("order could not be persisted")
	ErrDuplicateOrder = errors.New("order id already exists in log")
)

// UnknownItemError reports an item name that does not resolve in the
// catalog. It is a struct rather than a sentinel because the offending
// name has to surface in the spoken reply.
type UnknownItemError struct {
	Item string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("unknown item %q", e.Item)
}

// AsUnknownItem unwraps err into an UnknownItemError, or nil.
func AsUnknownItem(err error) *UnknownItemError {
	var uie *UnknownItemError
	if errors.As(err, &uie) {
		return uie
	}
	return nil
}
