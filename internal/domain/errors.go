package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when a checkout is attempted without any line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrIncompleteCustomer is returned when required contact fields are blank.
	ErrIncompleteCustomer = errors.New("customer information incomplete")
	// ErrInvalidSelection is returned when a line carries no selected sizes or misses its customization.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrInvalidQuantity is returned for negative quantities.
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)
