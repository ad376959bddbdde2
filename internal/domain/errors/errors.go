package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPickingIncomplete  = errors.New("picking incomplete")
	ErrInvalidLineIndex   = errors.New("invalid line index")
	ErrBelowMinimumOrder  = errors.New("order value below regional minimum")
	ErrInvalidZipcode     = errors.New("invalid postal code")
)
