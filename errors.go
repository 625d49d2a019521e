package hisab

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid reports a record that fails the input rules.
	ErrInvalid = errors.New("invalid record")
	// ErrInvalidRate reports a non positive trading rate. It is an ErrInvalid.
	ErrInvalidRate = fmt.Errorf("%w: rate must be positive", ErrInvalid)
	// ErrNotFound reports an id that matches no record of the collection.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadySettled reports a sale on a dollar lot that was already sold.
	ErrAlreadySettled = errors.New("dollar lot already settled")
	// ErrUnknownModule reports a collection name that is not one of the six modules.
	ErrUnknownModule = errors.New("unknown module")
)
