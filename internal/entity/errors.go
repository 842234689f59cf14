package entity

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyOpened   = errors.New("email already marked opened")
	ErrInvalidPostcode = errors.New("postcode format is invalid")
)
