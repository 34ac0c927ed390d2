package application

import "errors"

var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("conflict")
var ErrBadRequest = errors.New("bad request")

// Unit-of-work failures. Implementations wrap the driver error together with one of these.
var (
	ErrConnection       = errors.New("connection error")
	ErrTransaction      = errors.New("transaction error")
	ErrUnitOfWorkClosed = errors.New("unit of work closed")
)
