package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidProject = errors.New("invalid project")
	ErrInvalidStatus  = errors.New("invalid task status")
)
