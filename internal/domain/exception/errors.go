package exception

import "errors"

var (
	ErrExceptionNotFound = errors.New("attendance exception not found")
)
