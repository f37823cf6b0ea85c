package position

import "errors"

var (
	ErrPositionNotFound = errors.New("employee position not found or inactive in this business")
)
