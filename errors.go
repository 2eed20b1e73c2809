package debounce

import (
	"errors"
)

// ErrInvalidArgument is returned when a debouncer is constructed around
// something that cannot be called.
var ErrInvalidArgument = errors.New("debounce: invalid argument")
