package numeral

import "errors"

// ErrOutOfRange is returned when the number cannot be written with the classical symbol set.
var ErrOutOfRange = errors.New("number must be between 1 and 3999")
