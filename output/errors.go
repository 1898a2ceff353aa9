package output

import "errors"

// ErrLocked is returned when another run holds the output directory.
var ErrLocked = errors.New("output directory locked by another run")
