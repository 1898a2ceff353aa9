package convert

import "errors"

// ErrNoSchema is returned when metadata reports are converted without a schema.
var ErrNoSchema = errors.New("no metadata report schema")
