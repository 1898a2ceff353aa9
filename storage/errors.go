package storage

import "errors"

// Common storage errors.
var (
	// ErrNoInput is returned when no input file matches the configured patterns.
	ErrNoInput = errors.New("no input files")

	// ErrUnsupportedFormat is returned for files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")

	// ErrUnknownEntityType is returned for an unrecognised M0 type token.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrInvalidRecordID is returned for a URI that does not name an M0 record.
	ErrInvalidRecordID = errors.New("invalid record id")
)
