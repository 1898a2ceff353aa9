// Package storage holds the in-memory triple store the converter reads the
// M0 graphs from and writes target graphs to.
package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/c360studio/m0convert/vocabulary/m0"
)

// EntityType is the type token of an M0 record.
type EntityType string

const (
	EntityFamily        EntityType = "famille"
	EntitySeries        EntityType = "serie"
	EntityOperation     EntityType = "operation"
	EntityIndicator     EntityType = "indicateur"
	EntityOrganization  EntityType = "organisme"
	EntityDocumentation EntityType = "documentation"
	EntityCodeList      EntityType = "codelist"
	EntityCode          EntityType = "code"
	EntityLink          EntityType = "lien"
	EntityDocument      EntityType = "document"
)

// EntityTypes lists every known type.
var EntityTypes = []EntityType{
	EntityFamily,
	EntitySeries,
	EntityOperation,
	EntityIndicator,
	EntityOrganization,
	EntityDocumentation,
	EntityCodeList,
	EntityCode,
	EntityLink,
	EntityDocument,
}

// ParseEntityType validates a type token.
func ParseEntityType(s string) (EntityType, error) {
	for _, t := range EntityTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownEntityType, s)
}

// GraphToken returns the plural token naming the type's graph.
func (t EntityType) GraphToken() string {
	return string(t) + "s"
}

// GraphName returns the full name of the type's M0 graph.
func (t EntityType) GraphName() string {
	return m0.GraphName(t.GraphToken())
}

// Base returns the URI prefix shared by every record of the type, with a
// trailing slash.
func (t EntityType) Base() string {
	return m0.BaseURI + t.GraphToken() + "/" + string(t) + "/"
}

// Sequence returns the URI of the type's sequence resource.
func (t EntityType) Sequence() string {
	return t.Base() + m0.AttrSequence
}

// RecordID identifies an M0 record.
type RecordID struct {
	Type   EntityType
	Number int
}

// NewRecordID returns the id of record n of type t.
func NewRecordID(t EntityType, n int) RecordID {
	return RecordID{Type: t, Number: n}
}

// URI returns the record URI.
func (r RecordID) URI() string {
	return r.Type.Base() + strconv.Itoa(r.Number)
}

// Attribute returns the URI of one attribute sub-resource of the record.
func (r RecordID) Attribute(name string) string {
	return r.URI() + "/" + name
}

// String returns the record URI.
func (r RecordID) String() string {
	return r.URI()
}

// ParseRecordID parses a record URI or any of its attribute sub-resources.
func ParseRecordID(uri string) (RecordID, error) {
	rest, ok := strings.CutPrefix(uri, m0.BaseURI)
	if !ok {
		return RecordID{}, fmt.Errorf("%w: %s", ErrInvalidRecordID, uri)
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 3 {
		return RecordID{}, fmt.Errorf("%w: %s", ErrInvalidRecordID, uri)
	}
	t, err := ParseEntityType(parts[1])
	if err != nil {
		return RecordID{}, err
	}
	if parts[0] != t.GraphToken() {
		return RecordID{}, fmt.Errorf("%w: %s", ErrInvalidRecordID, uri)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return RecordID{}, fmt.Errorf("%w: %s", ErrInvalidRecordID, uri)
	}
	return RecordID{Type: t, Number: n}, nil
}

// AttributeName returns the attribute token of a sub-resource URI, or ""
// when uri names a record.
func AttributeName(uri string) string {
	rest, ok := strings.CutPrefix(uri, m0.BaseURI)
	if !ok {
		return ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 4 {
		return ""
	}
	return parts[len(parts)-1]
}
