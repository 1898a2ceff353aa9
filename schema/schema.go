// Package schema reads the SIMS-FR schema: the ordered list of report
// attributes with their target predicate and declared range.
package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/m0convert/vocabulary/insee"
)

var (
	// ErrMissingSchema is returned when the schema file cannot be found.
	ErrMissingSchema = errors.New("missing schema")

	// ErrInvalidSchema is returned for malformed entries.
	ErrInvalidSchema = errors.New("invalid schema")
)

// Range is the declared range of a schema entry. The set of variants is
// closed: NoRange, PlainString, Date, CodedReference, ReportedAttribute and
// QualityMeasurement.
type Range interface {
	isRange()
	String() string
}

// NoRange marks free text with optional references.
type NoRange struct{}

// PlainString marks a bilingual string.
type PlainString struct{}

// Date marks a calendar date.
type Date struct{}

// ReportedAttribute marks an attribute with no value yet.
type ReportedAttribute struct{}

// QualityMeasurement marks a DQV quality measurement.
type QualityMeasurement struct{}

// CodedReference marks a reference to a code of the list whose concept is Concept.
type CodedReference struct {
	Concept string
}

func (NoRange) isRange()            {}
func (PlainString) isRange()        {}
func (Date) isRange()               {}
func (ReportedAttribute) isRange()  {}
func (QualityMeasurement) isRange() {}
func (CodedReference) isRange()     {}

func (NoRange) String() string            { return "none" }
func (PlainString) String() string        { return "string" }
func (Date) String() string               { return "date" }
func (ReportedAttribute) String() string  { return "reported-attribute" }
func (QualityMeasurement) String() string { return "quality-measurement" }
func (r CodedReference) String() string   { return r.Concept }

// ParseRange reads a range keyword or IRI. Keywords and their IRIs are
// accepted interchangeably; any other absolute IRI is a code list concept.
func ParseRange(s string) (Range, error) {
	switch s = strings.TrimSpace(s); s {
	case "", "none":
		return NoRange{}, nil
	case "string", insee.XSDString:
		return PlainString{}, nil
	case "date", insee.XSDDate:
		return Date{}, nil
	case "reported-attribute", insee.ClassReportedAttribute:
		return ReportedAttribute{}, nil
	case "quality-measurement", insee.ClassQualityMeasurement:
		return QualityMeasurement{}, nil
	}
	if !strings.Contains(s, "://") {
		return nil, fmt.Errorf("%w: unknown range %q", ErrInvalidSchema, s)
	}
	return CodedReference{Concept: s}, nil
}

// Entry is one attribute of the report structure.
type Entry struct {
	Code      string
	Predicate string
	Range     Range
}

type rawEntry struct {
	Code      string `yaml:"code"`
	Predicate string `yaml:"predicate"`
	Range     string `yaml:"range"`
}

// UnmarshalYAML decodes an entry and parses its range.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	var raw rawEntry
	if err := value.Decode(&raw); err != nil {
		return err
	}
	r, err := ParseRange(raw.Range)
	if err != nil {
		return fmt.Errorf("entry %s: %w", raw.Code, err)
	}
	*e = Entry{Code: raw.Code, Predicate: raw.Predicate, Range: r}
	return nil
}

// MarshalYAML encodes an entry with its range keyword.
func (e Entry) MarshalYAML() (interface{}, error) {
	raw := rawEntry{Code: e.Code, Predicate: e.Predicate}
	if e.Range != nil {
		raw.Range = e.Range.String()
	}
	return raw, nil
}

// Schema is the ordered list of entries.
type Schema struct {
	Entries []Entry `yaml:"entries"`
}

// Load reads a schema file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSchema, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that entries are complete and codes are unique.
func (s *Schema) Validate() error {
	if len(s.Entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidSchema)
	}
	seen := make(map[string]bool, len(s.Entries))
	for i, e := range s.Entries {
		if e.Code == "" || e.Predicate == "" {
			return fmt.Errorf("%w: entry %d needs a code and a predicate", ErrInvalidSchema, i)
		}
		if seen[e.Code] {
			return fmt.Errorf("%w: duplicate code %s", ErrInvalidSchema, e.Code)
		}
		seen[e.Code] = true
		if e.Range == nil {
			s.Entries[i].Range = NoRange{}
		}
	}
	return nil
}
