// Package diagnostics records per-record data issues. Issues never abort a
// run: each one is logged at the level of its kind, counted, and forwarded
// to an optional observer such as a metrics recorder.
package diagnostics

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Kind classifies a data issue.
type Kind int

const (
	// MissingValue: the attribute is absent.
	MissingValue Kind = iota
	// EmptyValue: the attribute is blank after trimming.
	EmptyValue
	// AmbiguousValue: the attribute has more than one primary value.
	AmbiguousValue
	UnparseableDate
	UnknownDeclaredRange
	ConflictingHierarchyParent
	// SharedAttachment: a resource receives more than one report.
	SharedAttachment
	// DuplicateAttachment: a report is attached to more than one resource.
	DuplicateAttachment
	// UnresolvedReference: an M0 URI has no target URI.
	UnresolvedReference
	InvalidYear
	InvalidReference
	// MissingIdentifier: a record lacks the identifier it is converted from.
	MissingIdentifier
	// LanguageConflict: a link is associated in both languages.
	LanguageConflict
	// UnknownLanguage: the language of a link cannot be determined.
	UnknownLanguage
	// UnmatchedReference: a value has no counterpart in reference data.
	UnmatchedReference
	// MissingRequiredValue: an attribute every record must carry is absent.
	MissingRequiredValue
	// UntypedResource: a converted resource was never given its class.
	UntypedResource
)

var kindNames = map[Kind]string{
	MissingValue:               "missing_value",
	EmptyValue:                 "empty_value",
	AmbiguousValue:             "ambiguous_value",
	UnparseableDate:            "unparseable_date",
	UnknownDeclaredRange:       "unknown_declared_range",
	ConflictingHierarchyParent: "conflicting_hierarchy_parent",
	SharedAttachment:           "shared_attachment",
	DuplicateAttachment:        "duplicate_attachment",
	UnresolvedReference:        "unresolved_reference",
	InvalidYear:                "invalid_year",
	InvalidReference:           "invalid_reference",
	MissingIdentifier:          "missing_identifier",
	LanguageConflict:           "language_conflict",
	UnknownLanguage:            "unknown_language",
	UnmatchedReference:         "unmatched_reference",
	MissingRequiredValue:       "missing_required_value",
	UntypedResource:            "untyped_resource",
}

// Kinds lists every kind in declaration order.
var Kinds = func() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}()

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Level returns the log level of the kind.
func (k Kind) Level() slog.Level {
	switch k {
	case MissingValue, EmptyValue:
		return slog.LevelDebug
	case SharedAttachment, MissingIdentifier, LanguageConflict, UnknownLanguage, UnmatchedReference, UntypedResource:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Observer is notified of every recorded issue.
type Observer interface {
	Observe(kind string)
}

// Sink logs and counts issues.
type Sink struct {
	logger   *slog.Logger
	observer Observer

	mu     sync.Mutex
	counts map[Kind]int
}

// New creates a sink. A nil logger uses slog.Default(); observer may be nil.
func New(logger *slog.Logger, observer Observer) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{
		logger:   logger,
		observer: observer,
		counts:   make(map[Kind]int),
	}
}

// Record logs msg at the kind's level with the given attributes.
func (s *Sink) Record(kind Kind, msg string, args ...any) {
	s.mu.Lock()
	s.counts[kind]++
	s.mu.Unlock()

	args = append(args, "kind", kind.String())
	s.logger.Log(context.Background(), kind.Level(), msg, args...)
	if s.observer != nil {
		s.observer.Observe(kind.String())
	}
}

// Count returns the number of issues of a kind.
func (s *Sink) Count(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[kind]
}

// Total returns the number of issues recorded.
func (s *Sink) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

// LogSummary logs one line per kind that occurred.
func (s *Sink) LogSummary() {
	for _, k := range Kinds {
		if n := s.Count(k); n > 0 {
			s.logger.Info("Diagnostics summary", "kind", k.String(), "count", n)
		}
	}
}
