// Package mapping computes the table between M0 record URIs and target URIs.
package mapping

import (
	"fmt"
	"io"
	"slices"

	"github.com/c360studio/m0convert/storage"
)

// Entry is one M0 URI to target URI pair.
type Entry struct {
	M0     string
	Target string
}

// Mapping is an immutable M0 URI to target URI table.
type Mapping struct {
	targets map[string]string
	keys    []string
}

// New builds a mapping and checks that no two M0 URIs share a target.
func New(targets map[string]string) (*Mapping, error) {
	m := newMapping(targets)
	inverse := make(map[string]string, len(m.keys))
	for _, k := range m.keys {
		t := m.targets[k]
		if prev, ok := inverse[t]; ok {
			return nil, fmt.Errorf("%w: %s claimed by %s and %s", ErrDuplicateTarget, t, prev, k)
		}
		inverse[t] = k
	}
	return m, nil
}

func newMapping(targets map[string]string) *Mapping {
	m := &Mapping{targets: make(map[string]string, len(targets))}
	for k, v := range targets {
		m.targets[k] = v
		m.keys = append(m.keys, k)
	}
	slices.SortFunc(m.keys, storage.NaturalCompare)
	return m
}

// Convert returns the target URI of an M0 record URI.
func (m *Mapping) Convert(m0URI string) (string, bool) {
	if m == nil {
		return "", false
	}
	t, ok := m.targets[m0URI]
	return t, ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Entries returns the pairs in natural M0 URI order.
func (m *Mapping) Entries() []Entry {
	out := make([]Entry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry{M0: k, Target: m.targets[k]})
	}
	return out
}

// WriteCSV writes "m0;target" lines in natural M0 URI order.
func (m *Mapping) WriteCSV(w io.Writer) error {
	for _, e := range m.Entries() {
		if _, err := fmt.Fprintf(w, "%s;%s\n", e.M0, e.Target); err != nil {
			return fmt.Errorf("write mapping: %w", err)
		}
	}
	return nil
}
