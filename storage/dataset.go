package storage

import (
	"slices"

	"github.com/c360studio/m0convert/vocabulary/m0"
)

// Dataset is a default graph plus named graphs.
type Dataset struct {
	def   *Graph
	named map[string]*Graph
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		def:   NewGraph(""),
		named: make(map[string]*Graph),
	}
}

// Default returns the default graph.
func (d *Dataset) Default() *Graph {
	return d.def
}

// Graph returns the named graph, or an empty detached graph when absent.
// The empty name returns the default graph.
func (d *Dataset) Graph(name string) *Graph {
	if name == "" {
		return d.def
	}
	if g, ok := d.named[name]; ok {
		return g
	}
	return NewGraph(name)
}

// M0 returns the M0 graph named by a graph token such as "series".
func (d *Dataset) M0(token string) *Graph {
	return d.Graph(m0.GraphName(token))
}

// Ensure returns the named graph, creating it when absent.
func (d *Dataset) Ensure(name string) *Graph {
	if name == "" {
		return d.def
	}
	g, ok := d.named[name]
	if !ok {
		g = NewGraph(name)
		d.named[name] = g
	}
	return g
}

// Has reports whether the named graph exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.named[name]
	return ok
}

// Names returns the named graph names in natural order.
func (d *Dataset) Names() []string {
	out := make([]string, 0, len(d.named))
	for name := range d.named {
		out = append(out, name)
	}
	slices.SortFunc(out, NaturalCompare)
	return out
}

// Merge copies every graph of other into d, keeping graph names.
func (d *Dataset) Merge(other *Dataset) {
	if other == nil {
		return
	}
	d.def.AddAll(other.def)
	for _, name := range other.Names() {
		d.Ensure(name).AddAll(other.named[name])
	}
}

// Len returns the number of triples across all graphs.
func (d *Dataset) Len() int {
	n := d.def.Len()
	for _, g := range d.named {
		n += g.Len()
	}
	return n
}
