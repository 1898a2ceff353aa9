package storage

import (
	"slices"
	"strconv"
	"strings"

	"github.com/c360studio/m0convert/vocabulary/m0"
)

// Graph is a set of triples with a subject index. The empty name denotes
// the default graph. Query results are always returned in natural order.
type Graph struct {
	name      string
	triples   []Triple
	seen      map[Triple]struct{}
	bySubject map[Term][]int
}

// NewGraph creates an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{
		name:      name,
		seen:      make(map[Triple]struct{}),
		bySubject: make(map[Term][]int),
	}
}

// Name returns the graph name.
func (g *Graph) Name() string {
	return g.name
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Add inserts a triple and reports whether it was new.
func (g *Graph) Add(t Triple) bool {
	if _, ok := g.seen[t]; ok {
		return false
	}
	g.seen[t] = struct{}{}
	g.bySubject[t.Subject] = append(g.bySubject[t.Subject], len(g.triples))
	g.triples = append(g.triples, t)
	return true
}

// AddTriple is a shorthand for Add(Triple{s, p, o}).
func (g *Graph) AddTriple(s, p, o Term) bool {
	return g.Add(Triple{Subject: s, Predicate: p, Object: o})
}

// AddAll inserts every triple of other.
func (g *Graph) AddAll(other *Graph) {
	if other == nil {
		return
	}
	for _, t := range other.triples {
		g.Add(t)
	}
}

// Triples returns all triples in natural order.
func (g *Graph) Triples() []Triple {
	out := slices.Clone(g.triples)
	slices.SortFunc(out, compareTriple)
	return out
}

// Match returns the triples matching the pattern in natural order.
func (g *Graph) Match(p Pattern) []Triple {
	return g.Filter(p, nil)
}

// Filter returns the triples matching the pattern for which keep returns
// true. A nil keep accepts every matched triple.
func (g *Graph) Filter(p Pattern, keep func(Triple) bool) []Triple {
	var out []Triple
	visit := func(t Triple) {
		if p.Matches(t) && (keep == nil || keep(t)) {
			out = append(out, t)
		}
	}
	if !p.Subject.IsZero() {
		for _, i := range g.bySubject[p.Subject] {
			visit(g.triples[i])
		}
	} else {
		for _, t := range g.triples {
			visit(t)
		}
	}
	slices.SortFunc(out, compareTriple)
	return out
}

// Objects returns the objects of (subject, predicate, *).
func (g *Graph) Objects(subject, predicate string) []Term {
	matched := g.Match(Pattern{Subject: IRI(subject), Predicate: IRI(predicate)})
	out := make([]Term, 0, len(matched))
	for _, t := range matched {
		out = append(out, t.Object)
	}
	return out
}

// Literals returns the lexical values of the literal objects of (subject, predicate, *).
func (g *Graph) Literals(subject, predicate string) []string {
	var out []string
	for _, o := range g.Objects(subject, predicate) {
		if o.IsLiteral() {
			out = append(out, o.Value)
		}
	}
	return out
}

// HasSubject reports whether at least one statement has iri as subject.
func (g *Graph) HasSubject(iri string) bool {
	return len(g.bySubject[IRI(iri)]) > 0
}

// Subjects returns the distinct subjects in natural order.
func (g *Graph) Subjects() []Term {
	out := make([]Term, 0, len(g.bySubject))
	for s := range g.bySubject {
		out = append(out, s)
	}
	slices.SortFunc(out, compareTerm)
	return out
}

// SubjectsWithPrefix returns the distinct IRI subjects starting with prefix.
func (g *Graph) SubjectsWithPrefix(prefix string) []string {
	var out []string
	for _, s := range g.Subjects() {
		if s.IsIRI() && strings.HasPrefix(s.Value, prefix) {
			out = append(out, s.Value)
		}
	}
	return out
}

// MaxSequence returns the highest record id of the graph: the value held by
// the ".../sequence" resource minus one. It returns 0 when the sequence is
// absent or not an integer.
func (g *Graph) MaxSequence() int {
	seq := g.Match(Pattern{Predicate: IRI(m0.SequenceValue)})
	for _, t := range seq {
		if !strings.HasSuffix(t.Subject.Value, "/"+m0.AttrSequence) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(t.Object.Value))
		if err != nil || n < 1 {
			return 0
		}
		return n - 1
	}
	return 0
}

// Attributes returns the distinct attribute names used by subjects of the graph.
func (g *Graph) Attributes() []string {
	set := make(map[string]struct{})
	for s := range g.bySubject {
		if !s.IsIRI() {
			continue
		}
		name := lastSegment(s.Value)
		if name == "" || name == m0.AttrSequence {
			continue
		}
		if _, err := strconv.Atoi(name); err == nil {
			continue
		}
		set[name] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// ExtractResource returns the statements describing one record: those whose
// subject is uri or one of its attribute sub-resources.
func ExtractResource(g *Graph, uri string) *Graph {
	out := NewGraph(g.Name())
	uri = strings.TrimSuffix(uri, "/")
	for _, t := range g.triples {
		if !t.Subject.IsIRI() {
			continue
		}
		if t.Subject.Value == uri || strings.HasPrefix(t.Subject.Value, uri+"/") {
			out.Add(t)
		}
	}
	return out
}

func lastSegment(iri string) string {
	return iri[strings.LastIndex(iri, "/")+1:]
}
