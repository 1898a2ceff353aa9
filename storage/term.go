package storage

import (
	"strconv"
	"strings"
)

// TermKind is the kind of an RDF term.
type TermKind int

const (
	// KindNone marks the zero Term, used as a wildcard in patterns.
	KindNone TermKind = iota
	KindIRI
	KindBlank
	KindLiteral
)

const (
	xsdString     = "http://www.w3.org/2001/XMLSchema#string"
	rdfLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// Term is an IRI, a blank node or a literal.
type Term struct {
	Kind     TermKind
	Value    string
	Lang     string
	Datatype string
}

// IRI returns an IRI term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Blank returns a blank node term. The label is given without the "_:" prefix.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// Literal returns a plain literal.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// LangLiteral returns a language-tagged literal. An empty tag yields a plain literal.
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: strings.ToLower(lang)}
}

// TypedLiteral returns a datatyped literal. xsd:string and rdf:langString
// are normalised to plain literals.
func TypedLiteral(value, datatype string) Term {
	if datatype == xsdString || datatype == rdfLangString {
		datatype = ""
	}
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// IsZero reports whether t is the wildcard term.
func (t Term) IsZero() bool {
	return t.Kind == KindNone
}

// IsIRI reports whether t is an IRI.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool {
	return t.Kind == KindLiteral
}

// String returns the N-Triples form of the term.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := strconv.Quote(t.Value)
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	default:
		return ""
	}
}

// matches reports whether t matches the pattern term p.
func (t Term) matches(p Term) bool {
	return p.IsZero() || t == p
}

// Triple is an RDF statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Pattern selects triples. Zero terms are wildcards.
type Pattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Matches reports whether the triple satisfies the pattern.
func (p Pattern) Matches(t Triple) bool {
	return t.Subject.matches(p.Subject) && t.Predicate.matches(p.Predicate) && t.Object.matches(p.Object)
}
