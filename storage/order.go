package storage

import (
	"strconv"
	"strings"
)

// NaturalLess orders IRIs segment by segment, comparing numeric segments
// numerically so that ".../serie/2" sorts before ".../serie/10".
func NaturalLess(a, b string) bool {
	return NaturalCompare(a, b) < 0
}

// NaturalCompare is the three-way form of NaturalLess.
func NaturalCompare(a, b string) int {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

func compareSegment(a, b string) int {
	if a == b {
		return 0
	}
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil && an != bn {
		if an < bn {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func compareTerm(a, b Term) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	if c := NaturalCompare(a.Value, b.Value); c != 0 {
		return c
	}
	if c := strings.Compare(a.Lang, b.Lang); c != 0 {
		return c
	}
	return strings.Compare(a.Datatype, b.Datatype)
}

func compareTriple(a, b Triple) int {
	if c := compareTerm(a.Subject, b.Subject); c != 0 {
		return c
	}
	if c := compareTerm(a.Predicate, b.Predicate); c != 0 {
		return c
	}
	return compareTerm(a.Object, b.Object)
}
