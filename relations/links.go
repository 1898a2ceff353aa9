package relations

import (
	"strconv"
	"strings"

	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// Languages of links and documents.
const (
	LangFrench  = "fr"
	LangEnglish = "en"
)

// LinkRelations returns documentation number → attribute → link numbers for
// the links attached to report attributes in the given language.
func (e *Extractor) LinkRelations(lang string) map[int]map[string][]int {
	return e.attached(storage.EntityLink, lang)
}

// DocumentRelations is LinkRelations for documents.
func (e *Extractor) DocumentRelations(lang string) map[int]map[string][]int {
	return e.attached(storage.EntityDocument, lang)
}

// LinkLanguages returns link number → language.
func (e *Extractor) LinkLanguages() map[int]string {
	return e.languages(storage.EntityLink)
}

// DocumentLanguages returns document number → language.
func (e *Extractor) DocumentLanguages() map[int]string {
	return e.languages(storage.EntityDocument)
}

func relationPredicate(lang string) string {
	if lang == LangEnglish {
		return m0.RelatedToGb
	}
	return m0.RelatedTo
}

// attached reads associations of the form
//
//	<.../documentations/documentation/{d}/{ATTR}> relatedTo <.../liens/lien/{n}/{ATTR}>
func (e *Extractor) attached(target storage.EntityType, lang string) map[int]map[string][]int {
	docBase := storage.EntityDocumentation.Base()
	targetBase := target.Base()
	out := make(map[int]map[string][]int)

	edges := e.scan(relationPredicate(lang), func(ed edge) bool {
		return strings.HasPrefix(ed.subject, docBase) && strings.HasPrefix(ed.object, targetBase)
	})
	for _, ed := range edges {
		docPart := strings.Split(strings.TrimPrefix(ed.subject, docBase), "/")
		targetPart := strings.Split(strings.TrimPrefix(ed.object, targetBase), "/")
		if len(docPart) != 2 || len(targetPart) != 2 || docPart[1] != targetPart[1] {
			e.diag.Record(diagnostics.InvalidReference, "Unexpected attachment structure",
				"subject", ed.subject, "object", ed.object)
			continue
		}
		doc, err := strconv.Atoi(docPart[0])
		if err != nil {
			e.diag.Record(diagnostics.InvalidReference, "Invalid documentation number",
				"subject", ed.subject, "error", err)
			continue
		}
		n, err := strconv.Atoi(targetPart[0])
		if err != nil {
			e.diag.Record(diagnostics.InvalidReference, "Invalid attachment number",
				"object", ed.object, "error", err)
			continue
		}
		attr := docPart[1]
		if out[doc] == nil {
			out[doc] = make(map[string][]int)
		}
		out[doc][attr] = append(out[doc][attr], n)
	}
	return out
}

// languages marks a resource "fr" when it is attached through relatedTo and
// "en" when it is only attached through relatedToGb.
func (e *Extractor) languages(target storage.EntityType) map[int]string {
	out := make(map[int]string)
	for _, byAttr := range e.attached(target, LangFrench) {
		for _, numbers := range byAttr {
			for _, n := range numbers {
				out[n] = LangFrench
			}
		}
	}
	warned := make(map[int]bool)
	english := e.attached(target, LangEnglish)
	for _, doc := range SortedIDs(english) {
		byAttr := english[doc]
		for _, attr := range SortedKeys(byAttr) {
			for _, n := range byAttr[attr] {
				existing, ok := out[n]
				if !ok {
					out[n] = LangEnglish
					continue
				}
				if existing == LangFrench && !warned[n] {
					warned[n] = true
					e.diag.Record(diagnostics.LanguageConflict, "Resource attached in French and English",
						"type", string(target), "number", n)
				}
			}
		}
	}
	return out
}
