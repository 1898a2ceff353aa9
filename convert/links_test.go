package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

func TestLinks(t *testing.T) {
	f := newFixture(t)
	doc := f.record(storage.EntityDocumentation, 1)
	french := f.record(storage.EntityLink, 1)
	f.value(french, m0.AttrTitle, "Page de l'enquête")
	f.value(french, m0.AttrType, "Site")
	f.value(french, m0.AttrURL, "https://www.insee.fr/fr/metadonnees/source/serie/s1241")
	english := f.record(storage.EntityLink, 2)
	f.value(english, m0.AttrTitle, "Survey page")
	f.value(english, "FORMAT", "html")
	orphan := f.record(storage.EntityLink, 3)
	f.value(orphan, m0.AttrTitle, "Sans langue")
	f.relate(doc, "S.1.1", french, "S.1.1")
	f.relateEnglish(doc, "S.1.1", english, "S.1.1")
	f.relateEnglish(doc, "S.1.2", storage.NewRecordID(storage.EntityLink, 9), "S.1.2")
	c, sink, _ := f.converter(Options{})

	out := c.Links()

	link1 := "http://id.insee.fr/qualite/lien/1"
	link2 := "http://id.insee.fr/qualite/lien/2"
	link3 := "http://id.insee.fr/qualite/lien/3"
	assert.Equal(t, []storage.Term{storage.IRI(insee.ClassDocument)}, out.Objects(link1, insee.RDFType))
	assert.Equal(t, []storage.Term{storage.Literal("fr")}, out.Objects(link1, insee.DCLanguage))
	assert.Equal(t, []storage.Term{storage.LangLiteral("Page de l'enquête", "fr")}, out.Objects(link1, insee.RDFSLabel))
	assert.Equal(t, []storage.Term{storage.LangLiteral("Site", "fr")}, out.Objects(link1, insee.RDFSComment))
	assert.Equal(t, []storage.Term{storage.IRI("https://www.insee.fr/fr/metadonnees/source/serie/s1241")},
		out.Objects(link1, insee.SchemaURL))

	assert.Equal(t, []storage.Term{storage.Literal("en")}, out.Objects(link2, insee.DCLanguage))
	assert.Equal(t, []storage.Term{storage.LangLiteral("Survey page", "en")}, out.Objects(link2, insee.RDFSLabel))

	assert.Empty(t, out.Objects(link3, insee.DCLanguage))
	assert.Equal(t, []storage.Term{storage.LangLiteral("Sans langue", "fr")}, out.Objects(link3, insee.RDFSLabel))

	assert.Equal(t, 1, sink.Count(diagnostics.UnknownLanguage))
	assert.Equal(t, 1, sink.Count(diagnostics.UnmatchedReference), "link 9 has a language but no record")
	assert.Zero(t, sink.Count(diagnostics.UntypedResource))
}

func TestDocuments(t *testing.T) {
	f := newFixture(t)
	doc := f.record(storage.EntityDocumentation, 1)
	report := f.record(storage.EntityDocument, 1)
	f.value(report, m0.AttrTitle, "Rapport méthodologique")
	f.value(report, m0.AttrDate, "01/01/2014")
	f.value(report, m0.AttrPublicationDate, "12-03-2015")
	note := f.record(storage.EntityDocument, 2)
	f.value(note, m0.AttrDate, "05/06/2016")
	broken := f.record(storage.EntityDocument, 3)
	f.value(broken, m0.AttrDate, "2016 juin")
	f.relate(doc, "S.1.1", report, "S.1.1")
	f.relate(doc, "S.1.1", note, "S.1.1")
	f.relate(doc, "S.1.1", broken, "S.1.1")
	c, sink, _ := f.converter(Options{})

	out := c.Documents()

	doc1 := "http://id.insee.fr/qualite/document/1"
	assert.Equal(t, []storage.Term{storage.IRI(insee.ClassDocument)}, out.Objects(doc1, insee.RDFType))
	assert.Equal(t, []storage.Term{storage.LangLiteral("Rapport méthodologique", "fr")}, out.Objects(doc1, insee.RDFSLabel))
	assert.Equal(t, []storage.Term{storage.TypedLiteral("2015-03-12", insee.XSDDate)}, out.Objects(doc1, insee.DCTermsDate))
	assert.Equal(t, []storage.Term{storage.TypedLiteral("2016-06-05", insee.XSDDate)},
		out.Objects("http://id.insee.fr/qualite/document/2", insee.DCTermsDate))
	assert.Empty(t, out.Objects("http://id.insee.fr/qualite/document/3", insee.DCTermsDate))
	assert.Equal(t, 1, sink.Count(diagnostics.UnparseableDate))
}

func TestDocumentDatesPublicationWins(t *testing.T) {
	f := newFixture(t)
	report := f.record(storage.EntityDocument, 4)
	f.value(report, m0.AttrPublicationDate, "12-03-2015")
	f.value(report, m0.AttrDate, "01/01/2014")
	c, _, _ := f.converter(Options{})

	dates := c.DocumentDates()

	assert.Equal(t, map[int]time.Time{4: time.Date(2015, time.March, 12, 0, 0, 0, 0, time.UTC)}, dates)
}
