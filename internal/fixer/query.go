package fixer

import (
	"github.com/jaimergp/fixbibtex/internal/bib"
	"github.com/jaimergp/fixbibtex/internal/crossref"
)

// BuildQuery derives a works search query and filter set from an
// entry. The query is the title, suffixed with the last listed
// author's name to disambiguate common titles. The entry is never
// modified.
func BuildQuery(e bib.Entry) (string, crossref.Filters) {
	query := e.Field("title")
	if authors := e.Authors(); len(authors) > 0 {
		query += " " + queryName(authors[len(authors)-1])
	}
	return query, crossref.Filters{
		ISSN:        e.Field("issn"),
		FromPubDate: e.Field("year"),
	}
}

// queryName renders a person for free-text search, without the braces
// BibTeX serialization puts around organization names.
func queryName(p bib.Person) string {
	if p.IsOrg() {
		return p.Org
	}
	return bib.FormatPerson(p)
}
