package fixer

import (
	"strconv"
	"strings"

	"github.com/jaimergp/fixbibtex/internal/bib"
	"github.com/jaimergp/fixbibtex/internal/crossref"
)

// Merge applies the selected fields of a candidate work onto a copy
// of the entry. Each rule fires independently; a field absent from
// the work leaves the corresponding entry field untouched.
func Merge(e bib.Entry, w crossref.Work) bib.Entry {
	out := e.Clone()

	if len(w.ContainerTitle) > 0 {
		out.Fields["journal"] = w.ContainerTitle[0]
	}
	if w.Issue != "" {
		out.Fields["number"] = w.Issue.String()
	}
	if w.Page != "" {
		out.Fields["pages"] = doubleHyphen(w.Page)
	}
	if t := w.PrimaryTitle(); t != "" {
		out.Fields["title"] = t
	}
	if w.URL != "" {
		out.Fields["url"] = w.URL
	}
	if w.Volume != "" {
		out.Fields["volume"] = w.Volume.String()
	}
	if y := w.Year(); y != 0 {
		out.Fields["year"] = strconv.Itoa(y)
	}
	if w.DOI != "" {
		out.Fields["doi"] = w.DOI
	}
	if len(w.ISSN) > 0 {
		out.Fields["issn"] = w.ISSN[0]
	}
	if people := mergeAuthors(e.Authors(), w.Authors); people != nil {
		out.Persons[bib.RoleAuthor] = people
	}

	return out
}

// doubleHyphen rewrites a single-hyphen page range to the BibTeX
// en-dash convention. Ranges already using "--" pass through, so
// re-running the tool on patched output is stable.
func doubleHyphen(pages string) string {
	if strings.Contains(pages, "--") {
		return pages
	}
	return strings.ReplaceAll(pages, "-", "--")
}

// mergeAuthors rebuilds the author list from the candidate only when
// the usable records are at least as many as the existing list.
// Records with neither a family nor an organization name are dropped
// before that comparison, so a candidate full of blanks can never
// shrink or wipe the list. Organizations are kept as first-class
// list entries.
func mergeAuthors(existing []bib.Person, candidates []crossref.Author) []bib.Person {
	people := make([]bib.Person, 0, len(candidates))
	for _, a := range candidates {
		switch {
		case a.Family != "":
			people = append(people, bib.Person{Family: a.Family, Given: a.Given})
		case a.Name != "":
			people = append(people, bib.Person{Org: a.Name})
		}
	}
	if len(people) == 0 || len(people) < len(existing) {
		return nil
	}
	return people
}
