package fixer

import (
	"strings"

	"github.com/jaimergp/fixbibtex/internal/bib"
)

// articleType is the only entry type sent to remote lookup.
const articleType = "article"

// preprintHosts are preprint-server domains whose records Crossref
// does not curate; entries pointing at them pass through unchanged.
var preprintHosts = []string{
	"arxiv.org",
	"biorxiv.org",
	"medrxiv.org",
}

// Eligible reports whether an entry should be resolved against the
// remote API. Non-article entries and entries whose URL points at a
// preprint server are excluded.
func Eligible(e bib.Entry) bool {
	if !strings.EqualFold(e.Type, articleType) {
		return false
	}
	u := strings.ToLower(e.Field("url"))
	for _, host := range preprintHosts {
		if strings.Contains(u, host) {
			return false
		}
	}
	return true
}
