package bib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nickng/bibtex"
)

// Warning is a non-fatal problem found while loading a bibliography.
// Callers running in strict mode treat warnings as errors.
type Warning struct {
	Key     string
	Message string
}

func (w Warning) String() string {
	if w.Key == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Key, w.Message)
}

// Load parses the bibliography at path into an ordered collection.
// Parse failures are fatal; duplicate keys and entries without a
// title are reported as warnings.
func Load(path string) (*Collection, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()

	parsed, err := bibtex.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	coll := NewCollection()
	var warnings []Warning
	for _, raw := range parsed.Entries {
		if _, exists := coll.Get(raw.CiteName); exists {
			warnings = append(warnings, Warning{Key: raw.CiteName, Message: "duplicate citation key"})
		}
		entry := fromBibEntry(raw)
		if entry.Field("title") == "" {
			warnings = append(warnings, Warning{Key: entry.Key, Message: "entry has no title"})
		}
		coll.Add(entry)
	}
	return coll, warnings, nil
}

// Write serializes the collection to path in BibTeX format.
func Write(path string, coll *Collection) error {
	out := bibtex.NewBibTex()
	for _, key := range coll.Keys() {
		entry, _ := coll.Get(key)
		out.AddEntry(toBibEntry(entry))
	}
	if err := os.WriteFile(path, []byte(out.PrettyString()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// TaggedPath derives an output path by inserting tag before the
// extension: TaggedPath("refs.bib", "new") == "refs.new.bib".
func TaggedPath(path, tag string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + tag + ext
}

func fromBibEntry(raw *bibtex.BibEntry) Entry {
	entry := Entry{
		Key:     raw.CiteName,
		Type:    strings.ToLower(raw.Type),
		Fields:  make(map[string]string),
		Persons: make(map[string][]Person),
	}
	for name, value := range raw.Fields {
		name = strings.ToLower(name)
		switch name {
		case RoleAuthor, RoleEditor:
			if people := ParsePersons(value.String()); people != nil {
				entry.Persons[name] = people
			}
		default:
			entry.Fields[name] = value.String()
		}
	}
	return entry
}

func toBibEntry(entry Entry) *bibtex.BibEntry {
	out := bibtex.NewBibEntry(entry.Type, entry.Key)
	for name, value := range entry.Fields {
		out.AddField(name, bibtex.NewBibConst(value))
	}
	for _, role := range []string{RoleAuthor, RoleEditor} {
		if people := entry.Persons[role]; len(people) > 0 {
			out.AddField(role, bibtex.NewBibConst(FormatPersons(people)))
		}
	}
	return out
}
