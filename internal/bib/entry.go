// Package bib defines the domain types for a BibTeX bibliography and
// handles loading and writing .bib files.
package bib

// Roles under which structured person names are stored on an entry.
const (
	RoleAuthor = "author"
	RoleEditor = "editor"
)

// Person is one name in an entry's author or editor list. Either
// Family (with optional Given) is set, or Org when the name belongs
// to an organization rather than a person.
type Person struct {
	Family string
	Given  string
	Org    string
}

// IsOrg reports whether the person is an organization name.
func (p Person) IsOrg() bool {
	return p.Org != ""
}

// Entry is one bibliographic record.
type Entry struct {
	Key    string            // citation key
	Type   string            // entry type tag: article, book, ...
	Fields map[string]string // field name -> value, person roles excluded
	// Persons holds the structured name lists keyed by role
	// (author, editor), in file order.
	Persons map[string][]Person
}

// Authors returns the entry's author list.
func (e Entry) Authors() []Person {
	return e.Persons[RoleAuthor]
}

// Field returns the named field value, or "" when absent.
func (e Entry) Field(name string) string {
	return e.Fields[name]
}

// Clone returns a deep copy of the entry. Pipeline updates are applied
// to copies; the source entry is never mutated.
func (e Entry) Clone() Entry {
	out := Entry{
		Key:     e.Key,
		Type:    e.Type,
		Fields:  make(map[string]string, len(e.Fields)),
		Persons: make(map[string][]Person, len(e.Persons)),
	}
	for k, v := range e.Fields {
		out.Fields[k] = v
	}
	for role, people := range e.Persons {
		out.Persons[role] = append([]Person(nil), people...)
	}
	return out
}

// Equal reports whether two entries have identical keys, types,
// fields, and person lists.
func (e Entry) Equal(other Entry) bool {
	if e.Key != other.Key || e.Type != other.Type {
		return false
	}
	if len(e.Fields) != len(other.Fields) {
		return false
	}
	for k, v := range e.Fields {
		if other.Fields[k] != v {
			return false
		}
	}
	if len(e.Persons) != len(other.Persons) {
		return false
	}
	for role, people := range e.Persons {
		theirs := other.Persons[role]
		if len(people) != len(theirs) {
			return false
		}
		for i := range people {
			if people[i] != theirs[i] {
				return false
			}
		}
	}
	return true
}

// Collection is an ordered mapping from citation key to entry.
type Collection struct {
	keys    []string
	entries map[string]Entry
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{entries: make(map[string]Entry)}
}

// Add appends an entry. When the key already exists the entry is
// replaced in place and order is preserved.
func (c *Collection) Add(e Entry) {
	if _, ok := c.entries[e.Key]; !ok {
		c.keys = append(c.keys, e.Key)
	}
	c.entries[e.Key] = e
}

// Replace swaps the entry stored under key. It is a no-op for keys
// not already in the collection, so a patched collection can never
// grow beyond the original.
func (c *Collection) Replace(key string, e Entry) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	e.Key = key
	c.entries[key] = e
}

// Get returns the entry stored under key.
func (c *Collection) Get(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Keys returns the citation keys in file order.
func (c *Collection) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.keys)
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	out := NewCollection()
	for _, key := range c.keys {
		out.Add(c.entries[key].Clone())
	}
	return out
}
