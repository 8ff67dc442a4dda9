package bib

import "strings"

// ParsePersons parses a BibTeX name list ("A and B and C") into
// structured persons. Three name shapes are recognized:
//
//   - "Family, Given" (comma form)
//   - "Given Family" (space form; the last token is the family name)
//   - "{Some Organization}" (braced block, kept whole as an org name)
//
// Known limitations: multi-part surnames in the space form
// (von Neumann, van der Waals) split on the last token only.
func ParsePersons(list string) []Person {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil
	}

	var people []Person
	for _, raw := range splitNameList(list) {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		people = append(people, parsePerson(name))
	}
	return people
}

// splitNameList splits on the " and " separator, ignoring separators
// inside braces so braced organization names survive intact.
func splitNameList(list string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && hasWordAt(list, i, " and ") {
			parts = append(parts, list[start:i])
			start = i + len(" and ")
			i = start - 1
		}
	}
	parts = append(parts, list[start:])
	return parts
}

func hasWordAt(s string, i int, word string) bool {
	return i+len(word) <= len(s) && s[i:i+len(word)] == word
}

func parsePerson(name string) Person {
	// Fully braced name is an organization, not a person.
	if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") {
		return Person{Org: strings.TrimSpace(name[1 : len(name)-1])}
	}

	if family, given, ok := strings.Cut(name, ","); ok {
		return Person{
			Family: strings.TrimSpace(family),
			Given:  strings.TrimSpace(given),
		}
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return Person{Family: parts[0]}
	}
	return Person{
		Family: parts[len(parts)-1],
		Given:  strings.Join(parts[:len(parts)-1], " "),
	}
}

// FormatPerson renders a person in the "Family, Given" form used both
// for serialization and for search query disambiguation. Organization
// names are braced so BibTeX keeps them as a single name.
func FormatPerson(p Person) string {
	if p.IsOrg() {
		return "{" + p.Org + "}"
	}
	if p.Given == "" {
		return p.Family
	}
	return p.Family + ", " + p.Given
}

// FormatPersons renders a person list as a BibTeX name list.
func FormatPersons(people []Person) string {
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = FormatPerson(p)
	}
	return strings.Join(names, " and ")
}
