package crossref

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleString can unmarshal from either string or number JSON
// values. Crossref serves issue and volume as either.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*f = FlexibleString(strconv.Itoa(i))
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// Work is one metadata record from the Crossref works API.
type Work struct {
	DOI             string         `json:"DOI"`
	Title           []string       `json:"title"`
	ContainerTitle  []string       `json:"container-title"`
	Issue           FlexibleString `json:"issue"`
	Page            string         `json:"page"`
	URL             string         `json:"URL"`
	Volume          FlexibleString `json:"volume"`
	ISSN            []string       `json:"ISSN"`
	PublishedPrint  *Date          `json:"published-print"`
	PublishedOnline *Date          `json:"published-online"`
	Issued          *Date          `json:"issued"`
	Authors         []Author       `json:"author"`
	Score           float64        `json:"score"`
}

// PrimaryTitle returns the work's first title, or "" when absent.
func (w Work) PrimaryTitle() string {
	if len(w.Title) == 0 {
		return ""
	}
	return w.Title[0]
}

// Year returns the publication year, preferring the print date over
// the online date, falling back to the issued date. Zero when none
// is known.
func (w Work) Year() int {
	for _, d := range []*Date{w.PublishedPrint, w.PublishedOnline, w.Issued} {
		if y := d.Year(); y != 0 {
			return y
		}
	}
	return 0
}

// Author is one name on a Crossref work: a person with a family and
// optional given name, or an organization carrying only Name.
type Author struct {
	Family string `json:"family"`
	Given  string `json:"given"`
	Name   string `json:"name"`
}

// Date is a Crossref date structure. DateParts holds [year, month,
// day] prefixes; only the first part is used.
type Date struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the year component, or 0 when the date is absent or empty.
func (d *Date) Year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// Filters is the structured filter set for a works search.
type Filters struct {
	ISSN        string
	FromPubDate string // lower bound on publication date, usually a year
}

// Encode renders the filters in Crossref's name:value,name:value form.
// Empty filters encode to "".
func (f Filters) Encode() string {
	var parts []string
	if f.ISSN != "" {
		parts = append(parts, "issn:"+f.ISSN)
	}
	if f.FromPubDate != "" {
		parts = append(parts, "from-pub-date:"+f.FromPubDate)
	}
	return strings.Join(parts, ",")
}

// worksResponse is the envelope for /works search responses.
type worksResponse struct {
	Status  string `json:"status"`
	Message struct {
		Items []Work `json:"items"`
	} `json:"message"`
}

// workResponse is the envelope for single-record /works/{doi} responses.
type workResponse struct {
	Status  string `json:"status"`
	Message Work   `json:"message"`
}
