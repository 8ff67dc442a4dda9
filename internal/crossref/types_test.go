package crossref

import (
	"encoding/json"
	"testing"
)

func TestFlexibleString_Unmarshal(t *testing.T) {
	var w Work
	data := `{"issue": 4, "volume": "12"}`
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if w.Issue.String() != "4" {
		t.Errorf("numeric issue = %q, want 4", w.Issue)
	}
	if w.Volume.String() != "12" {
		t.Errorf("string volume = %q, want 12", w.Volume)
	}
}

func TestWorkYear_PrintOverOnline(t *testing.T) {
	w := Work{
		PublishedPrint:  &Date{DateParts: [][]int{{2020, 3}}},
		PublishedOnline: &Date{DateParts: [][]int{{2019, 11}}},
	}
	if got := w.Year(); got != 2020 {
		t.Errorf("Year() = %d, want 2020 (print takes priority)", got)
	}
}

func TestWorkYear_Fallbacks(t *testing.T) {
	online := Work{PublishedOnline: &Date{DateParts: [][]int{{2019}}}}
	if got := online.Year(); got != 2019 {
		t.Errorf("online-only Year() = %d, want 2019", got)
	}

	issued := Work{Issued: &Date{DateParts: [][]int{{2018}}}}
	if got := issued.Year(); got != 2018 {
		t.Errorf("issued-only Year() = %d, want 2018", got)
	}

	var none Work
	if got := none.Year(); got != 0 {
		t.Errorf("dateless Year() = %d, want 0", got)
	}
}

func TestDateYear_NilSafe(t *testing.T) {
	var d *Date
	if d.Year() != 0 {
		t.Error("nil date should yield year 0")
	}
	empty := &Date{DateParts: [][]int{{}}}
	if empty.Year() != 0 {
		t.Error("empty date-parts should yield year 0")
	}
}

func TestFiltersEncode(t *testing.T) {
	cases := []struct {
		name    string
		filters Filters
		want    string
	}{
		{"empty", Filters{}, ""},
		{"issn only", Filters{ISSN: "0028-0836"}, "issn:0028-0836"},
		{"date only", Filters{FromPubDate: "2019"}, "from-pub-date:2019"},
		{"both", Filters{ISSN: "0028-0836", FromPubDate: "2019"}, "issn:0028-0836,from-pub-date:2019"},
	}
	for _, c := range cases {
		if got := c.filters.Encode(); got != c.want {
			t.Errorf("%s: Encode() = %q, want %q", c.name, got, c.want)
		}
	}
}
