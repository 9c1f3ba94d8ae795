package arxharvest

import (
	"encoding/json"
	"strconv"
)

// NA is the sentinel recorded for fields whose markup was absent from a
// result block. It is distinct from an empty value: an element that is
// present but empty keeps its empty text.
const NA = "N/A"

// MaxKeywords caps how many keywords a record carries.
const MaxKeywords = 3

// Record represents one search result in the harvest output.
type Record struct {
	Title      string     `json:"title"`
	Authors    AuthorList `json:"authors"`
	Abstract   string     `json:"abstract"`
	Keywords   []string   `json:"keywords"`
	Categories []string   `json:"categories"`
	Year       Year       `json:"year"`
	JournalRef string     `json:"journal_revista"`
}

// Validate returns an error if the record violates its shape invariants.
func (r *Record) Validate() error {
	if r.Keywords == nil {
		return Errorf(EINVALID, "record keywords required (may be empty)")
	}
	if len(r.Keywords) > MaxKeywords {
		return Errorf(EINVALID, "record carries %d keywords, limit is %d", len(r.Keywords), MaxKeywords)
	}
	if r.Categories == nil {
		return Errorf(EINVALID, "record categories required (may be empty)")
	}
	return nil
}

// AuthorList is an ordered list of author names. A nil list marks a result
// whose author block was missing and encodes as the NA sentinel; any
// non-nil list encodes as a JSON array.
type AuthorList []string

// MarshalJSON implements json.Marshaler.
func (a AuthorList) MarshalJSON() ([]byte, error) {
	if a == nil {
		return json.Marshal(NA)
	}
	return json.Marshal([]string(a))
}

// UnmarshalJSON implements json.Unmarshaler. The NA sentinel decodes to a
// nil list.
func (a *AuthorList) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		if sentinel != NA {
			return Errorf(EINVALID, "author list holds unexpected string %q", sentinel)
		}
		*a = nil
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*a = names
	return nil
}

// Year is a publication year. The zero value marks a result whose
// metadata carried no recognizable year and encodes as the NA sentinel.
type Year int

// MarshalJSON implements json.Marshaler.
func (y Year) MarshalJSON() ([]byte, error) {
	if y == 0 {
		return json.Marshal(NA)
	}
	return []byte(strconv.Itoa(int(y))), nil
}

// UnmarshalJSON implements json.Unmarshaler. The NA sentinel decodes to
// the zero value.
func (y *Year) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		if sentinel != NA {
			return Errorf(EINVALID, "year holds unexpected string %q", sentinel)
		}
		*y = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = Year(n)
	return nil
}
