// Package viewmodel holds the small shared vocabulary of display projection:
// flexible IDs, placeholder substitution, and status display labels. Every
// resource package builds its flattened view models on these so nothing ever
// renders an undefined or null field.
package viewmodel

import (
	"bytes"
	"encoding/json"
	"strings"

	str "kampomido/pkg/string"
)

// NA is the placeholder for display fields with no usable source value.
const NA = "N/A"

// FlexID tolerates the backend's mixed ID encodings: JSON numbers and strings
// both decode to the string form used for path building.
type FlexID string

// UnmarshalJSON accepts "42", 42, and null.
func (f *FlexID) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string {
	return string(f)
}

// Coalesce returns the first non-blank candidate or NA.
func Coalesce(candidates ...string) string {
	return str.Coalesce(NA, candidates...)
}

// FullName joins first and last names, treating the whole as one candidate.
func FullName(first, last string) string {
	joined := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	return joined
}

// StatusLabel maps a raw status to its display label: "pending" -> "Pending".
// Blank statuses display as "Pending", the documented placeholder for
// not-yet-resolved records.
func StatusLabel(status string) string {
	if strings.TrimSpace(status) == "" {
		return "Pending"
	}
	return str.TitleWord(status)
}
