package api

import (
	"net/url"
	"strconv"
)

// Filters accumulates optional query parameters. Falsy values (empty strings,
// zero numbers) are omitted from the query entirely rather than sent as empty
// parameters; the backend treats "" and absent differently for some filters.
type Filters struct {
	values url.Values
}

// NewFilters returns an empty filter set.
func NewFilters() *Filters {
	return &Filters{values: url.Values{}}
}

// Set adds a string filter unless the value is empty.
func (f *Filters) Set(key, value string) *Filters {
	if value != "" {
		f.values.Set(key, value)
	}
	return f
}

// SetInt adds a numeric filter unless the value is zero.
func (f *Filters) SetInt(key string, value int) *Filters {
	if value != 0 {
		f.values.Set(key, strconv.Itoa(value))
	}
	return f
}

// Values returns the accumulated query, or nil when nothing was set.
func (f *Filters) Values() url.Values {
	if len(f.values) == 0 {
		return nil
	}
	return f.values
}
