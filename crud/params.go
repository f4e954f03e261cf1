package crud

import (
	"net/url"
	"sort"
	"strconv"
)

// Sort is a single-field ordering.
type Sort struct {
	Field     string
	Direction string // "asc" or "desc"
}

// ListParams configures GetAll. Filters flatten into query parameters; empty
// values are dropped so callers can pass a sparse map straight through.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
	Sort    *Sort
}

// Encode builds the query string. Recognized options each carry their own
// inclusion rule; nothing is concatenated ad hoc at call sites.
func (p ListParams) Encode() string {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.Sort != nil && p.Sort.Field != "" {
		values.Set("sortBy", p.Sort.Field)
		dir := p.Sort.Direction
		if dir != "desc" {
			dir = "asc"
		}
		values.Set("sortDir", dir)
	}
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := p.Filters[k]; v != "" {
			values.Set(k, v)
		}
	}
	return values.Encode()
}
