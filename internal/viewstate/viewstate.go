// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package viewstate models the browsing state of a paginated, filterable
listing: which page is open and which filters are applied.

Filters are single-select: applying a filter REPLACES the active filter set
rather than merging into it, and always jumps back to page one so the
visitor never lands on a page that no longer exists under the new filter.
This replacement behavior is intentional — the listings only ever expose
one filter dimension at a time.
*/
package viewstate

import (
	"net/url"
	"strconv"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/querycache"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pagination"
)

// Known filter names, in the order they serialize into cache keys.
const (
	FilterStatus = "status"
	FilterType   = "type"
)

// filterOrder fixes the serialization order so equal states always build
// equal cache keys.
var filterOrder = []string{FilterStatus, FilterType}

// State is one listing's browsing state. The zero value is not usable;
// construct with NewState.
type State struct {
	resource   string
	page       int
	limit      int
	filters    map[string]string
	totalPages int
}

// NewState opens a listing on page one with no filters.
func NewState(resource string, limit int) *State {
	if limit <= 0 || limit > pagination.MaxLimit {
		limit = pagination.DefaultLimit
	}
	return &State{
		resource: resource,
		page:     pagination.DefaultPage,
		limit:    limit,
		filters:  make(map[string]string),
	}
}

// FromQuery builds a state from a request's query parameters, clamping the
// page and limit and keeping only known filter names.
func FromQuery(resource string, query url.Values) *State {
	params := pagination.FromValues(query)
	state := NewState(resource, params.Limit)

	for _, name := range filterOrder {
		if value := query.Get(name); value != "" {
			state.filters[name] = value
		}
	}

	// Page is applied after filters so it is clamped, not reset.
	state.page = params.Page

	return state
}

// Page returns the current page, always >= 1.
func (s *State) Page() int {
	return s.page
}

// Limit returns the page size.
func (s *State) Limit() int {
	return s.limit
}

// Filter returns the active value for a filter name, or "".
func (s *State) Filter(name string) string {
	return s.filters[name]
}

// SetFilter applies a single filter, REPLACING any previously active
// filters, and resets to page one.
func (s *State) SetFilter(name, value string) {
	s.filters = map[string]string{name: value}
	s.page = 1
}

// ClearFilters removes every filter and resets to page one.
func (s *State) ClearFilters() {
	s.filters = make(map[string]string)
	s.page = 1
}

// SetPage moves to the requested page, clamped to [1, totalPages]. While
// the total is still unknown (zero), only the lower bound applies.
func (s *State) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if s.totalPages > 0 && page > s.totalPages {
		page = s.totalPages
	}
	s.page = page
}

// ObserveTotalPages records the page count reported by the latest fetch and
// pulls the current page back inside the new bound. A filtered result set
// can shrink below the page the visitor was on.
func (s *State) ObserveTotalPages(totalPages int) {
	if totalPages < 0 {
		totalPages = 0
	}
	s.totalPages = totalPages
	if s.totalPages > 0 && s.page > s.totalPages {
		s.page = s.totalPages
	}
}

// TotalPages returns the last observed page count, zero when unknown.
func (s *State) TotalPages() int {
	return s.totalPages
}

// Key builds the cache key for the current state. Params serialize in a
// fixed order (page, limit, then filters) so equal states share entries.
func (s *State) Key() querycache.Key {
	params := []querycache.Param{
		querycache.PInt("page", s.page),
		querycache.PInt("limit", s.limit),
	}
	for _, name := range filterOrder {
		if value, ok := s.filters[name]; ok {
			params = append(params, querycache.P(name, value))
		}
	}
	return querycache.NewKey(s.resource, params...)
}

// PreviousPageKey returns the key for the page before the current one, and
// whether one exists. Used to offer keep-previous-data placeholders while
// the next page loads.
func (s *State) PreviousPageKey() (querycache.Key, bool) {
	if s.page <= 1 {
		return querycache.Key{}, false
	}

	previous := *s
	previous.page = s.page - 1
	return previous.Key(), true
}

// BackendQuery serializes the state into the query parameters the backend
// expects for list endpoints.
func (s *State) BackendQuery() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(s.page))
	values.Set("limit", strconv.Itoa(s.limit))
	for _, name := range filterOrder {
		if value, ok := s.filters[name]; ok {
			values.Set(name, value)
		}
	}
	return values
}
