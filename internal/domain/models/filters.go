package models

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// FilterDateLayout is the wire format of start_date and end_date.
const FilterDateLayout = "2006-01-02"

// FilterName identifies one predicate of the filter chain.
type FilterName string

const (
	FilterYears          FilterName = "years"
	FilterMonths         FilterName = "months"
	FilterCostCategories FilterName = "cost_categories"
	FilterCustomers      FilterName = "customers"
	FilterStructures     FilterName = "structures"
	FilterSizes          FilterName = "sizes"
	FilterReasons        FilterName = "reasons"
	FilterStartDate      FilterName = "start_date"
	FilterEndDate        FilterName = "end_date"
)

var knownFilters = []FilterName{
	FilterYears, FilterMonths, FilterCostCategories, FilterCustomers,
	FilterStructures, FilterSizes, FilterReasons, FilterStartDate, FilterEndDate,
}

// Known reports whether the filter chain recognizes n.
func (n FilterName) Known() bool { return slices.Contains(knownFilters, n) }

// Attribute returns the record attribute a categorical filter matches on.
func (n FilterName) Attribute() (string, bool) {
	switch n {
	case FilterCostCategories:
		return AttrCategory, true
	case FilterCustomers:
		return AttrCustomer, true
	case FilterStructures:
		return AttrStructure, true
	case FilterSizes:
		return AttrSize, true
	case FilterReasons:
		return AttrReason, true
	default:
		return "", false
	}
}

// ErrInvalidFilter is the parent of every filter request validation error.
var ErrInvalidFilter = errors.New("invalid filter request")

var (
	ErrUnknownFilter   = fmt.Errorf("%w: unknown filter", ErrInvalidFilter)
	ErrInvalidDate     = fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidFilter)
	ErrInvalidYear     = fmt.Errorf("%w: years must be integers", ErrInvalidFilter)
	ErrInvalidMonth    = fmt.Errorf("%w: months must be 1-12 or month names", ErrInvalidFilter)
	ErrEndWithoutStart = fmt.Errorf("%w: end_date requires start_date", ErrInvalidFilter)
	ErrStartAfterEnd   = fmt.Errorf("%w: start_date must not be after end_date", ErrInvalidFilter)
)

// FilterRequest carries the selected values per filter name for one request.
type FilterRequest map[FilterName][]string

// FilterRequestFromQuery collects non-blank query values per key.
func FilterRequestFromQuery(q url.Values) FilterRequest {
	req := FilterRequest{}
	for key, values := range q {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				req[FilterName(key)] = append(req[FilterName(key)], v)
			}
		}
	}
	return req
}

// Names returns the filter names present in the request in a stable order.
func (r FilterRequest) Names() []FilterName {
	names := make([]FilterName, 0, len(r))
	for n, v := range r {
		if len(v) > 0 {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return names
}

// With returns a copy of the request with name set to values.
func (r FilterRequest) With(name FilterName, values ...string) FilterRequest {
	out := make(FilterRequest, len(r)+1)
	for k, v := range r {
		out[k] = slices.Clone(v)
	}
	out[name] = values
	return out
}

// StartDate returns the parsed start_date, if one was given.
func (r FilterRequest) StartDate() (time.Time, bool) { return r.date(FilterStartDate) }

// EndDate returns the parsed end_date, if one was given.
func (r FilterRequest) EndDate() (time.Time, bool) { return r.date(FilterEndDate) }

func (r FilterRequest) date(name FilterName) (time.Time, bool) {
	values := r[name]
	if len(values) == 0 {
		return time.Time{}, false
	}
	t, err := time.Parse(FilterDateLayout, values[0])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Validate rejects requests the pipeline must never run with.
func (r FilterRequest) Validate() error {
	for _, name := range r.Names() {
		if !name.Known() {
			return fmt.Errorf("%w %q", ErrUnknownFilter, name)
		}
	}

	for _, y := range r[FilterYears] {
		if _, err := strconv.Atoi(y); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidYear, y)
		}
	}
	for _, m := range r[FilterMonths] {
		if _, ok := ParseMonth(m); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidMonth, m)
		}
	}

	for _, name := range []FilterName{FilterStartDate, FilterEndDate} {
		if values := r[name]; len(values) > 0 {
			if _, err := time.Parse(FilterDateLayout, values[0]); err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidDate, name, values[0])
			}
		}
	}

	start, hasStart := r.StartDate()
	end, hasEnd := r.EndDate()
	switch {
	case hasEnd && !hasStart:
		return ErrEndWithoutStart
	case hasStart && hasEnd && start.After(end):
		return ErrStartAfterEnd
	}

	return nil
}
