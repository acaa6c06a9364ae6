package ledger

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
)

// Record is what the filter chain and the aggregator need from a domain type.
type Record interface {
	// RecordKey identifies a row across merged sources; "" never deduplicates.
	RecordKey() string
	RecordDate() (time.Time, bool)
	// Attribute returns a categorical field; false when the domain lacks it.
	Attribute(name string) (string, bool)
	// Measure is the domain's primary quantity.
	Measure() decimal.Decimal
	// Value is the domain's primary money amount.
	Value() decimal.Decimal
}

type predicate[T Record] func(T) bool

// Apply keeps the rows matching one named filter. Empty values, unknown
// names and values that do not parse leave rows unchanged. Filters are pure
// row predicates, so any order of Apply calls gives the same rows.
func Apply[T Record](rows []T, name models.FilterName, values []string) []T {
	if len(values) == 0 {
		return rows
	}
	keep := predicateFor[T](name, values)
	if keep == nil {
		return rows
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ApplyAll runs every filter of req.
func ApplyAll[T Record](rows []T, req models.FilterRequest) []T {
	for _, name := range req.Names() {
		rows = Apply(rows, name, req[name])
	}
	return rows
}

func predicateFor[T Record](name models.FilterName, values []string) predicate[T] {
	switch name {
	case models.FilterYears:
		years := make(map[int]bool, len(values))
		for _, v := range values {
			if y, err := strconv.Atoi(v); err == nil {
				years[y] = true
			}
		}
		if len(years) == 0 {
			return nil
		}
		return func(r T) bool {
			d, ok := r.RecordDate()
			return ok && years[d.Year()]
		}

	case models.FilterMonths:
		months := make(map[time.Month]bool, len(values))
		for _, v := range values {
			if m, ok := models.ParseMonth(v); ok {
				months[m] = true
			}
		}
		if len(months) == 0 {
			return nil
		}
		return func(r T) bool {
			d, ok := r.RecordDate()
			return ok && months[d.Month()]
		}

	case models.FilterStartDate:
		start, err := time.Parse(models.FilterDateLayout, values[0])
		if err != nil {
			return nil
		}
		return func(r T) bool {
			d, ok := r.RecordDate()
			return ok && !day(d).Before(start)
		}

	case models.FilterEndDate:
		end, err := time.Parse(models.FilterDateLayout, values[0])
		if err != nil {
			return nil
		}
		return func(r T) bool {
			d, ok := r.RecordDate()
			return ok && !day(d).After(end)
		}
	}

	attr, ok := name.Attribute()
	if !ok {
		return nil
	}
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}
	return func(r T) bool {
		v, ok := r.Attribute(attr)
		return !ok || allowed[v]
	}
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
