package ledger

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UndatedLabel titles the month/day group of rows without a date.
const UndatedLabel = "Undated"

// KeyFunc assigns a row to a group. The key orders groups; the label titles them.
type KeyFunc[T Record] func(T) (key, label string)

// Summary is the count and sums over a set of rows.
type Summary struct {
	Count    int
	Quantity decimal.Decimal
	Money    decimal.Decimal
}

// Group is one partition of a table with its summary.
type Group[T Record] struct {
	Key   string
	Label string
	Rows  []T
	Summary
}

// Totals sums every row of rows.
func Totals[T Record](rows []T) Summary {
	s := Summary{Quantity: decimal.Zero, Money: decimal.Zero}
	for _, r := range rows {
		s.add(r)
	}
	return s
}

func (s *Summary) add(r Record) {
	s.Count++
	s.Quantity = s.Quantity.Add(r.Measure())
	s.Money = s.Money.Add(r.Value())
}

// GroupBy partitions rows by key. Groups are ordered by key ascending,
// case-insensitively, with the empty key last; rows inside a group are most
// recent first, undated rows last, ties keeping input order.
func GroupBy[T Record](rows []T, key KeyFunc[T]) []Group[T] {
	index := make(map[string]int)
	var groups []Group[T]
	for _, r := range rows {
		k, label := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k, Label: label, Summary: Summary{Quantity: decimal.Zero, Money: decimal.Zero}})
		}
		groups[i].Rows = append(groups[i].Rows, r)
		groups[i].add(r)
	}

	slices.SortFunc(groups, func(a, b Group[T]) int { return compareKeys(a.Key, b.Key) })
	for i := range groups {
		SortByDateDesc(groups[i].Rows)
	}
	return groups
}

func compareKeys(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

// SortByDateDesc orders rows most recent first in place; undated rows go last.
func SortByDateDesc[T Record](rows []T) {
	slices.SortStableFunc(rows, func(a, b T) int {
		da, oka := a.RecordDate()
		db, okb := b.RecordDate()
		switch {
		case !oka && !okb:
			return 0
		case !oka:
			return 1
		case !okb:
			return -1
		}
		return db.Compare(da)
	})
}

// ByAttribute groups on a categorical attribute; blank values share the empty key.
func ByAttribute[T Record](name string) KeyFunc[T] {
	return func(r T) (string, string) {
		v, _ := r.Attribute(name)
		return v, v
	}
}

// ByMonth groups on calendar month: key "2006-01", label "January 2006".
func ByMonth[T Record]() KeyFunc[T] {
	return func(r T) (string, string) {
		d, ok := r.RecordDate()
		if !ok {
			return "", UndatedLabel
		}
		return d.Format("2006-01"), d.Format("January 2006")
	}
}

// ByDay groups on calendar day: key and label "2006-01-02".
func ByDay[T Record]() KeyFunc[T] {
	return func(r T) (string, string) {
		d, ok := r.RecordDate()
		if !ok {
			return "", UndatedLabel
		}
		return d.Format(time.DateOnly), d.Format(time.DateOnly)
	}
}

// Dedupe keeps the first row per RecordKey. Rows with an empty key are always kept.
func Dedupe[T Record](rows []T) []T {
	seen := make(map[string]bool, len(rows))
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		k := r.RecordKey()
		if k != "" {
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		out = append(out, r)
	}
	return out
}

// DateRange returns the earliest and latest dates among rows.
func DateRange[T Record](rows []T) (from, to time.Time, ok bool) {
	for _, r := range rows {
		d, dated := r.RecordDate()
		if !dated {
			continue
		}
		if !ok || d.Before(from) {
			from = d
		}
		if !ok || d.After(to) {
			to = d
		}
		ok = true
	}
	return from, to, ok
}
