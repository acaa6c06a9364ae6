package ledger

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Day-first layouts, most specific first.
var dateLayouts = []string{
	"2/1/06",
	"2/1/2006",
	"2/Jan/2006",
	"2-Jan-2006",
	"2-Jan-06",
	"2-1-2006",
	"2-1-06",
	"2 Jan 2006",
	"2006-01-02",
}

var timestampLayouts = []string{
	"2-Jan-2006 15:04:05",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

var (
	zoneSuffix   = regexp.MustCompile(`\s+[A-Z]{2,5}$`)
	unitSuffix   = regexp.MustCompile(`(?i)\s*(kgs?|ugx|shs)\.?$`)
	moneyPrefix  = regexp.MustCompile(`(?i)^(ugx|shs)\.?\s*`)
	numberFiller = strings.NewReplacer(",", "", " ", "", "\u00a0", "", "_", "")
)

// Sheets serial day 0.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Coerce converts every field to its kind: dates and timestamps become
// time.Time or nil, numbers become decimal.Decimal (zero when unparseable),
// text becomes a trimmed string. Structurally empty rows are dropped and
// Derive runs last. Coerce(Coerce(t)) equals Coerce(t).
func Coerce(t *Table, l Layout) *Table {
	out := &Table{Fields: t.Fields, Rows: make([]Row, 0, t.Len())}
	for _, in := range t.Rows {
		row := make(Row, len(l.Fields))
		for _, f := range l.Fields {
			v := in[f.Name]
			switch f.Kind {
			case KindDate:
				if d, ok := ParseDate(v); ok {
					row[f.Name] = d
				} else {
					row[f.Name] = nil
				}
			case KindTimestamp:
				if ts, ok := ParseTimestamp(v); ok {
					row[f.Name] = ts
				} else {
					row[f.Name] = nil
				}
			case KindNumber:
				row[f.Name] = ParseNumber(v)
			default:
				row[f.Name] = strings.TrimSpace(cellString(v))
			}
		}
		if structurallyEmpty(row, l) {
			continue
		}
		if l.Derive != nil {
			row = l.Derive(row)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// structurallyEmpty reports a row whose every field is nil, zero or blank
// after coercion.
func structurallyEmpty(row Row, l Layout) bool {
	for _, f := range l.Fields {
		switch f.Kind {
		case KindDate, KindTimestamp:
			if row[f.Name] != nil {
				return false
			}
		case KindNumber:
			if !row.Number(f.Name).IsZero() {
				return false
			}
		default:
			if row.Text(f.Name) != "" {
				return false
			}
		}
	}
	return true
}

// ParseDate reads a calendar date day-first. The result is midnight UTC.
func ParseDate(v interface{}) (time.Time, bool) {
	t, ok := parseTime(v, dateLayouts)
	if !ok {
		t, ok = parseTime(v, timestampLayouts)
	}
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// ParseTimestamp reads a date with time of day, falling back to date-only values.
func ParseTimestamp(v interface{}) (time.Time, bool) {
	if t, ok := parseTime(v, timestampLayouts); ok {
		return t, true
	}
	return parseTime(v, dateLayouts)
}

func parseTime(v interface{}, layouts []string) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case float64:
		return fromSerial(x)
	case int:
		return fromSerial(float64(x))
	case string:
		s := strings.TrimSpace(zoneSuffix.ReplaceAllString(strings.TrimSpace(x), ""))
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func fromSerial(days float64) (time.Time, bool) {
	// Only spreadsheet serials between 1950 and 2100 are treated as dates.
	if days < 18264 || days > 73051 || math.IsNaN(days) {
		return time.Time{}, false
	}
	whole := math.Floor(days)
	secs := math.Round((days - whole) * 86400)
	return serialEpoch.AddDate(0, 0, int(whole)).Add(time.Duration(secs) * time.Second), true
}

// ParseNumber reads a quantity or amount, stripping thousands separators,
// currency markers and kg suffixes. Anything unparseable is zero.
func ParseNumber(v interface{}) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case string:
		s := strings.TrimSpace(x)
		s = moneyPrefix.ReplaceAllString(s, "")
		s = unitSuffix.ReplaceAllString(s, "")
		s = numberFiller.Replace(s)
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
