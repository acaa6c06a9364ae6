// Package format renders ledger values for display.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DateLayout is the display layout for calendar dates ("08/Oct/2023").
const DateLayout = "02/Jan/2006"

// Date renders a calendar date; the zero time renders as "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate reads a date rendered by Date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse display date %q: %w", s, err)
	}
	return t, nil
}

// Money renders a currency amount as a thousands-grouped integer, rounding
// half away from zero ("50,000").
func Money(d decimal.Decimal) string {
	return humanize.Comma(d.Round(0).IntPart())
}

// Quantity renders a weight with one decimal place ("1,234.5").
func Quantity(d decimal.Decimal) string {
	f, _ := d.Round(1).Float64()
	return humanize.FormatFloat("#,###.#", f)
}

// Number renders a plain count or quantity without trailing zeros ("10", "2.5").
func Number(d decimal.Decimal) string {
	return d.String()
}

// Plural renders a count with its label, adding "s" unless n is 1.
func Plural(n int, label string) string {
	if n == 1 {
		return "1 " + label
	}
	return strconv.Itoa(n) + " " + label + "s"
}

// Millify renders a compact magnitude with SI-like suffixes ("1.25M", "950",
// "3B"), trailing zeros dropped.
func Millify(d decimal.Decimal, precision int) string {
	f, _ := d.Float64()
	suffix := ""
	if math.Abs(f) >= 1000 {
		var prefix string
		f, prefix = humanize.ComputeSI(f)
		suffix = millSuffix(prefix)
	}
	s := strconv.FormatFloat(f, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s + suffix
}

func millSuffix(si string) string {
	switch si {
	case "G":
		return "B"
	default:
		return si
	}
}

// Percent renders part/whole as a percentage with one decimal ("42.5%").
// A zero whole renders "0%".
func Percent(part, whole decimal.Decimal) string {
	if whole.IsZero() {
		return "0%"
	}
	p := part.Mul(decimal.NewFromInt(100)).Div(whole).Round(1)
	s := p.StringFixed(1)
	s = strings.TrimSuffix(s, ".0")
	return s + "%"
}
