package models

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// FirstTrackedYear is the year the farm started recording.
const FirstTrackedYear = 2022

// FirstEntryDate is the earliest date accepted on data entry forms.
var FirstEntryDate = time.Date(2022, time.August, 1, 0, 0, 0, 0, time.UTC)

var costCategories = []string{
	"Airtime & Data",
	"Construction",
	"Delivery To Customer",
	"Employee Benefits",
	"Fertilisers & Nutrients",
	"Maintenance & Repair",
	"Miscellaneous",
	"Rent & Lease",
	"Seeds & Seedlings",
	"Tools & Equipment",
	"Transport For Operations",
	"Wages & Salaries",
	"Yaka",
	"Supplies & Materials",
}

var (
	sizes       = []string{"big", "small"}
	units       = []string{"kg"}
	greenhouses = []string{"Structure A", "Structure B", "Structure C", "Structure D", "Structure E", "Structure F"}
)

// CostCategories returns the closed list of cost categories, sorted.
func CostCategories() []string {
	out := slices.Clone(costCategories)
	slices.Sort(out)
	return out
}

// Sizes returns the produce size grades, sorted.
func Sizes() []string { return sortedCopy(sizes) }

// Units returns the sale units, sorted.
func Units() []string { return sortedCopy(units) }

// Greenhouses returns the site names harvests are recorded against.
func Greenhouses() []string { return slices.Clone(greenhouses) }

// CanonicalCategory maps a raw category label ("wages_&_salaries",
// "WAGES & SALARIES") onto its catalog spelling.
func CanonicalCategory(raw string) (string, bool) {
	label := FormatLabel(raw)
	for _, c := range costCategories {
		if strings.EqualFold(c, label) {
			return c, true
		}
	}
	return label, false
}

// IsSize reports whether s is a known size grade.
func IsSize(s string) bool { return slices.Contains(sizes, strings.ToLower(strings.TrimSpace(s))) }

// IsUnit reports whether s is a known sale unit.
func IsUnit(s string) bool { return slices.Contains(units, strings.ToLower(strings.TrimSpace(s))) }

// IsGreenhouse reports whether s names a known greenhouse.
func IsGreenhouse(s string) bool { return slices.Contains(greenhouses, strings.TrimSpace(s)) }

// FormatLabel turns underscore separated form values into capitalised words.
func FormatLabel(raw string) string {
	words := strings.FieldsFunc(raw, func(r rune) bool { return r == '_' || unicode.IsSpace(r) })
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// MonthNames returns January..December indexed from 1.
func MonthNames() map[int]string {
	out := make(map[int]string, 12)
	for m := time.January; m <= time.December; m++ {
		out[int(m)] = m.String()
	}
	return out
}

// ParseMonth accepts a month number ("3") or an English month name ("March", "mar").
func ParseMonth(s string) (time.Month, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(name, s) || (len(s) == 3 && strings.EqualFold(name[:3], s)) {
			return m, true
		}
	}
	return 0, false
}

// YearsSince lists FirstTrackedYear..now's year, most recent first.
func YearsSince(now time.Time) []int {
	var years []int
	for y := now.Year(); y >= FirstTrackedYear; y-- {
		years = append(years, y)
	}
	return years
}

// Catalog bundles every option list a client needs to build filters and forms.
type Catalog struct {
	CostCategories []string       `json:"cost_categories"`
	Sizes          []string       `json:"sizes"`
	Units          []string       `json:"units"`
	Greenhouses    []string       `json:"greenhouses"`
	Months         map[int]string `json:"months"`
	Years          []int          `json:"years"`
}

// NewCatalog builds the option lists relative to now.
func NewCatalog(now time.Time) Catalog {
	return Catalog{
		CostCategories: CostCategories(),
		Sizes:          Sizes(),
		Units:          Units(),
		Greenhouses:    Greenhouses(),
		Months:         MonthNames(),
		Years:          YearsSince(now),
	}
}

func sortedCopy(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}
