// Package ledger turns raw spreadsheet pulls into typed, filtered and grouped
// records. Every function in it is pure.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawTable is one sheet pull: header names and the data rows beneath them.
type RawTable struct {
	Columns []string
	Rows    [][]interface{}
}

// FromValues builds a RawTable from a Sheets values matrix whose first row is
// the header. Blank header cells become "Unnamed: <index>" and repeated names
// get a ".<n>" suffix, so every column stays addressable.
func FromValues(values [][]interface{}) *RawTable {
	if len(values) == 0 {
		return &RawTable{}
	}

	width := 0
	for _, row := range values {
		width = max(width, len(row))
	}

	header := values[0]
	columns := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(cellString(header[i]))
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		columns[i] = name
	}

	return &RawTable{Columns: columns, Rows: values[1:]}
}

// Len returns the number of data rows.
func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of a column or -1.
func (t *RawTable) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Cell returns the value at row i, column c; short rows read as nil.
func (t *RawTable) Cell(i, c int) interface{} {
	row := t.Rows[i]
	if c < 0 || c >= len(row) {
		return nil
	}
	return row[c]
}

// Join inner-joins left and right on leftKey = rightKey. Output columns are
// left's followed by right's, skipping names already present on the left.
// If either key column is missing the result has the joined header and no rows.
func Join(left, right *RawTable, leftKey, rightKey string) *RawTable {
	out := &RawTable{}
	var rightCols []int
	for i, c := range right.Columns {
		if left.Index(c) >= 0 {
			continue
		}
		out.Columns = append(out.Columns, c)
		rightCols = append(rightCols, i)
	}
	out.Columns = append(append([]string{}, left.Columns...), out.Columns...)

	lk, rk := left.Index(leftKey), right.Index(rightKey)
	if lk < 0 || rk < 0 {
		return out
	}

	index := make(map[string][]int, right.Len())
	for i := range right.Rows {
		key := strings.TrimSpace(cellString(right.Cell(i, rk)))
		if key == "" {
			continue
		}
		index[key] = append(index[key], i)
	}

	for i := range left.Rows {
		key := strings.TrimSpace(cellString(left.Cell(i, lk)))
		for _, j := range index[key] {
			row := make([]interface{}, 0, len(out.Columns))
			for c := range left.Columns {
				row = append(row, left.Cell(i, c))
			}
			for _, c := range rightCols {
				row = append(row, right.Cell(j, c))
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Row is one normalized record keyed by target field name.
type Row map[string]interface{}

// Text returns a text field, "" when absent.
func (r Row) Text(field string) string {
	s, _ := r[field].(string)
	return s
}

// Date returns a coerced date or timestamp field.
func (r Row) Date(field string) (time.Time, bool) {
	t, ok := r[field].(time.Time)
	return t, ok && !t.IsZero()
}

// Number returns a coerced numeric field, zero when absent.
func (r Row) Number(field string) decimal.Decimal {
	d, ok := r[field].(decimal.Decimal)
	if !ok {
		return decimal.Zero
	}
	return d
}

// Table is a normalized (and later coerced) record table.
type Table struct {
	Fields []string
	Rows   []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
