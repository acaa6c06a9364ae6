package ledger

import "strings"

// Normalize restricts raw to the layout's fields. Unmapped columns are
// dropped, absent fields are nil, and when several columns feed one field the
// first non-blank value wins.
func Normalize(raw *RawTable, l Layout) (*Table, error) {
	if raw == nil {
		raw = &RawTable{}
	}

	targets := make([]string, len(raw.Columns))
	present := make(map[string]bool, len(l.Fields))
	for i, c := range raw.Columns {
		if name, ok := l.Target(c); ok {
			targets[i] = name
			present[name] = true
		}
	}
	if err := missingColumns(l, present); err != nil {
		return nil, err
	}

	fields := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		fields[i] = f.Name
	}

	out := &Table{Fields: fields, Rows: make([]Row, 0, raw.Len())}
	for i := range raw.Rows {
		row := make(Row, len(fields))
		for _, name := range fields {
			row[name] = nil
		}
		for c, name := range targets {
			if name == "" || !isBlank(row[name]) {
				continue
			}
			if v := raw.Cell(i, c); !isBlank(v) {
				row[name] = v
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func isBlank(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}
