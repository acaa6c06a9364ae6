package ledger

import (
	"errors"
	"fmt"
)

// ErrUnavailable means a pull lacks a required column; callers treat the
// source as empty.
var ErrUnavailable = errors.New("source unavailable")

// Kind is the coercion policy of a field.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindTimestamp
	KindNumber
)

// Field is one target column of a domain schema.
type Field struct {
	Name string
	Kind Kind
}

// Layout describes how raw sheet columns map onto a domain's fields.
type Layout struct {
	Name     string
	Fields   []Field
	Required []string
	// Aliases maps raw header names onto field names. Headers equal to a
	// field name match without an alias.
	Aliases map[string]string
	// Derive fills computed fields after coercion. It must be idempotent.
	Derive func(Row) Row
}

func (l Layout) field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Target maps a raw header onto the field it feeds.
func (l Layout) Target(column string) (string, bool) {
	if name, ok := l.Aliases[column]; ok {
		return name, true
	}
	if _, ok := l.field(column); ok {
		return column, true
	}
	return "", false
}

// Schema is a Layout plus the decoder into the domain's record type.
type Schema[T any] struct {
	Layout
	// Decode converts a coerced row into a record; false rejects the row.
	Decode func(Row) (T, bool)
}

// Outcome reports what a pipeline run kept and discarded.
type Outcome[T any] struct {
	Records  []T
	Empty    int
	Rejected int
}

// Run takes a raw pull through Normalize, Coerce and Decode.
func (s Schema[T]) Run(raw *RawTable) (Outcome[T], error) {
	table, err := Normalize(raw, s.Layout)
	if err != nil {
		return Outcome[T]{}, err
	}

	coerced := Coerce(table, s.Layout)
	out := Outcome[T]{
		Records: make([]T, 0, coerced.Len()),
		Empty:   table.Len() - coerced.Len(),
	}
	for _, row := range coerced.Rows {
		rec, ok := s.Decode(row)
		if !ok {
			out.Rejected++
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

func missingColumns(l Layout, present map[string]bool) error {
	var missing []string
	for _, name := range l.Required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s missing %v", ErrUnavailable, l.Name, missing)
	}
	return nil
}
