// Package record holds the record aggregate: a structured entity (e.g. a
// person profile) with an ordered field set and derived keyword-search text.
package record

import "strings"

// Field is a single named value in a record. Field order is significant and
// preserved from insertion.
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered field list.
type Fields []Field

// Get returns the value for a field name, if present.
func (f Fields) Get(name string) (string, bool) {
	for _, fld := range f {
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return "", false
}

// Clone returns a deep copy.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	c := make(Fields, len(f))
	copy(c, f)
	return c
}

// Trimmed returns a copy with whitespace-trimmed values, preserving order.
func (f Fields) Trimmed() Fields {
	c := make(Fields, len(f))
	for i, fld := range f {
		c[i] = Field{Name: fld.Name, Value: strings.TrimSpace(fld.Value)}
	}
	return c
}

// Record is the record aggregate. IDs are assigned by the store on insertion
// and immutable thereafter; search text is derived from the searchable fields
// and recomputed whenever fields change.
type Record struct {
	id         int64
	fields     Fields
	searchText string
}

// New creates a Record with search text derived from the given searchable
// field names (concatenated in field order, lowercased).
func New(id int64, fields Fields, searchable []string) Record {
	return Record{
		id:         id,
		fields:     fields.Clone(),
		searchText: deriveSearchText(fields, searchable),
	}
}

// Reconstruct creates a Record from stored state without re-derivation.
func Reconstruct(id int64, fields Fields, searchText string) Record {
	return Record{id: id, fields: fields, searchText: searchText}
}

// ID returns the record identifier.
func (r *Record) ID() int64 { return r.id }

// Fields returns the ordered field list.
func (r *Record) Fields() Fields { return r.fields.Clone() }

// SearchText returns the derived keyword-search text.
func (r *Record) SearchText() string { return r.searchText }

// WithFields returns a copy with replaced fields and recomputed search text.
func (r *Record) WithFields(fields Fields, searchable []string) Record {
	return New(r.id, fields, searchable)
}

func deriveSearchText(fields Fields, searchable []string) string {
	var parts []string
	for _, name := range searchable {
		if v, ok := fields.Get(name); ok && v != "" {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
