package types

import "strings"

// Record is one upstream ticket: a free-form mapping from field name to
// value. The upstream defines the schema per query, so a field may be
// absent from any given record.
type Record map[string]string

// Table is an ordered list of records fetched for one (year, query, fields)
// triple. Order is upstream-determined and irrelevant to aggregations.
type Table []Record

// Field returns the trimmed value of a field and whether the record
// carries it. Empty values count as absent.
func (r Record) Field(name string) (string, bool) {
	v, ok := r[name]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

// HasColumn reports whether any record in the table carries the field.
func (t Table) HasColumn(name string) bool {
	for _, r := range t {
		if _, ok := r[name]; ok {
			return true
		}
	}
	return false
}

// IDColumn finds the ticket identifier column case-insensitively. The
// upstream sometimes reports it as "id" and sometimes as "Id".
func (t Table) IDColumn() (string, bool) {
	for _, r := range t {
		for k := range r {
			if strings.EqualFold(k, "id") {
				return k, true
			}
		}
	}
	return "", false
}

// Copy deep-copies the table. Cached tables are copied on both store and
// read so callers never observe each other's mutations.
func (t Table) Copy() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, r := range t {
		nr := make(Record, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out[i] = nr
	}
	return out
}
