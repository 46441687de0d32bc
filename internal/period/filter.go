package period

import (
	"time"

	"github.com/rtboard/backend/internal/types"
)

// ParseCreated parses a record's Created timestamp in the upstream
// format. ok is false when the field is absent or unparseable; such
// records are excluded from every quarter.
func ParseCreated(r types.Record) (time.Time, bool) {
	raw, ok := r.Field(types.FieldCreated)
	if !ok {
		return time.Time{}, false
	}
	ts, err := time.Parse(types.RTTimeLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// FilterQuarter returns the order-preserving subset of a year's table
// whose Created timestamps fall inside the quarter's half-open interval.
// A table without a Created column yields an empty table rather than an
// error: the caller degrades to "no data".
func FilterQuarter(t types.Table, year, quarter int) types.Table {
	if !t.HasColumn(types.FieldCreated) {
		return types.Table{}
	}
	start, end := Period{Year: year, Quarter: quarter}.Bounds()

	out := types.Table{}
	for _, r := range t {
		ts, ok := ParseCreated(r)
		if !ok {
			continue
		}
		if !ts.Before(start) && ts.Before(end) {
			out = append(out, r)
		}
	}
	return out
}

// Restrict returns the subset of a year's table belonging to the period:
// the quarter filter in quarter mode, otherwise the records with a
// parseable Created value (so year and quarter views count the same
// population).
func Restrict(t types.Table, p Period) types.Table {
	if p.IsQuarter() {
		return FilterQuarter(t, p.Year, p.Quarter)
	}
	out := types.Table{}
	for _, r := range t {
		if _, ok := ParseCreated(r); ok {
			out = append(out, r)
		}
	}
	return out
}
