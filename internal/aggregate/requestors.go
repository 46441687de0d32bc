package aggregate

import (
	"sort"

	"github.com/rtboard/backend/internal/types"
)

// requestorOverrides are the classification values forced onto tickets
// in the IDM queue before any requestor distribution is built.
var requestorOverrides = map[string]string{
	types.CFRequestorType:    types.IDMRequestorType,
	types.CFRequestorUseCase: types.IDMRequestorUseCase,
	types.CFCompanyType:      types.IDMCompanyType,
}

// ApplyRequestorOverrides returns a copy of the table with the IDM
// overrides in place. A classification field is only overridden when the
// table carries that column at all, mirroring the upstream schema checks;
// tables without a Queue column come back unchanged.
func ApplyRequestorOverrides(t types.Table) types.Table {
	if !t.HasColumn(types.FieldQueue) {
		return t.Copy()
	}

	present := make(map[string]bool, len(requestorOverrides))
	for field := range requestorOverrides {
		present[field] = t.HasColumn(field)
	}

	out := t.Copy()
	for _, r := range out {
		if queue, ok := r.Field(types.FieldQueue); !ok || queue != types.QueueIDM {
			continue
		}
		for field, forced := range requestorOverrides {
			if present[field] {
				r[field] = forced
			}
		}
	}
	return out
}

// ValueCount is one categorical value's ticket count.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Distribution counts the values of a categorical field, count
// descending with ties broken by value. Records missing the field are
// skipped; a table without the field yields an empty distribution.
func Distribution(t types.Table, field string) []ValueCount {
	counts := make(map[string]int)
	for _, r := range t {
		if v, ok := r.Field(field); ok {
			counts[v]++
		}
	}

	rows := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		rows = append(rows, ValueCount{Value: v, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Value < rows[j].Value
	})
	return rows
}
