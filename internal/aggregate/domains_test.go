package aggregate

import (
	"testing"

	"github.com/rtboard/backend/internal/types"
)

func TestStandardizeDomain(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "single", raw: "Mobility", want: "Mobility"},
		{name: "sorted combination", raw: "Tourism,Mobility", want: "Mobility,Tourism"},
		{name: "already sorted", raw: "Mobility,Tourism", want: "Mobility,Tourism"},
		{name: "spaces trimmed", raw: " Tourism , Mobility ", want: "Mobility,Tourism"},
		{name: "empty", raw: "", want: types.DomainUnknown},
		{name: "blank", raw: "   ", want: types.DomainUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StandardizeDomain(tt.raw); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStandardizeDomainIdempotent(t *testing.T) {
	inputs := []string{"Tourism,Mobility", "", "Weather, Mobility ,Tourism"}
	for _, raw := range inputs {
		once := StandardizeDomain(raw)
		if twice := StandardizeDomain(once); twice != once {
			t.Errorf("standardizing %q twice gave %q then %q", raw, once, twice)
		}
	}
}

func TestRecordDomainIDMOverride(t *testing.T) {
	r := types.Record{
		types.CFDomain:   "Mobility",
		types.FieldQueue: types.QueueIDM,
	}
	if got := RecordDomain(r, types.CFDomain, types.FieldQueue); got != types.DomainTourism {
		t.Errorf("expected IDM queue forced to %q, got %q", types.DomainTourism, got)
	}

	r[types.FieldQueue] = "Support"
	if got := RecordDomain(r, types.CFDomain, types.FieldQueue); got != "Mobility" {
		t.Errorf("expected raw domain kept outside IDM, got %q", got)
	}
}

func TestDomainCounts(t *testing.T) {
	table := types.Table{
		{types.CFDomain: "Mobility", types.FieldQueue: "Support"},
		{types.CFDomain: "Tourism,Mobility", types.FieldQueue: "Support"},
		{types.CFDomain: "Mobility,Tourism", types.FieldQueue: "Support"},
		{types.CFDomain: "Weather", types.FieldQueue: types.QueueIDM},
		{types.FieldQueue: "Support"},
	}

	rows := DomainCounts(table, types.CFDomain, types.FieldQueue)
	if len(rows) != 4 {
		t.Fatalf("expected 4 domains, got %d: %v", len(rows), rows)
	}

	byDomain := make(map[string]DomainShare)
	for _, row := range rows {
		byDomain[row.Domain] = row
	}

	if got := byDomain["Mobility,Tourism"].Count; got != 2 {
		t.Errorf("expected set-equal combinations merged into 2, got %d", got)
	}
	if got := byDomain[types.DomainTourism].Count; got != 1 {
		t.Errorf("expected IDM record counted as Tourism, got %d", got)
	}
	if got := byDomain[types.DomainUnknown].Count; got != 1 {
		t.Errorf("expected missing domain counted as %s, got %d", types.DomainUnknown, got)
	}
	if got := byDomain["Mobility"].Percentage; got != 20 {
		t.Errorf("expected Mobility at 20%%, got %v", got)
	}

	// Sorted by domain name.
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Domain > rows[i].Domain {
			t.Errorf("rows not sorted: %q before %q", rows[i-1].Domain, rows[i].Domain)
		}
	}
}

func TestDomainCountsEmptyTable(t *testing.T) {
	if rows := DomainCounts(types.Table{}, types.CFDomain, types.FieldQueue); len(rows) != 0 {
		t.Errorf("expected no rows for empty table, got %v", rows)
	}
}
