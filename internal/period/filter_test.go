package period

import (
	"testing"

	"github.com/rtboard/backend/internal/types"
)

func record(created string) types.Record {
	return types.Record{"id": "ticket/1", types.FieldCreated: created}
}

func TestFilterQuarter(t *testing.T) {
	table := types.Table{
		record("Mon Jan 15 10:00:00 2024"),
		record("Fri Mar 29 23:59:59 2024"),
		record("Mon Apr 1 00:00:00 2024"),
		record("Tue Dec 31 23:00:00 2024"),
		record("not a timestamp"),
		{"id": "ticket/9"}, // no Created value
	}

	tests := []struct {
		name    string
		quarter int
		want    int
	}{
		{name: "Q1 includes Jan and Mar boundary", quarter: 1, want: 2},
		{name: "Q2 starts at Apr 1 midnight", quarter: 2, want: 1},
		{name: "Q3 empty", quarter: 3, want: 0},
		{name: "Q4 includes Dec 31", quarter: 4, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterQuarter(table, 2024, tt.quarter)
			if len(got) != tt.want {
				t.Errorf("expected %d records, got %d", tt.want, len(got))
			}
		})
	}
}

func TestFilterQuarterNoCreatedColumn(t *testing.T) {
	table := types.Table{
		{"id": "ticket/1", "Queue": "Support"},
		{"id": "ticket/2", "Queue": "Support"},
	}
	got := FilterQuarter(table, 2024, 1)
	if len(got) != 0 {
		t.Errorf("expected empty table without a Created column, got %d records", len(got))
	}
}

func TestFilterQuarterPreservesOrder(t *testing.T) {
	table := types.Table{
		record("Wed Feb 14 09:00:00 2024"),
		record("Mon Jan 1 00:00:00 2024"),
		record("Sun Mar 31 12:00:00 2024"),
	}
	got := FilterQuarter(table, 2024, 1)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for i := range table {
		v, _ := got[i].Field(types.FieldCreated)
		want, _ := table[i].Field(types.FieldCreated)
		if v != want {
			t.Errorf("record %d out of order: got %q, want %q", i, v, want)
		}
	}
}

// The four quarter filters partition the year's parseable records.
func TestQuartersPartitionYear(t *testing.T) {
	table := types.Table{
		record("Mon Jan 15 10:00:00 2024"),
		record("Wed May 1 08:30:00 2024"),
		record("Thu Aug 15 14:00:00 2024"),
		record("Mon Nov 11 11:11:11 2024"),
		record("Tue Dec 31 23:59:59 2024"),
		record("garbage"),
	}

	total := 0
	for q := 1; q <= 4; q++ {
		total += len(FilterQuarter(table, 2024, q))
	}
	restricted := Restrict(table, Period{Year: 2024})
	if total != len(restricted) {
		t.Errorf("quarters sum to %d records, year view has %d", total, len(restricted))
	}
}

func TestRestrictYearDropsUnparseable(t *testing.T) {
	table := types.Table{
		record("Mon Jan 15 10:00:00 2024"),
		record("garbage"),
	}
	got := Restrict(table, Period{Year: 2024})
	if len(got) != 1 {
		t.Errorf("expected 1 record, got %d", len(got))
	}
}
