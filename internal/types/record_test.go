package types

import "testing"

func TestField(t *testing.T) {
	r := Record{
		"Queue":   "help",
		"Owner":   "  alice  ",
		"Started": "",
	}

	tests := []struct {
		name   string
		field  string
		want   string
		wantOK bool
	}{
		{name: "present", field: "Queue", want: "help", wantOK: true},
		{name: "trimmed", field: "Owner", want: "alice", wantOK: true},
		{name: "empty counts as absent", field: "Started"},
		{name: "missing", field: "Created"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Field(tt.field)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestHasColumn(t *testing.T) {
	table := Table{
		{"Queue": "help"},
		{"Owner": "alice"},
	}
	if !table.HasColumn("Owner") {
		t.Error("expected Owner column present")
	}
	if table.HasColumn("Created") {
		t.Error("expected Created column absent")
	}
}

func TestIDColumn(t *testing.T) {
	table := Table{{"Id": "101", "Queue": "help"}}
	col, ok := table.IDColumn()
	if !ok || col != "Id" {
		t.Errorf("expected case-insensitive match on Id, got (%q, %v)", col, ok)
	}

	if _, ok := (Table{{"Queue": "help"}}).IDColumn(); ok {
		t.Error("expected no id column")
	}
}

func TestCopyIsDeep(t *testing.T) {
	original := Table{{"Queue": "help"}}
	clone := original.Copy()
	clone[0]["Queue"] = "changed"
	if original[0]["Queue"] != "help" {
		t.Error("expected copy to be independent of the original")
	}
	if (Table)(nil).Copy() != nil {
		t.Error("expected nil table to copy as nil")
	}
}
