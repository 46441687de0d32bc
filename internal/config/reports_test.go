package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleReports = `
help_overview:
  query_parameters:
    query: "Queue = 'help' AND Status != 'rejected'"
    fields: "id,Created,Subject"
  markdown_text:
    intro: "Ticket volume by month."

response_time:
  query_parameters_1:
    query: "Queue = 'help'"
    fields: "id,Created,Started"
  query_parameters_2:
    query: "Queue = 'help' AND Status = 'resolved'"
    fields: "id,Created,Started"

extra_holidays:
  - "2024-12-24"
`

func writeReports(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reports.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadReports(t *testing.T) {
	reports, err := LoadReports(writeReports(t, sampleReports))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := reports.HelpOverview.QueryParameters.Query; got != "Queue = 'help' AND Status != 'rejected'" {
		t.Errorf("unexpected query: %q", got)
	}
	if got := reports.HelpOverview.MarkdownText["intro"]; got != "Ticket volume by month." {
		t.Errorf("unexpected markdown text: %q", got)
	}
	if len(reports.ExtraHolidays) != 1 || reports.ExtraHolidays[0] != "2024-12-24" {
		t.Errorf("unexpected extra holidays: %v", reports.ExtraHolidays)
	}
}

func TestParamsToggle(t *testing.T) {
	reports, err := LoadReports(writeReports(t, sampleReports))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	primary := reports.ResponseTime.Params(false)
	if primary.Query != "Queue = 'help'" {
		t.Errorf("expected primary params, got %q", primary.Query)
	}

	alt := reports.ResponseTime.Params(true)
	if alt.Query != "Queue = 'help' AND Status = 'resolved'" {
		t.Errorf("expected alternate params, got %q", alt.Query)
	}

	// Sections without a toggle ignore the flag.
	single := reports.HelpOverview.Params(true)
	if single.Query != "Queue = 'help' AND Status != 'rejected'" {
		t.Errorf("expected single-query section to ignore alt, got %q", single.Query)
	}
}

func TestLoadReportsErrors(t *testing.T) {
	if _, err := LoadReports(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadReports(writeReports(t, "help_overview: [not, a, mapping]")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
