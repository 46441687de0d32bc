package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// QueryParams are one report's upstream search parameters: the ticket
// query and the comma-separated field list to request.
type QueryParams struct {
	Query  string `yaml:"query"`
	Fields string `yaml:"fields"`
}

// ReportSection configures one report page. Pages with a query toggle
// carry a primary and an alternate parameter set; single-query pages use
// query_parameters alone. Display text is free-form, keyed the way the
// front-end expects it.
type ReportSection struct {
	QueryParameters QueryParams       `yaml:"query_parameters"`
	Primary         QueryParams       `yaml:"query_parameters_1"`
	Alternate       QueryParams       `yaml:"query_parameters_2"`
	MarkdownText    map[string]string `yaml:"markdown_text"`
}

// Params resolves the parameter set for a request. alt selects the
// alternate set when the section has one; sections without a toggle
// ignore the flag.
func (s ReportSection) Params(alt bool) QueryParams {
	if alt && s.Alternate.Query != "" {
		return s.Alternate
	}
	if s.Primary.Query != "" {
		return s.Primary
	}
	return s.QueryParameters
}

// Reports is the YAML report configuration document.
type Reports struct {
	HelpOverview  ReportSection `yaml:"help_overview"`
	Customers     ReportSection `yaml:"customers_overview"`
	Domains       ReportSection `yaml:"domains"`
	IDMTickets    ReportSection `yaml:"idm_tickets"`
	Requestors    ReportSection `yaml:"requestors"`
	ResponseTime  ReportSection `yaml:"response_time"`
	ExtraHolidays []string      `yaml:"extra_holidays"`
}

// LoadReports parses the report configuration file.
func LoadReports(path string) (*Reports, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reports config: %w", err)
	}
	var reports Reports
	if err := yaml.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("failed to parse reports config: %w", err)
	}
	return &reports, nil
}
