package report

import (
	"context"

	"github.com/rtboard/backend/internal/aggregate"
	"github.com/rtboard/backend/internal/period"
	"github.com/rtboard/backend/internal/types"
)

// DomainPeriod is one period's domain breakdown.
type DomainPeriod struct {
	Label string                  `json:"label"`
	Rows  []aggregate.DomainShare `json:"rows"`
}

// Domains is the domains overview payload: the combined breakdown over
// the whole selection plus a per-period breakdown with percentages.
type Domains struct {
	Combined []aggregate.DomainShare `json:"combined"`
	Periods  []DomainPeriod          `json:"periods"`
	Text     map[string]string       `json:"text,omitempty"`
}

// Domains renders the domains overview. The IDM queue override (domain
// forced to Tourism) is applied inside the aggregation.
func (s *Service) Domains(ctx context.Context, periods []period.Period, alt, refresh bool) (*Domains, error) {
	if err := s.validatePeriods(periods); err != nil {
		return nil, err
	}
	section := s.reports.Domains
	yearTables, err := s.fetchYears(ctx, period.Years(periods), section.Params(alt), refresh)
	if err != nil {
		return nil, err
	}

	out := &Domains{Text: section.MarkdownText}
	var combined types.Table
	for _, p := range periods {
		table := tableFor(p, yearTables)
		combined = append(combined, table...)
		out.Periods = append(out.Periods, DomainPeriod{
			Label: p.Label(),
			Rows:  aggregate.DomainCounts(table, types.CFDomain, types.FieldQueue),
		})
	}
	out.Combined = aggregate.DomainCounts(combined, types.CFDomain, types.FieldQueue)

	s.rendered("domains", periods)
	return out, nil
}
