package report

import (
	"context"

	"github.com/rtboard/backend/internal/aggregate"
	"github.com/rtboard/backend/internal/period"
	"github.com/rtboard/backend/internal/types"
)

// IDMTickets is the IDM tickets overview payload: monthly volume plus
// the owner distribution over the whole selection.
type IDMTickets struct {
	Periods []string                 `json:"periods"`
	Monthly []aggregate.MonthlyCount `json:"monthly"`
	Series  []aggregate.MonthSeries  `json:"series"`
	Totals  []aggregate.PeriodTotal  `json:"totals"`
	Owners  []aggregate.ValueCount   `json:"owners"`
	Text    map[string]string        `json:"text,omitempty"`
}

// IDMTickets renders the IDM queue overview for a period selection.
func (s *Service) IDMTickets(ctx context.Context, periods []period.Period, refresh bool) (*IDMTickets, error) {
	if err := s.validatePeriods(periods); err != nil {
		return nil, err
	}
	section := s.reports.IDMTickets
	yearTables, err := s.fetchYears(ctx, period.Years(periods), section.Params(false), refresh)
	if err != nil {
		return nil, err
	}

	out := &IDMTickets{Text: section.MarkdownText}
	var combined types.Table
	for _, p := range periods {
		table := tableFor(p, yearTables)
		combined = append(combined, table...)
		out.Periods = append(out.Periods, p.Label())
		out.Monthly = append(out.Monthly, aggregate.MonthlyCounts(table, p.Label())...)
	}
	out.Series = aggregate.PivotMonths(out.Monthly)
	out.Totals = aggregate.SumTotals(out.Monthly)
	out.Owners = aggregate.Distribution(combined, types.FieldOwner)

	s.rendered("idm-tickets", periods)
	return out, nil
}
