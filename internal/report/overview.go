package report

import (
	"context"

	"github.com/rtboard/backend/internal/aggregate"
	"github.com/rtboard/backend/internal/period"
)

// Overview is the help-queue overview payload: monthly buckets, the
// pivoted per-period series for grouped bars and the heatmap, and the
// per-period totals.
type Overview struct {
	Periods []string                 `json:"periods"`
	Monthly []aggregate.MonthlyCount `json:"monthly"`
	Series  []aggregate.MonthSeries  `json:"series"`
	Totals  []aggregate.PeriodTotal  `json:"totals"`
	Text    map[string]string        `json:"text,omitempty"`
}

// HelpOverview renders the help-queue overview for a period selection.
func (s *Service) HelpOverview(ctx context.Context, periods []period.Period, refresh bool) (*Overview, error) {
	if err := s.validatePeriods(periods); err != nil {
		return nil, err
	}
	section := s.reports.HelpOverview
	yearTables, err := s.fetchYears(ctx, period.Years(periods), section.Params(false), refresh)
	if err != nil {
		return nil, err
	}

	out := &Overview{Text: section.MarkdownText}
	for _, p := range periods {
		out.Periods = append(out.Periods, p.Label())
		out.Monthly = append(out.Monthly, aggregate.MonthlyCounts(tableFor(p, yearTables), p.Label())...)
	}
	out.Series = aggregate.PivotMonths(out.Monthly)
	out.Totals = aggregate.SumTotals(out.Monthly)

	s.rendered("help-overview", periods)
	return out, nil
}
