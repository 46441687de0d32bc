// Package report composes the fetcher, the quarter filter, and the
// aggregators into the payloads served per report page, plus the
// markdown exports.
package report

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rtboard/backend/internal/aggregate"
	"github.com/rtboard/backend/internal/config"
	"github.com/rtboard/backend/internal/fetch"
	"github.com/rtboard/backend/internal/metrics"
	"github.com/rtboard/backend/internal/period"
	"github.com/rtboard/backend/internal/types"
)

// Service renders the report pages. All aggregates are recomputed per
// request; the only state behind it is the fetch cache.
type Service struct {
	fetcher   *fetch.Fetcher
	reports   *config.Reports
	baseURL   string
	startYear int
	calendar  *aggregate.HolidayCalendar
	now       func() time.Time
	logger    zerolog.Logger
}

// NewService creates the report service. now is injectable for
// deterministic markdown headers and quarter validation in tests; pass
// nil to use time.Now.
func NewService(fetcher *fetch.Fetcher, reports *config.Reports, baseURL string, startYear int, now func() time.Time, logger zerolog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		fetcher:   fetcher,
		reports:   reports,
		baseURL:   baseURL,
		startYear: startYear,
		calendar:  aggregate.NewHolidayCalendar(reports.ExtraHolidays),
		now:       now,
		logger:    logger.With().Str("component", "report").Logger(),
	}
}

// validatePeriods rejects quarters that have not started yet.
func (s *Service) validatePeriods(periods []period.Period) error {
	now := s.now()
	for _, p := range periods {
		if err := period.ValidateSelectable(p, now); err != nil {
			return err
		}
	}
	return nil
}

// fetchYears fetches each distinct year of the selection exactly once,
// so several quarters of one year cost a single upstream call.
func (s *Service) fetchYears(ctx context.Context, years []int, params config.QueryParams, refresh bool) (map[int]types.Table, error) {
	tables := make(map[int]types.Table, len(years))
	for _, year := range years {
		table, err := s.fetcher.FetchYear(ctx, year, params.Query, params.Fields, !refresh)
		if err != nil {
			return nil, err
		}
		tables[year] = table
	}
	return tables, nil
}

// tableFor scopes a fetched year table to the period. Both branches go
// through Restrict so year and quarter views count the same population:
// records with a parseable Created value.
func tableFor(p period.Period, yearTables map[int]types.Table) types.Table {
	return period.Restrict(yearTables[p.Year], p)
}

func (s *Service) rendered(page string, periods []period.Period) {
	metrics.Get().RecordReport(page)
	s.logger.Debug().Str("page", page).Int("periods", len(periods)).Msg("report rendered")
}
