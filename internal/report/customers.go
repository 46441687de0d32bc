package report

import (
	"context"

	"github.com/rtboard/backend/internal/aggregate"
	"github.com/rtboard/backend/internal/period"
	"github.com/rtboard/backend/internal/types"
)

// CustomerPeriod is one period's customer composition.
type CustomerPeriod struct {
	Label        string                   `json:"label"`
	Tickets      int                      `json:"tickets"`
	Companies    int                      `json:"companies"`
	Top          []aggregate.CompanyCount `json:"top"`
	All          []aggregate.CompanyCount `json:"all"`
	NewCustomers []string                 `json:"newCustomers"`
}

// Customers is the customer overview payload.
type Customers struct {
	Periods []CustomerPeriod  `json:"periods"`
	Text    map[string]string `json:"text,omitempty"`
}

// Customers renders the customer overview. New customers are the set
// difference against every earlier period: cumulative from the start
// year in year mode, and against the same year's earlier quarters in
// quarter mode.
func (s *Service) Customers(ctx context.Context, periods []period.Period, topN int, refresh bool) (*Customers, error) {
	if err := s.validatePeriods(periods); err != nil {
		return nil, err
	}
	section := s.reports.Customers
	params := section.Params(false)

	years := period.Years(periods)
	// Only year-mode periods need the cumulative baseline back to the
	// start year; a quarter's baseline is the same year's earlier
	// quarters, already covered by its own fetch.
	maxFullYear := 0
	for _, p := range periods {
		if !p.IsQuarter() && p.Year > maxFullYear {
			maxFullYear = p.Year
		}
	}
	baselineYears := years
	for y := s.startYear; y < maxFullYear; y++ {
		baselineYears = append(baselineYears, y)
	}
	yearTables, err := s.fetchYears(ctx, dedupYears(baselineYears), params, refresh)
	if err != nil {
		return nil, err
	}

	out := &Customers{Text: section.MarkdownText}
	for _, p := range periods {
		table := tableFor(p, yearTables)
		counts := aggregate.CountCompanies(table, types.CFCompanyName)

		var prior []aggregate.CompanyCounts
		if p.IsQuarter() {
			for q := 1; q < p.Quarter; q++ {
				qt := period.FilterQuarter(yearTables[p.Year], p.Year, q)
				prior = append(prior, aggregate.CountCompanies(qt, types.CFCompanyName))
			}
		} else {
			for y := s.startYear; y < p.Year; y++ {
				prior = append(prior, aggregate.CountCompanies(yearTables[y], types.CFCompanyName))
			}
		}

		out.Periods = append(out.Periods, CustomerPeriod{
			Label:        p.Label(),
			Tickets:      counts.Total(),
			Companies:    counts.Companies(),
			Top:          counts.Top(topN),
			All:          counts.All(),
			NewCustomers: aggregate.NewCustomers(counts, prior...),
		})
	}

	s.rendered("customers", periods)
	return out, nil
}

func dedupYears(years []int) []int {
	seen := make(map[int]bool, len(years))
	var out []int
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	return out
}
