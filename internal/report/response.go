package report

import (
	"context"
	"fmt"

	"github.com/rtboard/backend/internal/aggregate"
	"github.com/rtboard/backend/internal/period"
)

// ResponseYear is one year's response-time breakdown.
type ResponseYear struct {
	Label string                    `json:"label"`
	Rows  []aggregate.CategoryShare `json:"rows"`
}

// ResponseTimes is the response-times payload. Clock names which elapsed
// strategy produced the buckets.
type ResponseTimes struct {
	Clock string            `json:"clock"`
	Years []ResponseYear    `json:"years"`
	Text  map[string]string `json:"text,omitempty"`
}

// Clock resolves a strategy name. Both strategies stay first-class
// because report revisions differ on whether off-hours count.
func (s *Service) Clock(name string) (aggregate.ElapsedClock, error) {
	switch name {
	case "", aggregate.CalendarHours{}.Name():
		return aggregate.CalendarHours{}, nil
	case "business":
		return aggregate.BusinessHours{Calendar: s.calendar}, nil
	default:
		return nil, fmt.Errorf("unknown clock %q", name)
	}
}

// ResponseTimes renders the response-time distribution per year.
func (s *Service) ResponseTimes(ctx context.Context, years []int, alt bool, clock aggregate.ElapsedClock, refresh bool) (*ResponseTimes, error) {
	section := s.reports.ResponseTime
	yearTables, err := s.fetchYears(ctx, years, section.Params(alt), refresh)
	if err != nil {
		return nil, err
	}

	out := &ResponseTimes{Clock: clock.Name(), Text: section.MarkdownText}
	for _, y := range years {
		out.Years = append(out.Years, ResponseYear{
			Label: fmt.Sprintf("%d", y),
			Rows:  aggregate.CategorizeTable(yearTables[y], clock),
		})
	}

	s.rendered("response-times", periodsForYears(years))
	return out, nil
}

func periodsForYears(years []int) []period.Period {
	out := make([]period.Period, len(years))
	for i, y := range years {
		out[i] = period.Period{Year: y}
	}
	return out
}
