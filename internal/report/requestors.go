package report

import (
	"context"
	"strconv"

	"github.com/rtboard/backend/internal/aggregate"
	"github.com/rtboard/backend/internal/types"
)

// RequestorBreakdown is one population's distribution over the three
// requestor classification fields.
type RequestorBreakdown struct {
	Label           string                 `json:"label"`
	TypeOfRequestor []aggregate.ValueCount `json:"typeOfRequestor"`
	UseCase         []aggregate.ValueCount `json:"useCase"`
	CompanyType     []aggregate.ValueCount `json:"companyType"`
}

// Requestors is the requestors overview payload: one breakdown per year
// plus the combined breakdown over the whole selection.
type Requestors struct {
	Years    []RequestorBreakdown `json:"years"`
	Combined RequestorBreakdown   `json:"combined"`
	Text     map[string]string    `json:"text,omitempty"`
}

// Requestors renders the requestor demographics. The IDM overrides are
// applied before any distribution is computed.
func (s *Service) Requestors(ctx context.Context, years []int, alt, refresh bool) (*Requestors, error) {
	section := s.reports.Requestors
	yearTables, err := s.fetchYears(ctx, years, section.Params(alt), refresh)
	if err != nil {
		return nil, err
	}

	out := &Requestors{Text: section.MarkdownText}
	var combined types.Table
	for _, y := range years {
		table := aggregate.ApplyRequestorOverrides(yearTables[y])
		combined = append(combined, table...)
		out.Years = append(out.Years, breakdown(strconv.Itoa(y), table))
	}
	out.Combined = breakdown("combined", combined)

	s.rendered("requestors", periodsForYears(years))
	return out, nil
}

func breakdown(label string, t types.Table) RequestorBreakdown {
	return RequestorBreakdown{
		Label:           label,
		TypeOfRequestor: aggregate.Distribution(t, types.CFRequestorType),
		UseCase:         aggregate.Distribution(t, types.CFRequestorUseCase),
		CompanyType:     aggregate.Distribution(t, types.CFCompanyType),
	}
}
