package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rtboard/backend/internal/config"
	"github.com/rtboard/backend/internal/period"
	"github.com/rtboard/backend/internal/types"
)

// Markdown export formats. Heading levels and ordering are load-bearing:
// downstream tooling parses these documents, so periods sort by label
// and groups sort by key, exactly as rendered here.

// ticketLink renders one ticket's markdown link against the upstream's
// ticket display URL.
func (s *Service) ticketLink(id string) string {
	return fmt.Sprintf("- [%s](%sTicket/Display.html?id=%s)", id, s.baseURL, id)
}

func (s *Service) markdownHeader(b *strings.Builder, title string) {
	fmt.Fprintf(b, "# %s\n\n", title)
	fmt.Fprintf(b, "Generated: %s\n\n", s.now().Format("2006-01-02 15:04"))
}

// ticketIDs lists a table's ticket identifiers in table order using the
// case-insensitively matched id column.
func ticketIDs(t types.Table, idCol string) []string {
	var ids []string
	for _, r := range t {
		if id, ok := r.Field(idCol); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func sortedLabels(tables map[string]types.Table) []string {
	labels := make([]string, 0, len(tables))
	for label := range tables {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// periodTables resolves the per-period tables for an export.
func (s *Service) periodTables(ctx context.Context, periods []period.Period, params config.QueryParams, refresh bool) (map[string]types.Table, error) {
	if err := s.validatePeriods(periods); err != nil {
		return nil, err
	}
	yearTables, err := s.fetchYears(ctx, period.Years(periods), params, refresh)
	if err != nil {
		return nil, err
	}
	tables := make(map[string]types.Table, len(periods))
	for _, p := range periods {
		tables[p.Label()] = tableFor(p, yearTables)
	}
	return tables, nil
}

// HelpOverviewMarkdown exports the help-queue overview grouped by month.
func (s *Service) HelpOverviewMarkdown(ctx context.Context, periods []period.Period, refresh bool) (string, error) {
	tables, err := s.periodTables(ctx, periods, s.reports.HelpOverview.Params(false), refresh)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	s.markdownHeader(&b, "Help Queue Overview Report")

	for _, label := range sortedLabels(tables) {
		table := tables[label]
		fmt.Fprintf(&b, "## %s\n\n", label)
		if len(table) == 0 {
			b.WriteString("No tickets for this period.\n\n")
			continue
		}
		fmt.Fprintf(&b, "**Total Tickets:** %d\n\n", len(table))

		idCol, hasID := table.IDColumn()
		for month := 1; month <= 12; month++ {
			monthTable := types.Table{}
			for _, r := range table {
				if ts, ok := period.ParseCreated(r); ok && int(ts.Month()) == month {
					monthTable = append(monthTable, r)
				}
			}
			if len(monthTable) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s (%d tickets)\n\n", types.MonthLabels[month-1], len(monthTable))
			if hasID {
				for _, id := range ticketIDs(monthTable, idCol) {
					b.WriteString(s.ticketLink(id) + "\n")
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String(), nil
}

// CustomersMarkdown exports every period's tickets grouped by company.
func (s *Service) CustomersMarkdown(ctx context.Context, periods []period.Period, refresh bool) (string, error) {
	tables, err := s.periodTables(ctx, periods, s.reports.Customers.Params(false), refresh)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	s.markdownHeader(&b, "Customer Overview Report")

	for _, label := range sortedLabels(tables) {
		table := tables[label]
		fmt.Fprintf(&b, "## %s\n\n", label)
		if !table.HasColumn(types.CFCompanyName) {
			b.WriteString("Company field not found\n\n")
			continue
		}

		byCompany := make(map[string]types.Table)
		for _, r := range table {
			if company, ok := r.Field(types.CFCompanyName); ok {
				byCompany[company] = append(byCompany[company], r)
			}
		}

		companies := make([]string, 0, len(byCompany))
		for company := range byCompany {
			companies = append(companies, company)
		}
		sort.Strings(companies)

		idCol, hasID := table.IDColumn()
		for _, company := range companies {
			group := byCompany[company]
			fmt.Fprintf(&b, "### %s (%d tickets)\n\n", company, len(group))
			if !hasID {
				b.WriteString("Ticket ID column not found\n\n")
				continue
			}
			ids := ticketIDs(group, idCol)
			if len(ids) == 0 {
				b.WriteString("- No tickets\n\n")
				continue
			}
			for _, id := range ids {
				b.WriteString(s.ticketLink(id) + "\n")
			}
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// IDMTicketsMarkdown exports the IDM queue's tickets grouped by owner.
func (s *Service) IDMTicketsMarkdown(ctx context.Context, periods []period.Period, refresh bool) (string, error) {
	tables, err := s.periodTables(ctx, periods, s.reports.IDMTickets.Params(false), refresh)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	s.markdownHeader(&b, "IDM Tickets Overview Report")

	for _, label := range sortedLabels(tables) {
		table := tables[label]
		fmt.Fprintf(&b, "## %s\n\n", label)
		if len(table) == 0 {
			b.WriteString("No data for this period.\n\n")
			continue
		}
		fmt.Fprintf(&b, "**Total Tickets:** %d\n\n", len(table))

		byOwner := make(map[string]types.Table)
		for _, r := range table {
			if owner, ok := r.Field(types.FieldOwner); ok {
				byOwner[owner] = append(byOwner[owner], r)
			}
		}

		owners := make([]string, 0, len(byOwner))
		for owner := range byOwner {
			owners = append(owners, owner)
		}
		sort.Strings(owners)

		idCol, hasID := table.IDColumn()
		for _, owner := range owners {
			group := byOwner[owner]
			fmt.Fprintf(&b, "### %s (%d tickets)\n\n", owner, len(group))
			if hasID {
				for _, id := range ticketIDs(group, idCol) {
					b.WriteString(s.ticketLink(id) + "\n")
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String(), nil
}

