// Package aggregate holds the report aggregations. Every function is a
// pure computation over a ticket table; a table missing an expected
// column degrades to an empty result instead of failing, because the
// upstream schema is query-dependent and drifts.
package aggregate

import (
	"sort"

	"github.com/rtboard/backend/internal/types"
)

// CompanyCount is one company's ticket count.
type CompanyCount struct {
	Company string `json:"company"`
	Tickets int    `json:"tickets"`
}

// CompanyCounts holds per-company ticket counts with first-seen order
// retained for stable top-N ranking.
type CompanyCounts struct {
	counts map[string]int
	order  []string
}

// CountCompanies tallies tickets per company. Records missing the
// company field are skipped.
func CountCompanies(t types.Table, field string) CompanyCounts {
	cc := CompanyCounts{counts: make(map[string]int)}
	for _, r := range t {
		company, ok := r.Field(field)
		if !ok {
			continue
		}
		if _, seen := cc.counts[company]; !seen {
			cc.order = append(cc.order, company)
		}
		cc.counts[company]++
	}
	return cc
}

// Total returns the number of counted tickets.
func (cc CompanyCounts) Total() int {
	total := 0
	for _, n := range cc.counts {
		total += n
	}
	return total
}

// Companies returns the number of distinct companies.
func (cc CompanyCounts) Companies() int {
	return len(cc.counts)
}

// Names returns the distinct companies sorted alphabetically.
func (cc CompanyCounts) Names() []string {
	names := make([]string, len(cc.order))
	copy(names, cc.order)
	sort.Strings(names)
	return names
}

// Top returns the n highest-volume companies, count descending with ties
// broken by first-seen order (stable sort over the insertion order).
func (cc CompanyCounts) Top(n int) []CompanyCount {
	ranked := make([]CompanyCount, 0, len(cc.order))
	for _, company := range cc.order {
		ranked = append(ranked, CompanyCount{Company: company, Tickets: cc.counts[company]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Tickets > ranked[j].Tickets
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// All returns every company with its count, sorted by company name.
func (cc CompanyCounts) All() []CompanyCount {
	out := make([]CompanyCount, 0, len(cc.order))
	for _, name := range cc.Names() {
		out = append(out, CompanyCount{Company: name, Tickets: cc.counts[name]})
	}
	return out
}

// NewCustomers returns the companies of the current period that appear in
// none of the prior periods, sorted alphabetically. Priors are unioned
// first, so a company returning after a gap is still not new.
func NewCustomers(current CompanyCounts, prior ...CompanyCounts) []string {
	known := make(map[string]bool)
	for _, p := range prior {
		for name := range p.counts {
			known[name] = true
		}
	}
	var fresh []string
	for name := range current.counts {
		if !known[name] {
			fresh = append(fresh, name)
		}
	}
	sort.Strings(fresh)
	return fresh
}
