package aggregate

import (
	"sort"
	"strings"

	"github.com/rtboard/backend/internal/types"
)

// DomainShare is one standardized domain's ticket count and share of the
// table's total.
type DomainShare struct {
	Domain     string  `json:"domain"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StandardizeDomain canonicalizes a comma-separated multi-domain value by
// sorting its components, so set-equal combinations written in different
// orders collapse to one category. A missing value maps to the fixed
// Unknown Domain label. Idempotent.
func StandardizeDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.DomainUnknown
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// RecordDomain resolves one record's standardized domain. Tickets in the
// IDM queue are forced to Tourism after standardization, overriding
// whatever the raw domain field says.
func RecordDomain(r types.Record, domainField, queueField string) string {
	raw, _ := r.Field(domainField)
	domain := StandardizeDomain(raw)
	if queue, ok := r.Field(queueField); ok && queue == types.QueueIDM {
		domain = types.DomainTourism
	}
	return domain
}

// DomainCounts tallies tickets per standardized domain with the IDM
// override applied, and computes each domain's share of the total.
// Rows come back sorted by domain name.
func DomainCounts(t types.Table, domainField, queueField string) []DomainShare {
	counts := make(map[string]int)
	for _, r := range t {
		counts[RecordDomain(r, domainField, queueField)]++
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	rows := make([]DomainShare, 0, len(counts))
	for domain, n := range counts {
		share := DomainShare{Domain: domain, Count: n}
		if total > 0 {
			share.Percentage = float64(n) / float64(total) * 100
		}
		rows = append(rows, share)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Domain < rows[j].Domain })
	return rows
}
