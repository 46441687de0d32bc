package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period selects a reporting window: a whole calendar year, or one
// quarter of it when Quarter is 1 through 4.
type Period struct {
	Year    int
	Quarter int
}

// IsQuarter reports whether the period is quarter-scoped.
func (p Period) IsQuarter() bool {
	return p.Quarter != 0
}

// Label renders the period for chart axes and markdown headings:
// "2024" or "2024-Q1".
func (p Period) Label() string {
	if p.IsQuarter() {
		return fmt.Sprintf("%d-Q%d", p.Year, p.Quarter)
	}
	return strconv.Itoa(p.Year)
}

// Parse reads a period from its request form: "2024" or "2024-Q3".
func Parse(s string) (Period, error) {
	s = strings.TrimSpace(s)
	yearPart, quarterPart, hasQuarter := strings.Cut(s, "-Q")
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q", s)
	}
	p := Period{Year: year}
	if hasQuarter {
		q, err := strconv.Atoi(quarterPart)
		if err != nil || q < 1 || q > 4 {
			return Period{}, fmt.Errorf("invalid quarter in period %q", s)
		}
		p.Quarter = q
	}
	return p, nil
}

// ParseList reads a comma-separated list of periods. Periods of mixed
// granularity (years and quarters) are allowed in one list.
func ParseList(s string) ([]Period, error) {
	var out []Period
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		p, err := Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no periods selected")
	}
	return out, nil
}

// Bounds returns the period's half-open [start, end) interval. Quarter
// boundaries are Jan 1 / Apr 1 / Jul 1 / Oct 1, with Q4 ending at the
// next year's Jan 1, so the last calendar day is fully included.
func (p Period) Bounds() (time.Time, time.Time) {
	if !p.IsQuarter() {
		start := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	}
	startMonth := time.Month((p.Quarter-1)*3 + 1)
	start := time.Date(p.Year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 3, 0)
}

// ErrNotSelectable marks a period selection that lies in the future.
var ErrNotSelectable = errors.New("period not selectable yet")

// ValidateSelectable rejects quarters of the current year that lie beyond
// the quarter containing now. Past years are always selectable in full.
func ValidateSelectable(p Period, now time.Time) error {
	if !p.IsQuarter() {
		return nil
	}
	if p.Year < now.Year() {
		return nil
	}
	currentQuarter := (int(now.Month())-1)/3 + 1
	if p.Year > now.Year() || p.Quarter > currentQuarter {
		return fmt.Errorf("period %s: %w", p.Label(), ErrNotSelectable)
	}
	return nil
}

// Years returns the distinct years backing a period list, in first-seen
// order. Report pages fetch once per year and derive quarters in memory,
// bounding upstream calls to one per distinct year per render.
func Years(periods []Period) []int {
	seen := make(map[int]bool)
	var years []int
	for _, p := range periods {
		if !seen[p.Year] {
			seen[p.Year] = true
			years = append(years, p.Year)
		}
	}
	return years
}
