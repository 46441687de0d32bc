package aggregate

import (
	"time"

	"github.com/rtboard/backend/internal/types"
)

// Category buckets a ticket's first-response delay.
type Category string

const (
	WithinFirstHour  Category = "Within first hour"
	WithinFirstDay   Category = "Within first day"
	WithinFirst2Days Category = "Within first 2 days"
	WithinFirstWeek  Category = "Within first week"
	MoreThanAWeek    Category = "More than a week"
	NotSet           Category = "Not set"
)

// Categories is the fixed display order of the response buckets.
var Categories = []Category{
	WithinFirstHour,
	WithinFirstDay,
	WithinFirst2Days,
	WithinFirstWeek,
	MoreThanAWeek,
	NotSet,
}

// ElapsedClock measures the delay between ticket creation and first
// response. Two strategies exist because report revisions disagree on
// whether off-hours should count; both stay available to callers.
type ElapsedClock interface {
	Elapsed(created, started time.Time) time.Duration
	Name() string
}

// CalendarHours measures plain wall-clock time.
type CalendarHours struct{}

func (CalendarHours) Elapsed(created, started time.Time) time.Duration {
	return started.Sub(created)
}

func (CalendarHours) Name() string { return "calendar" }

// CategorizeHours maps an elapsed duration in hours onto a bucket. The
// thresholds are inclusive: exactly 1.0h is still "Within first hour"
// and exactly 168.0h is still "Within first week".
func CategorizeHours(hours float64) Category {
	switch {
	case hours <= 1:
		return WithinFirstHour
	case hours <= 24:
		return WithinFirstDay
	case hours <= 48:
		return WithinFirst2Days
	case hours <= 7*24:
		return WithinFirstWeek
	default:
		return MoreThanAWeek
	}
}

// Categorize buckets one ticket given its parsed timestamps. A missing
// Created or Started maps to Not set.
func Categorize(created, started time.Time, haveCreated, haveStarted bool, clock ElapsedClock) Category {
	if !haveCreated || !haveStarted {
		return NotSet
	}
	return CategorizeHours(clock.Elapsed(created, started).Hours())
}

// CategoryShare is one response bucket's count and share of the table.
type CategoryShare struct {
	Category   Category `json:"category"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// CategorizeTable buckets every record of a table and reports counts and
// percentages over all six categories in fixed order, zeros included so
// charts always carry the full legend.
func CategorizeTable(t types.Table, clock ElapsedClock) []CategoryShare {
	counts := make(map[Category]int, len(Categories))
	for _, r := range t {
		created, okC := parseRTTime(r, types.FieldCreated)
		started, okS := parseRTTime(r, types.FieldStarted)
		counts[Categorize(created, started, okC, okS, clock)]++
	}

	rows := make([]CategoryShare, 0, len(Categories))
	for _, cat := range Categories {
		share := CategoryShare{Category: cat, Count: counts[cat]}
		if len(t) > 0 {
			share.Percentage = float64(counts[cat]) / float64(len(t)) * 100
		}
		rows = append(rows, share)
	}
	return rows
}

func parseRTTime(r types.Record, field string) (time.Time, bool) {
	raw, ok := r.Field(field)
	if !ok {
		return time.Time{}, false
	}
	ts, err := time.Parse(types.RTTimeLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
