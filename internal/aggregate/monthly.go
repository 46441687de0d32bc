package aggregate

import (
	"sort"

	"github.com/rtboard/backend/internal/period"
	"github.com/rtboard/backend/internal/types"
)

// MonthlyCount is the ticket count of one (period label, month) bucket.
type MonthlyCount struct {
	Label string `json:"label"`
	Month int    `json:"month"`
	Count int    `json:"count"`
}

// PeriodTotal is one period's overall ticket count.
type PeriodTotal struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthSeries is one period's pivoted 12-slot series, Jan through Dec,
// ready for grouped bar charts and heatmap rows.
type MonthSeries struct {
	Label  string  `json:"label"`
	Counts [12]int `json:"counts"`
}

// MonthlyCounts groups a period's table by creation month. Records with
// an absent or unparseable Created value are skipped; buckets come back
// in calendar order regardless of data arrival order.
func MonthlyCounts(t types.Table, label string) []MonthlyCount {
	byMonth := [12]int{}
	for _, r := range t {
		ts, ok := period.ParseCreated(r)
		if !ok {
			continue
		}
		byMonth[int(ts.Month())-1]++
	}

	var rows []MonthlyCount
	for m := 0; m < 12; m++ {
		if byMonth[m] > 0 {
			rows = append(rows, MonthlyCount{Label: label, Month: m + 1, Count: byMonth[m]})
		}
	}
	return rows
}

// PivotMonths reshapes (label, month) rows into per-label 12-month
// series, sorted by label so chart columns are deterministic.
func PivotMonths(rows []MonthlyCount) []MonthSeries {
	byLabel := make(map[string]*MonthSeries)
	var labels []string
	for _, row := range rows {
		s, ok := byLabel[row.Label]
		if !ok {
			s = &MonthSeries{Label: row.Label}
			byLabel[row.Label] = s
			labels = append(labels, row.Label)
		}
		s.Counts[row.Month-1] += row.Count
	}

	sort.Strings(labels)
	out := make([]MonthSeries, 0, len(labels))
	for _, label := range labels {
		out = append(out, *byLabel[label])
	}
	return out
}

// SumTotals collapses (label, month) rows into per-label totals, sorted
// by label.
func SumTotals(rows []MonthlyCount) []PeriodTotal {
	byLabel := make(map[string]int)
	var labels []string
	for _, row := range rows {
		if _, ok := byLabel[row.Label]; !ok {
			labels = append(labels, row.Label)
		}
		byLabel[row.Label] += row.Count
	}

	sort.Strings(labels)
	out := make([]PeriodTotal, 0, len(labels))
	for _, label := range labels {
		out = append(out, PeriodTotal{Label: label, Count: byLabel[label]})
	}
	return out
}
