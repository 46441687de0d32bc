package aggregate

import "time"

// defaultHolidays are the recurring public holidays of the upstream
// operator's calendar, as month-day pairs.
var defaultHolidays = []string{
	"01-01", // New Year's Day
	"01-06", // Epiphany
	"04-25", // Liberation Day
	"05-01", // Labour Day
	"06-02", // Republic Day
	"08-15", // Assumption
	"11-01", // All Saints
	"12-08", // Immaculate Conception
	"12-25", // Christmas
	"12-26", // St. Stephen's Day
}

// HolidayCalendar marks non-working days. Recurring holidays are keyed
// by month-day; one-off closures can be added as full dates.
type HolidayCalendar struct {
	recurring map[string]bool
	dates     map[string]bool
}

// NewHolidayCalendar builds the default calendar plus any extra one-off
// dates in yyyy-mm-dd form. Unparseable extras are ignored.
func NewHolidayCalendar(extraDates []string) *HolidayCalendar {
	cal := &HolidayCalendar{
		recurring: make(map[string]bool, len(defaultHolidays)),
		dates:     make(map[string]bool, len(extraDates)),
	}
	for _, md := range defaultHolidays {
		cal.recurring[md] = true
	}
	for _, d := range extraDates {
		if _, err := time.Parse("2006-01-02", d); err == nil {
			cal.dates[d] = true
		}
	}
	return cal
}

// IsBusinessDay reports whether the day counts toward business-hours
// elapsed time: not a weekend, not a holiday.
func (c *HolidayCalendar) IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if c.recurring[t.Format("01-02")] {
		return false
	}
	return !c.dates[t.Format("2006-01-02")]
}

// BusinessHours measures elapsed time counting only business days: the
// start day's remainder, each full business day in between, and the end
// day's head. Start and end on the same calendar day is the special
// case: the interval counts only if that single day is a business day.
type BusinessHours struct {
	Calendar *HolidayCalendar
}

func (b BusinessHours) Name() string { return "business" }

func (b BusinessHours) Elapsed(created, started time.Time) time.Duration {
	if started.Before(created) {
		return started.Sub(created)
	}

	startDay := midnight(created)
	endDay := midnight(started)

	if startDay.Equal(endDay) {
		if b.Calendar.IsBusinessDay(created) {
			return started.Sub(created)
		}
		return 0
	}

	var elapsed time.Duration
	if b.Calendar.IsBusinessDay(created) {
		elapsed += startDay.AddDate(0, 0, 1).Sub(created)
	}
	for day := startDay.AddDate(0, 0, 1); day.Before(endDay); day = day.AddDate(0, 0, 1) {
		if b.Calendar.IsBusinessDay(day) {
			elapsed += 24 * time.Hour
		}
	}
	if b.Calendar.IsBusinessDay(started) {
		elapsed += started.Sub(endDay)
	}
	return elapsed
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
