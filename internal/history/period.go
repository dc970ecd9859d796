package history

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidRange = errors.New("invalid date range")

// Period is a named look-back window ending today.
type Period string

const (
	PeriodDay     Period = "1d"
	PeriodWeek    Period = "7d"
	PeriodMonth   Period = "30d"
	PeriodQuarter Period = "90d"
	PeriodAll     Period = "all"
)

var periodDays = map[Period]int{
	PeriodDay:     1,
	PeriodWeek:    7,
	PeriodMonth:   30,
	PeriodQuarter: 90,
	PeriodAll:     365 * 10,
}

// Periods lists the accepted periods, shortest first.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodAll}

// ParsePeriod validates s. An empty string selects PeriodWeek.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodWeek, nil
	}
	p := Period(s)
	if _, ok := periodDays[p]; !ok {
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidRange, s)
	}
	return p, nil
}

// Days is the length of the window in days.
func (p Period) Days() int {
	return periodDays[p]
}

// Range is an inclusive time window with the label it is reported under.
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

// NewRange resolves a report window. Dates use the YYYY-MM-DD layout in UTC.
// An explicit startDate wins over the period; endDate defaults to today and
// extends to the last millisecond of that day.
func NewRange(period Period, startDate, endDate string, now time.Time) (Range, error) {
	now = now.UTC()

	end := truncateDay(now)
	if endDate != "" {
		d, err := time.Parse(time.DateOnly, endDate)
		if err != nil {
			return Range{}, fmt.Errorf("%w: endDate %q is not a date", ErrInvalidRange, endDate)
		}
		end = d
	}
	end = end.Add(24*time.Hour - time.Millisecond)

	r := Range{End: end, Label: string(period)}
	if startDate != "" {
		d, err := time.Parse(time.DateOnly, startDate)
		if err != nil {
			return Range{}, fmt.Errorf("%w: startDate %q is not a date", ErrInvalidRange, startDate)
		}
		r.Start = d
		r.Label = startDate + " to " + end.Format(time.DateOnly)
	} else {
		if _, ok := periodDays[period]; !ok {
			return Range{}, fmt.Errorf("%w: unknown period %q", ErrInvalidRange, period)
		}
		r.Start = now.AddDate(0, 0, -period.Days())
	}

	if r.End.Before(r.Start) {
		return Range{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange,
			r.End.Format(time.DateOnly), r.Start.Format(time.DateOnly))
	}
	return r, nil
}

// Days is the number of days the range spans, at least 1.
func (r Range) Days() int {
	return max(1, int(math.Round(r.End.Sub(r.Start).Hours()/24)))
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
