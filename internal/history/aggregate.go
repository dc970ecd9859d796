package history

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/at-ishikawa/lexis/internal/tracking"
)

// Day holds the reviews completed on one UTC calendar day.
type Day struct {
	Date          string // YYYY-MM-DD
	TotalReviews  int
	Correct       int
	Incorrect     int
	Accuracy      int // percent, 0 when nothing was answered
	WordsByStatus map[tracking.Status]int
	Words         []Review
}

// StreakInfo counts consecutive study days.
type StreakInfo struct {
	Current         int
	Longest         int
	TotalActiveDays int
}

// Summary totals a report over its whole range.
type Summary struct {
	Period             string
	TotalDays          int
	TotalReviews       int
	TotalCorrect       int
	TotalIncorrect     int
	OverallAccuracy    int
	WordsByStatus      map[tracking.Status]int
	AverageWordsPerDay float64
	BestDay            string // empty when there were no reviews
	Streak             StreakInfo
}

// Report is a summary plus its days, most recent first.
type Report struct {
	Summary Summary
	Days    []Day
}

// Aggregate buckets reviews by the UTC date of ReviewedAt and derives the
// per-day and overall figures. today anchors the current study streak.
func Aggregate(reviews []Review, r Range, today time.Time) Report {
	days := make(map[string]*Day)
	for _, review := range sortedByTime(reviews) {
		date := review.ReviewedAt.UTC().Format(time.DateOnly)
		day := ensureDay(days, date)

		day.TotalReviews++
		day.WordsByStatus[review.Status]++
		switch review.Outcome {
		case OutcomeCorrect:
			day.Correct++
		case OutcomeIncorrect:
			day.Incorrect++
		}
		day.Words = append(day.Words, review)
	}
	return buildReport(days, r, today)
}

func ensureDay(days map[string]*Day, date string) *Day {
	if days[date] == nil {
		days[date] = &Day{
			Date:          date,
			WordsByStatus: make(map[tracking.Status]int),
			Words:         []Review{},
		}
	}
	return days[date]
}

// newest first, input order kept on ties
func sortedByTime(reviews []Review) []Review {
	sorted := slices.Clone(reviews)
	slices.SortStableFunc(sorted, func(a, b Review) int {
		return b.ReviewedAt.Compare(a.ReviewedAt)
	})
	return sorted
}

func buildReport(days map[string]*Day, r Range, today time.Time) Report {
	report := Report{
		Summary: Summary{
			Period:        r.Label,
			WordsByStatus: make(map[tracking.Status]int),
		},
		Days: make([]Day, 0, len(days)),
	}
	for _, day := range days {
		day.Accuracy = accuracy(day.Correct, day.Incorrect)
		report.Days = append(report.Days, *day)
	}
	// YYYY-MM-DD sorts chronologically as a string
	slices.SortFunc(report.Days, func(a, b Day) int {
		return cmp.Compare(b.Date, a.Date)
	})

	summary := &report.Summary
	summary.TotalDays = len(report.Days)
	var best *Day
	for i, day := range report.Days {
		summary.TotalReviews += day.TotalReviews
		summary.TotalCorrect += day.Correct
		summary.TotalIncorrect += day.Incorrect
		for status, count := range day.WordsByStatus {
			summary.WordsByStatus[status] += count
		}
		if best == nil || day.TotalReviews > best.TotalReviews {
			best = &report.Days[i]
		}
	}
	if best != nil {
		summary.BestDay = best.Date
	}
	summary.OverallAccuracy = accuracy(summary.TotalCorrect, summary.TotalIncorrect)
	summary.AverageWordsPerDay = math.Round(float64(summary.TotalReviews)/float64(r.Days())*10) / 10
	summary.Streak = streaks(report.Days, today)
	return report
}

func accuracy(correct, incorrect int) int {
	answered := correct + incorrect
	if answered == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(answered) * 100))
}

// streaks expects days sorted most recent first. The current streak only
// counts when the most recent active day is today.
func streaks(days []Day, today time.Time) StreakInfo {
	info := StreakInfo{TotalActiveDays: len(days)}
	if len(days) == 0 {
		return info
	}

	dates := make([]time.Time, len(days))
	for i, day := range days {
		// dates were produced by Format(time.DateOnly)
		dates[i], _ = time.Parse(time.DateOnly, day.Date)
	}

	if dates[0].Equal(truncateDay(today)) {
		info.Current = 1
		for i := 1; i < len(dates) && consecutive(dates[i], dates[i-1]); i++ {
			info.Current++
		}
	}

	run := 1
	for i := 1; i < len(dates); i++ {
		if consecutive(dates[i], dates[i-1]) {
			run++
		} else {
			info.Longest = max(info.Longest, run)
			run = 1
		}
	}
	info.Longest = max(info.Longest, run, info.Current)
	return info
}

func consecutive(earlier, later time.Time) bool {
	return later.Sub(earlier) == 24*time.Hour
}
