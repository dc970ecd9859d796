// Package history aggregates completed reviews into day-by-day reports.
package history

import (
	"time"

	"github.com/at-ishikawa/lexis/internal/tracking"
)

// Outcome is the result of a single review as far as it is known.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	}
	return "unknown"
}

// Review is one completed review of a tracked word.
type Review struct {
	RecordID     int64
	Word         string
	Definition   string
	Status       tracking.Status
	Streak       int
	CorrectCount int
	TotalReviews int
	ReviewedAt   time.Time
	Outcome      Outcome
}

// FromEvents converts logged answers into reviews. Every event has a known outcome.
func FromEvents(events []tracking.ReviewEvent) []Review {
	reviews := make([]Review, 0, len(events))
	for _, event := range events {
		outcome := OutcomeIncorrect
		if event.IsCorrect {
			outcome = OutcomeCorrect
		}
		reviews = append(reviews, Review{
			RecordID:     event.RecordID,
			Word:         event.Word,
			Definition:   event.Definition,
			Status:       event.Status,
			Streak:       event.Streak,
			CorrectCount: event.CorrectCount,
			TotalReviews: event.TotalReviews,
			ReviewedAt:   event.ReviewedAt,
			Outcome:      outcome,
		})
	}
	return reviews
}

// FromSnapshots converts records into one review each at their last review time.
// Only the latest answer of a record survives in its counters, so the outcome is
// inferred: a running streak means correct, a broken one after any review means incorrect.
func FromSnapshots(records []tracking.Record) []Review {
	reviews := make([]Review, 0, len(records))
	for _, record := range records {
		if record.LastReviewedAt == nil {
			continue
		}

		outcome := OutcomeUnknown
		switch {
		case record.CurrentStreak > 0:
			outcome = OutcomeCorrect
		case record.TotalReviews > 0:
			outcome = OutcomeIncorrect
		}
		reviews = append(reviews, Review{
			RecordID:     record.ID,
			Word:         record.Word,
			Definition:   record.Definition,
			Status:       record.Status,
			Streak:       record.CurrentStreak,
			CorrectCount: record.CorrectCount,
			TotalReviews: record.TotalReviews,
			ReviewedAt:   *record.LastReviewedAt,
			Outcome:      outcome,
		})
	}
	return reviews
}
