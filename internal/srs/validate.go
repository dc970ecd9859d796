package srs

import (
	"fmt"

	"github.com/at-ishikawa/lexis/internal/tracking"
)

// Validate reports whether record holds a scheduling state that answers could have produced.
// Errors wrap tracking.ErrInvalidArgument.
func Validate(record tracking.Record) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", tracking.ErrInvalidArgument, fmt.Sprintf(format, args...))
	}

	if _, err := tracking.ParseStatus(string(record.Status)); err != nil {
		return err
	}
	if record.EaseFactor < tracking.MinEaseFactor {
		return invalid("ease factor %.2f is below %.2f", record.EaseFactor, tracking.MinEaseFactor)
	}
	if record.TotalReviews < 0 || record.CorrectCount < 0 || record.CurrentStreak < 0 || record.IntervalDays < 0 {
		return invalid("negative counter or interval")
	}
	if record.CorrectCount > record.TotalReviews {
		return invalid("correct count %d exceeds total reviews %d", record.CorrectCount, record.TotalReviews)
	}
	if record.CurrentStreak > record.CorrectCount {
		return invalid("streak %d exceeds correct count %d", record.CurrentStreak, record.CorrectCount)
	}

	switch record.Status {
	case tracking.StatusNew:
		if record.TotalReviews > 0 {
			return invalid("new record has %d reviews", record.TotalReviews)
		}
		return nil
	case tracking.StatusForgotten:
		if record.CurrentStreak > 0 {
			return invalid("forgotten record has streak %d", record.CurrentStreak)
		}
	default:
		if record.CurrentStreak == 0 || statusForStreak(record.CurrentStreak) != record.Status {
			return invalid("status %s does not match streak %d", record.Status, record.CurrentStreak)
		}
	}

	if record.TotalReviews == 0 {
		return invalid("%s record has no reviews", record.Status)
	}
	if record.NextReviewAt == nil {
		return invalid("%s record has no next review time", record.Status)
	}
	if record.IntervalDays < 1 {
		return invalid("%s record has interval %d", record.Status, record.IntervalDays)
	}
	return nil
}
