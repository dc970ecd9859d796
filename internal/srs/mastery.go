package srs

import (
	"time"

	"github.com/at-ishikawa/lexis/internal/tracking"
)

// MasteryPolicy decides whether mastered words come back into review.
// The zero value keeps mastery permanent.
type MasteryPolicy struct {
	ReviewAfterDays int
}

// Permanent reports whether mastered words never return to the queue.
func (p MasteryPolicy) Permanent() bool {
	return p.ReviewAfterDays <= 0
}

// Eligible reports whether a mastered record is due for a refresher review at now.
func (p MasteryPolicy) Eligible(record tracking.Record, now time.Time) bool {
	if p.Permanent() || record.Status != tracking.StatusMastered {
		return false
	}
	if record.LastReviewedAt == nil {
		return true
	}
	return !record.LastReviewedAt.After(now.AddDate(0, 0, -p.ReviewAfterDays))
}
