// Package review builds review sessions and records answers.
package review

import (
	"math"
	"slices"
	"time"

	"github.com/at-ishikawa/lexis/internal/srs"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

// Priority is the urgency of a queued item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

const overdueAfter = 24 * time.Hour

// Options controls queue construction.
type Options struct {
	Limit       int
	IncludeNew  bool
	MaxNewWords int
	Mastery     srs.MasteryPolicy
}

// Item is a queued record with its selection-time annotations.
type Item struct {
	Record      tracking.Record
	Priority    Priority
	IsOverdue   bool
	DaysOverdue int
	Category    string
}

// Buckets are the partitions of a user's records before truncation.
type Buckets struct {
	Overdue        []tracking.Record
	RecentlyDue    []tracking.Record
	Future         []tracking.Record
	New            []tracking.Record
	NullNextReview []tracking.Record

	Forgotten []tracking.Record
	Learning  []tracking.Record
	Familiar  []tracking.Record
}

// Queue is the ordered selection plus the buckets it was drawn from.
type Queue struct {
	Items   []Item
	Buckets Buckets
}

// Select ranks records into a review queue of at most opts.Limit items:
// forgotten, then learning, then familiar due words (oldest due first),
// then up to opts.MaxNewWords new words, then unscheduled leftovers.
func Select(records []tracking.Record, now time.Time, opts Options) Queue {
	buckets := Partition(records, now, opts.Mastery)
	if opts.Limit <= 0 {
		return Queue{Items: []Item{}, Buckets: buckets}
	}

	ordered := make([]tracking.Record, 0, opts.Limit)
	ordered = append(ordered, buckets.Forgotten...)
	ordered = append(ordered, buckets.Learning...)
	ordered = append(ordered, buckets.Familiar...)

	if opts.IncludeNew {
		n := min(opts.MaxNewWords, opts.Limit-len(ordered), len(buckets.New))
		if n > 0 {
			ordered = append(ordered, buckets.New[:n]...)
		}
	}
	if remaining := opts.Limit - len(ordered); remaining > 0 {
		ordered = append(ordered, buckets.NullNextReview[:min(remaining, len(buckets.NullNextReview))]...)
	}
	if len(ordered) > opts.Limit {
		ordered = ordered[:opts.Limit]
	}

	items := make([]Item, len(ordered))
	for i, record := range ordered {
		items[i] = annotate(record, now)
	}
	return Queue{Items: items, Buckets: buckets}
}

// Partition splits records into disjoint buckets and orders each queue group.
// Mastered records are skipped unless the mastery policy makes them eligible,
// in which case they join the familiar group.
func Partition(records []tracking.Record, now time.Time, mastery srs.MasteryPolicy) Buckets {
	var b Buckets
	overdueBefore := now.Add(-overdueAfter)

	for _, record := range records {
		switch {
		case record.Status == tracking.StatusMastered:
			if mastery.Eligible(record, now) {
				b.Familiar = append(b.Familiar, record)
			}
		case record.Status == tracking.StatusNew:
			if record.TotalReviews == 0 {
				b.New = append(b.New, record)
			}
		case record.NextReviewAt == nil:
			b.NullNextReview = append(b.NullNextReview, record)
		case record.NextReviewAt.After(now):
			b.Future = append(b.Future, record)
		case record.NextReviewAt.Before(overdueBefore):
			b.Overdue = append(b.Overdue, record)
			b.addDue(record)
		default:
			b.RecentlyDue = append(b.RecentlyDue, record)
			b.addDue(record)
		}
	}

	byNextReview := func(a, b tracking.Record) int {
		return reviewTime(a).Compare(reviewTime(b))
	}
	byAddedAt := func(a, b tracking.Record) int {
		return a.AddedAt.Compare(b.AddedAt)
	}
	slices.SortStableFunc(b.Forgotten, byNextReview)
	slices.SortStableFunc(b.Learning, byNextReview)
	slices.SortStableFunc(b.Familiar, byNextReview)
	slices.SortStableFunc(b.New, byAddedAt)
	slices.SortStableFunc(b.NullNextReview, byAddedAt)
	return b
}

func (b *Buckets) addDue(record tracking.Record) {
	switch record.Status {
	case tracking.StatusForgotten:
		b.Forgotten = append(b.Forgotten, record)
	case tracking.StatusLearning:
		b.Learning = append(b.Learning, record)
	case tracking.StatusFamiliar:
		b.Familiar = append(b.Familiar, record)
	}
}

// unscheduled records sort first
func reviewTime(record tracking.Record) time.Time {
	if record.NextReviewAt == nil {
		return time.Time{}
	}
	return *record.NextReviewAt
}

func annotate(record tracking.Record, now time.Time) Item {
	item := Item{
		Record:   record,
		Priority: priorityOf(record, now),
		Category: categoryOf(record.Status),
	}
	if record.NextReviewAt != nil && record.NextReviewAt.Before(now) {
		item.IsOverdue = true
		days := math.Floor(now.Sub(*record.NextReviewAt).Hours() / 24)
		item.DaysOverdue = max(0, int(days))
	}
	return item
}

func priorityOf(record tracking.Record, now time.Time) Priority {
	overdueBefore := now.Add(-overdueAfter)
	if record.Status == tracking.StatusForgotten ||
		(record.NextReviewAt != nil && record.NextReviewAt.Before(overdueBefore)) {
		return PriorityHigh
	}
	if record.Status == tracking.StatusLearning && record.NextReviewAt != nil && !record.NextReviewAt.After(now) {
		return PriorityMedium
	}
	return PriorityLow
}

func categoryOf(status tracking.Status) string {
	switch status {
	case tracking.StatusForgotten, tracking.StatusLearning, tracking.StatusFamiliar, tracking.StatusNew:
		return string(status)
	}
	return "other"
}
