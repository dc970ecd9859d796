package review

// Urgency is how pressing the backlog of overdue words is.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

const (
	minSessionSize = 5
	maxSessionSize = 30

	includeNewBelowDue   = 15
	highUrgencyOverdue   = 10
	mediumUrgencyOverdue = 5
)

// SessionStats summarizes a queue for session planning.
type SessionStats struct {
	TotalReturned  int
	TotalDue       int
	TotalNew       int
	Overdue        int
	Forgotten      int
	Learning       int
	Familiar       int
	NullNextReview int
	HighPriority   int
	MediumPriority int
	LowPriority    int

	Recommendations Recommendations
}

// Recommendations are advisory and never feed back into selection.
type Recommendations struct {
	SuggestedSessionSize int
	ShouldIncludeNew     bool
	UrgencyLevel         Urgency
}

// Summarize derives session statistics from a selected queue.
// Due counts come from the returned items; new and overdue counts from the buckets.
func Summarize(queue Queue, opts Options) SessionStats {
	stats := SessionStats{
		TotalReturned:  len(queue.Items),
		TotalNew:       len(queue.Buckets.New),
		Overdue:        len(queue.Buckets.Overdue),
		Forgotten:      len(queue.Buckets.Forgotten),
		Learning:       len(queue.Buckets.Learning),
		Familiar:       len(queue.Buckets.Familiar),
		NullNextReview: len(queue.Buckets.NullNextReview),
	}

	// Due groups always lead the queue, so truncation only ever cuts their tail
	stats.TotalDue = min(stats.TotalReturned, stats.Forgotten+stats.Learning+stats.Familiar)
	for _, item := range queue.Items {
		switch item.Priority {
		case PriorityHigh:
			stats.HighPriority++
		case PriorityMedium:
			stats.MediumPriority++
		default:
			stats.LowPriority++
		}
	}

	newWords := 0
	if opts.IncludeNew {
		newWords = min(stats.TotalNew, opts.MaxNewWords)
	}
	stats.Recommendations = Recommendations{
		SuggestedSessionSize: clamp(stats.TotalDue+newWords, minSessionSize, maxSessionSize),
		ShouldIncludeNew:     stats.TotalDue < includeNewBelowDue && stats.TotalNew > 0,
		UrgencyLevel:         urgencyOf(stats.Overdue),
	}
	return stats
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func urgencyOf(overdue int) Urgency {
	switch {
	case overdue > highUrgencyOverdue:
		return UrgencyHigh
	case overdue > mediumUrgencyOverdue:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}
