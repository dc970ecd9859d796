package tracking

import (
	"fmt"
	"strings"
)

// SortKey is a column users may sort their word list by.
type SortKey string

const (
	SortByAddedAt        SortKey = "addedAt"
	SortByLastReviewedAt SortKey = "lastReviewedAt"
	SortByNextReviewAt   SortKey = "nextReviewAt"
	SortByTotalReviews   SortKey = "totalReviews"
	SortByCorrectCount   SortKey = "correctCount"
	SortByCurrentStreak  SortKey = "currentStreak"
)

var sortColumns = map[SortKey]string{
	SortByAddedAt:        "t.added_at",
	SortByLastReviewedAt: "t.last_reviewed_at",
	SortByNextReviewAt:   "t.next_review_at",
	SortByTotalReviews:   "t.total_reviews",
	SortByCorrectCount:   "t.correct_count",
	SortByCurrentStreak:  "t.current_streak",
}

// ParseSortKey validates s against the allow-list. An empty string selects SortByAddedAt.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByAddedAt, nil
	}
	key := SortKey(s)
	if _, ok := sortColumns[key]; !ok {
		return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidArgument, s)
	}
	return key, nil
}

func (k SortKey) column() string {
	if c, ok := sortColumns[k]; ok {
		return c
	}
	return sortColumns[SortByAddedAt]
}

// SortOrder is ascending or descending.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts asc/desc case-insensitively. An empty string selects SortDesc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "":
		return SortDesc, nil
	case string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	}
	return "", fmt.Errorf("%w: unknown sort order %q", ErrInvalidArgument, s)
}

func (o SortOrder) sql() string {
	if o == SortAsc {
		return "ASC"
	}
	return "DESC"
}
