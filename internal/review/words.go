package review

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/lexis/internal/tracking"
)

// ListRequest selects a page of the user's word list. Zero values take defaults.
type ListRequest struct {
	Page   int
	Limit  int
	Status string
	Sort   string
	Order  string
	Search string
}

// Pagination describes where a page sits in the full list.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// WordList is one page of tracked words with per-status counts over all of them.
type WordList struct {
	Records      []tracking.Record
	Pagination   Pagination
	StatusCounts map[tracking.Status]int
}

func (s *Service) listOptions(req ListRequest) (tracking.ListOptions, error) {
	opts := tracking.ListOptions{
		Page:   req.Page,
		Limit:  req.Limit,
		Search: req.Search,
	}
	if opts.Page == 0 {
		opts.Page = 1
	}
	if opts.Limit == 0 {
		opts.Limit = s.cfg.DefaultLimit
	}
	if opts.Page < 1 {
		return opts, fmt.Errorf("%w: page must be positive, got %d", tracking.ErrInvalidArgument, opts.Page)
	}
	if opts.Limit < 1 || opts.Limit > s.cfg.MaxLimit {
		return opts, fmt.Errorf("%w: limit must be between 1 and %d, got %d", tracking.ErrInvalidArgument, s.cfg.MaxLimit, opts.Limit)
	}

	var err error
	if req.Status != "" {
		if opts.Status, err = tracking.ParseStatus(req.Status); err != nil {
			return opts, err
		}
	}
	if opts.Sort, err = tracking.ParseSortKey(req.Sort); err != nil {
		return opts, err
	}
	if opts.Order, err = tracking.ParseSortOrder(req.Order); err != nil {
		return opts, err
	}
	return opts, nil
}

// ListWords returns a page of the user's tracked words.
func (s *Service) ListWords(ctx context.Context, userID int64, req ListRequest) (*WordList, error) {
	opts, err := s.listOptions(req)
	if err != nil {
		return nil, err
	}

	records, total, err := s.records.List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("records.List(%d) > %w", userID, err)
	}
	counts, err := s.records.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("records.CountByStatus(%d) > %w", userID, err)
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	return &WordList{
		Records: records,
		Pagination: Pagination{
			Page:       opts.Page,
			Limit:      opts.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    opts.Page < totalPages,
			HasPrev:    opts.Page > 1,
		},
		StatusCounts: counts,
	}, nil
}

// WordStats summarizes the user's tracked words. "Today" is the current UTC day.
func (s *Service) WordStats(ctx context.Context, userID int64) (*tracking.Summary, error) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	summary, err := s.records.Summary(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("records.Summary(%d) > %w", userID, err)
	}
	return summary, nil
}
