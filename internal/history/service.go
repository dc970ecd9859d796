package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/lexis/internal/config"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

const (
	SourceEvents   = "events"
	SourceSnapshot = "snapshot"
)

// ReviewSource reads completed reviews from storage.
type ReviewSource interface {
	FindReviewedBetween(ctx context.Context, userID int64, start, end time.Time) ([]tracking.Record, error)
	FindEventsBetween(ctx context.Context, userID int64, start, end time.Time) ([]tracking.ReviewEvent, error)
}

type Service struct {
	source ReviewSource
	mode   string
	logger *slog.Logger
	now    func() time.Time
}

func NewService(source ReviewSource, cfg config.ReviewConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	mode := cfg.HistorySource
	if mode == "" {
		mode = SourceEvents
	}
	return &Service{
		source: source,
		mode:   mode,
		logger: logger,
		now:    time.Now,
	}
}

// Request selects the report window. StartDate and EndDate use YYYY-MM-DD.
type Request struct {
	Period    string
	StartDate string
	EndDate   string
}

// Report builds the review history of the user over the requested window.
func (s *Service) Report(ctx context.Context, userID int64, req Request) (*Report, error) {
	period, err := ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}
	now := s.now()
	r, err := NewRange(period, req.StartDate, req.EndDate, now)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	report := Aggregate(reviews, r, now)
	s.logger.DebugContext(ctx, "history aggregated",
		"user_id", userID,
		"source", s.mode,
		"start", r.Start,
		"end", r.End,
		"reviews", len(reviews),
		"active_days", report.Summary.TotalDays)
	return &report, nil
}

func (s *Service) reviews(ctx context.Context, userID int64, r Range) ([]Review, error) {
	if s.mode == SourceSnapshot {
		records, err := s.source.FindReviewedBetween(ctx, userID, r.Start, r.End)
		if err != nil {
			return nil, fmt.Errorf("source.FindReviewedBetween(%d) > %w", userID, err)
		}
		return FromSnapshots(records), nil
	}

	events, err := s.source.FindEventsBetween(ctx, userID, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("source.FindEventsBetween(%d) > %w", userID, err)
	}
	return FromEvents(events), nil
}
