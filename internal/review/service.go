package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"

	"github.com/at-ishikawa/lexis/internal/config"
	"github.com/at-ishikawa/lexis/internal/dictionary"
	"github.com/at-ishikawa/lexis/internal/srs"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

// MeaningFinder resolves a meaning so that added words can be checked against it.
type MeaningFinder interface {
	FindMeaning(ctx context.Context, meaningID int64) (*dictionary.Meaning, error)
}

// Service runs review sessions for one user at a time on top of the tracking store.
type Service struct {
	records  tracking.Repository
	meanings MeaningFinder
	cfg      config.ReviewConfig
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(records tracking.Repository, meanings MeaningFinder, cfg config.ReviewConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		records:  records,
		meanings: meanings,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// QueueRequest carries the optional queue parameters; nil fields take configured defaults.
type QueueRequest struct {
	Limit       *int
	IncludeNew  *bool
	MaxNewWords *int
}

// QueueResult is a selected queue with its statistics and the options actually used.
type QueueResult struct {
	Items   []Item
	Stats   SessionStats
	Options Options
}

func (s *Service) queueOptions(req QueueRequest) (Options, error) {
	opts := Options{
		Limit:       s.cfg.DefaultLimit,
		IncludeNew:  true,
		MaxNewWords: s.cfg.DefaultMaxNewWords,
		Mastery:     srs.MasteryPolicy{ReviewAfterDays: s.cfg.MasteredReviewAfterDays},
	}
	if req.Limit != nil {
		opts.Limit = *req.Limit
	}
	if req.IncludeNew != nil {
		opts.IncludeNew = *req.IncludeNew
	}
	if req.MaxNewWords != nil {
		opts.MaxNewWords = *req.MaxNewWords
	}

	if opts.Limit < 0 || opts.Limit > s.cfg.MaxLimit {
		return Options{}, fmt.Errorf("%w: limit must be between 0 and %d, got %d", tracking.ErrInvalidArgument, s.cfg.MaxLimit, opts.Limit)
	}
	if opts.MaxNewWords < 0 {
		return Options{}, fmt.Errorf("%w: maxNewWords must not be negative, got %d", tracking.ErrInvalidArgument, opts.MaxNewWords)
	}
	return opts, nil
}

// GetQueue selects the words the user should review now.
func (s *Service) GetQueue(ctx context.Context, userID int64, req QueueRequest) (*QueueResult, error) {
	opts, err := s.queueOptions(req)
	if err != nil {
		return nil, err
	}

	filter := tracking.Filter{ExcludeStatuses: []tracking.Status{tracking.StatusMastered}}
	if !opts.Mastery.Permanent() {
		filter = tracking.Filter{}
	}
	records, err := s.records.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("records.FindByUser(%d) > %w", userID, err)
	}

	queue := Select(records, s.now(), opts)
	stats := Summarize(queue, opts)
	s.logger.DebugContext(ctx, "review queue selected",
		"user_id", userID,
		"candidates", len(records),
		"overdue", len(queue.Buckets.Overdue),
		"recently_due", len(queue.Buckets.RecentlyDue),
		"new", len(queue.Buckets.New),
		"null_next_review", len(queue.Buckets.NullNextReview),
		"future", len(queue.Buckets.Future),
		"returned", len(queue.Items))

	return &QueueResult{Items: queue.Items, Stats: stats, Options: opts}, nil
}

// AnswerRequest is one answer to a queued word.
type AnswerRequest struct {
	RecordID       int64
	IsCorrect      bool
	ResponseTimeMs int64
}

// AnswerResult is the persisted record and the scheduling change applied to it.
type AnswerResult struct {
	Record tracking.Record
	Result srs.Result
}

// SubmitAnswer applies an answer to the user's record.
// Concurrent answers to the same record are serialized by the record version;
// a lost race re-reads the record and recomputes, up to the configured attempts.
func (s *Service) SubmitAnswer(ctx context.Context, userID int64, req AnswerRequest) (*AnswerResult, error) {
	if req.ResponseTimeMs < 0 {
		return nil, fmt.Errorf("%w: responseTimeMs must not be negative", tracking.ErrInvalidArgument)
	}

	attempts := max(1, s.cfg.ConflictRetryAttempts)
	var answer *AnswerResult
	err := retry.Do(
		func() error {
			record, err := s.records.FindByID(ctx, userID, req.RecordID)
			if err != nil {
				return fmt.Errorf("records.FindByID(%d) > %w", req.RecordID, err)
			}

			now := s.now()
			result := srs.Review(record, req.IsCorrect, now)
			event := srs.Event(*record, result, now, req.ResponseTimeMs)
			if err := s.records.ApplyReview(ctx, record, &event); err != nil {
				return fmt.Errorf("records.ApplyReview(%d) > %w", req.RecordID, err)
			}
			answer = &AnswerResult{Record: *record, Result: result}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(5*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, tracking.ErrConflict)
		}),
		retry.OnRetry(func(n uint, err error) {
			// also called after the last attempt
			if n+1 >= attempts {
				return
			}
			s.logger.WarnContext(ctx, "answer lost a concurrent update, retrying",
				"user_id", userID, "record_id", req.RecordID, "attempt", n+1)
		}),
	)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "answer recorded",
		"user_id", userID,
		"record_id", req.RecordID,
		"correct", req.IsCorrect,
		"status", answer.Result.Next.Status,
		"interval_days", answer.Result.Next.IntervalDays)
	return answer, nil
}

// AddWordRequest starts tracking a word meaning.
type AddWordRequest struct {
	WordID       int64
	MeaningID    int64
	PersonalNote *string
	IsFavorite   bool
}

// AddWord creates a new tracking record, first due one day from now.
func (s *Service) AddWord(ctx context.Context, userID int64, req AddWordRequest) (*tracking.Record, error) {
	meaning, err := s.meanings.FindMeaning(ctx, req.MeaningID)
	if errors.Is(err, dictionary.ErrWordNotFound) {
		return nil, fmt.Errorf("%w: meaning %d", tracking.ErrNotFound, req.MeaningID)
	}
	if err != nil {
		return nil, fmt.Errorf("meanings.FindMeaning(%d) > %w", req.MeaningID, err)
	}
	if meaning.WordID != req.WordID {
		return nil, fmt.Errorf("%w: meaning %d does not belong to word %d", tracking.ErrNotFound, req.MeaningID, req.WordID)
	}

	record := tracking.NewRecord(userID, req.WordID, req.MeaningID, s.now())
	record.PersonalNote = req.PersonalNote
	record.IsFavorite = req.IsFavorite
	if err := s.records.Create(ctx, &record); err != nil {
		return nil, fmt.Errorf("records.Create > %w", err)
	}

	// Re-read to return the joined word and meaning fields
	created, err := s.records.FindByID(ctx, userID, record.ID)
	if err != nil {
		return nil, fmt.Errorf("records.FindByID(%d) > %w", record.ID, err)
	}
	return created, nil
}
