package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lexis/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/tracking/mock_repository.go -package=mock_tracking

// Filter narrows FindByUser. Empty slices mean no restriction.
type Filter struct {
	Statuses        []Status
	ExcludeStatuses []Status
}

// ListOptions drives the paginated word list.
type ListOptions struct {
	Page   int
	Limit  int
	Status Status
	Sort   SortKey
	Order  SortOrder
	Search string
}

// Summary holds aggregate counters over all of a user's records.
type Summary struct {
	TotalWords      int     `db:"total_words"`
	AvgCorrectCount float64 `db:"avg_correct_count"`
	AvgTotalReviews float64 `db:"avg_total_reviews"`
	AvgStreak       float64 `db:"avg_streak"`
	DueTodayCount   int     `db:"due_today_count"`
	AddedTodayCount int     `db:"added_today_count"`
}

// Repository defines persistence for tracking records and review events.
type Repository interface {
	FindByUser(ctx context.Context, userID int64, filter Filter) ([]Record, error)
	FindByID(ctx context.Context, userID, id int64) (*Record, error)
	Create(ctx context.Context, record *Record) error
	ApplyReview(ctx context.Context, record *Record, event *ReviewEvent) error
	List(ctx context.Context, userID int64, opts ListOptions) ([]Record, int, error)
	CountByStatus(ctx context.Context, userID int64) (map[Status]int, error)
	Summary(ctx context.Context, userID int64, dayStart, dayEnd time.Time) (*Summary, error)
	FindReviewedBetween(ctx context.Context, userID int64, start, end time.Time) ([]Record, error)
	FindEventsBetween(ctx context.Context, userID int64, start, end time.Time) ([]ReviewEvent, error)
	FindEventsByUser(ctx context.Context, userID int64) ([]ReviewEvent, error)
	CreateWithEvents(ctx context.Context, record *Record, events []ReviewEvent) error
}

// DBRepository implements Repository on the user_words and review_events tables.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

const recordColumns = `t.id, t.user_id, t.word_id, t.meaning_id, t.status, t.added_at, t.last_reviewed_at,
	t.next_review_at, t.total_reviews, t.correct_count, t.current_streak, t.ease_factor, t.interval_days,
	t.personal_note, t.is_favorite, t.version,
	w.word, m.definition, m.translated_definition, m.part_of_speech, m.cefr_level`

const recordFrom = ` FROM user_words t
	JOIN words w ON w.id = t.word_id
	JOIN word_meanings m ON m.id = t.meaning_id`

const eventColumns = `e.id, e.record_id, e.user_id, e.reviewed_at, e.is_correct, e.status, e.streak,
	e.interval_days, e.ease_factor, e.response_time_ms, e.correct_count, e.total_reviews,
	w.word, m.definition`

const eventFrom = ` FROM review_events e
	JOIN user_words t ON t.id = e.record_id
	JOIN words w ON w.id = t.word_id
	JOIN word_meanings m ON m.id = t.meaning_id`

// utc puts every stored and bound timestamp in one zone. SQLite compares DATETIME values as text.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// FindByUser returns every record of the user matching filter, ordered by id.
func (r *DBRepository) FindByUser(ctx context.Context, userID int64, filter Filter) ([]Record, error) {
	where := []string{"t.user_id = ?"}
	args := []any{userID}
	if len(filter.Statuses) > 0 {
		where = append(where, "t.status IN (?)")
		args = append(args, filter.Statuses)
	}
	if len(filter.ExcludeStatuses) > 0 {
		where = append(where, "t.status NOT IN (?)")
		args = append(args, filter.ExcludeStatuses)
	}

	query, args, err := sqlx.In("SELECT "+recordColumns+recordFrom+" WHERE "+strings.Join(where, " AND ")+" ORDER BY t.id", args...)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In() > %w", err)
	}
	var records []Record
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(user_words by user) > %w", err)
	}
	return records, nil
}

// FindByID returns the record owned by userID, or ErrNotFound.
func (r *DBRepository) FindByID(ctx context.Context, userID, id int64) (*Record, error) {
	var record Record
	err := r.db.GetContext(ctx, &record,
		r.db.Rebind("SELECT "+recordColumns+recordFrom+" WHERE t.id = ? AND t.user_id = ?"),
		id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(user_word) > %w", err)
	}
	return &record, nil
}

// Create inserts a new record. A second record for the same word meaning fails with ErrAlreadyExists.
func (r *DBRepository) Create(ctx context.Context, record *Record) error {
	return insertRecord(ctx, r.db, record)
}

// CreateWithEvents inserts record together with its review log in one transaction.
// Nothing is written when any insert fails.
func (r *DBRepository) CreateWithEvents(ctx context.Context, record *Record, events []ReviewEvent) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := insertRecord(ctx, tx, record); err != nil {
			return err
		}
		for i := range events {
			events[i].RecordID = record.ID
			events[i].UserID = record.UserID
			if err := insertEvent(ctx, tx, &events[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertRecord(ctx context.Context, q sqlx.ExtContext, record *Record) error {
	id, err := database.InsertReturningID(ctx, q,
		`INSERT INTO user_words (user_id, word_id, meaning_id, status, added_at, last_reviewed_at, next_review_at,
		total_reviews, correct_count, current_streak, ease_factor, interval_days, personal_note, is_favorite, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		record.UserID, record.WordID, record.MeaningID, record.Status, utc(record.AddedAt), utcPtr(record.LastReviewedAt),
		utcPtr(record.NextReviewAt), record.TotalReviews, record.CorrectCount, record.CurrentStreak, record.EaseFactor,
		record.IntervalDays, record.PersonalNote, record.IsFavorite)
	if database.IsDuplicateKey(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("database.InsertReturningID(user_word) > %w", err)
	}
	record.ID = id
	record.Version = 0
	return nil
}

// ApplyReview persists the scheduling fields of record and appends event in one transaction.
// The update only succeeds if the stored version still equals record.Version; otherwise ErrConflict.
func (r *DBRepository) ApplyReview(ctx context.Context, record *Record, event *ReviewEvent) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, tx.Rebind(
			`UPDATE user_words SET status = ?, last_reviewed_at = ?, next_review_at = ?, total_reviews = ?,
			correct_count = ?, current_streak = ?, ease_factor = ?, interval_days = ?, version = version + 1
			WHERE id = ? AND user_id = ? AND version = ?`),
			record.Status, utcPtr(record.LastReviewedAt), utcPtr(record.NextReviewAt), record.TotalReviews,
			record.CorrectCount, record.CurrentStreak, record.EaseFactor, record.IntervalDays,
			record.ID, record.UserID, record.Version)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(update user_word) > %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected() > %w", err)
		}
		if affected == 0 {
			return ErrConflict
		}

		event.RecordID = record.ID
		event.UserID = record.UserID
		if err := insertEvent(ctx, tx, event); err != nil {
			return err
		}
		record.Version++
		return nil
	})
}

func insertEvent(ctx context.Context, q sqlx.ExtContext, event *ReviewEvent) error {
	id, err := database.InsertReturningID(ctx, q,
		`INSERT INTO review_events (record_id, user_id, reviewed_at, is_correct, status, streak, total_reviews,
		correct_count, interval_days, ease_factor, response_time_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.RecordID, event.UserID, utc(event.ReviewedAt), event.IsCorrect, event.Status, event.Streak,
		event.TotalReviews, event.CorrectCount, event.IntervalDays, event.EaseFactor, event.ResponseTimeMs)
	if err != nil {
		return fmt.Errorf("database.InsertReturningID(review_event) > %w", err)
	}
	event.ID = id
	return nil
}

// List returns one page of the user's records and the total number of matches.
func (r *DBRepository) List(ctx context.Context, userID int64, opts ListOptions) ([]Record, int, error) {
	if opts.Page < 1 || opts.Limit < 1 {
		return nil, 0, fmt.Errorf("%w: page and limit must be positive", ErrInvalidArgument)
	}

	where := []string{"t.user_id = ?"}
	args := []any{userID}
	if opts.Status != "" {
		where = append(where, "t.status = ?")
		args = append(args, opts.Status)
	}
	if opts.Search != "" {
		where = append(where, "LOWER(w.word) LIKE ?")
		args = append(args, "%"+strings.ToLower(opts.Search)+"%")
	}
	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind("SELECT COUNT(*)"+recordFrom+whereClause), args...); err != nil {
		return nil, 0, fmt.Errorf("db.GetContext(count user_words) > %w", err)
	}

	query := "SELECT " + recordColumns + recordFrom + whereClause +
		fmt.Sprintf(" ORDER BY %s %s, t.id %s LIMIT ? OFFSET ?", opts.Sort.column(), opts.Order.sql(), opts.Order.sql())
	pageArgs := append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	var records []Record
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("db.SelectContext(list user_words) > %w", err)
	}
	return records, total, nil
}

// CountByStatus returns the number of records per status. Statuses with no records are zero.
func (r *DBRepository) CountByStatus(ctx context.Context, userID int64) (map[Status]int, error) {
	var rows []struct {
		Status Status `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind("SELECT status, COUNT(*) AS count FROM user_words WHERE user_id = ? GROUP BY status"),
		userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(count by status) > %w", err)
	}
	counts := make(map[Status]int, len(AllStatuses))
	for _, status := range AllStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Summary aggregates counters over the user's records. dayStart and dayEnd bound "today".
func (r *DBRepository) Summary(ctx context.Context, userID int64, dayStart, dayEnd time.Time) (*Summary, error) {
	var summary Summary
	if err := r.db.GetContext(ctx, &summary, r.db.Rebind(
		`SELECT COUNT(*) AS total_words,
		COALESCE(AVG(correct_count), 0) AS avg_correct_count,
		COALESCE(AVG(total_reviews), 0) AS avg_total_reviews,
		COALESCE(AVG(current_streak), 0) AS avg_streak,
		COALESCE(SUM(CASE WHEN next_review_at <= ? AND status IN ('new', 'learning', 'familiar') THEN 1 ELSE 0 END), 0) AS due_today_count,
		COALESCE(SUM(CASE WHEN added_at >= ? AND added_at <= ? THEN 1 ELSE 0 END), 0) AS added_today_count
		FROM user_words WHERE user_id = ?`),
		utc(dayEnd), utc(dayStart), utc(dayEnd), userID); err != nil {
		return nil, fmt.Errorf("db.GetContext(user_words summary) > %w", err)
	}
	return &summary, nil
}

// FindReviewedBetween returns records whose last review falls within [start, end], newest first.
func (r *DBRepository) FindReviewedBetween(ctx context.Context, userID int64, start, end time.Time) ([]Record, error) {
	var records []Record
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(
		"SELECT "+recordColumns+recordFrom+
			" WHERE t.user_id = ? AND t.last_reviewed_at >= ? AND t.last_reviewed_at <= ? ORDER BY t.last_reviewed_at DESC"),
		userID, utc(start), utc(end)); err != nil {
		return nil, fmt.Errorf("db.SelectContext(user_words reviewed between) > %w", err)
	}
	return records, nil
}

// FindEventsBetween returns review events within [start, end], newest first.
func (r *DBRepository) FindEventsBetween(ctx context.Context, userID int64, start, end time.Time) ([]ReviewEvent, error) {
	var events []ReviewEvent
	if err := r.db.SelectContext(ctx, &events, r.db.Rebind(
		"SELECT "+eventColumns+eventFrom+
			" WHERE e.user_id = ? AND e.reviewed_at >= ? AND e.reviewed_at <= ? ORDER BY e.reviewed_at DESC, e.id DESC"),
		userID, utc(start), utc(end)); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_events between) > %w", err)
	}
	return events, nil
}

// FindEventsByUser returns all review events of the user in insertion order.
func (r *DBRepository) FindEventsByUser(ctx context.Context, userID int64) ([]ReviewEvent, error) {
	var events []ReviewEvent
	if err := r.db.SelectContext(ctx, &events,
		r.db.Rebind("SELECT "+eventColumns+eventFrom+" WHERE e.user_id = ? ORDER BY e.id"),
		userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_events by user) > %w", err)
	}
	return events, nil
}
