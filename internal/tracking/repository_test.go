package tracking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lexis/internal/config"
	"github.com/at-ishikawa/lexis/internal/database"
)

var recordRowColumns = []string{
	"id", "user_id", "word_id", "meaning_id", "status", "added_at", "last_reviewed_at",
	"next_review_at", "total_reviews", "correct_count", "current_streak", "ease_factor", "interval_days",
	"personal_note", "is_favorite", "version",
	"word", "definition", "translated_definition", "part_of_speech", "cefr_level",
}

func newMockRepository(t *testing.T) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDBRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestDBRepository_FindByUser(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    Filter
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "no filter",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(recordRowColumns).
					AddRow(1, 7, 10, 100, "learning", now, now, now, 3, 2, 2, 2.5, 6, nil, false, 3, "apple", "a fruit", nil, "noun", "A1").
					AddRow(2, 7, 11, 101, "new", now, nil, nil, 0, 0, 0, 2.5, 0, "note", true, 0, "pear", "another fruit", "quả lê", "noun", "A2")
				mock.ExpectQuery(`FROM user_words t .* WHERE t.user_id = \? ORDER BY t.id`).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name:   "status filters are expanded",
			filter: Filter{Statuses: []Status{StatusLearning, StatusForgotten}, ExcludeStatuses: []Status{StatusMastered}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE t.user_id = \? AND t.status IN \(\?, \?\) AND t.status NOT IN \(\?\) ORDER BY t.id`).
					WithArgs(int64(7), "learning", "forgotten", "mastered").
					WillReturnRows(sqlmock.NewRows(recordRowColumns))
			},
			wantLen: 0,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM user_words").WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindByUser(context.Background(), 7, tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen == 2 {
				assert.Equal(t, StatusLearning, got[0].Status)
				assert.Equal(t, "apple", got[0].Word)
				require.NotNil(t, got[0].NextReviewAt)
				assert.Nil(t, got[0].PersonalNote)
				assert.Equal(t, int64(3), got[0].Version)

				assert.Nil(t, got[1].NextReviewAt)
				require.NotNil(t, got[1].PersonalNote)
				assert.Equal(t, "note", *got[1].PersonalNote)
				assert.True(t, got[1].IsFavorite)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_FindByID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE t.id = \? AND t.user_id = \?`).
					WithArgs(int64(1), int64(7)).
					WillReturnRows(sqlmock.NewRows(recordRowColumns).
						AddRow(1, 7, 10, 100, "familiar", now, now, now, 5, 5, 5, 2.5, 15, nil, false, 5, "apple", "a fruit", nil, "noun", ""))
			},
		},
		{
			name: "other user's record is not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE t.id = \? AND t.user_id = \?`).
					WithArgs(int64(1), int64(7)).
					WillReturnRows(sqlmock.NewRows(recordRowColumns))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindByID(context.Background(), 7, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusFamiliar, got.Status)
			assert.Equal(t, 15, got.IntervalDays)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_Create(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantErr   error
	}{
		{
			name: "inserts new record",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO user_words").
					WithArgs(int64(7), int64(10), int64(100), "new", now, nil, sqlmock.AnyArg(), 0, 0, 0, 2.5, 0, nil, false).
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
			wantID: 5,
		},
		{
			name: "duplicate word meaning",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO user_words").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
			},
			wantErr: ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			record := NewRecord(7, 10, 100, now)
			err := repo.Create(context.Background(), &record)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, record.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_CreateWithEvents(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   string
		wantIs    error
	}{
		{
			name: "record and events commit together",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO user_words").WillReturnResult(sqlmock.NewResult(5, 1))
				mock.ExpectExec("INSERT INTO review_events").
					WithArgs(int64(5), int64(7), now, true, "learning", 1, 1, 1, 1, 2.5, int64(0)).
					WillReturnResult(sqlmock.NewResult(40, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "event failure rolls back the record",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO user_words").WillReturnResult(sqlmock.NewResult(5, 1))
				mock.ExpectExec("INSERT INTO review_events").WillReturnError(fmt.Errorf("disk full"))
				mock.ExpectRollback()
			},
			wantErr: "database.InsertReturningID(review_event) > ExecContext(insert) > disk full",
		},
		{
			name: "duplicate record rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO user_words").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
				mock.ExpectRollback()
			},
			wantIs: ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			record := NewRecord(7, 10, 100, now)
			events := []ReviewEvent{{
				ReviewedAt: now, IsCorrect: true, Status: StatusLearning, Streak: 1,
				TotalReviews: 1, CorrectCount: 1, IntervalDays: 1, EaseFactor: 2.5,
			}}
			err := repo.CreateWithEvents(context.Background(), &record, events)
			assert.NoError(t, mock.ExpectationsWereMet())
			switch {
			case tt.wantIs != nil:
				assert.ErrorIs(t, err, tt.wantIs)
			case tt.wantErr != "":
				assert.EqualError(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(5), record.ID)
				assert.Equal(t, int64(5), events[0].RecordID)
				assert.Equal(t, int64(40), events[0].ID)
			}
		})
	}
}

func TestDBRepository_ApplyReview(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 6)

	tests := []struct {
		name        string
		setupMock   func(mock sqlmock.Sqlmock)
		wantErr     error
		wantVersion int64
	}{
		{
			name: "updates record and appends event",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE user_words SET .* version = version \+ 1\s+WHERE id = \? AND user_id = \? AND version = \?`).
					WithArgs("learning", now, next, 2, 2, 2, 2.5, 6, int64(1), int64(7), int64(4)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO review_events").
					WithArgs(int64(1), int64(7), now, true, "learning", 2, 2, 2, 6, 2.5, int64(850)).
					WillReturnResult(sqlmock.NewResult(30, 1))
				mock.ExpectCommit()
			},
			wantVersion: 5,
		},
		{
			name: "stale version is a conflict",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE user_words SET").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr:     ErrConflict,
			wantVersion: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			record := &Record{
				ID: 1, UserID: 7, Status: StatusLearning, LastReviewedAt: &now, NextReviewAt: &next,
				TotalReviews: 2, CorrectCount: 2, CurrentStreak: 2, EaseFactor: 2.5, IntervalDays: 6, Version: 4,
			}
			event := &ReviewEvent{
				ReviewedAt: now, IsCorrect: true, Status: StatusLearning, Streak: 2,
				TotalReviews: 2, CorrectCount: 2, IntervalDays: 6, EaseFactor: 2.5, ResponseTimeMs: 850,
			}
			err := repo.ApplyReview(context.Background(), record, event)
			assert.Equal(t, tt.wantVersion, record.Version)
			assert.NoError(t, mock.ExpectationsWereMet())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(30), event.ID)
			assert.Equal(t, int64(1), event.RecordID)
		})
	}
}

func TestDBRepository_List(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		opts      ListOptions
		setupMock func(mock sqlmock.Sqlmock)
		wantTotal int
		wantLen   int
		wantErr   bool
	}{
		{
			name: "second page filtered by status and search",
			opts: ListOptions{Page: 2, Limit: 10, Status: StatusLearning, Sort: SortByNextReviewAt, Order: SortAsc, Search: "App"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user_words t .* WHERE t.user_id = \? AND t.status = \? AND LOWER\(w.word\) LIKE \?`).
					WithArgs(int64(7), "learning", "%app%").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
				mock.ExpectQuery(`ORDER BY t.next_review_at ASC, t.id ASC LIMIT \? OFFSET \?`).
					WithArgs(int64(7), "learning", "%app%", 10, 10).
					WillReturnRows(sqlmock.NewRows(recordRowColumns).
						AddRow(11, 7, 10, 100, "learning", now, now, now, 1, 1, 1, 2.5, 1, nil, false, 1, "apple", "a fruit", nil, "noun", ""))
			},
			wantTotal: 11,
			wantLen:   1,
		},
		{
			name: "default ordering",
			opts: ListOptions{Page: 1, Limit: 20, Sort: SortByAddedAt, Order: SortDesc},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\)`).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(`ORDER BY t.added_at DESC, t.id DESC LIMIT \? OFFSET \?`).
					WithArgs(int64(7), 20, 0).
					WillReturnRows(sqlmock.NewRows(recordRowColumns))
			},
		},
		{
			name:      "zero page is rejected",
			opts:      ListOptions{Page: 0, Limit: 20},
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, total, err := repo.List(context.Background(), 7, tt.opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, got, tt.wantLen)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_CountByStatus(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM user_words WHERE user_id = \? GROUP BY status`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("learning", 4).
			AddRow("mastered", 1))

	got, err := repo.CountByStatus(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, map[Status]int{
		StatusNew: 0, StatusLearning: 4, StatusFamiliar: 0, StatusForgotten: 0, StatusMastered: 1,
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Summary(t *testing.T) {
	dayStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	repo, mock := newMockRepository(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total_words`).
		WithArgs(dayEnd, dayStart, dayEnd, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_words", "avg_correct_count", "avg_total_reviews", "avg_streak", "due_today_count", "added_today_count",
		}).AddRow(4, "2.5000", "3.0000", "1.2500", "2", "1"))

	got, err := repo.Summary(context.Background(), 7, dayStart, dayEnd)
	require.NoError(t, err)
	assert.Equal(t, &Summary{
		TotalWords:      4,
		AvgCorrectCount: 2.5,
		AvgTotalReviews: 3,
		AvgStreak:       1.25,
		DueTodayCount:   2,
		AddedTodayCount: 1,
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_FindEventsBetween(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	repo, mock := newMockRepository(t)
	mock.ExpectQuery(`FROM review_events e .* WHERE e.user_id = \? AND e.reviewed_at >= \? AND e.reviewed_at <= \?`).
		WithArgs(int64(7), start, end).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "record_id", "user_id", "reviewed_at", "is_correct", "status", "streak",
			"interval_days", "ease_factor", "response_time_ms", "correct_count", "total_reviews", "word", "definition",
		}).AddRow(3, 1, 7, start.Add(time.Hour), true, "learning", 1, 1, 2.5, 1200, 1, 1, "apple", "a fruit"))

	got, err := repo.FindEventsBetween(context.Background(), 7, start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsCorrect)
	assert.Equal(t, "apple", got[0].Word)
	assert.Equal(t, 1, got[0].TotalReviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.EnsureSchema(ctx, db))

	_, err = db.Exec("INSERT INTO words (id, word) VALUES (1, 'apple')")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO word_meanings (id, word_id, definition, part_of_speech) VALUES (10, 1, 'a fruit', 'noun')")
	require.NoError(t, err)

	repo := NewDBRepository(db)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	record := NewRecord(7, 1, 10, now)
	require.NoError(t, repo.Create(ctx, &record))
	require.NotZero(t, record.ID)

	duplicate := NewRecord(7, 1, 10, now)
	assert.ErrorIs(t, repo.Create(ctx, &duplicate), ErrAlreadyExists)

	stored, err := repo.FindByID(ctx, 7, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "apple", stored.Word)
	assert.Equal(t, "a fruit", stored.Definition)

	_, err = repo.FindByID(ctx, 8, record.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	reviewedAt := now.Add(25 * time.Hour)
	next := reviewedAt.Add(24 * time.Hour)
	stale := *stored

	stored.Status = StatusLearning
	stored.LastReviewedAt = &reviewedAt
	stored.NextReviewAt = &next
	stored.TotalReviews, stored.CorrectCount, stored.CurrentStreak, stored.IntervalDays = 1, 1, 1, 1
	require.NoError(t, repo.ApplyReview(ctx, stored, &ReviewEvent{
		ReviewedAt: reviewedAt, IsCorrect: true, Status: StatusLearning, Streak: 1, IntervalDays: 1, EaseFactor: 2.5,
	}))
	assert.Equal(t, int64(1), stored.Version)

	assert.ErrorIs(t, repo.ApplyReview(ctx, &stale, &ReviewEvent{ReviewedAt: reviewedAt, Status: StatusForgotten}), ErrConflict)

	events, err := repo.FindEventsByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, record.ID, events[0].RecordID)

	reviewed, err := repo.FindReviewedBetween(ctx, 7, now, now.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, reviewed, 1)
	assert.Equal(t, 1, reviewed[0].CurrentStreak)
}

func TestDBRepository_SQLite_NonUTCTimes(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.EnsureSchema(ctx, db))

	_, err = db.Exec("INSERT INTO words (id, word) VALUES (1, 'apple')")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO word_meanings (id, word_id, definition) VALUES (10, 1, 'a fruit')")
	require.NoError(t, err)

	jst := time.FixedZone("JST", 9*60*60)
	repo := NewDBRepository(db)
	record := NewRecord(7, 1, 10, time.Date(2025, 2, 20, 9, 0, 0, 0, jst))
	require.NoError(t, repo.Create(ctx, &record))

	// 2025-03-02 08:00 JST is 2025-03-01 23:00 UTC
	reviewedAt := time.Date(2025, 3, 2, 8, 0, 0, 0, jst)
	next := reviewedAt.AddDate(0, 0, 1)
	record.Status = StatusLearning
	record.LastReviewedAt = &reviewedAt
	record.NextReviewAt = &next
	record.TotalReviews, record.CorrectCount, record.CurrentStreak, record.IntervalDays = 1, 1, 1, 1
	require.NoError(t, repo.ApplyReview(ctx, &record, &ReviewEvent{
		ReviewedAt: reviewedAt, IsCorrect: true, Status: StatusLearning, Streak: 1, IntervalDays: 1, EaseFactor: 2.5,
	}))

	utcDay := func(day int) (time.Time, time.Time) {
		start := time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
		return start, start.Add(24*time.Hour - time.Millisecond)
	}

	tests := []struct {
		name        string
		day         int
		wantRecords int
		wantEvents  int
	}{
		{name: "UTC day of the review", day: 1, wantRecords: 1, wantEvents: 1},
		{name: "JST day of the review", day: 2, wantRecords: 0, wantEvents: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := utcDay(tt.day)
			records, err := repo.FindReviewedBetween(ctx, 7, start, end)
			require.NoError(t, err)
			assert.Len(t, records, tt.wantRecords)

			events, err := repo.FindEventsBetween(ctx, 7, start, end)
			require.NoError(t, err)
			assert.Len(t, events, tt.wantEvents)
			if tt.wantEvents > 0 {
				assert.True(t, events[0].ReviewedAt.Equal(reviewedAt))
			}
		})
	}

	start, end := utcDay(1)
	summary, err := repo.Summary(ctx, 7, start, end)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.DueTodayCount)
	assert.Equal(t, 0, summary.AddedTodayCount)

	// next review is 2025-03-03 08:00 JST, still 2025-03-02 in UTC
	start, end = utcDay(2)
	summary, err = repo.Summary(ctx, 7, start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.DueTodayCount)
}

func TestDBRepository_SQLite_EventsKeepCountersOfTheirReview(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.EnsureSchema(ctx, db))

	_, err = db.Exec("INSERT INTO words (id, word) VALUES (1, 'apple')")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO word_meanings (id, word_id, definition) VALUES (10, 1, 'a fruit')")
	require.NoError(t, err)

	repo := NewDBRepository(db)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	record := NewRecord(7, 1, 10, now)
	require.NoError(t, repo.CreateWithEvents(ctx, &record, []ReviewEvent{{
		ReviewedAt: now, IsCorrect: true, Status: StatusLearning, Streak: 1,
		TotalReviews: 1, CorrectCount: 1, IntervalDays: 1, EaseFactor: 2.5,
	}}))

	reviewedAt := now.Add(24 * time.Hour)
	next := reviewedAt.Add(24 * time.Hour)
	record.Status = StatusForgotten
	record.LastReviewedAt = &reviewedAt
	record.NextReviewAt = &next
	record.TotalReviews, record.CorrectCount, record.CurrentStreak, record.IntervalDays = 2, 1, 0, 1
	require.NoError(t, repo.ApplyReview(ctx, &record, &ReviewEvent{
		ReviewedAt: reviewedAt, Status: StatusForgotten, TotalReviews: 2, CorrectCount: 1,
		IntervalDays: 1, EaseFactor: 2.3,
	}))

	events, err := repo.FindEventsByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, [2]int{1, 1}, [2]int{events[0].TotalReviews, events[0].CorrectCount})
	assert.Equal(t, [2]int{2, 1}, [2]int{events[1].TotalReviews, events[1].CorrectCount})
}
