// Package tracking provides the per-user word tracking record, its review event log,
// and the repository that persists both.
package tracking

import (
	"fmt"
	"time"
)

// Status is the coarse mastery label of a tracked word.
type Status string

const (
	StatusNew       Status = "new"
	StatusLearning  Status = "learning"
	StatusFamiliar  Status = "familiar"
	StatusForgotten Status = "forgotten"
	StatusMastered  Status = "mastered"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{StatusNew, StatusLearning, StatusFamiliar, StatusForgotten, StatusMastered}

// ParseStatus validates s against the status enum.
func ParseStatus(s string) (Status, error) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, s)
}

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// Record is one user's tracking of one word meaning, the unit that gets reviewed.
// Word, Definition, TranslatedDefinition, PartOfSpeech and CEFRLevel are filled by joined reads only.
type Record struct {
	ID             int64      `db:"id" yaml:"id"`
	UserID         int64      `db:"user_id" yaml:"user_id"`
	WordID         int64      `db:"word_id" yaml:"word_id"`
	MeaningID      int64      `db:"meaning_id" yaml:"meaning_id"`
	Status         Status     `db:"status" yaml:"status"`
	AddedAt        time.Time  `db:"added_at" yaml:"added_at"`
	LastReviewedAt *time.Time `db:"last_reviewed_at" yaml:"last_reviewed_at,omitempty"`
	NextReviewAt   *time.Time `db:"next_review_at" yaml:"next_review_at,omitempty"`
	TotalReviews   int        `db:"total_reviews" yaml:"total_reviews"`
	CorrectCount   int        `db:"correct_count" yaml:"correct_count"`
	CurrentStreak  int        `db:"current_streak" yaml:"current_streak"`
	EaseFactor     float64    `db:"ease_factor" yaml:"ease_factor"`
	IntervalDays   int        `db:"interval_days" yaml:"interval_days"`
	PersonalNote   *string    `db:"personal_note" yaml:"personal_note,omitempty"`
	IsFavorite     bool       `db:"is_favorite" yaml:"is_favorite"`
	Version        int64      `db:"version" yaml:"-"`

	Word                 string  `db:"word" yaml:"word,omitempty"`
	Definition           string  `db:"definition" yaml:"definition,omitempty"`
	TranslatedDefinition *string `db:"translated_definition" yaml:"-"`
	PartOfSpeech         string  `db:"part_of_speech" yaml:"-"`
	CEFRLevel            string  `db:"cefr_level" yaml:"-"`
}

// NewRecord returns a record for a freshly added word, first scheduled one day after now.
func NewRecord(userID, wordID, meaningID int64, now time.Time) Record {
	next := now.Add(24 * time.Hour)
	return Record{
		UserID:       userID,
		WordID:       wordID,
		MeaningID:    meaningID,
		Status:       StatusNew,
		AddedAt:      now,
		NextReviewAt: &next,
		EaseFactor:   DefaultEaseFactor,
	}
}

// ReviewEvent is one answer submission, appended alongside every record update.
type ReviewEvent struct {
	ID             int64     `db:"id" yaml:"-"`
	RecordID       int64     `db:"record_id" yaml:"record_id"`
	UserID         int64     `db:"user_id" yaml:"-"`
	ReviewedAt     time.Time `db:"reviewed_at" yaml:"reviewed_at"`
	IsCorrect      bool      `db:"is_correct" yaml:"is_correct"`
	Status         Status    `db:"status" yaml:"status"`
	Streak         int       `db:"streak" yaml:"streak"`
	IntervalDays   int       `db:"interval_days" yaml:"interval_days"`
	EaseFactor     float64   `db:"ease_factor" yaml:"ease_factor"`
	ResponseTimeMs int64     `db:"response_time_ms" yaml:"response_time_ms,omitempty"`
	// Record counters right after this answer
	TotalReviews int `db:"total_reviews" yaml:"total_reviews"`
	CorrectCount int `db:"correct_count" yaml:"correct_count"`

	// Joined from the tracked word
	Word       string `db:"word" yaml:"-"`
	Definition string `db:"definition" yaml:"-"`
}
