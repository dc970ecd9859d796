// Package srs implements the spaced-repetition schedule: how a tracked word's
// ease factor, interval, streak and status move after each answer.
package srs

import (
	"math"
	"time"

	"github.com/at-ishikawa/lexis/internal/tracking"
)

const (
	// Streak thresholds for status promotion on a correct answer.
	familiarStreak = 4
	masteredStreak = 8

	easePenalty = 0.2
)

// State is the part of a tracking record the scheduler reads and writes.
type State struct {
	Status       tracking.Status `json:"status"`
	EaseFactor   float64         `json:"easeFactor"`
	IntervalDays int             `json:"intervalDays"`
	Streak       int             `json:"streak"`
}

// StateOf extracts the scheduling state of a record.
func StateOf(record tracking.Record) State {
	return State{
		Status:       record.Status,
		EaseFactor:   record.EaseFactor,
		IntervalDays: record.IntervalDays,
		Streak:       record.CurrentStreak,
	}
}

// Result is the outcome of one answer.
type Result struct {
	IsCorrect    bool
	Previous     State
	Next         State
	NextReviewAt time.Time
}

// Calculate computes the state following an answer given at now.
// It has no side effects.
func Calculate(current State, isCorrect bool, now time.Time) Result {
	ef := current.EaseFactor
	if ef == 0 {
		ef = tracking.DefaultEaseFactor
	}

	next := State{EaseFactor: ef}
	if isCorrect {
		next.Streak = current.Streak + 1
		switch next.Streak {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(current.IntervalDays) * ef))
		}
		next.Status = statusForStreak(next.Streak)
	} else {
		next.Streak = 0
		next.EaseFactor = roundEase(math.Max(tracking.MinEaseFactor, ef-easePenalty))
		next.IntervalDays = 1
		next.Status = tracking.StatusForgotten
	}

	return Result{
		IsCorrect:    isCorrect,
		Previous:     current,
		Next:         next,
		NextReviewAt: now.AddDate(0, 0, next.IntervalDays),
	}
}

func statusForStreak(streak int) tracking.Status {
	switch {
	case streak >= masteredStreak:
		return tracking.StatusMastered
	case streak >= familiarStreak:
		return tracking.StatusFamiliar
	default:
		return tracking.StatusLearning
	}
}

// ease factors are persisted with two decimals
func roundEase(ef float64) float64 {
	return math.Round(ef*100) / 100
}

// Apply writes result onto record along with the review counters.
func Apply(record *tracking.Record, result Result, now time.Time) {
	reviewedAt := now
	nextReviewAt := result.NextReviewAt

	record.TotalReviews++
	if result.IsCorrect {
		record.CorrectCount++
	}
	record.LastReviewedAt = &reviewedAt
	record.NextReviewAt = &nextReviewAt
	record.CurrentStreak = result.Next.Streak
	record.EaseFactor = result.Next.EaseFactor
	record.IntervalDays = result.Next.IntervalDays
	record.Status = result.Next.Status
}

// Review calculates the answer's outcome and applies it to record.
func Review(record *tracking.Record, isCorrect bool, now time.Time) Result {
	result := Calculate(StateOf(*record), isCorrect, now)
	Apply(record, result, now)
	return result
}

// Event builds the review log entry for an applied result.
func Event(record tracking.Record, result Result, now time.Time, responseTimeMs int64) tracking.ReviewEvent {
	return tracking.ReviewEvent{
		RecordID:       record.ID,
		UserID:         record.UserID,
		ReviewedAt:     now,
		IsCorrect:      result.IsCorrect,
		Status:         result.Next.Status,
		Streak:         result.Next.Streak,
		IntervalDays:   result.Next.IntervalDays,
		EaseFactor:     result.Next.EaseFactor,
		ResponseTimeMs: responseTimeMs,
		TotalReviews:   record.TotalReviews,
		CorrectCount:   record.CorrectCount,
	}
}
