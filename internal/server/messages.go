package server

import (
	"time"

	"github.com/at-ishikawa/lexis/internal/dictionary"
	"github.com/at-ishikawa/lexis/internal/history"
	"github.com/at-ishikawa/lexis/internal/review"
	"github.com/at-ishikawa/lexis/internal/srs"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

type WordRecord struct {
	ID                   int64      `json:"id"`
	WordID               int64      `json:"wordId"`
	MeaningID            int64      `json:"meaningId"`
	Word                 string     `json:"word"`
	Definition           string     `json:"definition"`
	TranslatedDefinition *string    `json:"translatedDefinition,omitempty"`
	PartOfSpeech         string     `json:"partOfSpeech,omitempty"`
	CEFRLevel            string     `json:"cefrLevel,omitempty"`
	Status               string     `json:"status"`
	AddedAt              time.Time  `json:"addedAt"`
	LastReviewedAt       *time.Time `json:"lastReviewedAt"`
	NextReviewAt         *time.Time `json:"nextReviewAt"`
	TotalReviews         int        `json:"totalReviews"`
	CorrectCount         int        `json:"correctCount"`
	CurrentStreak        int        `json:"currentStreak"`
	EaseFactor           float64    `json:"easeFactor"`
	IntervalDays         int        `json:"intervalDays"`
	PersonalNote         *string    `json:"personalNote,omitempty"`
	IsFavorite           bool       `json:"isFavorite"`
}

func toWordRecord(r tracking.Record) WordRecord {
	return WordRecord{
		ID:                   r.ID,
		WordID:               r.WordID,
		MeaningID:            r.MeaningID,
		Word:                 r.Word,
		Definition:           r.Definition,
		TranslatedDefinition: r.TranslatedDefinition,
		PartOfSpeech:         r.PartOfSpeech,
		CEFRLevel:            r.CEFRLevel,
		Status:               string(r.Status),
		AddedAt:              r.AddedAt,
		LastReviewedAt:       r.LastReviewedAt,
		NextReviewAt:         r.NextReviewAt,
		TotalReviews:         r.TotalReviews,
		CorrectCount:         r.CorrectCount,
		CurrentStreak:        r.CurrentStreak,
		EaseFactor:           r.EaseFactor,
		IntervalDays:         r.IntervalDays,
		PersonalNote:         r.PersonalNote,
		IsFavorite:           r.IsFavorite,
	}
}

func toWordRecords(records []tracking.Record) []WordRecord {
	out := make([]WordRecord, len(records))
	for i, r := range records {
		out[i] = toWordRecord(r)
	}
	return out
}

// Review queue

type GetQueueRequest struct {
	Limit       *int  `json:"limit,omitempty" validate:"omitempty,min=0"`
	IncludeNew  *bool `json:"includeNew,omitempty"`
	MaxNewWords *int  `json:"maxNewWords,omitempty" validate:"omitempty,min=0"`
}

type QueueItem struct {
	WordRecord
	Priority    string `json:"priority"`
	IsOverdue   bool   `json:"isOverdue"`
	DaysOverdue int    `json:"daysOverdue"`
	Category    string `json:"category"`
}

type Recommendations struct {
	SuggestedSessionSize int    `json:"suggestedSessionSize"`
	ShouldIncludeNew     bool   `json:"shouldIncludeNew"`
	UrgencyLevel         string `json:"urgencyLevel"`
}

type QueueStats struct {
	TotalReturned   int             `json:"totalReturned"`
	TotalDue        int             `json:"totalDue"`
	TotalNew        int             `json:"totalNew"`
	Overdue         int             `json:"overdue"`
	Forgotten       int             `json:"forgotten"`
	Learning        int             `json:"learning"`
	Familiar        int             `json:"familiar"`
	NullNextReview  int             `json:"nullNextReview"`
	HighPriority    int             `json:"highPriority"`
	MediumPriority  int             `json:"mediumPriority"`
	LowPriority     int             `json:"lowPriority"`
	Recommendations Recommendations `json:"recommendations"`
}

type QueueFilters struct {
	Limit                   int  `json:"limit"`
	IncludeNew              bool `json:"includeNew"`
	MaxNewWords             int  `json:"maxNewWords"`
	MasteredReviewAfterDays int  `json:"masteredReviewAfterDays"`
}

type GetQueueResponse struct {
	Queue   []QueueItem  `json:"queue"`
	Stats   QueueStats   `json:"stats"`
	Filters QueueFilters `json:"filters"`
}

func toGetQueueResponse(result *review.QueueResult) *GetQueueResponse {
	items := make([]QueueItem, len(result.Items))
	for i, item := range result.Items {
		items[i] = QueueItem{
			WordRecord:  toWordRecord(item.Record),
			Priority:    string(item.Priority),
			IsOverdue:   item.IsOverdue,
			DaysOverdue: item.DaysOverdue,
			Category:    item.Category,
		}
	}
	s := result.Stats
	return &GetQueueResponse{
		Queue: items,
		Stats: QueueStats{
			TotalReturned:  s.TotalReturned,
			TotalDue:       s.TotalDue,
			TotalNew:       s.TotalNew,
			Overdue:        s.Overdue,
			Forgotten:      s.Forgotten,
			Learning:       s.Learning,
			Familiar:       s.Familiar,
			NullNextReview: s.NullNextReview,
			HighPriority:   s.HighPriority,
			MediumPriority: s.MediumPriority,
			LowPriority:    s.LowPriority,
			Recommendations: Recommendations{
				SuggestedSessionSize: s.Recommendations.SuggestedSessionSize,
				ShouldIncludeNew:     s.Recommendations.ShouldIncludeNew,
				UrgencyLevel:         string(s.Recommendations.UrgencyLevel),
			},
		},
		Filters: QueueFilters{
			Limit:                   result.Options.Limit,
			IncludeNew:              result.Options.IncludeNew,
			MaxNewWords:             result.Options.MaxNewWords,
			MasteredReviewAfterDays: result.Options.Mastery.ReviewAfterDays,
		},
	}
}

// Answers

type SubmitAnswerRequest struct {
	RecordID       int64 `json:"recordId" validate:"required,gt=0"`
	IsCorrect      *bool `json:"isCorrect" validate:"required"`
	ResponseTimeMs int64 `json:"responseTimeMs,omitempty" validate:"min=0"`
}

type ScheduleState struct {
	Status       string  `json:"status"`
	IntervalDays int     `json:"intervalDays"`
	EaseFactor   float64 `json:"easeFactor"`
	Streak       int     `json:"streak"`
}

type AnswerResult struct {
	IsCorrect    bool          `json:"isCorrect"`
	NewStatus    string        `json:"newStatus"`
	NextReviewIn int           `json:"nextReviewIn"`
	NextReviewAt time.Time     `json:"nextReviewAt"`
	StreakCount  int           `json:"streakCount"`
	EaseFactor   float64       `json:"easeFactor"`
	Previous     ScheduleState `json:"previous"`
}

type SubmitAnswerResponse struct {
	Record WordRecord   `json:"record"`
	Result AnswerResult `json:"result"`
}

func toScheduleState(s srs.State) ScheduleState {
	return ScheduleState{
		Status:       string(s.Status),
		IntervalDays: s.IntervalDays,
		EaseFactor:   s.EaseFactor,
		Streak:       s.Streak,
	}
}

func toSubmitAnswerResponse(answer *review.AnswerResult) *SubmitAnswerResponse {
	r := answer.Result
	return &SubmitAnswerResponse{
		Record: toWordRecord(answer.Record),
		Result: AnswerResult{
			IsCorrect:    r.IsCorrect,
			NewStatus:    string(r.Next.Status),
			NextReviewIn: r.Next.IntervalDays,
			NextReviewAt: r.NextReviewAt,
			StreakCount:  r.Next.Streak,
			EaseFactor:   r.Next.EaseFactor,
			Previous:     toScheduleState(r.Previous),
		},
	}
}

// Word list

type ListWordsRequest struct {
	Page   int    `json:"page,omitempty" validate:"min=0"`
	Limit  int    `json:"limit,omitempty" validate:"min=0"`
	Status string `json:"status,omitempty"`
	Sort   string `json:"sort,omitempty"`
	Order  string `json:"order,omitempty"`
	Search string `json:"search,omitempty" validate:"max=100"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type ListWordsResponse struct {
	Words        []WordRecord   `json:"words"`
	Pagination   Pagination     `json:"pagination"`
	StatusCounts map[string]int `json:"statusCounts"`
}

func toListWordsResponse(list *review.WordList) *ListWordsResponse {
	p := list.Pagination
	return &ListWordsResponse{
		Words: toWordRecords(list.Records),
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
			HasNext:    p.HasNext,
			HasPrev:    p.HasPrev,
		},
		StatusCounts: statusCounts(list.StatusCounts),
	}
}

type WordStatsRequest struct{}

type WordStatsResponse struct {
	TotalWords      int     `json:"totalWords"`
	AvgCorrectCount float64 `json:"avgCorrectCount"`
	AvgTotalReviews float64 `json:"avgTotalReviews"`
	AvgStreak       float64 `json:"avgStreak"`
	DueTodayCount   int     `json:"dueTodayCount"`
	AddedTodayCount int     `json:"addedTodayCount"`
}

type AddWordRequest struct {
	WordID       int64   `json:"wordId" validate:"required,gt=0"`
	MeaningID    int64   `json:"meaningId" validate:"required,gt=0"`
	PersonalNote *string `json:"personalNote,omitempty" validate:"omitempty,max=1000"`
	IsFavorite   bool    `json:"isFavorite,omitempty"`
}

type AddWordResponse struct {
	Record WordRecord `json:"record"`
}

// Dictionary

type LookupWordRequest struct {
	Text string `json:"text" validate:"required,max=100"`
}

type LookupWordResponse struct {
	Word *dictionary.Word `json:"word"`
}

type TranslateMeaningsRequest struct {
	MeaningIDs []int64 `json:"meaningIds" validate:"required,min=1,max=50,dive,gt=0"`
}

type TranslateMeaningsResponse struct {
	Translations []dictionary.Translation `json:"translations"`
}

// History

type GetHistoryRequest struct {
	Period    string `json:"period,omitempty" validate:"omitempty,oneof=1d 7d 30d 90d all"`
	StartDate string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type HistoryWord struct {
	ID             int64     `json:"id"`
	Word           string    `json:"word"`
	Definition     string    `json:"definition"`
	Status         string    `json:"status"`
	CurrentStreak  int       `json:"currentStreak"`
	CorrectCount   int       `json:"correctCount"`
	TotalReviews   int       `json:"totalReviews"`
	LastReviewedAt time.Time `json:"lastReviewedAt"`
}

type HistoryDay struct {
	Date             string         `json:"date"`
	TotalReviews     int            `json:"totalReviews"`
	CorrectAnswers   int            `json:"correctAnswers"`
	IncorrectAnswers int            `json:"incorrectAnswers"`
	Accuracy         int            `json:"accuracy"`
	WordsByStatus    map[string]int `json:"wordsByStatus"`
	Words            []HistoryWord  `json:"words"`
}

type StreakInfo struct {
	CurrentStreak   int `json:"currentStreak"`
	LongestStreak   int `json:"longestStreak"`
	TotalActiveDays int `json:"totalActiveDays"`
}

type HistorySummary struct {
	Period             string         `json:"period"`
	TotalDays          int            `json:"totalDays"`
	TotalReviews       int            `json:"totalReviews"`
	TotalCorrect       int            `json:"totalCorrect"`
	TotalIncorrect     int            `json:"totalIncorrect"`
	OverallAccuracy    int            `json:"overallAccuracy"`
	WordsByStatus      map[string]int `json:"wordsByStatus"`
	AverageWordsPerDay float64        `json:"averageWordsPerDay"`
	BestDay            *string        `json:"bestDay"`
	StreakInfo         StreakInfo     `json:"streakInfo"`
}

type GetHistoryResponse struct {
	Summary    HistorySummary `json:"summary"`
	DailyStats []HistoryDay   `json:"dailyStats"`
}

func statusCounts(in map[tracking.Status]int) map[string]int {
	out := make(map[string]int, len(in))
	for status, n := range in {
		out[string(status)] = n
	}
	return out
}

func toGetHistoryResponse(report *history.Report) *GetHistoryResponse {
	days := make([]HistoryDay, len(report.Days))
	for i, day := range report.Days {
		words := make([]HistoryWord, len(day.Words))
		for j, w := range day.Words {
			words[j] = HistoryWord{
				ID:             w.RecordID,
				Word:           w.Word,
				Definition:     w.Definition,
				Status:         string(w.Status),
				CurrentStreak:  w.Streak,
				CorrectCount:   w.CorrectCount,
				TotalReviews:   w.TotalReviews,
				LastReviewedAt: w.ReviewedAt,
			}
		}
		days[i] = HistoryDay{
			Date:             day.Date,
			TotalReviews:     day.TotalReviews,
			CorrectAnswers:   day.Correct,
			IncorrectAnswers: day.Incorrect,
			Accuracy:         day.Accuracy,
			WordsByStatus:    statusCounts(day.WordsByStatus),
			Words:            words,
		}
	}

	s := report.Summary
	var bestDay *string
	if s.BestDay != "" {
		bestDay = &s.BestDay
	}
	return &GetHistoryResponse{
		Summary: HistorySummary{
			Period:             s.Period,
			TotalDays:          s.TotalDays,
			TotalReviews:       s.TotalReviews,
			TotalCorrect:       s.TotalCorrect,
			TotalIncorrect:     s.TotalIncorrect,
			OverallAccuracy:    s.OverallAccuracy,
			WordsByStatus:      statusCounts(s.WordsByStatus),
			AverageWordsPerDay: s.AverageWordsPerDay,
			BestDay:            bestDay,
			StreakInfo: StreakInfo{
				CurrentStreak:   s.Streak.Current,
				LongestStreak:   s.Streak.Longest,
				TotalActiveDays: s.Streak.TotalActiveDays,
			},
		},
		DailyStats: days,
	}
}
