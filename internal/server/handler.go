// Package server exposes the review, word and history services as Connect RPC
// procedures with JSON messages.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/lexis/internal/dictionary"
	"github.com/at-ishikawa/lexis/internal/history"
	"github.com/at-ishikawa/lexis/internal/review"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

//go:generate mockgen -source=handler.go -destination=../mocks/server/mock_handler.go -package=mock_server

type ReviewService interface {
	GetQueue(ctx context.Context, userID int64, req review.QueueRequest) (*review.QueueResult, error)
	SubmitAnswer(ctx context.Context, userID int64, req review.AnswerRequest) (*review.AnswerResult, error)
}

type WordService interface {
	ListWords(ctx context.Context, userID int64, req review.ListRequest) (*review.WordList, error)
	WordStats(ctx context.Context, userID int64) (*tracking.Summary, error)
	AddWord(ctx context.Context, userID int64, req review.AddWordRequest) (*tracking.Record, error)
}

type DictionaryService interface {
	Lookup(ctx context.Context, text string) (*dictionary.Word, error)
	TranslateMeanings(ctx context.Context, meaningIDs []int64) ([]dictionary.Translation, error)
}

type HistoryService interface {
	Report(ctx context.Context, userID int64, req history.Request) (*history.Report, error)
}

const (
	GetQueueProcedure          = "/lexis.v1.ReviewService/GetQueue"
	SubmitAnswerProcedure      = "/lexis.v1.ReviewService/SubmitAnswer"
	ListWordsProcedure         = "/lexis.v1.WordService/ListWords"
	WordStatsProcedure         = "/lexis.v1.WordService/WordStats"
	AddWordProcedure           = "/lexis.v1.WordService/AddWord"
	LookupWordProcedure        = "/lexis.v1.WordService/LookupWord"
	TranslateMeaningsProcedure = "/lexis.v1.WordService/TranslateMeanings"
	GetHistoryProcedure        = "/lexis.v1.HistoryService/GetHistory"
)

// Handler serves all procedures. Every call requires an authenticated user.
type Handler struct {
	reviews    ReviewService
	words      WordService
	dictionary DictionaryService
	history    HistoryService
	validator  *requestValidator
}

func NewHandler(reviews ReviewService, words WordService, dict DictionaryService, hist HistoryService) (*Handler, error) {
	validator, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator() > %w", err)
	}
	return &Handler{
		reviews:    reviews,
		words:      words,
		dictionary: dict,
		history:    hist,
		validator:  validator,
	}, nil
}

// Register mounts every procedure on mux. authInterceptor runs innermost so
// that rejected calls are still logged and mapped.
func (h *Handler) Register(mux *http.ServeMux, logger *slog.Logger, authInterceptor connect.Interceptor) {
	opts := []connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(
			NewLoggingInterceptor(logger),
			NewErrorInterceptor(logger),
			authInterceptor,
		),
	}

	mux.Handle(GetQueueProcedure, connect.NewUnaryHandler(GetQueueProcedure, h.GetQueue, opts...))
	mux.Handle(SubmitAnswerProcedure, connect.NewUnaryHandler(SubmitAnswerProcedure, h.SubmitAnswer, opts...))
	mux.Handle(ListWordsProcedure, connect.NewUnaryHandler(ListWordsProcedure, h.ListWords, opts...))
	mux.Handle(WordStatsProcedure, connect.NewUnaryHandler(WordStatsProcedure, h.WordStats, opts...))
	mux.Handle(AddWordProcedure, connect.NewUnaryHandler(AddWordProcedure, h.AddWord, opts...))
	mux.Handle(LookupWordProcedure, connect.NewUnaryHandler(LookupWordProcedure, h.LookupWord, opts...))
	mux.Handle(TranslateMeaningsProcedure, connect.NewUnaryHandler(TranslateMeaningsProcedure, h.TranslateMeanings, opts...))
	mux.Handle(GetHistoryProcedure, connect.NewUnaryHandler(GetHistoryProcedure, h.GetHistory, opts...))
}

// GetQueue returns the words to review now with session statistics.
func (h *Handler) GetQueue(
	ctx context.Context,
	req *connect.Request[GetQueueRequest],
) (*connect.Response[GetQueueResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}

	result, err := h.reviews.GetQueue(ctx, userID, review.QueueRequest{
		Limit:       req.Msg.Limit,
		IncludeNew:  req.Msg.IncludeNew,
		MaxNewWords: req.Msg.MaxNewWords,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toGetQueueResponse(result)), nil
}

// SubmitAnswer records an answer and returns the rescheduled word.
func (h *Handler) SubmitAnswer(
	ctx context.Context,
	req *connect.Request[SubmitAnswerRequest],
) (*connect.Response[SubmitAnswerResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}

	answer, err := h.reviews.SubmitAnswer(ctx, userID, review.AnswerRequest{
		RecordID:       req.Msg.RecordID,
		IsCorrect:      *req.Msg.IsCorrect,
		ResponseTimeMs: req.Msg.ResponseTimeMs,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toSubmitAnswerResponse(answer)), nil
}

func (h *Handler) ListWords(
	ctx context.Context,
	req *connect.Request[ListWordsRequest],
) (*connect.Response[ListWordsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}

	list, err := h.words.ListWords(ctx, userID, review.ListRequest{
		Page:   req.Msg.Page,
		Limit:  req.Msg.Limit,
		Status: req.Msg.Status,
		Sort:   req.Msg.Sort,
		Order:  req.Msg.Order,
		Search: req.Msg.Search,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toListWordsResponse(list)), nil
}

func (h *Handler) WordStats(
	ctx context.Context,
	_ *connect.Request[WordStatsRequest],
) (*connect.Response[WordStatsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := h.words.WordStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&WordStatsResponse{
		TotalWords:      summary.TotalWords,
		AvgCorrectCount: summary.AvgCorrectCount,
		AvgTotalReviews: summary.AvgTotalReviews,
		AvgStreak:       summary.AvgStreak,
		DueTodayCount:   summary.DueTodayCount,
		AddedTodayCount: summary.AddedTodayCount,
	}), nil
}

func (h *Handler) AddWord(
	ctx context.Context,
	req *connect.Request[AddWordRequest],
) (*connect.Response[AddWordResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}

	record, err := h.words.AddWord(ctx, userID, review.AddWordRequest{
		WordID:       req.Msg.WordID,
		MeaningID:    req.Msg.MeaningID,
		PersonalNote: req.Msg.PersonalNote,
		IsFavorite:   req.Msg.IsFavorite,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&AddWordResponse{Record: toWordRecord(*record)}), nil
}

func (h *Handler) LookupWord(
	ctx context.Context,
	req *connect.Request[LookupWordRequest],
) (*connect.Response[LookupWordResponse], error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}

	word, err := h.dictionary.Lookup(ctx, req.Msg.Text)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&LookupWordResponse{Word: word}), nil
}

func (h *Handler) TranslateMeanings(
	ctx context.Context,
	req *connect.Request[TranslateMeaningsRequest],
) (*connect.Response[TranslateMeaningsResponse], error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}

	translations, err := h.dictionary.TranslateMeanings(ctx, req.Msg.MeaningIDs)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&TranslateMeaningsResponse{Translations: translations}), nil
}

// GetHistory returns the day-by-day review report of the caller.
func (h *Handler) GetHistory(
	ctx context.Context,
	req *connect.Request[GetHistoryRequest],
) (*connect.Response[GetHistoryResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}

	report, err := h.history.Report(ctx, userID, history.Request{
		Period:    req.Msg.Period,
		StartDate: req.Msg.StartDate,
		EndDate:   req.Msg.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toGetHistoryResponse(report)), nil
}
