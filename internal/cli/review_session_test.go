package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cli "github.com/at-ishikawa/lexis/internal/mocks/cli"
	"github.com/at-ishikawa/lexis/internal/review"
	"github.com/at-ishikawa/lexis/internal/srs"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func queueItem(id int64, word, definition string) review.Item {
	return review.Item{
		Record:   tracking.Record{ID: id, Word: word, Definition: definition, Status: tracking.StatusLearning, CurrentStreak: 1, IntervalDays: 1},
		Priority: review.PriorityMedium,
		Category: "learning",
	}
}

func answerFor(item review.Item, isCorrect bool) *review.AnswerResult {
	next := srs.Calculate(srs.StateOf(item.Record), isCorrect, testNow)
	record := item.Record
	record.Word = ""
	srs.Apply(&record, next, testNow)
	return &review.AnswerResult{Record: record, Result: next}
}

// steppingClock advances by step on every call.
func steppingClock(step time.Duration) func() time.Time {
	current := testNow
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func TestReviewSession(t *testing.T) {
	lucid := queueItem(1, "lucid", "expressed clearly")
	terse := queueItem(2, "terse", "brief and abrupt")

	tests := []struct {
		name       string
		items      []review.Item
		input      string
		setup      func(reviewer *mock_cli.MockReviewer)
		wantErr    string
		wantOutput []string
	}{
		{
			name:  "answers every word",
			items: []review.Item{lucid, terse},
			input: "\ny\n\nn\n",
			setup: func(reviewer *mock_cli.MockReviewer) {
				gomock.InOrder(
					reviewer.EXPECT().SubmitAnswer(gomock.Any(), int64(7), review.AnswerRequest{RecordID: 1, IsCorrect: true, ResponseTimeMs: 1500}).
						Return(answerFor(lucid, true), nil),
					reviewer.EXPECT().SubmitAnswer(gomock.Any(), int64(7), review.AnswerRequest{RecordID: 2, IsCorrect: false, ResponseTimeMs: 1500}).
						Return(answerFor(terse, false), nil),
				)
			},
			wantOutput: []string{
				"[2 left] lucid",
				"expressed clearly",
				"✅ Correct. lucid",
				"[1 left] terse",
				"❌ Wrong. terse",
				"learning -> forgotten",
				"Session finished: 1 correct, 1 incorrect, 0 left",
			},
		},
		{
			name:  "asks again on an unknown answer",
			items: []review.Item{lucid},
			input: "\nmaybe\nY\n",
			setup: func(reviewer *mock_cli.MockReviewer) {
				reviewer.EXPECT().SubmitAnswer(gomock.Any(), int64(7), review.AnswerRequest{RecordID: 1, IsCorrect: true, ResponseTimeMs: 1500}).
					Return(answerFor(lucid, true), nil)
			},
			wantOutput: []string{
				"Did you remember it? [y/n/q]: Did you remember it? [y/n/q]: ",
				"Session finished: 1 correct, 0 incorrect, 0 left",
			},
		},
		{
			name:       "quits before revealing",
			items:      []review.Item{lucid, terse},
			input:      "q\n",
			wantOutput: []string{"Session finished: 0 correct, 0 incorrect, 2 left"},
		},
		{
			name:       "end of input quits",
			items:      []review.Item{lucid},
			input:      "\n",
			wantOutput: []string{"Session finished: 0 correct, 0 incorrect, 1 left"},
		},
		{
			name:       "empty queue",
			wantOutput: []string{"Session finished: 0 correct, 0 incorrect, 0 left"},
		},
		{
			name:  "submit failure stops the session",
			items: []review.Item{lucid},
			input: "\nn\n",
			setup: func(reviewer *mock_cli.MockReviewer) {
				reviewer.EXPECT().SubmitAnswer(gomock.Any(), int64(7), gomock.Any()).
					Return(nil, tracking.ErrNotFound)
			},
			wantErr: "reviewer.SubmitAnswer(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color.NoColor = true
			defer func() { color.NoColor = false }()

			ctrl := gomock.NewController(t)
			reviewer := mock_cli.NewMockReviewer(ctrl)
			req := review.QueueRequest{}
			reviewer.EXPECT().GetQueue(gomock.Any(), int64(7), req).Return(&review.QueueResult{Items: tt.items}, nil)
			if tt.setup != nil {
				tt.setup(reviewer)
			}

			var out bytes.Buffer
			session, err := NewReviewSession(context.Background(), reviewer, 7, req, strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			session.now = steppingClock(1500 * time.Millisecond)

			err = Run(context.Background(), session, &out)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.ErrorIs(t, err, tracking.ErrNotFound)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestNewReviewSession_QueueError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mock_cli.NewMockReviewer(ctrl)
	reviewer.EXPECT().GetQueue(gomock.Any(), int64(7), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := NewReviewSession(context.Background(), reviewer, 7, review.QueueRequest{}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "reviewer.GetQueue() > connection refused")
}

func TestRun(t *testing.T) {
	t.Run("stops at the end of the session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		gomock.InOrder(
			session.EXPECT().Session(gomock.Any()).Return(nil).Times(2),
			session.EXPECT().Session(gomock.Any()).Return(errEnd),
		)

		assert.NoError(t, Run(context.Background(), session, &bytes.Buffer{}))
	})

	t.Run("returns step failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		session.EXPECT().Session(gomock.Any()).Return(errors.New("boom"))

		assert.ErrorContains(t, Run(context.Background(), session, &bytes.Buffer{}), "boom")
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		session.EXPECT().Session(gomock.Any()).DoAndReturn(func(context.Context) error {
			cancel()
			return nil
		})

		var out bytes.Buffer
		assert.NoError(t, Run(ctx, session, &out))
	})
}
