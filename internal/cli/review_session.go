package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/at-ishikawa/lexis/internal/review"
)

var errEnd = errors.New("end")

//go:generate mockgen -source=review_session.go -destination=../mocks/cli/mock_review_session.go -package=mock_cli

// Reviewer serves review queues and records answers.
type Reviewer interface {
	GetQueue(ctx context.Context, userID int64, req review.QueueRequest) (*review.QueueResult, error)
	SubmitAnswer(ctx context.Context, userID int64, req review.AnswerRequest) (*review.AnswerResult, error)
}

// Session is one step of an interactive loop. It returns errEnd when there is nothing left to do.
type Session interface {
	Session(ctx context.Context) error
}

// ReviewSession drills the words of a review queue in queue order.
type ReviewSession struct {
	reviewer Reviewer
	userID   int64
	items    []review.Item
	stdin    *bufio.Reader
	stdout   io.Writer
	printer  *Printer
	now      func() time.Time

	correct   int
	incorrect int
}

// NewReviewSession fetches the user's queue and prepares a session over it.
func NewReviewSession(
	ctx context.Context,
	reviewer Reviewer,
	userID int64,
	req review.QueueRequest,
	stdin io.Reader,
	stdout io.Writer,
) (*ReviewSession, error) {
	result, err := reviewer.GetQueue(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("reviewer.GetQueue() > %w", err)
	}
	return &ReviewSession{
		reviewer: reviewer,
		userID:   userID,
		items:    result.Items,
		stdin:    bufio.NewReader(stdin),
		stdout:   stdout,
		printer:  NewPrinter(stdout),
		now:      time.Now,
	}, nil
}

// Remaining returns the number of words not yet answered.
func (s *ReviewSession) Remaining() int {
	return len(s.items)
}

// readLine returns the trimmed, lowercased next line. EOF reads as a request to quit.
func (s *ReviewSession) readLine() (string, error) {
	line, err := s.stdin.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
			return "q", nil
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("error reading input: %w", err)
		}
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

func (s *ReviewSession) finish() error {
	if _, err := fmt.Fprintf(s.stdout, "Session finished: %d correct, %d incorrect, %d left\n",
		s.correct, s.incorrect, len(s.items)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return errEnd
}

func (s *ReviewSession) Session(ctx context.Context) error {
	if len(s.items) == 0 {
		return s.finish()
	}
	item := s.items[0]
	record := item.Record

	header := fmt.Sprintf("\n[%d left] %s", len(s.items), s.printer.bold.Sprint(record.Word))
	if record.PartOfSpeech != "" {
		header += " (" + record.PartOfSpeech + ")"
	}
	if _, err := fmt.Fprintf(s.stdout, "%s\nPress Enter to show the definition, q to quit: ", header); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	shownAt := s.now()
	line, err := s.readLine()
	if err != nil {
		return err
	}
	if line == "q" {
		return s.finish()
	}
	responseTime := s.now().Sub(shownAt)

	if _, err := fmt.Fprintf(s.stdout, "  %s\n", s.printer.italic.Sprint(record.Definition)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}

	var isCorrect bool
	for {
		if _, err := fmt.Fprint(s.stdout, "Did you remember it? [y/n/q]: "); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		line, err = s.readLine()
		if err != nil {
			return err
		}
		if line == "q" {
			return s.finish()
		}
		if line == "y" || line == "n" {
			isCorrect = line == "y"
			break
		}
	}

	answer, err := s.reviewer.SubmitAnswer(ctx, s.userID, review.AnswerRequest{
		RecordID:       record.ID,
		IsCorrect:      isCorrect,
		ResponseTimeMs: responseTime.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("reviewer.SubmitAnswer(%d) > %w", record.ID, err)
	}
	if isCorrect {
		s.correct++
	} else {
		s.incorrect++
	}

	updated := answer.Record
	if updated.Word == "" {
		updated.Word = record.Word
		updated.Definition = record.Definition
	}
	if err := s.printer.PrintAnswer(updated, answer.Result); err != nil {
		return err
	}

	s.items = s.items[1:]
	return nil
}

// Run repeats session steps until the session ends, a step fails, or the process is interrupted.
func Run(ctx context.Context, session Session, stdout io.Writer) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(stdout, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("session.Session() > %w", err)
		}
	}
	return nil
}
