package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lexis/internal/cli"
	"github.com/at-ishikawa/lexis/internal/review"
)

type queueFlags struct {
	limit       int
	noNew       bool
	maxNewWords int
}

// request leaves every option the user did not pass unset, so that the configured defaults apply.
func (f *queueFlags) request(cmd *cobra.Command) review.QueueRequest {
	var req review.QueueRequest
	flags := cmd.Flags()
	if flags.Changed("limit") {
		req.Limit = &f.limit
	}
	if flags.Changed("no-new") {
		includeNew := !f.noNew
		req.IncludeNew = &includeNew
	}
	if flags.Changed("max-new") {
		req.MaxNewWords = &f.maxNewWords
	}
	return req
}

func newReviewCommand() *cobra.Command {
	reviewCommand := &cobra.Command{
		Use:   "review",
		Short: "Review due words",
	}
	var qf queueFlags
	flags := reviewCommand.PersistentFlags()
	flags.IntVar(&qf.limit, "limit", 0, "maximum number of words in the queue")
	flags.BoolVar(&qf.noNew, "no-new", false, "exclude words that were never reviewed")
	flags.IntVar(&qf.maxNewWords, "max-new", 0, "maximum number of new words in the queue")

	queueCommand := &cobra.Command{
		Use:   "queue",
		Short: "Show the words due for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			result, err := svc.reviews.GetQueue(ctx, userID, qf.request(cmd))
			if err != nil {
				return fmt.Errorf("reviews.GetQueue() > %w", err)
			}
			return cli.NewPrinter(cmd.OutOrStdout()).PrintQueue(result)
		},
	}

	sessionCommand := &cobra.Command{
		Use:   "session",
		Short: "Review the queue interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			session, err := cli.NewReviewSession(ctx, svc.reviews, userID, qf.request(cmd), cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("cli.NewReviewSession() > %w", err)
			}
			if session.Remaining() == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review")
				return err
			}
			return cli.Run(ctx, session, cmd.OutOrStdout())
		},
	}

	var correct, wrong bool
	answerCommand := &cobra.Command{
		Use:   "answer <record id>",
		Short: "Record the answer for one word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}
			if !correct && !wrong {
				return errors.New("either --correct or --wrong is required")
			}

			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			result, err := svc.reviews.SubmitAnswer(ctx, userID, review.AnswerRequest{
				RecordID:  recordID,
				IsCorrect: correct,
			})
			if err != nil {
				return fmt.Errorf("reviews.SubmitAnswer(%d) > %w", recordID, err)
			}
			return cli.NewPrinter(cmd.OutOrStdout()).PrintAnswer(result.Record, result.Result)
		},
	}
	answerFlags := answerCommand.Flags()
	answerFlags.BoolVar(&correct, "correct", false, "the word was remembered")
	answerFlags.BoolVar(&wrong, "wrong", false, "the word was forgotten")
	answerCommand.MarkFlagsMutuallyExclusive("correct", "wrong")

	reviewCommand.AddCommand(queueCommand, sessionCommand, answerCommand)
	return reviewCommand
}
