package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/lexis/internal/cli"
	"github.com/at-ishikawa/lexis/internal/review"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

type SortFlag string

// Set implements pflag.Value.
func (s *SortFlag) Set(v string) error {
	switch v {
	case string(SortDescending):
		*s = SortDescending
	case string(SortAscending):
		*s = SortAscending
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, SortDescending, SortAscending)
	}
	return nil
}

// String implements pflag.Value.
func (s *SortFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *SortFlag) Type() string {
	return "SortFlag"
}

var (
	_ pflag.Value = (*SortFlag)(nil)
)

const (
	SortDescending SortFlag = SortFlag(tracking.SortDesc)
	SortAscending  SortFlag = SortFlag(tracking.SortAsc)
)

func newWordsCommand() *cobra.Command {
	wordsCommand := &cobra.Command{
		Use:   "words",
		Short: "Manage tracked words",
	}

	var (
		note     string
		favorite bool
	)
	addCommand := &cobra.Command{
		Use:   "add <meaning id>",
		Short: "Start tracking a meaning shown by `dictionary lookup`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meaningID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid meaning id %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			meaning, err := svc.meanings.FindMeaning(ctx, meaningID)
			if err != nil {
				return fmt.Errorf("meanings.FindMeaning(%d) > %w", meaningID, err)
			}
			req := review.AddWordRequest{
				WordID:     meaning.WordID,
				MeaningID:  meaning.ID,
				IsFavorite: favorite,
			}
			if cmd.Flags().Changed("note") {
				req.PersonalNote = &note
			}
			record, err := svc.reviews.AddWord(ctx, userID, req)
			if err != nil {
				return fmt.Errorf("reviews.AddWord() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %q as record %d, first review on %s\n",
				record.Word, record.ID, record.NextReviewAt.Format("2006-01-02"))
			return err
		},
	}
	addCommand.Flags().StringVar(&note, "note", "", "personal note for the word")
	addCommand.Flags().BoolVar(&favorite, "favorite", false, "mark the word as a favorite")

	var (
		listReq   review.ListRequest
		sortOrder = SortDescending
	)
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "List tracked words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			listReq.Order = string(sortOrder)
			list, err := svc.reviews.ListWords(ctx, userID, listReq)
			if err != nil {
				return fmt.Errorf("reviews.ListWords() > %w", err)
			}
			return cli.NewPrinter(cmd.OutOrStdout()).PrintWordList(list)
		},
	}
	listFlags := listCommand.Flags()
	listFlags.IntVar(&listReq.Page, "page", 1, "page number")
	listFlags.IntVar(&listReq.Limit, "limit", 0, "words per page")
	listFlags.StringVar(&listReq.Status, "status", "", "only list words with this status")
	listFlags.StringVar(&listReq.Sort, "sort-by", "", "addedAt, lastReviewedAt, nextReviewAt, totalReviews, correctCount or currentStreak")
	listFlags.Var(&sortOrder, "sort", "Sort order for the output. Options: asc, desc")
	listFlags.StringVar(&listReq.Search, "search", "", "only list words containing this text")

	statsCommand := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics over all tracked words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			summary, err := svc.reviews.WordStats(ctx, userID)
			if err != nil {
				return fmt.Errorf("reviews.WordStats() > %w", err)
			}
			return cli.NewPrinter(cmd.OutOrStdout()).PrintWordStats(summary)
		},
	}

	wordsCommand.AddCommand(addCommand, listCommand, statsCommand)
	return wordsCommand
}
