package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lexis/internal/cli"
)

func newDictionaryCommand() *cobra.Command {
	dictionaryCommand := &cobra.Command{
		Use:   "dictionary",
		Short: "Look up words and translate their definitions",
	}

	lookupCommand := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Show the meanings of a word, fetching it from RapidAPI when it is not stored yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			word, err := svc.dictionary.Lookup(ctx, args[0])
			if err != nil {
				return fmt.Errorf("dictionary.Lookup(%s) > %w", args[0], err)
			}
			return cli.NewPrinter(cmd.OutOrStdout()).PrintWord(word)
		},
	}

	translateCommand := &cobra.Command{
		Use:   "translate <meaning id>...",
		Short: "Translate and store the definitions of meanings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meaningIDs := make([]int64, len(args))
			for i, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid meaning id %q: %w", arg, err)
				}
				meaningIDs[i] = id
			}

			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			translations, err := svc.dictionary.TranslateMeanings(ctx, meaningIDs)
			if err != nil {
				return fmt.Errorf("dictionary.TranslateMeanings() > %w", err)
			}
			return cli.NewPrinter(cmd.OutOrStdout()).PrintTranslations(translations)
		},
	}

	dictionaryCommand.AddCommand(lookupCommand, translateCommand)
	return dictionaryCommand
}
