package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lexis/internal/auth"
)

func newTokenCommand() *cobra.Command {
	tokenCommand := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens for lexis-server",
	}

	var ttl time.Duration
	issueCommand := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token for --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			tokens, err := auth.NewTokenManager(cfg.Auth)
			if err != nil {
				return fmt.Errorf("auth.NewTokenManager() > %w", err)
			}
			token, err := tokens.Issue(userID, ttl)
			if err != nil {
				return fmt.Errorf("tokens.Issue(%d) > %w", userID, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	issueCommand.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "how long the token stays valid")

	tokenCommand.AddCommand(issueCommand)
	return tokenCommand
}
