package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/lexis/internal/cli"
	"github.com/at-ishikawa/lexis/internal/history"
	"github.com/at-ishikawa/lexis/internal/report"
)

// PeriodFlag is a history window such as 7d.
type PeriodFlag history.Period

// Set implements pflag.Value.
func (p *PeriodFlag) Set(v string) error {
	period, err := history.ParsePeriod(v)
	if err != nil {
		periods := make([]string, len(history.Periods))
		for i, allowed := range history.Periods {
			periods[i] = string(allowed)
		}
		return fmt.Errorf("invalid value %q, valid values are %s", v, strings.Join(periods, ", "))
	}
	*p = PeriodFlag(period)
	return nil
}

// String implements pflag.Value.
func (p *PeriodFlag) String() string {
	if p == nil {
		return ""
	}
	return string(*p)
}

// Type implements pflag.Value.
func (p *PeriodFlag) Type() string {
	return "PeriodFlag"
}

var (
	_ pflag.Value = (*PeriodFlag)(nil)
)

func newHistoryCommand() *cobra.Command {
	historyCommand := &cobra.Command{
		Use:   "history",
		Short: "Show what was reviewed over a period",
	}

	var (
		period       = PeriodFlag(history.PeriodWeek)
		startDate    string
		endDate      string
		outputPath   string
		generatePDF  bool
		templatePath string
	)
	reportCommand := &cobra.Command{
		Use:   "report",
		Short: "Summarize reviews per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if generatePDF && outputPath == "" {
				return fmt.Errorf("--pdf requires --output")
			}

			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			result, err := svc.history.Report(ctx, userID, history.Request{
				Period:    string(period),
				StartDate: startDate,
				EndDate:   endDate,
			})
			if err != nil {
				return fmt.Errorf("history.Report() > %w", err)
			}
			if outputPath == "" {
				return cli.NewPrinter(cmd.OutOrStdout()).PrintHistory(result)
			}

			files, err := report.Export(result, outputPath, generatePDF, report.Options{
				TemplatePath: templatePath,
				GeneratedAt:  time.Now(),
			}, slog.Default())
			if err != nil {
				return fmt.Errorf("report.Export() > %w", err)
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Markdown written to %s\n", files.Markdown); err != nil {
				return err
			}
			if files.PDF != "" {
				if _, err := fmt.Fprintf(out, "PDF written to %s\n", files.PDF); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags := reportCommand.Flags()
	flags.Var(&period, "period", "window to report: 1d, 7d, 30d, 90d or all")
	flags.StringVar(&startDate, "start", "", "first day to report (YYYY-MM-DD), overrides --period")
	flags.StringVar(&endDate, "end", "", "last day to report (YYYY-MM-DD), defaults to today")
	flags.StringVarP(&outputPath, "output", "o", "", "write the report to a markdown file instead of the terminal")
	flags.BoolVar(&generatePDF, "pdf", false, "also convert the markdown report to PDF")
	flags.StringVar(&templatePath, "template", "", "markdown template for the report")

	historyCommand.AddCommand(reportCommand)
	return historyCommand
}
