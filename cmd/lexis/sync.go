package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lexis/internal/datasync"
)

func newSyncCommand() *cobra.Command {
	syncCommand := &cobra.Command{
		Use:   "sync",
		Short: "Move tracked words and their review events between databases",
	}

	var outputPath string
	exportCommand := &cobra.Command{
		Use:   "export",
		Short: "Export tracked words and review events to YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			file, err := datasync.NewExporter(svc.records).Export(ctx, userID, time.Now())
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if outputPath == "" {
				return datasync.Write(cmd.OutOrStdout(), file)
			}
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", outputPath, err)
			}
			if err := datasync.Write(f, file); err != nil {
				_ = f.Close()
				return fmt.Errorf("datasync.Write() > %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("f.Close() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words to %s\n", len(file.Records), outputPath)
			return err
		},
	}
	exportCommand.Flags().StringVarP(&outputPath, "output", "o", "", "file to write, stdout when empty")

	var (
		inputPath string
		dryRun    bool
	)
	importCommand := &cobra.Command{
		Use:   "import",
		Short: "Import tracked words and review events from YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("os.Open(%s) > %w", inputPath, err)
			}
			defer func() { _ = f.Close() }()
			file, err := datasync.Read(f)
			if err != nil {
				return fmt.Errorf("datasync.Read(%s) > %w", inputPath, err)
			}

			ctx := cmd.Context()
			svc, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(svc.records, svc.meanings, out)
			opts := datasync.ImportOptions{DryRun: dryRun}
			result, err := importer.Import(ctx, userID, file, opts)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			_, _ = fmt.Fprintln(out, "\nImport Summary:")
			if opts.DryRun {
				_, _ = fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			_, _ = fmt.Fprintf(out, "  Words:   %d new, %d skipped\n", result.RecordsNew, result.RecordsSkipped)
			_, _ = fmt.Fprintf(out, "  Events:  %d new\n", result.EventsNew)
			return nil
		},
	}
	importFlags := importCommand.Flags()
	importFlags.StringVarP(&inputPath, "input", "i", "", "exported YAML file")
	importFlags.BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	_ = importCommand.MarkFlagRequired("input")

	syncCommand.AddCommand(exportCommand, importCommand)
	return syncCommand
}
