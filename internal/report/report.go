// Package report renders history reports as markdown documents and converts them to PDF.
package report

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/at-ishikawa/lexis/internal/history"
)

//go:embed templates/history-report.md.go.tmpl
var fallbackHistoryTemplate string

const fallbackHistoryTemplateName = "history-report.md.go.tmpl"

// Options customizes a rendered report. A TemplatePath that cannot be read
// or parsed falls back to the embedded template.
type Options struct {
	Title        string
	TemplatePath string
	GeneratedAt  time.Time
}

type historyTemplate struct {
	Title       string
	GeneratedAt time.Time
	Summary     history.Summary
	Days        []history.Day
}

var funcMap = template.FuncMap{
	"cell": tableCell,
}

// tableCell keeps a value inside a single markdown table cell.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func parseTemplate(templatePath string, logger *slog.Logger) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			logger.Warn("failed to parse a report template, using the embedded one",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackHistoryTemplateName).
		Funcs(funcMap).
		Parse(fallbackHistoryTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// WriteMarkdown renders the report as markdown.
func WriteMarkdown(output io.Writer, report *history.Report, opts Options, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := parseTemplate(opts.TemplatePath, logger)
	if err != nil {
		return fmt.Errorf("parseTemplate() > %w", err)
	}

	title := opts.Title
	if title == "" {
		title = "Review history"
	}
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	data := historyTemplate{
		Title:       title,
		GeneratedAt: generatedAt,
		Summary:     report.Summary,
		Days:        report.Days,
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// Files are the documents written by Export.
type Files struct {
	Markdown string
	PDF      string
}

// Export writes the report to markdownPath and, when withPDF is set, a PDF next to it.
func Export(report *history.Report, markdownPath string, withPDF bool, opts Options, logger *slog.Logger) (Files, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return Files{}, fmt.Errorf("output file must have .md extension: %s", markdownPath)
	}
	if err := os.MkdirAll(filepath.Dir(markdownPath), 0755); err != nil {
		return Files{}, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(markdownPath), err)
	}

	file, err := os.Create(markdownPath)
	if err != nil {
		return Files{}, fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	if err := WriteMarkdown(file, report, opts, logger); err != nil {
		_ = file.Close()
		return Files{}, fmt.Errorf("WriteMarkdown() > %w", err)
	}
	if err := file.Close(); err != nil {
		return Files{}, fmt.Errorf("file.Close() > %w", err)
	}

	files := Files{Markdown: markdownPath}
	if !withPDF {
		return files, nil
	}
	files.PDF, err = ConvertMarkdownToPDF(markdownPath)
	if err != nil {
		return files, fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", markdownPath, err)
	}
	return files, nil
}
