// Package cli renders review queues, answers, histories and dictionary entries for the terminal.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/lexis/internal/dictionary"
	"github.com/at-ishikawa/lexis/internal/history"
	"github.com/at-ishikawa/lexis/internal/review"
	"github.com/at-ishikawa/lexis/internal/srs"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

// Printer writes colored, human-readable output.
type Printer struct {
	out    io.Writer
	bold   *color.Color
	italic *color.Color
	faint  *color.Color
	green  *color.Color
	yellow *color.Color
	red    *color.Color
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		bold:   color.New(color.Bold),
		italic: color.New(color.Italic),
		faint:  color.New(color.Faint),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
	}
}

func (p *Printer) flush(b *strings.Builder) error {
	if _, err := io.WriteString(p.out, b.String()); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (p *Printer) priority(priority review.Priority) string {
	label := fmt.Sprintf("%-6s", priority)
	switch priority {
	case review.PriorityHigh:
		return p.red.Sprint(label)
	case review.PriorityMedium:
		return p.yellow.Sprint(label)
	}
	return p.green.Sprint(label)
}

func (p *Printer) urgency(urgency review.Urgency) string {
	switch urgency {
	case review.UrgencyHigh:
		return p.red.Sprint(urgency)
	case review.UrgencyMedium:
		return p.yellow.Sprint(urgency)
	}
	return p.green.Sprint(urgency)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// PrintQueue lists a review queue with its session statistics.
func (p *Printer) PrintQueue(result *review.QueueResult) error {
	var b strings.Builder
	stats := result.Stats
	fmt.Fprintf(&b, "%s: %s (%d due, %d overdue, %d new available)\n",
		p.bold.Sprint("Review queue"), plural(stats.TotalReturned, "word"),
		stats.TotalDue, stats.Overdue, stats.TotalNew)

	for i, item := range result.Items {
		fmt.Fprintf(&b, "%3d. [%s] %s", i+1, p.priority(item.Priority), p.bold.Sprint(item.Record.Word))
		detail := item.Category
		if item.IsOverdue {
			detail += ", " + plural(item.DaysOverdue, "day") + " overdue"
		}
		fmt.Fprintf(&b, " %s\n", p.faint.Sprintf("(%s)", detail))
	}

	rec := stats.Recommendations
	fmt.Fprintf(&b, "Suggested session: %s, urgency %s", plural(rec.SuggestedSessionSize, "word"), p.urgency(rec.UrgencyLevel))
	if rec.ShouldIncludeNew {
		b.WriteString(", room for new words")
	}
	b.WriteString("\n")
	return p.flush(&b)
}

// PrintAnswer shows how an answer changed a record's schedule.
func (p *Printer) PrintAnswer(record tracking.Record, result srs.Result) error {
	var b strings.Builder
	if result.IsCorrect {
		b.WriteString("✅ ")
		b.WriteString(p.green.Sprintf("Correct. %s", p.bold.Sprint(record.Word)))
	} else {
		b.WriteString("❌ ")
		b.WriteString(p.red.Sprintf("Wrong. %s", p.bold.Sprint(record.Word)))
	}
	if record.Definition != "" {
		fmt.Fprintf(&b, ` means "%s"`, p.italic.Sprint(record.Definition))
	}
	b.WriteString("\n")

	status := string(result.Next.Status)
	if result.Previous.Status != result.Next.Status {
		status = fmt.Sprintf("%s -> %s", result.Previous.Status, result.Next.Status)
	}
	fmt.Fprintf(&b, "   %s, streak %d, next review in %s (%s)\n",
		status, result.Next.Streak, plural(result.Next.IntervalDays, "day"),
		result.NextReviewAt.Format("2006-01-02"))
	return p.flush(&b)
}

// PrintHistory shows a history summary followed by one block per active day, newest first.
func (p *Printer) PrintHistory(report *history.Report) error {
	var b strings.Builder
	s := report.Summary
	fmt.Fprintf(&b, "%s %s\n", p.bold.Sprint("History"), s.Period)
	fmt.Fprintf(&b, "  Reviews:  %d (%s correct, %s incorrect)\n",
		s.TotalReviews, p.green.Sprint(s.TotalCorrect), p.red.Sprint(s.TotalIncorrect))
	fmt.Fprintf(&b, "  Accuracy: %d%%\n", s.OverallAccuracy)
	fmt.Fprintf(&b, "  Active:   %s, %.1f words per day\n", plural(s.TotalDays, "day"), s.AverageWordsPerDay)
	if s.BestDay != "" {
		fmt.Fprintf(&b, "  Best day: %s\n", s.BestDay)
	}
	fmt.Fprintf(&b, "  Streak:   %d current, %d longest\n", s.Streak.Current, s.Streak.Longest)

	for _, day := range report.Days {
		fmt.Fprintf(&b, "\n%s  %s, %d%% accuracy\n", p.bold.Sprint(day.Date), plural(day.TotalReviews, "review"), day.Accuracy)
		for _, w := range day.Words {
			var mark string
			switch w.Outcome {
			case history.OutcomeCorrect:
				mark = p.green.Sprint("o")
			case history.OutcomeIncorrect:
				mark = p.red.Sprint("x")
			default:
				mark = p.faint.Sprint("?")
			}
			fmt.Fprintf(&b, "  %s %s %s\n", mark, w.Word, p.faint.Sprintf("(%s)", w.Status))
		}
	}
	return p.flush(&b)
}

// PrintWord shows a dictionary entry with its meanings.
func (p *Printer) PrintWord(word *dictionary.Word) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", p.bold.Sprint(word.Word), p.faint.Sprintf("#%d", word.ID))
	for _, m := range word.Meanings {
		fmt.Fprintf(&b, "  [%d] ", m.ID)
		if m.PartOfSpeech != "" {
			fmt.Fprintf(&b, "(%s) ", m.PartOfSpeech)
		}
		b.WriteString(m.Definition)
		if m.CEFRLevel != "" {
			fmt.Fprintf(&b, " %s", p.faint.Sprint(m.CEFRLevel))
		}
		b.WriteString("\n")
		if m.TranslatedDefinition != nil {
			fmt.Fprintf(&b, "      %s\n", *m.TranslatedDefinition)
		}
		for _, example := range m.Examples {
			fmt.Fprintf(&b, "      %s\n", p.italic.Sprint(example))
		}
	}
	return p.flush(&b)
}

// PrintTranslations lists translated definitions, marking the ones that fell back to the original.
func (p *Printer) PrintTranslations(translations []dictionary.Translation) error {
	var b strings.Builder
	for _, t := range translations {
		if t.Stored {
			fmt.Fprintf(&b, "  [%d] %s\n", t.MeaningID, t.Translated)
			continue
		}
		fmt.Fprintf(&b, "  [%d] %s %s\n", t.MeaningID, t.Original, p.yellow.Sprint("(not translated)"))
	}
	return p.flush(&b)
}

// PrintWordList shows one page of tracked words.
func (p *Printer) PrintWordList(list *review.WordList) error {
	var b strings.Builder
	for _, r := range list.Records {
		next := "-"
		if r.NextReviewAt != nil {
			next = r.NextReviewAt.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%6d  %-20s %-10s streak %-3d next %s\n", r.ID, r.Word, r.Status, r.CurrentStreak, next)
	}
	pg := list.Pagination
	fmt.Fprintf(&b, "%s\n", p.faint.Sprintf("page %d/%d, %s", pg.Page, max(pg.TotalPages, 1), plural(pg.Total, "word")))

	var counts []string
	for _, status := range tracking.AllStatuses {
		if n := list.StatusCounts[status]; n > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", status, n))
		}
	}
	if len(counts) > 0 {
		fmt.Fprintf(&b, "%s\n", strings.Join(counts, ", "))
	}
	return p.flush(&b)
}

// PrintWordStats shows aggregate statistics over all tracked words.
func (p *Printer) PrintWordStats(summary *tracking.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.bold.Sprint("Tracked words"))
	fmt.Fprintf(&b, "  Total:          %d\n", summary.TotalWords)
	fmt.Fprintf(&b, "  Due today:      %d\n", summary.DueTodayCount)
	fmt.Fprintf(&b, "  Added today:    %d\n", summary.AddedTodayCount)
	fmt.Fprintf(&b, "  Avg reviews:    %.1f\n", summary.AvgTotalReviews)
	fmt.Fprintf(&b, "  Avg correct:    %.1f\n", summary.AvgCorrectCount)
	fmt.Fprintf(&b, "  Avg streak:     %.1f\n", summary.AvgStreak)
	return p.flush(&b)
}
