// Package datasync exports a user's tracked words with their review events to YAML
// and imports them back, possibly into another database.
package datasync

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/lexis/internal/dictionary"
	"github.com/at-ishikawa/lexis/internal/srs"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

const fileVersion = 1

// File is the YAML document written by Export and read by Import.
type File struct {
	Version    int       `yaml:"version"`
	ExportedAt time.Time `yaml:"exported_at"`
	Records    []Entry   `yaml:"records"`
}

// Entry is one tracked word with the meaning it tracks and its answer log.
// Word, meaning and record ids are not portable; the word text and definition identify the meaning.
type Entry struct {
	tracking.Record `yaml:",inline"`
	PartOfSpeech    string                 `yaml:"part_of_speech,omitempty"`
	CEFRLevel       string                 `yaml:"cefr_level,omitempty"`
	Events          []tracking.ReviewEvent `yaml:"events,omitempty"`
}

func meaningKey(word, definition string) string {
	return dictionary.Normalize(word) + "\x00" + definition
}

// Exporter reads a user's data from the database.
type Exporter struct {
	records tracking.Repository
}

// NewExporter creates a new Exporter.
func NewExporter(records tracking.Repository) *Exporter {
	return &Exporter{records: records}
}

// Export loads every record and review event of the user.
func (e *Exporter) Export(ctx context.Context, userID int64, now time.Time) (*File, error) {
	var (
		records []tracking.Record
		events  []tracking.ReviewEvent
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		records, err = e.records.FindByUser(egCtx, userID, tracking.Filter{})
		if err != nil {
			return fmt.Errorf("records.FindByUser(%d) > %w", userID, err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		events, err = e.records.FindEventsByUser(egCtx, userID)
		if err != nil {
			return fmt.Errorf("records.FindEventsByUser(%d) > %w", userID, err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	eventsByRecord := make(map[int64][]tracking.ReviewEvent)
	for _, event := range events {
		eventsByRecord[event.RecordID] = append(eventsByRecord[event.RecordID], event)
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		recordEvents := eventsByRecord[record.ID]
		slices.SortStableFunc(recordEvents, func(a, b tracking.ReviewEvent) int {
			return a.ReviewedAt.Compare(b.ReviewedAt)
		})
		entries = append(entries, Entry{
			Record:       record,
			PartOfSpeech: record.PartOfSpeech,
			CEFRLevel:    record.CEFRLevel,
			Events:       recordEvents,
		})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := a.AddedAt.Compare(b.AddedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return &File{
		Version:    fileVersion,
		ExportedAt: now.UTC(),
		Records:    entries,
	}, nil
}

// Write encodes file as YAML.
func Write(w io.Writer, file *File) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(file); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}

// Read decodes a YAML export.
func Read(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{Version: fileVersion}, nil
		}
		return nil, fmt.Errorf("decoder.Decode() > %w", err)
	}
	if file.Version > fileVersion {
		return nil, fmt.Errorf("unsupported export version %d, up to %d is supported", file.Version, fileVersion)
	}
	return &file, nil
}

// ImportResult tracks counts for an import.
type ImportResult struct {
	RecordsNew     int
	RecordsSkipped int
	EventsNew      int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// Importer writes exported data into the database.
type Importer struct {
	records  tracking.Repository
	meanings dictionary.Repository
	writer   io.Writer
}

// NewImporter creates a new Importer. Progress lines are written to writer.
func NewImporter(records tracking.Repository, meanings dictionary.Repository, writer io.Writer) *Importer {
	return &Importer{
		records:  records,
		meanings: meanings,
		writer:   writer,
	}
}

// Import adds the records and events of file to the user. Records whose word and
// definition the user already tracks are skipped along with their events.
func (imp *Importer) Import(ctx context.Context, userID int64, file *File, opts ImportOptions) (*ImportResult, error) {
	// The whole file is checked before anything is written
	for i := range file.Records {
		if err := prepare(&file.Records[i]); err != nil {
			return nil, err
		}
	}

	existing, err := imp.records.FindByUser(ctx, userID, tracking.Filter{})
	if err != nil {
		return nil, fmt.Errorf("records.FindByUser(%d) > %w", userID, err)
	}
	tracked := make(map[string]bool, len(existing))
	for _, record := range existing {
		tracked[meaningKey(record.Word, record.Definition)] = true
	}

	var result ImportResult
	for _, entry := range file.Records {
		key := meaningKey(entry.Word, entry.Definition)
		if tracked[key] {
			fmt.Fprintf(imp.writer, "  [SKIP]  %q (%s)\n", entry.Word, entry.Definition)
			result.RecordsSkipped++
			continue
		}
		tracked[key] = true

		if !opts.DryRun {
			created, err := imp.importEntry(ctx, userID, entry)
			if err != nil {
				return nil, err
			}
			if !created {
				fmt.Fprintf(imp.writer, "  [SKIP]  %q (%s)\n", entry.Word, entry.Definition)
				result.RecordsSkipped++
				continue
			}
		}
		fmt.Fprintf(imp.writer, "  [NEW]  %q (%s), %d events\n", entry.Word, entry.Definition, len(entry.Events))
		result.RecordsNew++
		result.EventsNew += len(entry.Events)
	}
	return &result, nil
}

// prepare fills defaults of an imported entry and rejects states that answers cannot produce.
func prepare(entry *Entry) error {
	if entry.Word == "" || entry.Definition == "" {
		return fmt.Errorf("%w: record %d has no word or definition", tracking.ErrInvalidArgument, entry.ID)
	}
	if entry.EaseFactor == 0 {
		entry.EaseFactor = tracking.DefaultEaseFactor
	}
	if err := srs.Validate(entry.Record); err != nil {
		return fmt.Errorf("record %q (%s): %w", entry.Word, entry.Definition, err)
	}
	return nil
}

func (imp *Importer) importEntry(ctx context.Context, userID int64, entry Entry) (bool, error) {
	meaning := dictionary.Meaning{
		Definition:   entry.Definition,
		PartOfSpeech: entry.PartOfSpeech,
		CEFRLevel:    entry.CEFRLevel,
	}
	if err := imp.meanings.EnsureMeaning(ctx, dictionary.Normalize(entry.Word), &meaning); err != nil {
		return false, fmt.Errorf("meanings.EnsureMeaning(%s) > %w", entry.Word, err)
	}

	record := entry.Record
	record.ID = 0
	record.UserID = userID
	record.WordID = meaning.WordID
	record.MeaningID = meaning.ID

	events := make([]tracking.ReviewEvent, len(entry.Events))
	for i, event := range entry.Events {
		event.ID = 0
		events[i] = event
	}
	if err := imp.records.CreateWithEvents(ctx, &record, events); err != nil {
		// Added by someone else since the existing records were read
		if errors.Is(err, tracking.ErrAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("records.CreateWithEvents(%s) > %w", entry.Word, err)
	}
	return true, nil
}
