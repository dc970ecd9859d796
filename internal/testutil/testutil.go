// Package testutil provides shared test helpers for creating config files and tracking record fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lexis/internal/config"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

// TestJWTSecret is the signing secret written by SetupTestConfig.
const TestJWTSecret = "test-secret-for-lexis"

// SetupTestConfig creates a config file for a local SQLite database inside tmpDir
// along with the dictionary cache directory. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	cacheDir := filepath.Join(tmpDir, "dictionaries")
	require.NoError(t, os.MkdirAll(cacheDir, 0755))

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
review:
  default_limit: 20
  default_max_new_words: 10
dictionaries:
  rapidapi:
    cache_directory: %s
auth:
  jwt_secret: %s
log:
  level: debug
`,
		filepath.Join(tmpDir, "lexis.db"),
		cacheDir,
		TestJWTSecret,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// ReviewConfig returns the review policy defaults of the config loader.
func ReviewConfig() config.ReviewConfig {
	return config.ReviewConfig{
		DefaultLimit:          20,
		DefaultMaxNewWords:    10,
		MaxLimit:              100,
		HistorySource:         "events",
		ConflictRetryAttempts: 3,
	}
}

// RecordOption configures optional fields when creating a record fixture.
type RecordOption func(*tracking.Record)

func WithStatus(status tracking.Status) RecordOption {
	return func(r *tracking.Record) {
		r.Status = status
	}
}

func WithWord(word, definition string) RecordOption {
	return func(r *tracking.Record) {
		r.Word = word
		r.Definition = definition
	}
}

func WithNextReviewAt(next time.Time) RecordOption {
	return func(r *tracking.Record) {
		r.NextReviewAt = &next
	}
}

// WithReviews marks the record as answered total times, the last streak of them correctly, last at reviewedAt.
func WithReviews(total, streak int, reviewedAt time.Time) RecordOption {
	return func(r *tracking.Record) {
		r.TotalReviews = total
		r.CorrectCount = streak
		r.CurrentStreak = streak
		r.LastReviewedAt = &reviewedAt
	}
}

// NewRecord creates a record of user 1 added at addedAt, scheduled like a freshly added word.
// By default the record is new. Use the options to override.
func NewRecord(id int64, addedAt time.Time, opts ...RecordOption) tracking.Record {
	record := tracking.NewRecord(1, id, id*10, addedAt)
	record.ID = id
	record.Word = fmt.Sprintf("word%d", id)
	record.Definition = fmt.Sprintf("definition of word%d", id)
	for _, opt := range opts {
		opt(&record)
	}
	return record
}
