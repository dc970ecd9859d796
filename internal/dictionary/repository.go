package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lexis/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/dictionary/mock_repository.go -package=mock_dictionary

// Repository defines operations for stored words and meanings.
type Repository interface {
	FindByText(ctx context.Context, text string) (*Word, error)
	FindMeaning(ctx context.Context, meaningID int64) (*Meaning, error)
	FindMeaningsByIDs(ctx context.Context, meaningIDs []int64) ([]Meaning, error)
	Create(ctx context.Context, word *Word) error
	EnsureMeaning(ctx context.Context, text string, meaning *Meaning) error
	UpdateTranslation(ctx context.Context, meaningID int64, translated string) error
}

// DBRepository implements Repository on the words and word_meanings tables.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

const meaningColumns = "id, word_id, definition, translated_definition, part_of_speech, cefr_level, examples, created_at"

// FindByText returns the word and all of its meanings, or ErrWordNotFound.
func (r *DBRepository) FindByText(ctx context.Context, text string) (*Word, error) {
	var word Word
	err := r.db.GetContext(ctx, &word, r.db.Rebind("SELECT id, word, created_at FROM words WHERE word = ?"), text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(word) > %w", err)
	}

	if err := r.db.SelectContext(ctx, &word.Meanings,
		r.db.Rebind("SELECT "+meaningColumns+" FROM word_meanings WHERE word_id = ? ORDER BY id"),
		word.ID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(word_meanings) > %w", err)
	}
	return &word, nil
}

// FindMeaning returns a single meaning, or ErrWordNotFound.
func (r *DBRepository) FindMeaning(ctx context.Context, meaningID int64) (*Meaning, error) {
	var meaning Meaning
	err := r.db.GetContext(ctx, &meaning,
		r.db.Rebind("SELECT "+meaningColumns+" FROM word_meanings WHERE id = ?"), meaningID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(word_meaning) > %w", err)
	}
	return &meaning, nil
}

// FindMeaningsByIDs returns the meanings that exist among meaningIDs, ordered by id.
func (r *DBRepository) FindMeaningsByIDs(ctx context.Context, meaningIDs []int64) ([]Meaning, error) {
	if len(meaningIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT "+meaningColumns+" FROM word_meanings WHERE id IN (?) ORDER BY id", meaningIDs)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In() > %w", err)
	}
	var meanings []Meaning
	if err := r.db.SelectContext(ctx, &meanings, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(word_meanings by ids) > %w", err)
	}
	return meanings, nil
}

// Create inserts a word with its meanings in one transaction and fills in the generated ids.
// A word text that is already stored fails with ErrWordExists.
func (r *DBRepository) Create(ctx context.Context, word *Word) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		id, err := database.InsertReturningID(ctx, tx, "INSERT INTO words (word) VALUES (?)", word.Word)
		if database.IsDuplicateKey(err) {
			return ErrWordExists
		}
		if err != nil {
			return fmt.Errorf("database.InsertReturningID(word) > %w", err)
		}
		word.ID = id

		for i := range word.Meanings {
			word.Meanings[i].WordID = id
			if err := insertMeaning(ctx, tx, &word.Meanings[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureMeaning finds or creates the word text and a meaning with the same definition,
// setting meaning.ID and meaning.WordID.
func (r *DBRepository) EnsureMeaning(ctx context.Context, text string, meaning *Meaning) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var wordID int64
		err := tx.GetContext(ctx, &wordID, tx.Rebind("SELECT id FROM words WHERE word = ?"), text)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			wordID, err = database.InsertReturningID(ctx, tx, "INSERT INTO words (word) VALUES (?)", text)
			if err != nil {
				return fmt.Errorf("database.InsertReturningID(word) > %w", err)
			}
		case err != nil:
			return fmt.Errorf("tx.GetContext(word id) > %w", err)
		}
		meaning.WordID = wordID

		var meaningID int64
		err = tx.GetContext(ctx, &meaningID,
			tx.Rebind("SELECT id FROM word_meanings WHERE word_id = ? AND definition = ? ORDER BY id LIMIT 1"),
			wordID, meaning.Definition)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return insertMeaning(ctx, tx, meaning)
		case err != nil:
			return fmt.Errorf("tx.GetContext(meaning id) > %w", err)
		}
		meaning.ID = meaningID
		return nil
	})
}

func insertMeaning(ctx context.Context, tx *sqlx.Tx, meaning *Meaning) error {
	id, err := database.InsertReturningID(ctx, tx,
		`INSERT INTO word_meanings (word_id, definition, translated_definition, part_of_speech, cefr_level, examples)
		VALUES (?, ?, ?, ?, ?, ?)`,
		meaning.WordID, meaning.Definition, meaning.TranslatedDefinition, meaning.PartOfSpeech,
		meaning.CEFRLevel, meaning.Examples)
	if err != nil {
		return fmt.Errorf("database.InsertReturningID(word_meaning) > %w", err)
	}
	meaning.ID = id
	return nil
}

// UpdateTranslation stores the translated definition of a meaning.
func (r *DBRepository) UpdateTranslation(ctx context.Context, meaningID int64, translated string) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE word_meanings SET translated_definition = ? WHERE id = ?"), translated, meaningID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update translated_definition) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return ErrWordNotFound
	}
	return nil
}
