// Package dictionary stores looked-up words with their meanings and fetches
// missing words from the WordsAPI service on RapidAPI.
package dictionary

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrWordNotFound is returned when neither the database nor the upstream dictionary knows a word or meaning.
var ErrWordNotFound = errors.New("word not found")

// ErrWordExists is returned when another writer stored the same word text first.
var ErrWordExists = errors.New("word already stored")

// Word is a dictionary headword with its meanings.
type Word struct {
	ID        int64     `db:"id" json:"id"`
	Word      string    `db:"word" json:"word"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	Meanings  []Meaning `db:"-" json:"meanings"`
}

// Meaning is one definition of a word. Users track meanings, not words.
type Meaning struct {
	ID                   int64     `db:"id" json:"id"`
	WordID               int64     `db:"word_id" json:"wordId"`
	Definition           string    `db:"definition" json:"definition"`
	TranslatedDefinition *string   `db:"translated_definition" json:"translatedDefinition,omitempty"`
	PartOfSpeech         string    `db:"part_of_speech" json:"partOfSpeech"`
	CEFRLevel            string    `db:"cefr_level" json:"cefrLevel,omitempty"`
	Examples             Examples  `db:"examples" json:"examples"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
}

// Examples is a list of example sentences stored as a JSON array.
type Examples []string

// Value implements driver.Valuer.
// A string is returned so that JSONB columns on PostgreSQL accept it.
func (e Examples) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(e))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(examples) > %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (e *Examples) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*e = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported examples column type %T", src)
	}
	var examples []string
	if err := json.Unmarshal(data, &examples); err != nil {
		return fmt.Errorf("json.Unmarshal(examples) > %w", err)
	}
	*e = examples
	return nil
}
