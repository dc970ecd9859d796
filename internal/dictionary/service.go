package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/lexis/internal/dictionary/rapidapi"
)

//go:generate mockgen -source=service.go -destination=../mocks/dictionary/mock_service.go -package=mock_dictionary

// Upstream is a remote dictionary consulted for words missing from the database.
type Upstream interface {
	Lookup(ctx context.Context, word string) (*rapidapi.Response, error)
}

// Translator translates a definition into the learner's language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Service looks words up in the database first and falls back to the upstream dictionary.
type Service struct {
	repository Repository
	upstream   Upstream
	translator Translator
	logger     *slog.Logger
}

// NewService creates a Service. upstream and translator may be nil to disable them.
func NewService(repository Repository, upstream Upstream, translator Translator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repository: repository,
		upstream:   upstream,
		translator: translator,
		logger:     logger,
	}
}

// Normalize trims and lowercases a lookup text.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Lookup returns the stored word, fetching and storing it from upstream when missing.
func (s *Service) Lookup(ctx context.Context, text string) (*Word, error) {
	text = Normalize(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrWordNotFound)
	}

	word, err := s.repository.FindByText(ctx, text)
	if err == nil {
		return word, nil
	}
	if !errors.Is(err, ErrWordNotFound) {
		return nil, fmt.Errorf("repository.FindByText(%s) > %w", text, err)
	}
	if s.upstream == nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "word not stored, asking upstream", "word", text)
	response, err := s.upstream.Lookup(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("upstream.Lookup(%s) > %w", text, err)
	}
	word = fromResponse(text, response)
	if len(word.Meanings) == 0 {
		return nil, fmt.Errorf("%w: %s has no definitions", ErrWordNotFound, text)
	}
	err = s.repository.Create(ctx, word)
	if errors.Is(err, ErrWordExists) {
		// A concurrent lookup stored it first
		stored, err := s.repository.FindByText(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("repository.FindByText(%s) > %w", text, err)
		}
		return stored, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository.Create(%s) > %w", text, err)
	}
	return word, nil
}

func fromResponse(text string, response *rapidapi.Response) *Word {
	word := &Word{Word: text}
	for _, result := range response.Results {
		if strings.TrimSpace(result.Definition) == "" {
			continue
		}
		word.Meanings = append(word.Meanings, Meaning{
			Definition:   result.Definition,
			PartOfSpeech: result.PartOfSpeech,
			Examples:     Examples(result.Examples),
		})
	}
	return word
}

// Translation is the outcome of translating one meaning's definition.
type Translation struct {
	MeaningID  int64  `json:"meaningId"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Stored     bool   `json:"stored"`
}

const translateConcurrency = 4

// TranslateMeanings translates and stores the definitions of the given meanings.
// A failed translation falls back to the original definition and is not stored,
// so one bad item does not fail the batch.
func (s *Service) TranslateMeanings(ctx context.Context, meaningIDs []int64) ([]Translation, error) {
	if s.translator == nil {
		return nil, errors.New("translation is not configured")
	}
	meanings, err := s.repository.FindMeaningsByIDs(ctx, meaningIDs)
	if err != nil {
		return nil, fmt.Errorf("repository.FindMeaningsByIDs > %w", err)
	}
	if len(meanings) == 0 {
		return nil, fmt.Errorf("%w: no meanings among %v", ErrWordNotFound, meaningIDs)
	}

	translations := make([]Translation, len(meanings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(translateConcurrency)
	for i, meaning := range meanings {
		g.Go(func() error {
			translations[i] = Translation{MeaningID: meaning.ID, Original: meaning.Definition, Translated: meaning.Definition}
			translated, err := s.translator.Translate(gctx, meaning.Definition)
			if err != nil {
				s.logger.WarnContext(gctx, "translation failed, keeping original definition",
					"meaning_id", meaning.ID, "error", err)
				return nil
			}
			if err := s.repository.UpdateTranslation(gctx, meaning.ID, translated); err != nil {
				return fmt.Errorf("repository.UpdateTranslation(%d) > %w", meaning.ID, err)
			}
			translations[i].Translated = translated
			translations[i].Stored = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return translations, nil
}
