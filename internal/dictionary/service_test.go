package dictionary_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/lexis/internal/dictionary"
	"github.com/at-ishikawa/lexis/internal/dictionary/rapidapi"
	mock_dictionary "github.com/at-ishikawa/lexis/internal/mocks/dictionary"
)

func TestService_Lookup(t *testing.T) {
	stored := &dictionary.Word{ID: 1, Word: "apple", Meanings: []dictionary.Meaning{{ID: 10, WordID: 1, Definition: "a fruit"}}}

	tests := []struct {
		name         string
		text         string
		noUpstream   bool
		setupMocks   func(repo *mock_dictionary.MockRepository, upstream *mock_dictionary.MockUpstream)
		wantMeanings int
		wantErr      error
		wantAnyErr   bool
	}{
		{
			name: "stored word is normalized and returned",
			text: "  Apple ",
			setupMocks: func(repo *mock_dictionary.MockRepository, upstream *mock_dictionary.MockUpstream) {
				repo.EXPECT().FindByText(gomock.Any(), "apple").Return(stored, nil)
			},
			wantMeanings: 1,
		},
		{
			name: "missing word is fetched and stored",
			text: "pear",
			setupMocks: func(repo *mock_dictionary.MockRepository, upstream *mock_dictionary.MockUpstream) {
				repo.EXPECT().FindByText(gomock.Any(), "pear").Return(nil, dictionary.ErrWordNotFound)
				upstream.EXPECT().Lookup(gomock.Any(), "pear").Return(&rapidapi.Response{
					Word: "pear",
					Results: []rapidapi.Result{
						{Definition: "sweet juicy gritty-textured fruit", PartOfSpeech: "noun", Examples: []string{"a ripe pear"}},
						{Definition: " ", PartOfSpeech: "noun"},
						{Definition: "Old World tree", PartOfSpeech: "noun"},
					},
				}, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, word *dictionary.Word) error {
					assert.Equal(t, "pear", word.Word)
					assert.Equal(t, dictionary.Examples{"a ripe pear"}, word.Meanings[0].Examples)
					word.ID = 2
					return nil
				})
			},
			wantMeanings: 2,
		},
		{
			name: "word stored by a concurrent lookup is read back",
			text: "apple",
			setupMocks: func(repo *mock_dictionary.MockRepository, upstream *mock_dictionary.MockUpstream) {
				gomock.InOrder(
					repo.EXPECT().FindByText(gomock.Any(), "apple").Return(nil, dictionary.ErrWordNotFound),
					upstream.EXPECT().Lookup(gomock.Any(), "apple").Return(&rapidapi.Response{
						Word:    "apple",
						Results: []rapidapi.Result{{Definition: "a fruit"}, {Definition: "a tree"}},
					}, nil),
					repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dictionary.ErrWordExists),
					repo.EXPECT().FindByText(gomock.Any(), "apple").Return(stored, nil),
				)
			},
			wantMeanings: 1,
		},
		{
			name: "read back failure after a concurrent store",
			text: "apple",
			setupMocks: func(repo *mock_dictionary.MockRepository, upstream *mock_dictionary.MockUpstream) {
				repo.EXPECT().FindByText(gomock.Any(), "apple").Return(nil, dictionary.ErrWordNotFound)
				upstream.EXPECT().Lookup(gomock.Any(), "apple").Return(&rapidapi.Response{
					Word:    "apple",
					Results: []rapidapi.Result{{Definition: "a fruit"}},
				}, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dictionary.ErrWordExists)
				repo.EXPECT().FindByText(gomock.Any(), "apple").Return(nil, errors.New("connection refused"))
			},
			wantAnyErr: true,
		},
		{
			name: "upstream without definitions",
			text: "zzz",
			setupMocks: func(repo *mock_dictionary.MockRepository, upstream *mock_dictionary.MockUpstream) {
				repo.EXPECT().FindByText(gomock.Any(), "zzz").Return(nil, dictionary.ErrWordNotFound)
				upstream.EXPECT().Lookup(gomock.Any(), "zzz").Return(&rapidapi.Response{Word: "zzz"}, nil)
			},
			wantErr: dictionary.ErrWordNotFound,
		},
		{
			name:       "missing word without upstream",
			text:       "pear",
			noUpstream: true,
			setupMocks: func(repo *mock_dictionary.MockRepository, upstream *mock_dictionary.MockUpstream) {
				repo.EXPECT().FindByText(gomock.Any(), "pear").Return(nil, dictionary.ErrWordNotFound)
			},
			wantErr: dictionary.ErrWordNotFound,
		},
		{
			name:       "empty text",
			text:       "   ",
			setupMocks: func(repo *mock_dictionary.MockRepository, upstream *mock_dictionary.MockUpstream) {},
			wantErr:    dictionary.ErrWordNotFound,
		},
		{
			name: "storage failure",
			text: "apple",
			setupMocks: func(repo *mock_dictionary.MockRepository, upstream *mock_dictionary.MockUpstream) {
				repo.EXPECT().FindByText(gomock.Any(), "apple").Return(nil, errors.New("connection refused"))
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_dictionary.NewMockRepository(ctrl)
			upstream := mock_dictionary.NewMockUpstream(ctrl)
			tt.setupMocks(repo, upstream)

			var service *dictionary.Service
			if tt.noUpstream {
				service = dictionary.NewService(repo, nil, nil, nil)
			} else {
				service = dictionary.NewService(repo, upstream, nil, nil)
			}

			got, err := service.Lookup(context.Background(), tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantAnyErr {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, dictionary.ErrWordNotFound)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got.Meanings, tt.wantMeanings)
		})
	}
}

func TestService_TranslateMeanings(t *testing.T) {
	meanings := []dictionary.Meaning{
		{ID: 10, Definition: "a fruit"},
		{ID: 11, Definition: "a tree"},
	}

	tests := []struct {
		name       string
		setupMocks func(repo *mock_dictionary.MockRepository, translator *mock_dictionary.MockTranslator)
		want       []dictionary.Translation
		wantErr    error
		wantAnyErr bool
	}{
		{
			name: "failed item falls back to the original",
			setupMocks: func(repo *mock_dictionary.MockRepository, translator *mock_dictionary.MockTranslator) {
				repo.EXPECT().FindMeaningsByIDs(gomock.Any(), []int64{10, 11}).Return(meanings, nil)
				translator.EXPECT().Translate(gomock.Any(), "a fruit").Return("quả táo", nil)
				translator.EXPECT().Translate(gomock.Any(), "a tree").Return("", errors.New("503"))
				repo.EXPECT().UpdateTranslation(gomock.Any(), int64(10), "quả táo").Return(nil)
			},
			want: []dictionary.Translation{
				{MeaningID: 10, Original: "a fruit", Translated: "quả táo", Stored: true},
				{MeaningID: 11, Original: "a tree", Translated: "a tree", Stored: false},
			},
		},
		{
			name: "no meanings found",
			setupMocks: func(repo *mock_dictionary.MockRepository, translator *mock_dictionary.MockTranslator) {
				repo.EXPECT().FindMeaningsByIDs(gomock.Any(), []int64{10, 11}).Return(nil, nil)
			},
			wantErr: dictionary.ErrWordNotFound,
		},
		{
			name: "storage failure",
			setupMocks: func(repo *mock_dictionary.MockRepository, translator *mock_dictionary.MockTranslator) {
				repo.EXPECT().FindMeaningsByIDs(gomock.Any(), []int64{10, 11}).Return(meanings[:1], nil)
				translator.EXPECT().Translate(gomock.Any(), "a fruit").Return("quả táo", nil)
				repo.EXPECT().UpdateTranslation(gomock.Any(), int64(10), "quả táo").Return(errors.New("connection refused"))
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_dictionary.NewMockRepository(ctrl)
			translator := mock_dictionary.NewMockTranslator(ctrl)
			tt.setupMocks(repo, translator)

			got, err := dictionary.NewService(repo, nil, translator, nil).TranslateMeanings(context.Background(), []int64{10, 11})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantAnyErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
