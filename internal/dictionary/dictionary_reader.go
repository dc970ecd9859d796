package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/at-ishikawa/lexis/internal/config"
	"github.com/at-ishikawa/lexis/internal/dictionary/rapidapi"
)

// Reader fetches words from WordsAPI through RapidAPI.
// Requests are rate limited and raw responses are kept in a FileCache.
type Reader struct {
	client    *resty.Client
	limiter   *rate.Limiter
	fileCache *FileCache
}

// ReaderOption customizes a Reader.
type ReaderOption func(*Reader)

// WithBaseURL points the reader at another endpoint, such as a test server.
func WithBaseURL(baseURL string) ReaderOption {
	return func(r *Reader) {
		r.client.SetBaseURL(baseURL)
	}
}

func NewReader(cfg config.RapidAPIConfig, opts ...ReaderOption) *Reader {
	client := resty.New().
		SetBaseURL("https://"+cfg.Host).
		SetHeader("x-rapidapi-host", cfg.Host).
		SetHeader("x-rapidapi-key", cfg.Key)

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	r := &Reader{
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		fileCache: NewFileCache(cfg.CacheDirectory),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) lookupAPI(ctx context.Context, word string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("limiter.Wait > %w", err)
	}

	res, err := r.client.R().
		SetContext(ctx).
		Get("/words/" + url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return res.Body(), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrWordNotFound, word)
	}

	var errorResponse rapidapi.ErrorResponse
	_ = json.Unmarshal(res.Body(), &errorResponse)
	return nil, fmt.Errorf("rapidapi status code: %d, message: %s", res.StatusCode(), errorResponse.Message)
}

// Lookup returns the WordsAPI entry for word. Unknown words fail with ErrWordNotFound.
func (r *Reader) Lookup(ctx context.Context, word string) (*rapidapi.Response, error) {
	contents, err := r.fileCache.cache(word, func() ([]byte, error) {
		return r.lookupAPI(ctx, word)
	})
	if err != nil {
		return nil, fmt.Errorf("fileCache.cache(%s) > %w", word, err)
	}

	var resp rapidapi.Response
	if err := json.Unmarshal(contents, &resp); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return &resp, nil
}
