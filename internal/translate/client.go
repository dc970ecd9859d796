// Package translate translates dictionary definitions through the Google Translate web endpoint.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/lexis/internal/config"
)

type Client struct {
	httpClient       *resty.Client
	sourceLanguage   string
	targetLanguage   string
	maxRetryAttempts uint
	retryDelay       time.Duration
}

func NewClient(cfg config.TranslateConfig) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	// Retries go through retry-go so that only transient failures are repeated
	client.SetRetryCount(0)

	return &Client{
		httpClient:       client,
		sourceLanguage:   cfg.SourceLanguage,
		targetLanguage:   cfg.TargetLanguage,
		maxRetryAttempts: cfg.MaxRetryAttempts,
		retryDelay:       200 * time.Millisecond,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.code, e.body)
}

func isRetryableError(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError
	}
	// transport failures such as refused connections or timeouts
	return true
}

// Translate returns text translated into the target language.
func (client *Client) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var result string
	if err := retry.Do(
		func() error {
			translated, err := client.translate(ctx, text)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = translated
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return result, nil
}

func (client *Client) translate(ctx context.Context, text string) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     client.sourceLanguage,
			"tl":     client.targetLanguage,
			"dt":     "t",
			"q":      text,
		}).
		Get("/translate_a/single")
	if err != nil {
		return "", fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return "", &statusError{code: response.StatusCode(), body: response.String()}
	}
	return parseResponse([]byte(response.String()))
}

// parseResponse joins the translated segments of a response shaped like
// [[["translated", "original", ...], ...], ...].
func parseResponse(body []byte) (string, error) {
	var parsed []json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("json.Unmarshal(response) > %w", err)
	}
	if len(parsed) == 0 {
		return "", errors.New("empty translation response")
	}

	var segments [][]any
	if err := json.Unmarshal(parsed[0], &segments); err != nil {
		return "", fmt.Errorf("json.Unmarshal(segments) > %w", err)
	}
	var builder strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		if s, ok := segment[0].(string); ok {
			builder.WriteString(s)
		}
	}
	if builder.Len() == 0 {
		return "", errors.New("translation response has no text")
	}
	return builder.String(), nil
}
