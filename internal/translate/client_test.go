package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lexis/internal/config"
)

func newTestClient(baseURL string, retries uint) *Client {
	client := NewClient(config.TranslateConfig{
		BaseURL:          baseURL,
		SourceLanguage:   "en",
		TargetLanguage:   "vi",
		MaxRetryAttempts: retries,
	})
	client.retryDelay = time.Millisecond
	return client
}

func TestClient_Translate(t *testing.T) {
	tests := []struct {
		name      string
		responses []int
		body      string
		want      string
		wantCalls int32
		wantErr   bool
	}{
		{
			name:      "single segment",
			responses: []int{http.StatusOK},
			body:      `[[["quả táo","an apple",null,null,10]],null,"en"]`,
			want:      "quả táo",
			wantCalls: 1,
		},
		{
			name:      "segments are joined",
			responses: []int{http.StatusOK},
			body:      `[[["Xin chào. ","Hello. ",null,null,10],["Tạm biệt.","Goodbye.",null,null,10]],null,"en"]`,
			want:      "Xin chào. Tạm biệt.",
			wantCalls: 1,
		},
		{
			name:      "server errors are retried",
			responses: []int{http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusOK},
			body:      `[[["quả táo","an apple"]]]`,
			want:      "quả táo",
			wantCalls: 3,
		},
		{
			name:      "client errors are not retried",
			responses: []int{http.StatusBadRequest},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "retries are bounded",
			responses: []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway},
			wantCalls: 3,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				assert.Equal(t, "/translate_a/single", r.URL.Path)
				assert.Equal(t, "gtx", r.URL.Query().Get("client"))
				assert.Equal(t, "vi", r.URL.Query().Get("tl"))
				assert.NotEmpty(t, r.URL.Query().Get("q"))

				status := tt.responses[min(int(n), len(tt.responses))-1]
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte(tt.body))
				}
			}))
			defer server.Close()

			client := newTestClient(server.URL, 2)
			defer client.Close()

			got, err := client.Translate(context.Background(), "an apple")
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_TranslateEmptyText(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0", 0)
	defer client.Close()

	got, err := client.Translate(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "translated text", body: `[[["quả táo","apple"]]]`, want: "quả táo"},
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "empty array", body: `[]`, wantErr: true},
		{name: "no segments", body: `[null]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
