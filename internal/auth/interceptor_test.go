package auth

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyMessage struct{}

func TestNewInterceptor(t *testing.T) {
	manager := newTestManager(t, "secret", "lexis")
	token, err := manager.Issue(42, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantUserID int64
		wantErr    bool
	}{
		{name: "bearer token", header: "Bearer " + token, wantUserID: 42},
		{name: "scheme is case-insensitive", header: "bearer " + token, wantUserID: 42},
		{name: "missing header", header: "", wantErr: true},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "empty token", header: "Bearer ", wantErr: true},
		{name: "invalid token", header: "Bearer abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				userID, err := UserID(ctx)
				require.NoError(t, err)
				gotUserID = userID
				return connect.NewResponse(&emptyMessage{}), nil
			})

			req := connect.NewRequest(&emptyMessage{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}
			_, err := NewInterceptor(manager)(next)(context.Background(), req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthorized)
				assert.Zero(t, gotUserID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUserID, gotUserID)
		})
	}
}
