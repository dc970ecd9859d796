package auth

import (
	"context"
	"fmt"
	"strings"

	"connectrpc.com/connect"
)

// Verifier resolves a bearer token to a user id.
type Verifier interface {
	Verify(token string) (int64, error)
}

// NewInterceptor rejects calls without a valid "Authorization: Bearer" header
// and stores the caller's user id in the context otherwise.
func NewInterceptor(verifier Verifier) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			token, ok := bearerToken(req.Header().Get("Authorization"))
			if !ok {
				return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				return nil, err
			}
			return next(WithUserID(ctx, userID), req)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
