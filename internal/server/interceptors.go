package server

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/at-ishikawa/lexis/internal/auth"
)

const requestIDHeader = "X-Request-Id"

// callInfo is filled in by inner layers so the logging interceptor can report it.
type callInfo struct {
	userID int64
}

type callInfoKey struct{}

// NewLoggingInterceptor logs every call with a request id, its duration and result code.
func NewLoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			requestID := req.Header().Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			info := &callInfo{}
			ctx = context.WithValue(ctx, callInfoKey{}, info)

			start := time.Now()
			res, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"request_id", requestID,
				"duration", time.Since(start),
			}
			if info.userID != 0 {
				attrs = append(attrs, "user_id", info.userID)
			}
			if err != nil {
				code := connect.CodeOf(err)
				attrs = append(attrs, "code", code.String())
				level := slog.LevelInfo
				if code == connect.CodeInternal || code == connect.CodeUnknown {
					level = slog.LevelError
				}
				logger.Log(ctx, level, "call failed", attrs...)
				if connectErr, ok := err.(*connect.Error); ok {
					connectErr.Meta().Set(requestIDHeader, requestID)
				}
				return nil, err
			}

			attrs = append(attrs, "code", "ok")
			logger.InfoContext(ctx, "call completed", attrs...)
			res.Header().Set(requestIDHeader, requestID)
			return res, nil
		}
	}
}

// NewErrorInterceptor converts domain errors into connect errors with an ErrorInfo detail.
func NewErrorInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			res, err := next(ctx, req)
			if err != nil {
				return nil, toConnectError(ctx, logger, req.Spec().Procedure, err)
			}
			return res, nil
		}
	}
}

// callerID returns the authenticated caller and records it for the request log.
func callerID(ctx context.Context) (int64, error) {
	id, err := auth.UserID(ctx)
	if err != nil {
		return 0, err
	}
	if info, ok := ctx.Value(callInfoKey{}).(*callInfo); ok {
		info.userID = id
	}
	return id, nil
}
