package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/at-ishikawa/lexis/internal/auth"
	"github.com/at-ishikawa/lexis/internal/dictionary"
	"github.com/at-ishikawa/lexis/internal/history"
	"github.com/at-ishikawa/lexis/internal/tracking"
)

const errorDomain = "lexis"

// Reasons put into errdetails.ErrorInfo so that clients can branch on the cause.
const (
	ReasonNotFound        = "NOT_FOUND"
	ReasonAlreadyExists   = "ALREADY_EXISTS"
	ReasonInvalidArgument = "INVALID_ARGUMENT"
	ReasonUnauthorized    = "UNAUTHORIZED"
	ReasonInternal        = "INTERNAL_ERROR"
)

func classify(err error) (connect.Code, string) {
	switch {
	case errors.Is(err, tracking.ErrNotFound), errors.Is(err, dictionary.ErrWordNotFound):
		return connect.CodeNotFound, ReasonNotFound
	case errors.Is(err, tracking.ErrAlreadyExists):
		return connect.CodeAlreadyExists, ReasonAlreadyExists
	case errors.Is(err, tracking.ErrInvalidArgument), errors.Is(err, history.ErrInvalidRange):
		return connect.CodeInvalidArgument, ReasonInvalidArgument
	case errors.Is(err, auth.ErrUnauthorized):
		return connect.CodeUnauthenticated, ReasonUnauthorized
	}
	return connect.CodeInternal, ReasonInternal
}

func newError(code connect.Code, reason string, err error) *connect.Error {
	connectErr := connect.NewError(code, err)
	if detail, detailErr := connect.NewErrorDetail(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: errorDomain,
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

// toConnectError maps a domain error to a connect error. Internal causes are
// logged and replaced by a generic message.
func toConnectError(ctx context.Context, logger *slog.Logger, procedure string, err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	if errors.Is(err, context.Canceled) {
		return connect.NewError(connect.CodeCanceled, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	code, reason := classify(err)
	if code == connect.CodeInternal {
		logger.ErrorContext(ctx, "request failed", "procedure", procedure, "error", err)
		return newError(code, reason, errors.New("internal error"))
	}
	return newError(code, reason, err)
}

// requestValidator checks request messages against their validate tags and
// reports failures with json field names.
type requestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newRequestValidator() (*requestValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("enTranslations.RegisterDefaultTranslations() > %w", err)
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: validate, translator: trans}, nil
}

func (v *requestValidator) check(msg any) error {
	err := v.validate.Struct(msg)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		message := fe.Translate(v.translator)
		violations = append(violations, &errdetails.BadRequest_FieldViolation{
			Field:       fieldPath(fe),
			Description: message,
		})
		messages = append(messages, message)
	}

	connectErr := newError(connect.CodeInvalidArgument, ReasonInvalidArgument, errors.New(strings.Join(messages, ", ")))
	if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
		FieldViolations: violations,
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

// fieldPath drops the Go struct name from the namespace, "GetQueueRequest.limit" -> "limit".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}
