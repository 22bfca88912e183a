package graphql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// NewErrorPresenter returns a gqlgen error presenter that maps domain errors
// to GraphQL error codes. Unexpected errors are logged and masked.
func NewErrorPresenter(log *slog.Logger) graphql.ErrorPresenterFunc {
	log = log.With("component", "graphql")
	return func(ctx context.Context, err error) *gqlerror.Error {
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)

		// Parse and validation errors carry no cause and pass through as is.
		var raw *gqlerror.Error
		if errors.As(err, &raw) && raw.Err == nil {
			return gqlErr
		}

		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			gqlErr.Extensions = map[string]any{"code": "VALIDATION", "fields": ve.Errors}
		case errors.Is(err, domain.ErrValidation):
			gqlErr.Extensions = map[string]any{"code": "VALIDATION"}
		case errors.Is(err, domain.ErrNotFound):
			gqlErr.Extensions = map[string]any{"code": "NOT_FOUND"}
		case errors.Is(err, domain.ErrAlreadyExists):
			gqlErr.Extensions = map[string]any{"code": "ALREADY_EXISTS"}
		case errors.Is(err, domain.ErrUnauthorized):
			gqlErr.Extensions = map[string]any{"code": "UNAUTHENTICATED"}
		case errors.Is(err, domain.ErrForbidden):
			gqlErr.Extensions = map[string]any{"code": "FORBIDDEN"}
		case errors.Is(err, domain.ErrConflict):
			gqlErr.Extensions = map[string]any{"code": "CONFLICT"}
		default:
			log.ErrorContext(ctx, "unexpected GraphQL error",
				slog.String("error", err.Error()),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			)
			gqlErr.Message = "internal error"
			gqlErr.Extensions = map[string]any{"code": "INTERNAL"}
		}
		return gqlErr
	}
}
