package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// Auth puts the bearer token's user and the preferred Accept-Language tag
// into the request context. Requests without a token pass through anonymous;
// RequireUser rejects them where a user is needed.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if locale := preferredLocale(r); locale != "" {
				ctx = ctxutil.WithLocale(ctx, locale)
			}

			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			userID, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if e := entryFromCtx(ctx); e != nil {
				e.userID = userID
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithUserID(ctx, userID)))
		})
	}
}

// RequireUser rejects requests that Auth left anonymous.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// preferredLocale returns the highest weighted Accept-Language tag.
func preferredLocale(r *http.Request) string {
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}
