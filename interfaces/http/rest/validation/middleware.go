package validation

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type contextKey string

const (
	paginationKey contextKey = "validated:pagination"
	searchKey     contextKey = "validated:search"
	loginKey      contextKey = "validated:login"
)

// Stage intercepts requests before their handler and checks a declarative
// schema against path parameters, the query string or the body. Faults are
// forwarded to the terminal error handler; the handler never runs on a
// validation failure.
type Stage struct {
	validator *Validator
	errors    *apperrors.Handler
}

// NewStage creates the validation stage.
func NewStage(errHandler *apperrors.Handler) *Stage {
	return &Stage{validator: New(), errors: errHandler}
}

// Pagination validates and normalizes page/limit/sort query parameters and
// stores the result in the request context.
func (s *Stage) Pagination(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, violations := parsePagination(r)
		violations = append(violations, s.validator.Check(q)...)
		if len(violations) > 0 {
			s.errors.Handle(w, r, apperrors.NewValidationFailed(violations))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), paginationKey, q)))
	})
}

// Search validates the `query` parameter (required, minimum length 2).
func (s *Stage) Search(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := SearchQuery{Query: r.URL.Query().Get("query")}
		if violations := s.validator.Check(q); len(violations) > 0 {
			s.errors.Handle(w, r, apperrors.NewValidationFailed(violations))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), searchKey, q)))
	})
}

// Param validates that the named URL parameter is present and non-empty.
func (s *Stage) Param(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, name) == "" {
				violations := []apperrors.FieldViolation{{
					Path:    name,
					Message: displayName(name) + " cannot be empty",
				}}
				s.errors.Handle(w, r, apperrors.NewValidationFailed(violations))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginBody decodes and validates the login request body, storing the
// normalized value in the request context.
func (s *Stage) LoginBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				s.errors.Handle(w, r, apperrors.NewPayloadTooLarge("Request body exceeds the allowed size"))
				return
			}
			s.errors.Handle(w, r, apperrors.NewBadRequest("Request body must be valid JSON"))
			return
		}
		if violations := s.validator.Check(body); len(violations) > 0 {
			s.errors.Handle(w, r, apperrors.NewValidationFailed(violations))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loginKey, body)))
	})
}

// PaginationFrom returns the normalized pagination for a request that passed
// the Pagination stage; defaults are returned if the stage did not run.
func PaginationFrom(ctx context.Context) PaginationQuery {
	if q, ok := ctx.Value(paginationKey).(PaginationQuery); ok {
		return q
	}
	return PaginationQuery{Page: DefaultPage, Limit: DefaultLimit, Sort: DefaultSort}
}

// SearchFrom returns the normalized search query stored by the Search stage.
func SearchFrom(ctx context.Context) SearchQuery {
	q, _ := ctx.Value(searchKey).(SearchQuery)
	return q
}

// LoginFrom returns the normalized login body stored by the LoginBody stage.
func LoginFrom(ctx context.Context) LoginRequest {
	body, _ := ctx.Value(loginKey).(LoginRequest)
	return body
}
