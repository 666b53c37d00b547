package validation

import (
	"net/http"
	"strconv"

	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

// Defaults applied by the pagination schema.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	DefaultSort  = "name"
)

// PaginationQuery is the normalized form of the page/limit/sort query
// parameters.
type PaginationQuery struct {
	Page  int    `json:"page" validate:"min=1"`
	Limit int    `json:"limit" validate:"min=1,max=100"`
	Sort  string `json:"sort" validate:"oneof=name popularity year -name -popularity -year"`
}

// SearchQuery is the normalized form of the search query string.
type SearchQuery struct {
	Query string `json:"query" validate:"required,min=2"`
}

// LoginRequest is the expected body for POST /api/users/login. Unknown fields
// in the body are dropped by decoding into this struct.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// parsePagination coerces the raw query string into a PaginationQuery,
// applying defaults for absent parameters. Parameters that fail coercion are
// reported as violations and replaced by their defaults so range checks do not
// double-report the same field.
func parsePagination(r *http.Request) (PaginationQuery, []apperrors.FieldViolation) {
	q := PaginationQuery{Page: DefaultPage, Limit: DefaultLimit, Sort: DefaultSort}
	var violations []apperrors.FieldViolation

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, apperrors.FieldViolation{Path: "page", Message: "Page must be an integer"})
		} else {
			q.Page = page
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, apperrors.FieldViolation{Path: "limit", Message: "Limit must be an integer"})
		} else {
			q.Limit = limit
		}
	}

	if raw := r.URL.Query().Get("sort"); raw != "" {
		q.Sort = raw
	}

	return q, violations
}
