package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yarchiT/analogue-memory-backend/domain/catalog"
	"github.com/yarchiT/analogue-memory-backend/interfaces/http/rest/validation"
	"github.com/yarchiT/analogue-memory-backend/pkg/auth"
	"github.com/yarchiT/analogue-memory-backend/pkg/common"
	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

// UserHandler serves the user read endpoints and the login stub.
type UserHandler struct {
	snapshot *catalog.Snapshot
	tokens   *auth.TokenIssuer
	errors   *apperrors.Handler
}

// NewUserHandler creates the user handler.
func NewUserHandler(snapshot *catalog.Snapshot, tokens *auth.TokenIssuer, errHandler *apperrors.Handler) *UserHandler {
	return &UserHandler{snapshot: snapshot, tokens: tokens, errors: errHandler}
}

// List responds with every user, emails stripped.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users := h.snapshot.Users()

	sanitized := make([]catalog.PublicProfile, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Public())
	}

	common.RespondList(w, http.StatusOK, len(sanitized), map[string]interface{}{
		"users": sanitized,
	})
}

// GetByID responds with a single user (email stripped) or a 404.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, ok := h.snapshot.UserByID(id)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewNotFound(fmt.Sprintf("User with ID %s not found", id)))
		return
	}

	common.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"user": user.Public(),
	})
}

// GetByUsername responds with a single user (email stripped) or a 404.
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, ok := h.snapshot.UserByUsername(username)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewNotFound(fmt.Sprintf("User with username %s not found", username)))
		return
	}

	common.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"user": user.Public(),
	})
}

// Login is a credential-check stub: it matches the email against the snapshot
// and issues a signed token without ever verifying the password.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	body := validation.LoginFrom(r.Context())

	user, ok := h.snapshot.UserByEmail(body.Email)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewUnauthorized("Invalid email or password"))
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewInternal("Failed to authenticate").WithCause(err))
		return
	}

	common.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}
