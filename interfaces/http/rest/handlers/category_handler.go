package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yarchiT/analogue-memory-backend/domain/catalog"
	"github.com/yarchiT/analogue-memory-backend/pkg/common"
	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

// CategoryHandler serves the category read endpoints.
type CategoryHandler struct {
	snapshot *catalog.Snapshot
	errors   *apperrors.Handler
}

// NewCategoryHandler creates the category handler.
func NewCategoryHandler(snapshot *catalog.Snapshot, errHandler *apperrors.Handler) *CategoryHandler {
	return &CategoryHandler{snapshot: snapshot, errors: errHandler}
}

// List responds with every category.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories := h.snapshot.Categories()
	common.RespondList(w, http.StatusOK, len(categories), map[string]interface{}{
		"categories": categories,
	})
}

// GetByID responds with a single category or a 404 carrying the requested id.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	category, ok := h.snapshot.CategoryByID(id)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewNotFound(fmt.Sprintf("Category with ID %s not found", id)))
		return
	}

	common.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"category": category,
	})
}
