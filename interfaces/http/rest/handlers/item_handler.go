package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yarchiT/analogue-memory-backend/application/query"
	"github.com/yarchiT/analogue-memory-backend/domain/catalog"
	"github.com/yarchiT/analogue-memory-backend/interfaces/http/rest/validation"
	"github.com/yarchiT/analogue-memory-backend/pkg/common"
	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

// ItemHandler serves the memory item read endpoints.
type ItemHandler struct {
	snapshot *catalog.Snapshot
	errors   *apperrors.Handler
}

// NewItemHandler creates the item handler.
func NewItemHandler(snapshot *catalog.Snapshot, errHandler *apperrors.Handler) *ItemHandler {
	return &ItemHandler{snapshot: snapshot, errors: errHandler}
}

// List responds with a sorted, paginated page over all items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := validation.PaginationFrom(r.Context())

	items, page := query.Page(h.snapshot.AllItems(), q.Page, q.Limit, q.Sort)
	common.RespondPage(w, http.StatusOK, len(items), page, map[string]interface{}{
		"items": items,
	})
}

// Search responds with items matching the validated query string.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := validation.SearchFrom(r.Context())

	items := query.SearchItems(h.snapshot.AllItems(), q.Query)
	common.RespondList(w, http.StatusOK, len(items), map[string]interface{}{
		"items": items,
	})
}

// ByCategory responds with a sorted, paginated page over the items of one
// category. An unknown category yields an empty page, not an error.
func (h *ItemHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	q := validation.PaginationFrom(r.Context())

	filtered := query.FilterByCategory(h.snapshot.AllItems(), categoryID)
	items, page := query.Page(filtered, q.Page, q.Limit, q.Sort)
	common.RespondPage(w, http.StatusOK, len(items), page, map[string]interface{}{
		"items": items,
	})
}

// GetByID responds with a single item or a 404 carrying the requested id.
func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, ok := h.snapshot.ItemByID(id)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewNotFound(fmt.Sprintf("Memory item with ID %s not found", id)))
		return
	}

	common.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"item": item,
	})
}
