package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/fundbuero/internal/model"
	"github.com/erazemk/fundbuero/internal/store"
)

// VocabularyHandler serves one reference vocabulary (categories or
// locations).
type VocabularyHandler struct {
	DB         *sql.DB
	Vocabulary store.Vocabulary
	// Noun is the singular used in messages ("category").
	Noun string
	// ListKey and ObjectKey name the envelope fields of list and delete
	// responses ("categories", "categoryObject").
	ListKey   string
	ObjectKey string
}

// NewCategoriesHandler returns the handler behind /api/categorydb.
func NewCategoriesHandler(db *sql.DB) *VocabularyHandler {
	return &VocabularyHandler{DB: db, Vocabulary: store.Categories, Noun: "category",
		ListKey: "categories", ObjectKey: "categoryObject"}
}

// NewLocationsHandler returns the handler behind /api/locations.
func NewLocationsHandler(db *sql.DB) *VocabularyHandler {
	return &VocabularyHandler{DB: db, Vocabulary: store.Locations, Noun: "location",
		ListKey: "locations", ObjectKey: "locationObject"}
}

type createTermRequest struct {
	Name string `json:"name" validate:"required"`
}

type updateTermRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// List handles GET.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	terms, err := store.ListTerms(r.Context(), h.DB, h.Vocabulary)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if terms == nil {
		terms = []model.Term{}
	}
	jsonOK(w, http.StatusOK, "", envelope{h.ListKey: terms})
}

// Create handles POST.
func (h *VocabularyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTermRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, badRequest("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}

	term, err := store.CreateTerm(r.Context(), h.DB, h.Vocabulary, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info(h.Noun+" created", "id", term.ID, "name", term.Name)
	jsonOK(w, http.StatusCreated, h.Noun+" added", envelope{"id": term.ID})
}

// Update handles PUT.
func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTermRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, badRequest("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}

	found, err := store.RenameTerm(r.Context(), h.DB, h.Vocabulary, req.ID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, notFound(h.Noun+" not found"))
		return
	}

	slog.Info(h.Noun+" renamed", "id", req.ID, "name", req.Name)
	jsonOK(w, http.StatusOK, h.Noun+" updated", nil)
}

// Delete handles DELETE ?id=. Terms still used by items are kept (409).
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, r, badRequest("attributes missing (id)"))
		return
	}

	found, err := store.DeleteTerm(r.Context(), h.DB, h.Vocabulary, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if found {
		slog.Info(h.Noun+" deleted", "id", id)
	}

	jsonResponse(w, http.StatusOK, envelope{
		h.ObjectKey: envelope{"success": statusOK, "message": h.Noun + " deleted"},
	})
}
