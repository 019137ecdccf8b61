package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/fundbuero/internal/media"
	"github.com/erazemk/fundbuero/internal/model"
	"github.com/erazemk/fundbuero/internal/store"
)

// ItemsHandler handles the item repository endpoints.
type ItemsHandler struct {
	DB    *sql.DB
	Media *media.Library
}

type itemRequest struct {
	Name        string     `json:"name" validate:"required"`
	Type        string     `json:"type" validate:"required,oneof=lost found"`
	Title       string     `json:"title" validate:"required"`
	Date        *Timestamp `json:"date"`
	ReportedAt  *Timestamp `json:"reportedAt" validate:"required"`
	CategoryID  string     `json:"categoryId" validate:"required"`
	LocationID  string     `json:"locationId" validate:"required"`
	Description string     `json:"description"`
	Img         string     `json:"img"`
	UserID      string     `json:"userId" validate:"required"`
}

type updateItemRequest struct {
	ID string `json:"id" validate:"required"`
	itemRequest
}

// item converts the request into a model item.
func (req *itemRequest) item() *model.Item {
	item := &model.Item{
		Name:        req.Name,
		Title:       req.Title,
		Img:         req.Img,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		Description: req.Description,
		UserID:      req.UserID,
	}
	if req.Date != nil {
		d := int64(*req.Date)
		item.Date = &d
	}
	if req.ReportedAt != nil {
		item.ReportedAt = int64(*req.ReportedAt)
	}
	return item
}

// readItem decodes an item from a JSON or multipart body. The owner is
// always the session's user. The returned upload is nil when no file was sent.
func readItem(w http.ResponseWriter, r *http.Request, req *updateItemRequest) (*media.Upload, error) {
	var upload *media.Upload
	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			return nil, err
		}
		req.ID = formValue(r, "id")
		req.Name = formValue(r, "name")
		req.Type = formValue(r, "type")
		req.Title = formValue(r, "title")
		req.CategoryID = formValue(r, "categoryId", "category")
		req.LocationID = formValue(r, "locationId", "location")
		req.Description = formValue(r, "description")
		req.Img = formValue(r, "img")

		var err error
		if req.Date, err = formTimestamp(r, "date"); err != nil {
			return nil, err
		}
		if req.ReportedAt, err = formTimestamp(r, "reportedAt"); err != nil {
			return nil, err
		}
		if upload, err = formUpload(r, "img", "image"); err != nil {
			return nil, err
		}
	} else if err := decodeJSON(r, req); err != nil {
		return nil, bodyError(err)
	}

	if !req.Date.set() {
		req.Date = nil
	}
	if !req.ReportedAt.set() {
		req.ReportedAt = nil
	}
	req.Type = model.NormalizeItemType(req.Type)
	req.UserID = callerID(r)
	return upload, nil
}

// storeImage validates and stores an upload, returning its public path.
func (h *ItemsHandler) storeImage(r *http.Request, upload *media.Upload) (string, error) {
	return h.Media.Save(r.Context(), "", upload)
}

// discardImage removes an image whose row was never written.
func (h *ItemsHandler) discardImage(r *http.Request, path string) {
	if err := h.Media.Remove(r.Context(), path); err != nil {
		slog.Error("failed to remove orphaned image", "path", path, "error", err)
	}
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonOK(w, http.StatusOK, "", envelope{"items": items})
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	upload, err := readItem(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateRequest(&req.itemRequest); err != nil {
		writeError(w, r, err)
		return
	}

	item := req.item()
	if upload != nil {
		if item.Img, err = h.storeImage(r, upload); err != nil {
			writeError(w, r, err)
			return
		}
	}

	created, err := store.CreateItem(r.Context(), h.DB, item)
	if err != nil {
		if upload != nil {
			h.discardImage(r, item.Img)
		}
		writeError(w, r, err)
		return
	}

	slog.Info("item created", "id", created.ID, "type", created.Type, "user", created.UserID)
	jsonOK(w, http.StatusCreated, "item added", envelope{"id": created.ID})
}

// Update handles PUT /api/items. Only the item's owner may update it.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	upload, err := readItem(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}

	existing, err := store.GetItem(r.Context(), h.DB, req.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if existing == nil {
		writeError(w, r, notFound("item not found"))
		return
	}
	if !existing.OwnedBy(callerID(r)) {
		writeError(w, r, forbidden("only the reporter may change this item"))
		return
	}

	item := req.item()
	item.ID = existing.ID
	item.UserID = existing.UserID
	if upload != nil {
		if item.Img, err = h.storeImage(r, upload); err != nil {
			writeError(w, r, err)
			return
		}
	}

	found, err := store.UpdateItem(r.Context(), h.DB, item)
	if err != nil {
		if upload != nil {
			h.discardImage(r, item.Img)
		}
		writeError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, notFound("item not found"))
		return
	}

	slog.Info("item updated", "id", item.ID, "user", item.UserID)
	jsonOK(w, http.StatusOK, "item updated", nil)
}

// Delete handles DELETE /api/items?id=. Deleting an unknown ID succeeds.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, r, badRequest("id parameter missing"))
		return
	}

	existing, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if existing != nil {
		if !existing.OwnedBy(callerID(r)) {
			writeError(w, r, forbidden("only the reporter may delete this item"))
			return
		}
		if _, err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
			writeError(w, r, err)
			return
		}
		slog.Info("item deleted", "id", id, "user", existing.UserID)
	}

	jsonResponse(w, http.StatusOK, envelope{
		"itemObject": envelope{"success": statusOK, "message": "item deleted"},
	})
}
