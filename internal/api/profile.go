package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/fundbuero/internal/media"
	"github.com/erazemk/fundbuero/internal/store"
)

// ProfileHandler handles self-service profile endpoints.
type ProfileHandler struct {
	DB    *sql.DB
	Media *media.Library
}

type updateProfileRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Prename string `json:"prename" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Phone   string `json:"phone"`
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, badRequest("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.UserID != callerID(r) {
		writeError(w, r, forbidden("unauthorized"))
		return
	}

	found, err := store.UpdateProfile(r.Context(), h.DB, req.UserID, req.Prename, req.Surname, req.Phone)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, notFound("user not found"))
		return
	}

	slog.Info("profile updated", "user", req.UserID)
	jsonOK(w, http.StatusOK, "profile updated successfully", nil)
}

// UploadPicture handles POST /api/profile (multipart userId + profilePicture).
func (h *ProfileHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		writeError(w, r, badRequest("invalid content type"))
		return
	}
	if err := parseMultipart(w, r); err != nil {
		writeError(w, r, err)
		return
	}

	userID := formValue(r, "userId")
	if userID != callerID(r) {
		writeError(w, r, forbidden("unauthorized"))
		return
	}

	upload, err := formUpload(r, "profilePicture")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if upload == nil {
		writeError(w, r, badRequest("no profile picture provided"))
		return
	}
	if _, err := media.Check(upload); err != nil {
		writeError(w, r, err)
		return
	}

	// The owner must exist before anything is written.
	user, err := store.GetUser(r.Context(), h.DB, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, r, notFound("user not found"))
		return
	}

	path, err := h.Media.Save(r.Context(), media.ProfilesNamespace, upload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	found, err := store.SetProfilePicture(r.Context(), h.DB, userID, path)
	if err == nil && !found {
		err = notFound("user not found")
	}
	if err != nil {
		if rmErr := h.Media.Remove(r.Context(), path); rmErr != nil {
			slog.Error("failed to remove orphaned profile picture", "path", path, "error", rmErr)
		}
		writeError(w, r, err)
		return
	}

	slog.Info("profile picture updated", "user", userID, "path", path)
	jsonOK(w, http.StatusOK, "profile picture updated successfully", envelope{"profilePictureUrl": path})
}
