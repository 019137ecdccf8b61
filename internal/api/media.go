package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"

	"github.com/erazemk/fundbuero/internal/imaging"
	"github.com/erazemk/fundbuero/internal/media"
)

// MediaHandler uploads and serves stored images.
type MediaHandler struct {
	Media *media.Library
}

// Upload handles POST /api/imagedb (multipart field "image").
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		writeError(w, r, badRequest("invalid content type"))
		return
	}
	if err := parseMultipart(w, r); err != nil {
		writeError(w, r, err)
		return
	}

	upload, err := formUpload(r, "image")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if upload == nil {
		writeError(w, r, badRequest("no file uploaded"))
		return
	}

	path, err := h.Media.Save(r.Context(), "", upload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("image uploaded", "path", path, "user", callerID(r))
	jsonOK(w, http.StatusOK, "file uploaded successfully", envelope{"filePath": path})
}

// Serve handles GET /uploads/{path...}. With ?size=thumb, decodable images
// are scaled down and served as JPEG. Anything that does not sniff as a
// decodable image is sent as an opaque download.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	rc, err := h.Media.Open(r.Context(), r.PathValue("path"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, media.MaxUploadSize+1))
	if err != nil {
		writeError(w, r, err)
		return
	}

	contentType := mimetype.Detect(data).String()
	if r.URL.Query().Get("size") == "thumb" && imaging.Decodable(contentType) {
		thumb, err := imaging.Thumbnail(bytes.NewReader(data))
		if err != nil {
			slog.Warn("failed to generate thumbnail", "path", r.PathValue("path"), "error", err)
		} else {
			data, contentType = thumb.Data, thumb.MIME
		}
	}

	if !imaging.Decodable(contentType) {
		contentType = "application/octet-stream"
		w.Header().Set("Content-Disposition", "attachment")
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
