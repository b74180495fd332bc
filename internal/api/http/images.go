package http

import (
	"io"
	"net/http"
	"path/filepath"

	"rentcar-backend/internal/logger"

	"github.com/gorilla/mux"
)

// ServeImage streams a stored car image. Backends that serve their own
// public URLs report every key as missing.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if h.images == nil {
		writeMessage(w, http.StatusNotFound, "not_found", "image not found")
		return
	}
	file, err := h.images.ReadFile(key)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "not_found", "image not found")
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Failed to stream image", "key", key, "error", err)
	}
}
