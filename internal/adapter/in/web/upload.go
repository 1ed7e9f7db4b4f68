package web

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"myblog/internal/service"
	"myblog/pkg/logger"

	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// upload stores a multipart file under the upload dir with a random
// name, keeping the original extension, and answers with its path.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if h.uploadDir == "" {
		h.renderError(w, r, service.ErrInternalError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderError(w, r, service.ErrInvalidRequest)
		return
	}
	defer file.Close()

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		logger.FromContext(r.Context()).Error("creating upload file failed", "error", err)
		h.renderError(w, r, service.ErrInternalError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		logger.FromContext(r.Context()).Error("writing upload failed", "error", err)
		h.renderError(w, r, service.ErrInternalError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"path": "/upload/" + name})
}
