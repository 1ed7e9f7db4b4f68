package web

import (
	"errors"
	"net/http"

	"myblog/internal/service"
	"myblog/pkg/logger"
)

// statusFor maps the service error taxonomy onto HTTP statuses, so a
// missing post really is a 404 and a foreign post really is a 403.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorPage struct {
	Status  int
	Message string
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			"path", r.URL.Path, "error", err)
	}
	h.render(w, r, status, "error.html", errorPage{
		Status:  status,
		Message: http.StatusText(status),
	})
}
