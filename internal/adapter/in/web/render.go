package web

import (
	"embed"
	"html/template"
	"net/http"

	"myblog/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
	return &Renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

// pageData is the envelope every template receives: the signed-in
// identity, the popped one-shot flash, and the page payload.
type pageData struct {
	User    *Identity
	Success string
	Error   string
	Data    any
}

// render writes a page. The pending flash, if any, is consumed here so
// it shows exactly once.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	ctx := r.Context()
	pd := pageData{User: CurrentUser(ctx), Data: data}

	if pd.User != nil {
		flash, err := h.sessions.PopFlash(ctx, pd.User.Token)
		if err != nil {
			logger.FromContext(ctx).Warn("popping flash failed", "error", err)
		}
		pd.Success = flash.Success
		pd.Error = flash.Error
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.templates.ExecuteTemplate(w, name, pd); err != nil {
		logger.FromContext(ctx).Error("rendering template failed", "template", name, "error", err)
	}
}

// renderForm is render without the flash pop, for auth forms that carry
// their error inline.
func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, name string, data any, errMsg string) {
	pd := pageData{User: CurrentUser(r.Context()), Data: data, Error: errMsg}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.templates.ExecuteTemplate(w, name, pd); err != nil {
		logger.FromContext(r.Context()).Error("rendering template failed", "template", name, "error", err)
	}
}
