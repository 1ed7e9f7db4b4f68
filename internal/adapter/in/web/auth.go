package web

import (
	"errors"
	"net/http"

	"myblog/internal/service"
)

const (
	msgNameRequired     = "请填写用户名"
	msgPasswordRequired = "请填写密码"
	msgBadCredentials   = "用户名或密码错误"
	msgNameTaken        = "用户名已被占用"
)

func (h *Handler) signupForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "signup.html", nil, "")
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	password := r.PostFormValue("password")

	if msg, ok := validateCredentials(name, password); !ok {
		h.renderForm(w, r, http.StatusBadRequest, "signup.html", nil, msg)
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterRequest{
		Name:     name,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			h.renderForm(w, r, http.StatusBadRequest, "signup.html", nil, msgNameTaken)
			return
		}
		h.renderError(w, r, err)
		return
	}

	if _, err := h.startSession(w, r, user.ID); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/posts", http.StatusFound)
}

func (h *Handler) signinForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "signin.html", nil, "")
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	password := r.PostFormValue("password")

	if msg, ok := validateCredentials(name, password); !ok {
		h.renderForm(w, r, http.StatusBadRequest, "signin.html", nil, msg)
		return
	}

	user, err := h.users.Authenticate(r.Context(), name, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			h.renderForm(w, r, http.StatusUnauthorized, "signin.html", nil, msgBadCredentials)
			return
		}
		h.renderError(w, r, err)
		return
	}

	session, err := h.startSession(w, r, user.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	_ = h.sessions.FlashSuccess(r.Context(), session.Token, msgSignedIn)
	http.Redirect(w, r, "/posts", http.StatusFound)
}

func (h *Handler) signout(w http.ResponseWriter, r *http.Request) {
	id := CurrentUser(r.Context())
	if err := h.sessions.End(r.Context(), id.Token); err != nil {
		h.renderError(w, r, err)
		return
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/posts", http.StatusFound)
}

func validateCredentials(name, password string) (string, bool) {
	if name == "" {
		return msgNameRequired, false
	}
	if password == "" {
		return msgPasswordRequired, false
	}
	return "", true
}
