package web

import (
	"net/http"
	"strconv"

	"myblog/internal/model"
	"myblog/internal/service"
	"myblog/pkg/logger"
	"myblog/pkg/pagination"
)

// Flash strings kept verbatim from the blog's original UI.
const (
	msgFillTitle     = "请填写标题"
	msgFillContent   = "请填写内容"
	msgPostCreated   = "发表成功"
	msgPostEdited    = "编辑文章成功"
	msgPostRemoved   = "删除文章成功"
	msgPostHidden    = "文章已隐藏"
	msgPostRevealed  = "文章已显示"
	msgFavoured      = "收藏成功"
	msgUnfavoured    = "取消收藏"
	msgCommentPosted = "留言成功"
	msgCommentGone   = "删除留言成功"
	msgSignedIn      = "登录成功"
)

type postListPage struct {
	Posts  []model.Post
	Page   int
	Rows   int
	Pages  int
	Author string
}

type postDetailPage struct {
	Post     model.Post
	Comments []model.Comment
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := service.ListPostsRequest{
		Page: intQuery(q.Get("page"), 1),
		Rows: intQuery(q.Get("rows"), pagination.DefaultRows),
	}
	if raw := q.Get("author"); raw != "" {
		authorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.renderError(w, r, service.ErrInvalidRequest)
			return
		}
		req.AuthorID = &authorID
	}
	if id := CurrentUser(r.Context()); id != nil {
		req.ViewerID = &id.UserID
	}

	page, err := h.posts.ListPosts(r.Context(), req)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "posts.html", postListPage{
		Posts:  page.Items,
		Page:   page.Page,
		Rows:   page.Rows,
		Pages:  page.Pages,
		Author: q.Get("author"),
	})
}

func (h *Handler) createPostForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "create.html", nil)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	id := CurrentUser(r.Context())
	title := r.PostFormValue("title")
	content := r.PostFormValue("content")
	hidden := r.PostFormValue("hide") == "1"

	if msg, ok := validatePostForm(title, content); !ok {
		h.flashError(r, id, msg)
		h.redirectBack(w, r, "/posts/create")
		return
	}

	post, err := h.posts.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID: id.UserID,
		Title:    title,
		Content:  content,
		Hidden:   hidden,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.flashSuccess(r, id, msgPostCreated)
	http.Redirect(w, r, "/posts/"+strconv.FormatInt(post.ID, 10), http.StatusFound)
}

func (h *Handler) showPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		h.renderError(w, r, service.ErrInvalidRequest)
		return
	}

	var viewerID *int64
	if id := CurrentUser(r.Context()); id != nil {
		viewerID = &id.UserID
	}

	post, comments, err := h.posts.GetPost(r.Context(), postID, viewerID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post.html", postDetailPage{
		Post:     post,
		Comments: comments,
	})
}

func (h *Handler) editPostForm(w http.ResponseWriter, r *http.Request) {
	id := CurrentUser(r.Context())
	postID, err := pathID(r, "postID")
	if err != nil {
		h.renderError(w, r, service.ErrInvalidRequest)
		return
	}

	post, err := h.posts.GetRawPost(r.Context(), postID, id.UserID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "edit.html", post)
}

func (h *Handler) editPost(w http.ResponseWriter, r *http.Request) {
	id := CurrentUser(r.Context())
	postID, err := pathID(r, "postID")
	if err != nil {
		h.renderError(w, r, service.ErrInvalidRequest)
		return
	}

	title := r.PostFormValue("title")
	content := r.PostFormValue("content")
	hidden := r.PostFormValue("hide") == "1"

	if msg, ok := validatePostForm(title, content); !ok {
		h.flashError(r, id, msg)
		h.redirectBack(w, r, "/posts/"+strconv.FormatInt(postID, 10)+"/edit")
		return
	}

	if err := h.posts.EditPost(r.Context(), service.EditPostRequest{
		PostID:   postID,
		EditorID: id.UserID,
		Title:    title,
		Content:  content,
		Hidden:   hidden,
	}); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.flashSuccess(r, id, msgPostEdited)
	http.Redirect(w, r, "/posts/"+strconv.FormatInt(postID, 10), http.StatusFound)
}

func (h *Handler) removePost(w http.ResponseWriter, r *http.Request) {
	id := CurrentUser(r.Context())
	postID, err := pathID(r, "postID")
	if err != nil {
		h.renderError(w, r, service.ErrInvalidRequest)
		return
	}

	if err := h.posts.RemovePost(r.Context(), postID, id.UserID); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.flashSuccess(r, id, msgPostRemoved)
	http.Redirect(w, r, "/posts", http.StatusFound)
}

func (h *Handler) toggleHide(w http.ResponseWriter, r *http.Request) {
	id := CurrentUser(r.Context())
	postID, err := pathID(r, "postID")
	if err != nil {
		h.renderError(w, r, service.ErrInvalidRequest)
		return
	}

	hidden, err := h.posts.ToggleHide(r.Context(), postID, id.UserID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if hidden {
		h.flashSuccess(r, id, msgPostHidden)
	} else {
		h.flashSuccess(r, id, msgPostRevealed)
	}
	h.redirectBack(w, r, "/posts/"+strconv.FormatInt(postID, 10))
}

func (h *Handler) toggleFavourite(w http.ResponseWriter, r *http.Request) {
	id := CurrentUser(r.Context())
	postID, err := pathID(r, "postID")
	if err != nil {
		h.renderError(w, r, service.ErrInvalidRequest)
		return
	}

	favoured, err := h.posts.ToggleFavourite(r.Context(), postID, id.UserID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if favoured {
		h.flashSuccess(r, id, msgFavoured)
	} else {
		h.flashSuccess(r, id, msgUnfavoured)
	}
	h.redirectBack(w, r, "/posts/"+strconv.FormatInt(postID, 10))
}

func validatePostForm(title, content string) (string, bool) {
	if title == "" {
		return msgFillTitle, false
	}
	if content == "" {
		return msgFillContent, false
	}
	return "", true
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

func intQuery(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) flashSuccess(r *http.Request, id *Identity, msg string) {
	if err := h.sessions.FlashSuccess(r.Context(), id.Token, msg); err != nil {
		logger.FromContext(r.Context()).Warn("setting flash failed", "error", err)
	}
}

func (h *Handler) flashError(r *http.Request, id *Identity, msg string) {
	if err := h.sessions.FlashError(r.Context(), id.Token, msg); err != nil {
		logger.FromContext(r.Context()).Warn("setting flash failed", "error", err)
	}
}
