package web

import (
	"net/http"
	"strconv"

	"myblog/internal/service"
)

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	id := CurrentUser(r.Context())
	postID, err := pathID(r, "postID")
	if err != nil {
		h.renderError(w, r, service.ErrInvalidRequest)
		return
	}

	content := r.PostFormValue("content")
	if content == "" {
		h.flashError(r, id, msgFillContent)
		h.redirectBack(w, r, "/posts/"+strconv.FormatInt(postID, 10))
		return
	}

	if _, err := h.comments.CreateComment(r.Context(), service.CreateCommentRequest{
		PostID:   postID,
		AuthorID: id.UserID,
		Content:  content,
	}); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.flashSuccess(r, id, msgCommentPosted)
	http.Redirect(w, r, "/posts/"+strconv.FormatInt(postID, 10), http.StatusFound)
}

func (h *Handler) removeComment(w http.ResponseWriter, r *http.Request) {
	id := CurrentUser(r.Context())
	commentID, err := pathID(r, "commentID")
	if err != nil {
		h.renderError(w, r, service.ErrInvalidRequest)
		return
	}

	comment, err := h.comments.RemoveComment(r.Context(), commentID, id.UserID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.flashSuccess(r, id, msgCommentGone)
	h.redirectBack(w, r, "/posts/"+strconv.FormatInt(comment.PostID, 10))
}
