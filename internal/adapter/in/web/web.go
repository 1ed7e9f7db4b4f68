// Package web is the HTTP adapter: server-rendered pages, sessions and
// redirect-with-flash flows over the service layer.
package web

import (
	"context"
	"net/http"

	"myblog/internal/model"
	"myblog/internal/service"
	"myblog/pkg/pagination"
)

type PostService interface {
	CreatePost(ctx context.Context, req service.CreatePostRequest) (model.Post, error)
	ListPosts(ctx context.Context, req service.ListPostsRequest) (pagination.Page[model.Post], error)
	GetPost(ctx context.Context, postID int64, viewerID *int64) (model.Post, []model.Comment, error)
	GetRawPost(ctx context.Context, postID, editorID int64) (model.Post, error)
	EditPost(ctx context.Context, req service.EditPostRequest) error
	RemovePost(ctx context.Context, postID, editorID int64) error
	ToggleHide(ctx context.Context, postID, editorID int64) (bool, error)
	ToggleFavourite(ctx context.Context, postID, userID int64) (bool, error)
}

type CommentService interface {
	CreateComment(ctx context.Context, req service.CreateCommentRequest) (model.Comment, error)
	RemoveComment(ctx context.Context, commentID, userID int64) (model.Comment, error)
}

type UserService interface {
	Register(ctx context.Context, req service.RegisterRequest) (model.User, error)
	Authenticate(ctx context.Context, name, password string) (model.User, error)
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
}

type SessionService interface {
	Start(ctx context.Context, userID int64) (model.Session, error)
	Get(ctx context.Context, token string) (model.Session, error)
	End(ctx context.Context, token string) error
	FlashSuccess(ctx context.Context, token, msg string) error
	FlashError(ctx context.Context, token, msg string) error
	PopFlash(ctx context.Context, token string) (model.Flash, error)
}

type Handler struct {
	posts     PostService
	comments  CommentService
	users     UserService
	sessions  SessionService
	renderer  *Renderer
	uploadDir string
}

func NewHandler(posts PostService, comments CommentService, users UserService, sessions SessionService, uploadDir string) *Handler {
	return &Handler{
		posts:     posts,
		comments:  comments,
		users:     users,
		sessions:  sessions,
		renderer:  NewRenderer(),
		uploadDir: uploadDir,
	}
}

// Routes wires every route behind the logging and session middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /posts", h.listPosts)
	mux.HandleFunc("GET /posts/create", h.requireLogin(h.createPostForm))
	mux.HandleFunc("POST /posts/create", h.requireLogin(h.createPost))
	mux.HandleFunc("GET /posts/{postID}", h.showPost)
	mux.HandleFunc("GET /posts/{postID}/edit", h.requireLogin(h.editPostForm))
	mux.HandleFunc("POST /posts/{postID}/edit", h.requireLogin(h.editPost))
	mux.HandleFunc("GET /posts/{postID}/remove", h.requireLogin(h.removePost))
	mux.HandleFunc("GET /posts/{postID}/hide", h.requireLogin(h.toggleHide))
	mux.HandleFunc("GET /posts/{postID}/favour", h.requireLogin(h.toggleFavourite))

	mux.HandleFunc("POST /posts/{postID}/comments", h.requireLogin(h.createComment))
	mux.HandleFunc("GET /comments/{commentID}/remove", h.requireLogin(h.removeComment))

	mux.HandleFunc("GET /signup", h.signupForm)
	mux.HandleFunc("POST /signup", h.signup)
	mux.HandleFunc("GET /signin", h.signinForm)
	mux.HandleFunc("POST /signin", h.signin)
	mux.HandleFunc("GET /signout", h.requireLogin(h.signout))

	mux.HandleFunc("POST /upload", h.requireLogin(h.upload))
	if h.uploadDir != "" {
		mux.Handle("GET /upload/", http.StripPrefix("/upload/", http.FileServer(http.Dir(h.uploadDir))))
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/posts", http.StatusFound)
	})

	return h.logRequests(h.withSession(mux))
}
