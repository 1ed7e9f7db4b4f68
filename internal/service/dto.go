package service

type CreatePostRequest struct {
	AuthorID int64  `validate:"required,gt=0"`
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	Hidden   bool
}

type EditPostRequest struct {
	PostID   int64  `validate:"required,gt=0"`
	EditorID int64  `validate:"required,gt=0"`
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	Hidden   bool
}

// ListPostsRequest filters and paginates the post listing. ViewerID is
// the signed-in user, nil for anonymous visitors; hidden posts are
// revealed only when the viewer asks for their own posts.
type ListPostsRequest struct {
	AuthorID *int64
	ViewerID *int64
	Page     int
	Rows     int
}

type CreateCommentRequest struct {
	PostID   int64  `validate:"required,gt=0"`
	AuthorID int64  `validate:"required,gt=0"`
	Content  string `validate:"required"`
}

type RegisterRequest struct {
	Name     string `validate:"required,min=1,max=64"`
	Password string `validate:"required,min=6"`
}
