package storage

// ListPostsFilter restricts a post listing. A nil AuthorID means all
// authors. Hidden posts are excluded unless IncludeHidden is set.
type ListPostsFilter struct {
	AuthorID      *int64
	IncludeHidden bool
}

type ListPostsParams struct {
	Filter ListPostsFilter
	Limit  int
	Offset int
}

// UpdatePostParams is the partial merge applied by an edit: title,
// content and the hidden flag, nothing else.
type UpdatePostParams struct {
	Title   string
	Content string
	Hidden  bool
}
