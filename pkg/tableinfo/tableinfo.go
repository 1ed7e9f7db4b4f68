package tableinfo

const (
	PostsTableName = "posts"

	PostIDColumn             = "id"
	PostAuthorIDColumn       = "author_id"
	PostTitleColumn          = "title"
	PostContentColumn        = "content"
	PostHiddenColumn         = "hidden"
	PostViewsColumn          = "views"
	PostFavouriteCountColumn = "favourite_count"
	PostCreatedAtColumn      = "created_at"
)

const (
	UsersTableName = "users"

	UserIDColumn           = "id"
	UserNameColumn         = "name"
	UserPasswordHashColumn = "password_hash"
	UserCreatedAtColumn    = "created_at"
)

const (
	CommentsTableName = "comments"

	CommentIDColumn        = "id"
	CommentPostIDColumn    = "post_id"
	CommentAuthorIDColumn  = "author_id"
	CommentContentColumn   = "content"
	CommentCreatedAtColumn = "created_at"
)

const (
	FavouritesTableName = "favourites"

	FavouritePostIDColumn    = "post_id"
	FavouriteUserIDColumn    = "user_id"
	FavouriteCreatedAtColumn = "created_at"
)

const (
	SessionsTableName = "sessions"

	SessionTokenColumn        = "token"
	SessionUserIDColumn       = "user_id"
	SessionFlashSuccessColumn = "flash_success"
	SessionFlashErrorColumn   = "flash_error"
	SessionExpiresAtColumn    = "expires_at"
	SessionCreatedAtColumn    = "created_at"
)
