package model

import "time"

type Post struct {
	ID             int64
	AuthorID       int64
	Title          string
	Content        string
	Hidden         bool
	Views          int64
	FavouriteCount int64
	CreatedAt      time.Time
}
