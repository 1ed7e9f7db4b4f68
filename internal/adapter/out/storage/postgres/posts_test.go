package postgres

import (
	"testing"

	"myblog/internal/adapter/out/storage"

	"github.com/stretchr/testify/require"
)

func Test_listPostsBuilder(t *testing.T) {
	t.Parallel()

	author := int64(7)

	const selectCols = "SELECT id, author_id, title, content, hidden, views, favourite_count, created_at FROM posts"

	tests := []struct {
		name     string
		params   storage.ListPostsParams
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "default hides hidden posts",
			params:   storage.ListPostsParams{Limit: 10},
			wantSQL:  selectCols + " WHERE hidden = $1 ORDER BY created_at DESC, id DESC LIMIT 10",
			wantArgs: []interface{}{false},
		},
		{
			name: "author filter",
			params: storage.ListPostsParams{
				Filter: storage.ListPostsFilter{AuthorID: &author},
				Limit:  5,
				Offset: 10,
			},
			wantSQL:  selectCols + " WHERE author_id = $1 AND hidden = $2 ORDER BY created_at DESC, id DESC LIMIT 5 OFFSET 10",
			wantArgs: []interface{}{author, false},
		},
		{
			name: "author including hidden",
			params: storage.ListPostsParams{
				Filter: storage.ListPostsFilter{AuthorID: &author, IncludeHidden: true},
				Limit:  10,
			},
			wantSQL:  selectCols + " WHERE author_id = $1 ORDER BY created_at DESC, id DESC LIMIT 10",
			wantArgs: []interface{}{author},
		},
		{
			name:    "no limit no offset",
			params:  storage.ListPostsParams{Filter: storage.ListPostsFilter{IncludeHidden: true}},
			wantSQL: selectCols + " ORDER BY created_at DESC, id DESC",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := listPostsBuilder(tt.params).ToSql()
			require.NoError(t, err)
			require.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				require.Empty(t, args)
				return
			}
			require.Equal(t, tt.wantArgs, args)
		})
	}
}
