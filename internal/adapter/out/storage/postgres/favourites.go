package postgres

import (
	"context"
	"errors"
	"fmt"

	"myblog/internal/service"
	"myblog/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Favourite relation operations. AddFavourite and RemoveFavourite each
// touch two tables (the relation row and the post counter); the service
// wraps them in a trm transaction so both writes land together.

func (s *PostStorage) IsFavourite(ctx context.Context, postID, userID int64) (bool, error) {
	query, args, err := sq.
		Select("1").
		From(tableinfo.FavouritesTableName).
		Where(sq.Eq{
			tableinfo.FavouritePostIDColumn: postID,
			tableinfo.FavouriteUserIDColumn: userID,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	var one int
	if err := tr.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exec select favourite: %w", err)
	}
	return true, nil
}

func (s *PostStorage) AddFavourite(ctx context.Context, postID, userID int64) error {
	query, args, err := sq.
		Insert(tableinfo.FavouritesTableName).
		Columns(tableinfo.FavouritePostIDColumn, tableinfo.FavouriteUserIDColumn).
		Values(postID, userID).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec insert favourite: %w", err)
	}
	return s.bumpFavouriteCount(ctx, postID, +1)
}

func (s *PostStorage) RemoveFavourite(ctx context.Context, postID, userID int64) error {
	query, args, err := sq.
		Delete(tableinfo.FavouritesTableName).
		Where(sq.Eq{
			tableinfo.FavouritePostIDColumn: postID,
			tableinfo.FavouriteUserIDColumn: userID,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	tag, err := tr.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec delete favourite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return s.bumpFavouriteCount(ctx, postID, -1)
}

func (s *PostStorage) bumpFavouriteCount(ctx context.Context, postID int64, delta int) error {
	query, args, err := sq.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostFavouriteCountColumn,
			sq.Expr(fmt.Sprintf("%s + (%d)", tableinfo.PostFavouriteCountColumn, delta))).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		Suffix("RETURNING " + tableinfo.PostIDColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	var dummy int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.ErrNotFound
		}
		return fmt.Errorf("exec update favourite_count: %w", err)
	}
	return nil
}

func (s *PostStorage) GetFavouriteUserIDs(ctx context.Context, postID int64) ([]int64, error) {
	return s.selectFavouriteIDs(ctx,
		tableinfo.FavouriteUserIDColumn,
		sq.Eq{tableinfo.FavouritePostIDColumn: postID},
	)
}

func (s *PostStorage) GetFavouritePostIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.selectFavouriteIDs(ctx,
		tableinfo.FavouritePostIDColumn,
		sq.Eq{tableinfo.FavouriteUserIDColumn: userID},
	)
}

func (s *PostStorage) selectFavouriteIDs(ctx context.Context, column string, where sq.Eq) ([]int64, error) {
	query, args, err := sq.
		Select(column).
		From(tableinfo.FavouritesTableName).
		Where(where).
		OrderBy(tableinfo.FavouriteCreatedAtColumn + " ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select favourites: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favourite id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
