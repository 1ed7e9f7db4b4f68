package postgres

import (
	"context"
	"errors"
	"fmt"

	"myblog/internal/model"
	"myblog/internal/service"
	"myblog/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

var sessionColumns = []string{
	tableinfo.SessionTokenColumn,
	tableinfo.SessionUserIDColumn,
	tableinfo.SessionFlashSuccessColumn,
	tableinfo.SessionFlashErrorColumn,
	tableinfo.SessionExpiresAtColumn,
	tableinfo.SessionCreatedAtColumn,
}

type SessionStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewSessionStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *SessionStorage {
	return &SessionStorage{
		db:     db,
		getter: getter,
	}
}

func (s *SessionStorage) CreateSession(ctx context.Context, session model.Session) error {
	query, args, err := sq.
		Insert(tableinfo.SessionsTableName).
		Columns(
			tableinfo.SessionTokenColumn,
			tableinfo.SessionUserIDColumn,
			tableinfo.SessionFlashSuccessColumn,
			tableinfo.SessionFlashErrorColumn,
			tableinfo.SessionExpiresAtColumn,
		).
		Values(session.Token, session.UserID, session.Flash.Success, session.Flash.Error, session.ExpiresAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec insert session: %w", err)
	}
	return nil
}

func (s *SessionStorage) GetSession(ctx context.Context, token string) (model.Session, error) {
	query, args, err := sq.
		Select(sessionColumns...).
		From(tableinfo.SessionsTableName).
		Where(sq.Eq{tableinfo.SessionTokenColumn: token}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	var out model.Session
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.Token,
		&out.UserID,
		&out.Flash.Success,
		&out.Flash.Error,
		&out.ExpiresAt,
		&out.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, service.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("exec select session: %w", err)
	}
	return out, nil
}

func (s *SessionStorage) DeleteSession(ctx context.Context, token string) error {
	query, args, err := sq.
		Delete(tableinfo.SessionsTableName).
		Where(sq.Eq{tableinfo.SessionTokenColumn: token}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec delete session: %w", err)
	}
	return nil
}

func (s *SessionStorage) SetFlash(ctx context.Context, token string, flash model.Flash) error {
	query, args, err := sq.
		Update(tableinfo.SessionsTableName).
		Set(tableinfo.SessionFlashSuccessColumn, flash.Success).
		Set(tableinfo.SessionFlashErrorColumn, flash.Error).
		Where(sq.Eq{tableinfo.SessionTokenColumn: token}).
		Suffix("RETURNING " + tableinfo.SessionTokenColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	var dummy string
	if err := tr.QueryRow(ctx, query, args...).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.ErrNotFound
		}
		return fmt.Errorf("exec update flash: %w", err)
	}
	return nil
}

// popFlashQuery clears the flash and returns the values it held, in a
// single statement so a concurrent render cannot read the same flash
// twice. RETURNING sees the new (empty) row, hence the self-join on
// the locked old row.
var popFlashQuery = fmt.Sprintf(
	`UPDATE %[1]s SET %[2]s = '', %[3]s = ''
	 FROM (SELECT %[4]s, %[2]s, %[3]s FROM %[1]s WHERE %[4]s = $1 FOR UPDATE) old
	 WHERE %[1]s.%[4]s = old.%[4]s
	 RETURNING old.%[2]s, old.%[3]s`,
	tableinfo.SessionsTableName,
	tableinfo.SessionFlashSuccessColumn,
	tableinfo.SessionFlashErrorColumn,
	tableinfo.SessionTokenColumn,
)

func (s *SessionStorage) PopFlash(ctx context.Context, token string) (model.Flash, error) {
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	var flash model.Flash
	if err := tr.QueryRow(ctx, popFlashQuery, token).Scan(&flash.Success, &flash.Error); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Flash{}, service.ErrNotFound
		}
		return model.Flash{}, fmt.Errorf("exec pop flash: %w", err)
	}
	return flash, nil
}
