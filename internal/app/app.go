package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"myblog/config"
	"myblog/internal/adapter/in/web"
	memstore "myblog/internal/adapter/out/storage/inmemory"
	pgstore "myblog/internal/adapter/out/storage/postgres"
	"myblog/internal/service"
	"myblog/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	cfg  config.Config
	srv  *http.Server
	pool *pgxpool.Pool
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	var (
		postStorage    service.PostStorage
		commentStorage service.CommentStorage
		userStorage    service.UserStorage
		sessionStorage service.SessionStorage
		tx             service.Transactor
		pool           *pgxpool.Pool
	)

	switch cfg.StorageType {
	case "postgres":
		var err error
		pool, err = pgxpool.New(ctx, cfg.Postgres.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		postStorage = pgstore.NewPostStorage(pool, trmpgx.DefaultCtxGetter)
		commentStorage = pgstore.NewCommentStorage(pool, trmpgx.DefaultCtxGetter)
		userStorage = pgstore.NewUserStorage(pool, trmpgx.DefaultCtxGetter)
		sessionStorage = pgstore.NewSessionStorage(pool, trmpgx.DefaultCtxGetter)
		tx = manager.Must(trmpgx.NewDefaultFactory(pool))

	default:
		postStorage = memstore.NewPostStorage()
		commentStorage = memstore.NewCommentStorage()
		userStorage = memstore.NewUserStorage()
		sessionStorage = memstore.NewSessionStorage()
		tx = memstore.Transactor{}
	}

	postSvc := service.NewPostService(postStorage, commentStorage, tx)
	commentSvc := service.NewCommentService(commentStorage, postStorage)
	userSvc := service.NewUserService(userStorage)
	sessionSvc := service.NewSessionService(sessionStorage, time.Duration(cfg.Session.TTLHours)*time.Hour)

	handler := web.NewHandler(postSvc, commentSvc, userSvc, sessionSvc, cfg.Upload.Dir)

	addr := ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("app initialized", "addr", addr, "storage", cfg.StorageType)
	return &App{cfg: cfg, srv: srv, pool: pool}, nil
}

func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(shCtx)
		if a.pool != nil {
			a.pool.Close()
		}
		return nil

	case err := <-errCh:
		if a.pool != nil {
			a.pool.Close()
		}
		return err
	}
}
