package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/bookshelf/pkg/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type logQueryHook struct {
	log logger.Logger
}

func (*logQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (qh *logQueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	data := logger.Data{
		"duration_ms": time.Since(event.StartTime).Milliseconds(),
	}
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		data["error"] = event.Err.Error()
	}
	qh.log.Debug(event.Query, data)
}

func New(cfg *config.Config) (*bun.DB, error) {
	var db *bun.DB

	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		connConfig, err := pgx.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "invalid database url")
		}
		db = bun.NewDB(stdlib.OpenDB(*connConfig), pgdialect.New())
	case config.DriverSQLite:
		sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseFilePath)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		// A single connection serializes writes, which avoids SQLITE_BUSY under
		// concurrent requests and keeps :memory: databases from splitting
		// across connections.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	// print out all queries in debug mode
	if cfg.DatabaseDebug {
		db.AddQueryHook(&logQueryHook{logger.NewWithLevel("debug")})
	}

	// Retry up to a few times to ensure that the database can connect.
	var err error
	for i := 0; i < cfg.DatabaseConnectRetryCount; i++ {
		_, err = db.Exec("SELECT 1")
		if err != nil {
			time.Sleep(cfg.DatabaseConnectRetryDelay)
			continue
		}
		// We've successfully connected.
		break
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if cfg.DatabaseDriver == config.DriverSQLite {
		if err := configureSQLite(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func configureSQLite(db *bun.DB) error {
	// WAL mode allows concurrent readers from other processes during writes.
	_, err := db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return errors.Wrap(err, "failed to enable WAL mode")
	}

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		return errors.Wrap(err, "failed to enable foreign keys")
	}

	return nil
}
