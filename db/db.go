// Package db is the Postgres storage layer.
package db

import (
	"context"
	"database/sql"
	"embed"

	"emperror.dev/errors"
	"github.com/Masterminds/squirrel"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/db/stats"

	migrate "github.com/rubenv/sql-migrate"

	// pgx driver for migrations
	_ "github.com/jackc/pgx/v4/stdlib"
)

// sq is a squirrel builder for postgres
var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Querier is any object that can query the database.
type Querier interface {
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

// DB is the database connection.
type DB struct {
	*pgxpool.Pool

	// Hub is the sentry hub errors are reported to. Nil disables sentry.
	Hub *sentry.Hub
	// Stats counts queries. May be nil.
	Stats *stats.Client
}

// New connects to the database. Migrations are run separately, with RunMigrations.
func New(url string, hub *sentry.Hub) (*DB, error) {
	pool, err := pgxpool.Connect(context.Background(), url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	return &DB{
		Pool: pool,
		Hub:  hub,
	}, nil
}

//go:embed migrations
var fs embed.FS

// RunMigrations runs all of the migrations in migrations/.
func RunMigrations(url string) (err error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}

	// we close this because we end up using pgx's native driver for all other queries.
	defer db.Close()

	err = db.Ping()
	if err != nil {
		return errors.Wrap(err, "pinging database")
	}

	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "migrations",
	}

	migrate.SetTable("migration_history")

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "running migrations")
	}

	if n != 0 {
		common.Log.Debugf("Performed %v migrations!", n)
	}
	return nil
}
