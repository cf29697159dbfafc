package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/jmoiron/sqlx"
)

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	// Source loads the raw collections a report is computed from.
	Source interface {
		// LoadSnapshot returns every catalog collection and the
		// transactional collections narrowed to period. A zero period
		// loads everything.
		LoadSnapshot(ctx context.Context, period entity.TimeRange) (*entity.Snapshot, error)
	}

	// Pinger is implemented by sources backed by a live connection.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	Documents interface {
		ContextStore
		Source
		// ImportSnapshot upserts every document of the snapshot and returns
		// how many were written.
		ImportSnapshot(ctx context.Context, s *entity.Snapshot) (int, error)
		// CountDocuments returns the number of stored documents per collection.
		CountDocuments(ctx context.Context) (map[string]int, error)
	}

	Repository interface {
		Documents() Documents
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
