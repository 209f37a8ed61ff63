package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/pocket-planner/internal/config"
	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

var (
	ErrNotFound = sqlconfig.ErrNotFound
	ErrInUse    = sqlconfig.ErrInUse
)

// WriterFactory opens a database transaction and returns a Writer bound to it.
type WriterFactory func(ctx context.Context) (*Writer, error)

// Storage exposes read access to every table outside of a transaction.
// Writes that span several rows go through Write.
type Storage struct {
	DB           *sql.DB
	Cards        sqlconfig.ICardTable
	Categories   sqlconfig.ICategoryTable
	Transactions sqlconfig.ITransactionTable
	Writers      WriterFactory
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	return NewStorageFromDB(db), nil
}

func NewStorageFromDB(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)

	return &Storage{
		DB:           db,
		Cards:        sqlconfig.NewCardsTable(bobDB),
		Categories:   sqlconfig.NewCategoriesTable(bobDB),
		Transactions: sqlconfig.NewTransactionsTable(bobDB),
		Writers: func(ctx context.Context) (*Writer, error) {
			tx, err := bobDB.BeginTx(ctx, nil)
			if err != nil {
				return nil, err
			}
			return NewWriter(tx), nil
		},
	}
}

// Write begins a transaction. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.Writers(ctx)
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
