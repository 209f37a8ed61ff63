package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

// Committer finishes a database transaction.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer groups the tables bound to a single database transaction.
type Writer struct {
	tx           Committer
	Cards        sqlconfig.ICardTable
	Categories   sqlconfig.ICategoryTable
	Transactions sqlconfig.ITransactionTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           &tx,
		Cards:        sqlconfig.NewCardsTable(&tx),
		Categories:   sqlconfig.NewCategoriesTable(&tx),
		Transactions: sqlconfig.NewTransactionsTable(&tx),
	}
}

// NewWriterWithTables builds a Writer from explicit parts, mainly for tests.
func NewWriterWithTables(
	tx Committer,
	cards sqlconfig.ICardTable,
	categories sqlconfig.ICategoryTable,
	transactions sqlconfig.ITransactionTable,
) *Writer {
	return &Writer{
		tx:           tx,
		Cards:        cards,
		Categories:   categories,
		Transactions: transactions,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
