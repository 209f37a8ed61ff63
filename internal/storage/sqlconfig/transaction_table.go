package sqlconfig

import (
	"context"
	"fmt"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var transactionColumns = []any{
	"id", "user_email", "card_id", "category_id", "amount", "description", "transaction_type", "date",
}

// Transaction represents a transaction record. Amount is integer cents.
type Transaction struct {
	ID              string    `db:"id"`
	UserEmail       string    `db:"user_email"`
	CardID          string    `db:"card_id"`
	CategoryID      string    `db:"category_id"`
	Amount          int64     `db:"amount"`
	Description     string    `db:"description"`
	TransactionType string    `db:"transaction_type"`
	Date            time.Time `db:"date"`
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	UserEmail string
	CardID    *string
	Limit     int
	Offset    int
}

//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, userEmail, id string) (*Transaction, error)
	Insert(ctx context.Context, transaction *Transaction) error
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Delete(ctx context.Context, userEmail, id string) error
	DeleteByCard(ctx context.Context, userEmail, cardID string) error
}

type TransactionsTable struct {
	exec bob.Executor
}

var _ ITransactionTable = (*TransactionsTable)(nil)

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

func (t *TransactionsTable) FindByID(ctx context.Context, userEmail, id string) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(TransactionsTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_email").EQ(psql.Arg(userEmail))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, notFound(err, TransactionsTableName)
	}
	return &row, nil
}

func (t *TransactionsTable) Insert(ctx context.Context, transaction *Transaction) error {
	q := psql.Insert(
		im.Into(TransactionsTableName,
			"id", "user_email", "card_id", "category_id", "amount", "description", "transaction_type", "date"),
		im.Values(
			psql.Arg(transaction.ID),
			psql.Arg(transaction.UserEmail),
			psql.Arg(transaction.CardID),
			psql.Arg(transaction.CategoryID),
			psql.Arg(transaction.Amount),
			psql.Arg(transaction.Description),
			psql.Arg(transaction.TransactionType),
			psql.Arg(transaction.Date),
		),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("category %s: %w", transaction.CategoryID, ErrNotFound)
	}
	return err
}

// List returns the newest transactions first. A positive Limit fetches one
// extra row so callers can tell whether another page exists.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(TransactionsTableName),
		sm.Where(psql.Quote("user_email").EQ(psql.Arg(filter.UserEmail))),
	}
	if filter.CardID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("card_id").EQ(psql.Arg(*filter.CardID))))
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}
	queryMods = append(queryMods,
		sm.OrderBy("date").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (t *TransactionsTable) Delete(ctx context.Context, userEmail, id string) error {
	q := psql.Delete(
		dm.From(TransactionsTableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_email").EQ(psql.Arg(userEmail))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

func (t *TransactionsTable) DeleteByCard(ctx context.Context, userEmail, cardID string) error {
	q := psql.Delete(
		dm.From(TransactionsTableName),
		dm.Where(psql.Quote("card_id").EQ(psql.Arg(cardID))),
		dm.Where(psql.Quote("user_email").EQ(psql.Arg(userEmail))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
