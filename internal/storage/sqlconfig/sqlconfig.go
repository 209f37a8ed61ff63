package sqlconfig

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	CardsTableName        = "cards"
	CategoriesTableName   = "categories"
	TransactionsTableName = "transactions"
)

var (
	// ErrNotFound is returned when a row does not exist or is not owned by the caller.
	ErrNotFound = errors.New("record not found")
	// ErrInUse is returned when a row cannot be removed while other rows reference it.
	ErrInUse = errors.New("record is still referenced")
)

const foreignKeyViolation = pq.ErrorCode("23503")

func notFound(err error, table string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", table, ErrNotFound)
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
