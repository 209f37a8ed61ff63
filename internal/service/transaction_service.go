package service

import (
	"context"

	"github.com/carson-networks/pocket-planner/internal/operator/actions"
	"github.com/carson-networks/pocket-planner/internal/storage"
	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

const (
	DefaultTransactionLimit = 50
	MaxTransactionLimit     = 200
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, processor ActionProcessor) *TransactionService {
	return &TransactionService{storage: store, processor: processor}
}

// ClampLimit bounds a page size to 1..MaxTransactionLimit.
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxTransactionLimit {
		return MaxTransactionLimit
	}
	return limit
}

// ListTransactions returns one page of the user's transactions, newest first,
// and the next page when more rows exist.
func (s *TransactionService) ListTransactions(ctx context.Context, userEmail string, page TransactionPage) ([]Transaction, *TransactionPage, error) {
	limit := ClampLimit(page.Limit)
	offset := max(page.Offset, 0)

	rows, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		UserEmail: userEmail,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, nil, err
	}

	var next *TransactionPage
	if len(rows) > limit {
		rows = rows[:limit]
		next = &TransactionPage{Limit: limit, Offset: offset + limit}
	}

	transactions := make([]Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = transactionFromStorage(row)
	}
	return transactions, next, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, userEmail, id string) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, userEmail, id)
	if err != nil {
		return nil, err
	}
	transaction := transactionFromStorage(row)
	return &transaction, nil
}

// CreateTransaction records the transaction and applies its amount to the card balance.
func (s *TransactionService) CreateTransaction(ctx context.Context, userEmail string, create TransactionCreate) (*Transaction, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{
		Transaction: sqlconfig.Transaction{
			ID:              id,
			UserEmail:       userEmail,
			CardID:          create.CardID,
			CategoryID:      create.CategoryID,
			Amount:          create.Amount,
			Description:     create.Description,
			TransactionType: string(create.Type),
			Date:            create.Date.UTC(),
		},
	}
	if err = s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	transaction := transactionFromStorage(&action.Transaction)
	return &transaction, nil
}

// DeleteTransaction removes the transaction and reverses its balance change.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userEmail, id string) error {
	return s.processor.Process(ctx, &actions.DeleteTransaction{UserEmail: userEmail, ID: id})
}
