package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pocket-planner/internal/operator/actions"
	"github.com/carson-networks/pocket-planner/internal/storage"
)

// ActionProcessor runs an action inside one database transaction.
// The operator delegator is the production implementation.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Card        *CardService
	Category    *CategoryService
	Transaction *TransactionService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, processor ActionProcessor) *Service {
	return &Service{
		Card:        NewCardService(store, processor),
		Category:    NewCategoryService(store),
		Transaction: NewTransactionService(store, processor),
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
