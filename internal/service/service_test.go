package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/pocket-planner/internal/operator/actions"
	"github.com/carson-networks/pocket-planner/internal/storage"
	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

const testEmail = "user@example.com"

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type testDeps struct {
	cards        *sqlconfig.MockICardTable
	categories   *sqlconfig.MockICategoryTable
	transactions *sqlconfig.MockITransactionTable
	processor    *mockProcessor
}

func newTestDeps(t *testing.T) (*Service, testDeps) {
	t.Helper()
	deps := testDeps{
		cards:        sqlconfig.NewMockICardTable(t),
		categories:   sqlconfig.NewMockICategoryTable(t),
		transactions: sqlconfig.NewMockITransactionTable(t),
		processor:    &mockProcessor{},
	}
	t.Cleanup(func() { deps.processor.AssertExpectations(t) })

	store := &storage.Storage{
		Cards:        deps.cards,
		Categories:   deps.categories,
		Transactions: deps.transactions,
	}
	return NewService(store, deps.processor), deps
}
