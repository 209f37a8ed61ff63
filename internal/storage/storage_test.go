package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

const testEmail = "user@example.com"

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("storage integration tests need docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("pocket_planner"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	result, err := Migrate(db, "file://../../migrations")
	require.NoError(t, err)
	require.Equal(t, uint(1), result.PostMigrationVersion)

	return NewStorageFromDB(db)
}

func TestStorage_DefaultCategoriesSeeded(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	categories, err := store.Categories.List(ctx, testEmail)
	require.NoError(t, err)
	require.Len(t, categories, 7)
	assert.Equal(t, "Food & Dining", categories[0].Name)
	assert.Nil(t, categories[0].UserEmail)

	owner, color := testEmail, "#000000"
	err = store.Categories.Insert(ctx, &sqlconfig.Category{ID: "custom", UserEmail: &owner, Name: "Pets", Color: &color})
	require.NoError(t, err)

	categories, err = store.Categories.List(ctx, testEmail)
	require.NoError(t, err)
	assert.Len(t, categories, 8)

	others, err := store.Categories.List(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Len(t, others, 7)

	_, err = store.Categories.FindOwned(ctx, testEmail, "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_CardLifecycleAndCascade(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	limit := int64(500000)
	require.NoError(t, store.Cards.Insert(ctx, &sqlconfig.Card{
		ID: "card-1", UserEmail: testEmail, Name: "Visa", CardType: "credit", CreditLimit: &limit,
	}))

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"tx-1", "tx-2", "tx-3"} {
		require.NoError(t, writer.Transactions.Insert(ctx, &sqlconfig.Transaction{
			ID: id, UserEmail: testEmail, CardID: "card-1", CategoryID: "1",
			Amount: 1000, Description: id, TransactionType: "expense", Date: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, writer.Cards.UpdateBalance(ctx, "card-1", 3000))
	require.NoError(t, writer.Commit(ctx))

	card, err := store.Cards.FindByID(ctx, testEmail, "card-1", false)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), card.CurrentBalance)
	assert.Equal(t, limit, *card.CreditLimit)

	page, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{UserEmail: testEmail, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 3, "limit+1 rows are fetched")
	assert.Equal(t, "tx-3", page[0].ID, "newest first")

	require.NoError(t, store.Cards.Update(ctx, testEmail, "card-1", &sqlconfig.CardUpdate{Name: omit.From("Visa Gold")}))
	card, err = store.Cards.FindByID(ctx, testEmail, "card-1", false)
	require.NoError(t, err)
	assert.Equal(t, "Visa Gold", card.Name)

	writer, err = store.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, writer.Transactions.DeleteByCard(ctx, testEmail, "card-1"))
	require.NoError(t, writer.Cards.Delete(ctx, testEmail, "card-1"))
	require.NoError(t, writer.Commit(ctx))

	_, err = store.Cards.FindByID(ctx, testEmail, "card-1", false)
	assert.ErrorIs(t, err, ErrNotFound)

	remaining, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{UserEmail: testEmail})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestStorage_RollbackDiscardsWrites(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, writer.Cards.Insert(ctx, &sqlconfig.Card{ID: "card-r", UserEmail: testEmail, Name: "Debit", CardType: "debit"}))
	require.NoError(t, writer.Rollback(ctx))

	cards, err := store.Cards.List(ctx, testEmail)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
