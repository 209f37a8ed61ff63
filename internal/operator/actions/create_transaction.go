package actions

import (
	"context"
	"fmt"

	"github.com/carson-networks/pocket-planner/internal/storage"
	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

// CreateTransaction records a transaction and adds its amount to the card balance.
// The card must belong to the transaction's user.
type CreateTransaction struct {
	Transaction sqlconfig.Transaction
	IAction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	card, err := writer.Cards.FindByID(ctx, t.Transaction.UserEmail, t.Transaction.CardID, true)
	if err != nil {
		return fmt.Errorf("card %s: %w", t.Transaction.CardID, err)
	}

	if err = writer.Transactions.Insert(ctx, &t.Transaction); err != nil {
		return err
	}

	return writer.Cards.UpdateBalance(ctx, card.ID, card.CurrentBalance+t.Transaction.Amount)
}
