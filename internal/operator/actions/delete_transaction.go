package actions

import (
	"context"

	"github.com/carson-networks/pocket-planner/internal/storage"
)

// DeleteTransaction removes a transaction and reverses its effect on the card balance.
type DeleteTransaction struct {
	UserEmail string
	ID        string
	IAction
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	transaction, err := writer.Transactions.FindByID(ctx, t.UserEmail, t.ID)
	if err != nil {
		return err
	}

	card, err := writer.Cards.FindByID(ctx, t.UserEmail, transaction.CardID, true)
	if err != nil {
		return err
	}

	if err = writer.Cards.UpdateBalance(ctx, card.ID, card.CurrentBalance-transaction.Amount); err != nil {
		return err
	}

	return writer.Transactions.Delete(ctx, t.UserEmail, t.ID)
}
