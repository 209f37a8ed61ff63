package actions

import (
	"context"

	"github.com/carson-networks/pocket-planner/internal/storage"
	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

// DeleteCard removes a card together with all of its transactions.
type DeleteCard struct {
	UserEmail string
	ID        string
	IAction
}

func (c *DeleteCard) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Cards.FindByID(ctx, c.UserEmail, c.ID, true); err != nil {
		return err
	}

	if err := writer.Transactions.DeleteByCard(ctx, c.UserEmail, c.ID); err != nil {
		return err
	}

	return writer.Cards.Delete(ctx, c.UserEmail, c.ID)
}

// UpdateCard applies a partial update and stores the resulting row in Result.
type UpdateCard struct {
	UserEmail string
	ID        string
	Update    sqlconfig.CardUpdate

	Result *sqlconfig.Card
	IAction
}

func (c *UpdateCard) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Cards.FindByID(ctx, c.UserEmail, c.ID, true); err != nil {
		return err
	}

	if err := writer.Cards.Update(ctx, c.UserEmail, c.ID, &c.Update); err != nil {
		return err
	}

	card, err := writer.Cards.FindByID(ctx, c.UserEmail, c.ID, false)
	if err != nil {
		return err
	}
	c.Result = card
	return nil
}
