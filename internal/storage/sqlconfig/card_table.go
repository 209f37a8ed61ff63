package sqlconfig

import (
	"context"

	"github.com/aarondl/opt/omit"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var cardColumns = []any{"id", "user_email", "name", "card_type", "credit_limit", "current_balance"}

// Card represents a card record. Money columns are integer cents.
type Card struct {
	ID             string `db:"id"`
	UserEmail      string `db:"user_email"`
	Name           string `db:"name"`
	CardType       string `db:"card_type"`
	CreditLimit    *int64 `db:"credit_limit"`
	CurrentBalance int64  `db:"current_balance"`
}

// CardUpdate carries the optional fields of a card patch.
type CardUpdate struct {
	Name        omit.Val[string]
	CreditLimit omit.Val[int64]
}

// ICardTable defines the interface for card storage operations.
//
//go:generate mockery --name ICardTable --output mock_ICardTable.go
type ICardTable interface {
	FindByID(ctx context.Context, userEmail, id string, forUpdate bool) (*Card, error)
	Insert(ctx context.Context, card *Card) error
	List(ctx context.Context, userEmail string) ([]*Card, error)
	Update(ctx context.Context, userEmail, id string, update *CardUpdate) error
	UpdateBalance(ctx context.Context, id string, balance int64) error
	Delete(ctx context.Context, userEmail, id string) error
}

// CardsTable provides access to the cards table.
type CardsTable struct {
	exec bob.Executor
}

var _ ICardTable = (*CardsTable)(nil)

func NewCardsTable(exec bob.Executor) *CardsTable {
	return &CardsTable{exec: exec}
}

func (t *CardsTable) FindByID(ctx context.Context, userEmail, id string, forUpdate bool) (*Card, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(cardColumns...),
		sm.From(CardsTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_email").EQ(psql.Arg(userEmail))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Card]())
	if err != nil {
		return nil, notFound(err, CardsTableName)
	}
	return &row, nil
}

func (t *CardsTable) Insert(ctx context.Context, card *Card) error {
	q := psql.Insert(
		im.Into(CardsTableName, "id", "user_email", "name", "card_type", "credit_limit", "current_balance"),
		im.Values(
			psql.Arg(card.ID),
			psql.Arg(card.UserEmail),
			psql.Arg(card.Name),
			psql.Arg(card.CardType),
			psql.Arg(card.CreditLimit),
			psql.Arg(card.CurrentBalance),
		),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

func (t *CardsTable) List(ctx context.Context, userEmail string) ([]*Card, error) {
	q := psql.Select(
		sm.Columns(cardColumns...),
		sm.From(CardsTableName),
		sm.Where(psql.Quote("user_email").EQ(psql.Arg(userEmail))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[Card]())
	if err != nil {
		return nil, err
	}

	result := make([]*Card, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// Update applies the set fields of update. An empty update is a no-op.
func (t *CardsTable) Update(ctx context.Context, userEmail, id string, update *CardUpdate) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(CardsTableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_email").EQ(psql.Arg(userEmail))),
	}
	sets := 0
	if name, ok := update.Name.Get(); ok {
		queryMods = append(queryMods, um.SetCol("name").To(psql.Arg(name)))
		sets++
	}
	if limit, ok := update.CreditLimit.Get(); ok {
		queryMods = append(queryMods, um.SetCol("credit_limit").To(psql.Arg(limit)))
		sets++
	}
	if sets == 0 {
		return nil
	}

	_, err := bob.Exec(ctx, t.exec, psql.Update(queryMods...))
	return err
}

func (t *CardsTable) UpdateBalance(ctx context.Context, id string, balance int64) error {
	q := psql.Update(
		um.Table(CardsTableName),
		um.SetCol("current_balance").To(psql.Arg(balance)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

func (t *CardsTable) Delete(ctx context.Context, userEmail, id string) error {
	q := psql.Delete(
		dm.From(CardsTableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_email").EQ(psql.Arg(userEmail))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
