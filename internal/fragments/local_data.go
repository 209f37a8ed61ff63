package fragments

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/carson-networks/pocket-planner/internal/domain"
	"github.com/carson-networks/pocket-planner/internal/money"
)

type transactionView struct {
	Amount      string
	Description string
}

type cardView struct {
	ID      string
	Name    string
	Type    string
	Balance string
	Limit   string
}

type categoryView struct {
	ID    string
	Name  string
	Color string
}

func (r *Renderer) listTransactions(ctx context.Context) ([]transactionView, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT amount, description FROM transactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []transactionView
	for rows.Next() {
		var (
			cents       int64
			description string
		)
		if err = rows.Scan(&cents, &description); err != nil {
			return nil, err
		}
		views = append(views, transactionView{Amount: money.Format(cents), Description: description})
	}
	return views, rows.Err()
}

// addTransaction records a transaction from the form fields amount (decimal)
// and description.
func (r *Renderer) addTransaction(ctx context.Context, form url.Values) (transactionView, error) {
	rawAmount := strings.TrimSpace(form.Get("amount"))
	if rawAmount == "" {
		return transactionView{}, fmt.Errorf("%w: no amount", ErrInvalidForm)
	}
	cents, err := money.ParseCents(rawAmount)
	if err != nil {
		return transactionView{}, fmt.Errorf("%w: amount %q", ErrInvalidForm, rawAmount)
	}
	if !form.Has("description") {
		return transactionView{}, fmt.Errorf("%w: no description", ErrInvalidForm)
	}
	description := form.Get("description")

	if _, err = r.db.ExecContext(ctx,
		`INSERT INTO transactions (amount, description) VALUES (?, ?)`, cents, description,
	); err != nil {
		return transactionView{}, err
	}
	return transactionView{Amount: money.Format(cents), Description: description}, nil
}

func (r *Renderer) listCards(ctx context.Context) ([]cardView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, card_type, credit_limit, current_balance FROM cards ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []cardView
	for rows.Next() {
		var (
			view    cardView
			limit   sql.NullInt64
			balance int64
		)
		if err = rows.Scan(&view.ID, &view.Name, &view.Type, &limit, &balance); err != nil {
			return nil, err
		}
		view.Balance = money.Format(balance)
		if limit.Valid {
			view.Limit = money.Format(limit.Int64)
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (r *Renderer) listCategories(ctx context.Context) ([]categoryView, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color FROM categories ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []categoryView
	for rows.Next() {
		var view categoryView
		if err = rows.Scan(&view.ID, &view.Name, &view.Color); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

// MirrorCards replaces the local copy of the user's cards.
func (r *Renderer) MirrorCards(ctx context.Context, cards []domain.Card) error {
	return r.replace(ctx, "cards", func(tx *sql.Tx) error {
		for i, card := range cards {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cards (id, name, card_type, credit_limit, current_balance, position) VALUES (?, ?, ?, ?, ?, ?)`,
				card.ID, card.Name, string(card.Type), money.OptionalToCents(card.CreditLimit),
				money.ToCents(card.CurrentBalance), i,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// MirrorCategories replaces the local copy of the visible categories.
func (r *Renderer) MirrorCategories(ctx context.Context, categories []domain.Category) error {
	return r.replace(ctx, "categories", func(tx *sql.Tx) error {
		for i, category := range categories {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO categories (id, name, color, position) VALUES (?, ?, ?, ?)`,
				category.ID, category.Name, category.Color, i,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Renderer) replace(ctx context.Context, table string, insert func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err = insert(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("mirror %s: %w", table, err)
	}
	return tx.Commit()
}
