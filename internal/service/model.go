package service

import (
	"time"

	"github.com/aarondl/opt/omit"

	"github.com/carson-networks/pocket-planner/internal/domain"
	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

// Card is a card as the API sees it. Money fields are integer cents.
type Card struct {
	ID             string
	UserEmail      string
	Name           string
	Type           domain.CardType
	CreditLimit    *int64
	CurrentBalance int64
}

type CardCreate struct {
	Name        string
	Type        domain.CardType
	CreditLimit *int64
}

type CardUpdate struct {
	Name        omit.Val[string]
	CreditLimit omit.Val[int64]
}

// Category has no UserEmail when it is one of the shared defaults.
type Category struct {
	ID        string
	UserEmail *string
	Name      string
	Color     *string
}

type CategoryCreate struct {
	Name  string
	Color *string
}

type Transaction struct {
	ID          string
	UserEmail   string
	CardID      string
	CategoryID  string
	Amount      int64
	Description string
	Type        domain.TransactionType
	Date        time.Time
}

type TransactionCreate struct {
	CardID      string
	CategoryID  string
	Amount      int64
	Description string
	Type        domain.TransactionType
	Date        time.Time
}

// TransactionPage identifies a window of the date-ordered transaction list.
type TransactionPage struct {
	Limit  int
	Offset int
}

func cardFromStorage(row *sqlconfig.Card) Card {
	return Card{
		ID:             row.ID,
		UserEmail:      row.UserEmail,
		Name:           row.Name,
		Type:           domain.CardType(row.CardType),
		CreditLimit:    row.CreditLimit,
		CurrentBalance: row.CurrentBalance,
	}
}

func categoryFromStorage(row *sqlconfig.Category) Category {
	return Category{
		ID:        row.ID,
		UserEmail: row.UserEmail,
		Name:      row.Name,
		Color:     row.Color,
	}
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		UserEmail:   row.UserEmail,
		CardID:      row.CardID,
		CategoryID:  row.CategoryID,
		Amount:      row.Amount,
		Description: row.Description,
		Type:        domain.TransactionType(row.TransactionType),
		Date:        row.Date,
	}
}
