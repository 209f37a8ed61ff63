package client

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/pocket-planner/internal/domain"
	"github.com/carson-networks/pocket-planner/internal/money"
)

type userDTO struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type cardDTO struct {
	ID             string `json:"id"`
	UserEmail      string `json:"userEmail"`
	Name           string `json:"name"`
	CardType       string `json:"cardType"`
	CreditLimit    *int64 `json:"creditLimit"`
	CurrentBalance int64  `json:"currentBalance"`
}

type createCardDTO struct {
	Name        string `json:"name"`
	CardType    string `json:"cardType"`
	CreditLimit *int64 `json:"creditLimit,omitempty"`
}

type categoryDTO struct {
	ID        string  `json:"id"`
	UserEmail *string `json:"userEmail"`
	Name      string  `json:"name"`
	Color     *string `json:"color"`
}

type createCategoryDTO struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

type transactionDTO struct {
	ID              string    `json:"id"`
	UserEmail       string    `json:"userEmail"`
	CardID          string    `json:"cardId"`
	CategoryID      string    `json:"categoryId"`
	Amount          int64     `json:"amount"`
	Description     string    `json:"description"`
	TransactionType string    `json:"transactionType"`
	Date            time.Time `json:"date"`
}

type createTransactionDTO struct {
	CardID          string `json:"cardId"`
	CategoryID      string `json:"categoryId"`
	Amount          int64  `json:"amount"`
	Description     string `json:"description"`
	TransactionType string `json:"transactionType"`
	Date            string `json:"date"`
}

type sessionDTO struct {
	Token string `json:"token"`
}

// NewCard is the input for CreateCard.
type NewCard struct {
	Name        string
	Type        domain.CardType
	CreditLimit *decimal.Decimal
}

type NewCategory struct {
	Name  string
	Color string
}

type NewTransaction struct {
	CardID      string
	CategoryID  string
	Amount      decimal.Decimal
	Description string
	Type        domain.TransactionType
	Date        time.Time
}

func (d userDTO) toDomain() domain.User {
	return domain.User{ID: d.Email, Email: d.Email, Name: d.Name, AvatarURL: d.Picture}
}

func (d cardDTO) toDomain() domain.Card {
	return domain.Card{
		ID:             d.ID,
		Name:           d.Name,
		Type:           domain.CardType(d.CardType),
		CreditLimit:    money.OptionalFromCents(d.CreditLimit),
		CurrentBalance: money.FromCents(d.CurrentBalance),
	}
}

func (d categoryDTO) toDomain() domain.Category {
	category := domain.Category{ID: d.ID, Name: d.Name}
	if d.Color != nil {
		category.Color = *d.Color
	}
	return category
}

func (d transactionDTO) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:          d.ID,
		CardID:      d.CardID,
		CategoryID:  d.CategoryID,
		Amount:      money.FromCents(d.Amount),
		Description: d.Description,
		Type:        domain.TransactionType(d.TransactionType),
		Date:        d.Date,
	}
}
