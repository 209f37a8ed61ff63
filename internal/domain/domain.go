// Package domain holds the client-side finance records. Monetary fields are
// decimal currency; the API transmits them as integer cents.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CardType string

const (
	CardTypeCredit CardType = "credit"
	CardTypeDebit  CardType = "debit"
)

// Card is a payment card. CreditLimit is only set for credit cards.
type Card struct {
	ID             string
	Name           string
	Type           CardType
	CreditLimit    *decimal.Decimal
	CurrentBalance decimal.Decimal
}

type Category struct {
	ID    string
	Name  string
	Color string
}

type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
	// TransactionTypePayment is a payment towards a credit card.
	TransactionTypePayment TransactionType = "payment"
)

// Transaction amount semantics are given by Type, not by the sign of Amount.
type Transaction struct {
	ID          string
	CardID      string
	CategoryID  string
	Amount      decimal.Decimal
	Description string
	Type        TransactionType
	Date        time.Time
}

type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

func (t CardType) Valid() bool {
	return t == CardTypeCredit || t == CardTypeDebit
}

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypePayment:
		return true
	}
	return false
}
