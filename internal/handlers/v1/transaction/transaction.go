package transaction

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/service"
)

// Transaction is the API model for a transaction.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction id"`
	UserEmail       string `json:"userEmail" doc:"Owner email"`
	CardID          string `json:"cardId" doc:"Card the transaction is recorded against"`
	CategoryID      string `json:"categoryId" doc:"Category id"`
	Amount          int64  `json:"amount" doc:"Amount in cents"`
	Description     string `json:"description" doc:"Free-form description"`
	TransactionType string `json:"transactionType" enum:"expense,income,payment" doc:"Transaction type"`
	Date            string `json:"date" format:"date-time" doc:"Date of the transaction (RFC3339)"`
}

type TransactionOutput struct {
	Body Transaction
}

type transactionService interface {
	ListTransactions(ctx context.Context, userEmail string, page service.TransactionPage) ([]service.Transaction, *service.TransactionPage, error)
	GetTransaction(ctx context.Context, userEmail, id string) (*service.Transaction, error)
	CreateTransaction(ctx context.Context, userEmail string, create service.TransactionCreate) (*service.Transaction, error)
	DeleteTransaction(ctx context.Context, userEmail, id string) error
}

// Handler serves /api/transaction.
type Handler struct {
	TransactionService transactionService
}

func NewHandler(svc transactionService) *Handler {
	return &Handler{TransactionService: svc}
}

func (h *Handler) Register(api huma.API, middlewares huma.Middlewares) {
	h.registerList(api, middlewares)
	h.registerGet(api, middlewares)
	h.registerCreate(api, middlewares)
	h.registerDelete(api, middlewares)
}

func fromService(tx *service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID,
		UserEmail:       tx.UserEmail,
		CardID:          tx.CardID,
		CategoryID:      tx.CategoryID,
		Amount:          tx.Amount,
		Description:     tx.Description,
		TransactionType: string(tx.Type),
		Date:            tx.Date.Format(time.RFC3339),
	}
}

type idInput struct {
	ID string `path:"id" doc:"Transaction id"`
}
