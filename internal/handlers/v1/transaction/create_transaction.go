package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/domain"
	"github.com/carson-networks/pocket-planner/internal/handlers"
	"github.com/carson-networks/pocket-planner/internal/service"
)

// CreateTransactionBody is the request body for recording a transaction.
type CreateTransactionBody struct {
	CardID          string `json:"cardId" minLength:"1" doc:"Card to record against"`
	CategoryID      string `json:"categoryId" minLength:"1" doc:"Category id"`
	Amount          int64  `json:"amount" doc:"Amount in cents"`
	Description     string `json:"description" doc:"Free-form description"`
	TransactionType string `json:"transactionType" enum:"expense,income,payment" doc:"Transaction type"`
	Date            string `json:"date,omitempty" required:"false" doc:"RFC3339 date, defaults to now"`
}

type CreateTransactionInput struct {
	Body CreateTransactionBody
}

func (h *Handler) registerCreate(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/api/transaction",
		Summary:       "Create transaction",
		Description:   "Records a transaction and adds its amount to the card balance.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   middlewares,
	}, h.create)
}

// parseCreateTransactionInput validates the date and builds the service input.
// An absent date means now.
func parseCreateTransactionInput(input *CreateTransactionInput, now time.Time) (service.TransactionCreate, error) {
	date := now
	if input.Body.Date != "" {
		parsed, err := time.Parse(time.RFC3339, input.Body.Date)
		if err != nil {
			return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
		date = parsed
	}

	return service.TransactionCreate{
		CardID:      input.Body.CardID,
		CategoryID:  input.Body.CategoryID,
		Amount:      input.Body.Amount,
		Description: input.Body.Description,
		Type:        domain.TransactionType(input.Body.TransactionType),
		Date:        date,
	}, nil
}

func (h *Handler) create(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	create, err := parseCreateTransactionInput(input, time.Now())
	if err != nil {
		return nil, err
	}

	var tx *service.Transaction
	err = handlers.Timed(ctx, "createTransactionMs", func() (err error) {
		tx, err = h.TransactionService.CreateTransaction(ctx, email, create)
		return err
	})
	if err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to create transaction")
	}
	return &TransactionOutput{Body: fromService(tx)}, nil
}
