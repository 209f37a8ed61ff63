package transaction

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/handlers"
	"github.com/carson-networks/pocket-planner/internal/logging"
	"github.com/carson-networks/pocket-planner/internal/service"
)

// ListTransactionsInput pages through the caller's transactions, newest first.
type ListTransactionsInput struct {
	Limit  int `query:"limit" default:"50" doc:"Page size, clamped to 1..200"`
	Offset int `query:"offset" default:"0" doc:"Rows to skip"`
}

// ListTransactionsOutput carries the page as a bare array. NextOffset is only
// set when another page exists.
type ListTransactionsOutput struct {
	NextOffset string `header:"X-Next-Offset" doc:"Offset of the next page, absent on the last page"`
	Body       []Transaction
}

func (h *Handler) registerList(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/api/transaction",
		Summary:     "List transactions",
		Description: "Returns a page of transactions ordered by date, newest first.",
		Tags:        []string{"Transactions"},
		Middlewares: middlewares,
	}, h.list)
}

func (h *Handler) list(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	var (
		transactions []service.Transaction
		next         *service.TransactionPage
	)
	err = handlers.Timed(ctx, "listTransactionsMs", func() (err error) {
		transactions, next, err = h.TransactionService.ListTransactions(ctx, email, service.TransactionPage{
			Limit:  input.Limit,
			Offset: input.Offset,
		})
		return err
	})
	if err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to list transactions")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	out := &ListTransactionsOutput{Body: make([]Transaction, len(transactions))}
	for i := range transactions {
		out.Body[i] = fromService(&transactions[i])
	}
	if next != nil {
		out.NextOffset = strconv.Itoa(next.Offset)
	}
	return out, nil
}
