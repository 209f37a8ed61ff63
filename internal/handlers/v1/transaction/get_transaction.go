package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/handlers"
)

func (h *Handler) registerGet(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/api/transaction/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
		Middlewares: middlewares,
	}, h.get)
}

func (h *Handler) get(ctx context.Context, input *idInput) (*TransactionOutput, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.GetTransaction(ctx, email, input.ID)
	if err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to get transaction")
	}
	return &TransactionOutput{Body: fromService(tx)}, nil
}
