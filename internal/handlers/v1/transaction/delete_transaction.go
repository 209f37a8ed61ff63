package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/handlers"
)

func (h *Handler) registerDelete(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/api/transaction/{id}",
		Summary:       "Delete transaction",
		Description:   "Deletes the transaction and reverses its effect on the card balance.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   middlewares,
	}, h.delete)
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*struct{}, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	if err = h.TransactionService.DeleteTransaction(ctx, email, input.ID); err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to delete transaction")
	}
	return nil, nil
}
