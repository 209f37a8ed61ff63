package card

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/handlers"
)

func (h *Handler) registerDelete(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-card",
		Method:        http.MethodDelete,
		Path:          "/api/card/{id}",
		Summary:       "Delete card",
		Description:   "Deletes the card and every transaction recorded against it.",
		Tags:          []string{"Cards"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   middlewares,
	}, h.delete)
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*struct{}, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	if err = h.CardService.DeleteCard(ctx, email, input.ID); err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to delete card")
	}
	return nil, nil
}
