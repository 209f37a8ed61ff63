package card

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/handlers"
)

type CardOutput struct {
	Body Card
}

func (h *Handler) registerGet(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID: "get-card",
		Method:      http.MethodGet,
		Path:        "/api/card/{id}",
		Summary:     "Get card",
		Tags:        []string{"Cards"},
		Middlewares: middlewares,
	}, h.get)
}

func (h *Handler) get(ctx context.Context, input *idInput) (*CardOutput, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	card, err := h.CardService.GetCard(ctx, email, input.ID)
	if err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to get card")
	}

	return &CardOutput{Body: fromService(card)}, nil
}
