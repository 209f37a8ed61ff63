package card

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/handlers"
	"github.com/carson-networks/pocket-planner/internal/service"
)

// UpdateCardBody only changes the fields that are present.
type UpdateCardBody struct {
	Name        *string `json:"name,omitempty" required:"false" minLength:"1" doc:"New card name"`
	CreditLimit *int64  `json:"creditLimit,omitempty" required:"false" doc:"New credit limit in cents"`
}

type UpdateCardInput struct {
	ID   string `path:"id" doc:"Card id"`
	Body UpdateCardBody
}

func (h *Handler) registerUpdate(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID: "update-card",
		Method:      http.MethodPut,
		Path:        "/api/card/{id}",
		Summary:     "Update card",
		Tags:        []string{"Cards"},
		Middlewares: middlewares,
	}, h.update)
}

func parseUpdateCardInput(input *UpdateCardInput) service.CardUpdate {
	var update service.CardUpdate
	if input.Body.Name != nil {
		update.Name = omit.From(*input.Body.Name)
	}
	if input.Body.CreditLimit != nil {
		update.CreditLimit = omit.From(*input.Body.CreditLimit)
	}
	return update
}

func (h *Handler) update(ctx context.Context, input *UpdateCardInput) (*CardOutput, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	card, err := h.CardService.UpdateCard(ctx, email, input.ID, parseUpdateCardInput(input))
	if err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to update card")
	}

	return &CardOutput{Body: fromService(card)}, nil
}
