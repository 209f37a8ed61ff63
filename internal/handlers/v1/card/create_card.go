package card

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/domain"
	"github.com/carson-networks/pocket-planner/internal/handlers"
	"github.com/carson-networks/pocket-planner/internal/service"
)

type CreateCardBody struct {
	Name        string `json:"name" minLength:"1" doc:"Card name"`
	CardType    string `json:"cardType" enum:"credit,debit" doc:"Card type"`
	CreditLimit *int64 `json:"creditLimit,omitempty" required:"false" nullable:"true" doc:"Credit limit in cents"`
}

type CreateCardInput struct {
	Body CreateCardBody
}

func (h *Handler) registerCreate(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-card",
		Method:        http.MethodPost,
		Path:          "/api/card",
		Summary:       "Create card",
		Description:   "Creates a card with a zero balance.",
		Tags:          []string{"Cards"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   middlewares,
	}, h.create)
}

func (h *Handler) create(ctx context.Context, input *CreateCardInput) (*CardOutput, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	card, err := h.CardService.CreateCard(ctx, email, service.CardCreate{
		Name:        input.Body.Name,
		Type:        domain.CardType(input.Body.CardType),
		CreditLimit: input.Body.CreditLimit,
	})
	if err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to create card")
	}

	return &CardOutput{Body: fromService(card)}, nil
}
