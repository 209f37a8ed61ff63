package card

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/handlers"
	"github.com/carson-networks/pocket-planner/internal/service"
)

type ListCardsOutput struct {
	Body []Card
}

func (h *Handler) registerList(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID: "list-cards",
		Method:      http.MethodGet,
		Path:        "/api/card",
		Summary:     "List cards",
		Tags:        []string{"Cards"},
		Middlewares: middlewares,
	}, h.list)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListCardsOutput, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	var cards []service.Card
	err = handlers.Timed(ctx, "listCardsMs", func() (err error) {
		cards, err = h.CardService.ListCards(ctx, email)
		return err
	})
	if err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to list cards")
	}

	out := &ListCardsOutput{Body: make([]Card, len(cards))}
	for i := range cards {
		out.Body[i] = fromService(&cards[i])
	}
	return out, nil
}
