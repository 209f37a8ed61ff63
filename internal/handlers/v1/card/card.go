package card

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/service"
)

// Card is the API model for a card. Money fields are integer cents.
type Card struct {
	ID             string `json:"id" doc:"Card id"`
	UserEmail      string `json:"userEmail" doc:"Owner email"`
	Name           string `json:"name" doc:"Card name"`
	CardType       string `json:"cardType" enum:"credit,debit" doc:"Card type"`
	CreditLimit    *int64 `json:"creditLimit" doc:"Credit limit in cents, null for debit cards"`
	CurrentBalance int64  `json:"currentBalance" doc:"Current balance in cents"`
}

type cardService interface {
	ListCards(ctx context.Context, userEmail string) ([]service.Card, error)
	GetCard(ctx context.Context, userEmail, id string) (*service.Card, error)
	CreateCard(ctx context.Context, userEmail string, create service.CardCreate) (*service.Card, error)
	UpdateCard(ctx context.Context, userEmail, id string, update service.CardUpdate) (*service.Card, error)
	DeleteCard(ctx context.Context, userEmail, id string) error
}

// Handler serves /api/card.
type Handler struct {
	CardService cardService
}

func NewHandler(svc cardService) *Handler {
	return &Handler{CardService: svc}
}

// Register registers every card operation behind the given middlewares.
func (h *Handler) Register(api huma.API, middlewares huma.Middlewares) {
	h.registerList(api, middlewares)
	h.registerGet(api, middlewares)
	h.registerCreate(api, middlewares)
	h.registerUpdate(api, middlewares)
	h.registerDelete(api, middlewares)
}

func fromService(card *service.Card) Card {
	return Card{
		ID:             card.ID,
		UserEmail:      card.UserEmail,
		Name:           card.Name,
		CardType:       string(card.Type),
		CreditLimit:    card.CreditLimit,
		CurrentBalance: card.CurrentBalance,
	}
}

type idInput struct {
	ID string `path:"id" doc:"Card id"`
}
