package service

import (
	"context"

	"github.com/carson-networks/pocket-planner/internal/operator/actions"
	"github.com/carson-networks/pocket-planner/internal/storage"
	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

// CardService handles card business logic.
type CardService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

func NewCardService(store *storage.Storage, processor ActionProcessor) *CardService {
	return &CardService{storage: store, processor: processor}
}

func (s *CardService) ListCards(ctx context.Context, userEmail string) ([]Card, error) {
	rows, err := s.storage.Cards.List(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	cards := make([]Card, len(rows))
	for i, row := range rows {
		cards[i] = cardFromStorage(row)
	}
	return cards, nil
}

func (s *CardService) GetCard(ctx context.Context, userEmail, id string) (*Card, error) {
	row, err := s.storage.Cards.FindByID(ctx, userEmail, id, false)
	if err != nil {
		return nil, err
	}
	card := cardFromStorage(row)
	return &card, nil
}

// CreateCard stores a new card with a zero balance.
func (s *CardService) CreateCard(ctx context.Context, userEmail string, create CardCreate) (*Card, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	row := &sqlconfig.Card{
		ID:          id,
		UserEmail:   userEmail,
		Name:        create.Name,
		CardType:    string(create.Type),
		CreditLimit: create.CreditLimit,
	}
	if err = s.storage.Cards.Insert(ctx, row); err != nil {
		return nil, err
	}

	card := cardFromStorage(row)
	return &card, nil
}

func (s *CardService) UpdateCard(ctx context.Context, userEmail, id string, update CardUpdate) (*Card, error) {
	action := &actions.UpdateCard{
		UserEmail: userEmail,
		ID:        id,
		Update: sqlconfig.CardUpdate{
			Name:        update.Name,
			CreditLimit: update.CreditLimit,
		},
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	card := cardFromStorage(action.Result)
	return &card, nil
}

// DeleteCard removes the card and every transaction recorded against it.
func (s *CardService) DeleteCard(ctx context.Context, userEmail, id string) error {
	return s.processor.Process(ctx, &actions.DeleteCard{UserEmail: userEmail, ID: id})
}
