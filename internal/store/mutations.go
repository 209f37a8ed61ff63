package store

import (
	"context"
	"slices"

	"github.com/carson-networks/pocket-planner/internal/client"
	"github.com/carson-networks/pocket-planner/internal/domain"
)

func (s *Store) AddCard(ctx context.Context, card client.NewCard) (*domain.Card, error) {
	created, err := s.api.CreateCard(ctx, card)
	if err != nil {
		return nil, err
	}
	s.update(func(state *State) { state.Cards = append(state.Cards, *created) })
	return created, nil
}

// DeleteCard removes the card and every loaded transaction recorded against
// it. The offset moves back by the number of removed transactions.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	if err := s.api.DeleteCard(ctx, id); err != nil {
		return err
	}

	s.update(func(state *State) {
		state.Cards = slices.DeleteFunc(state.Cards, func(c domain.Card) bool { return c.ID == id })

		before := len(state.Transactions)
		state.Transactions = slices.DeleteFunc(state.Transactions, func(t domain.Transaction) bool { return t.CardID == id })
		state.TransactionOffset -= before - len(state.Transactions)
	})
	return nil
}

func (s *Store) Card(id string) (domain.Card, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := slices.IndexFunc(s.state.Cards, func(c domain.Card) bool { return c.ID == id })
	if i < 0 {
		return domain.Card{}, false
	}
	return s.state.Cards[i], true
}

// AddTransaction records the transaction and adds its amount to the card balance.
func (s *Store) AddTransaction(ctx context.Context, tx client.NewTransaction) (*domain.Transaction, error) {
	created, err := s.api.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.update(func(state *State) {
		state.Transactions = append(state.Transactions, *created)
		state.TransactionOffset++
		if i := slices.IndexFunc(state.Cards, func(c domain.Card) bool { return c.ID == created.CardID }); i >= 0 {
			state.Cards[i].CurrentBalance = state.Cards[i].CurrentBalance.Add(created.Amount)
		}
	})
	return created, nil
}

// DeleteTransaction removes the transaction and reverses its effect on the
// card balance when the transaction was loaded.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.update(func(state *State) {
		i := slices.IndexFunc(state.Transactions, func(t domain.Transaction) bool { return t.ID == id })
		if i < 0 {
			return
		}
		removed := state.Transactions[i]
		state.Transactions = slices.Delete(state.Transactions, i, i+1)
		state.TransactionOffset--

		if c := slices.IndexFunc(state.Cards, func(c domain.Card) bool { return c.ID == removed.CardID }); c >= 0 {
			state.Cards[c].CurrentBalance = state.Cards[c].CurrentBalance.Sub(removed.Amount)
		}
	})
	return nil
}

func (s *Store) TransactionsByCard(cardID string) []domain.Transaction {
	return s.filterTransactions(func(t domain.Transaction) bool { return t.CardID == cardID })
}

func (s *Store) TransactionsByCategory(categoryID string) []domain.Transaction {
	return s.filterTransactions(func(t domain.Transaction) bool { return t.CategoryID == categoryID })
}

func (s *Store) filterTransactions(keep func(domain.Transaction) bool) []domain.Transaction {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var out []domain.Transaction
	for _, t := range s.state.Transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) AddCategory(ctx context.Context, category client.NewCategory) (*domain.Category, error) {
	created, err := s.api.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	s.update(func(state *State) { state.Categories = append(state.Categories, *created) })
	return created, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.update(func(state *State) {
		state.Categories = slices.DeleteFunc(state.Categories, func(c domain.Category) bool { return c.ID == id })
	})
	return nil
}

func (s *Store) Category(id string) (domain.Category, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := slices.IndexFunc(s.state.Categories, func(c domain.Category) bool { return c.ID == id })
	if i < 0 {
		return domain.Category{}, false
	}
	return s.state.Categories[i], true
}
