package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/pocket-planner/internal/domain"
)

// LoginWithToken opens a session for an identity token and loads everything.
func (s *Store) LoginWithToken(ctx context.Context, token string) error {
	user, err := s.api.CreateSession(ctx, token)
	if err != nil {
		return err
	}
	s.update(func(state *State) { state.User = user })
	return s.LoadAll(ctx)
}

// Bootstrap restores an existing session. On failure the state is reset and
// the error returned.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.update(func(state *State) { state.Bootstrapping = true })

	user, err := s.api.FetchUserSummary(ctx)
	if err == nil {
		s.update(func(state *State) { state.User = user })
		err = s.LoadAll(ctx)
	}

	s.update(func(state *State) {
		if err != nil {
			s.reset(state)
		}
		state.Bootstrapping = false
	})
	return err
}

// Logout clears local state even when the server call fails. The server
// error is still returned.
func (s *Store) Logout(ctx context.Context) error {
	err := s.api.ClearSession(ctx)
	s.update(s.reset)
	return err
}

// LoadAll fetches cards, categories and the first transaction page
// concurrently and replaces them in the state.
func (s *Store) LoadAll(ctx context.Context) error {
	var (
		cards        []domain.Card
		categories   []domain.Category
		transactions []domain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cards, err = s.api.FetchCards(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.api.FetchCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = s.api.FetchTransactionsPage(gctx, s.pageSize, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.update(func(state *State) {
		state.Cards = cards
		state.Categories = categories
		state.Transactions = transactions
		state.TransactionOffset = len(transactions)
	})
	return nil
}

// LoadMoreTransactions appends the next page and reports how many rows it had.
func (s *Store) LoadMoreTransactions(ctx context.Context) (int, error) {
	offset := s.Snapshot().TransactionOffset

	page, err := s.api.FetchTransactionsPage(ctx, s.pageSize, offset)
	if err != nil {
		return 0, err
	}

	s.update(func(state *State) {
		state.Transactions = append(state.Transactions, page...)
		state.TransactionOffset += len(page)
	})
	return len(page), nil
}
