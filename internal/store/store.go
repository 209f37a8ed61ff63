// Package store mirrors the signed-in user's data from the API and applies
// local mutations once the server has accepted them.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/carson-networks/pocket-planner/internal/client"
	"github.com/carson-networks/pocket-planner/internal/domain"
)

const DefaultPageSize = 50

// API is the subset of *client.Client the store calls.
type API interface {
	FetchUserSummary(ctx context.Context) (*domain.User, error)
	CreateSession(ctx context.Context, token string) (*domain.User, error)
	ClearSession(ctx context.Context) error
	FetchCards(ctx context.Context) ([]domain.Card, error)
	CreateCard(ctx context.Context, card client.NewCard) (*domain.Card, error)
	DeleteCard(ctx context.Context, id string) error
	FetchCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category client.NewCategory) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	FetchTransactionsPage(ctx context.Context, limit, offset int) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, tx client.NewTransaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

var _ API = (*client.Client)(nil)

// State is a point-in-time copy of the store. TransactionOffset is where the
// next transaction page starts on the server.
type State struct {
	User              *domain.User
	Bootstrapping     bool
	Cards             []domain.Card
	Categories        []domain.Category
	Transactions      []domain.Transaction
	TransactionOffset int
}

func (s State) Authenticated() bool {
	return s.User != nil
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	out.Cards = slices.Clone(s.Cards)
	out.Categories = slices.Clone(s.Categories)
	out.Transactions = slices.Clone(s.Transactions)
	return out
}

type Store struct {
	api      API
	pageSize int

	mutex       sync.Mutex
	state       State
	subscribers map[int]func(State)
	nextSub     int
}

func New(api API, pageSize int) *Store {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Store{api: api, pageSize: pageSize, subscribers: map[int]func(State){}}
}

func (s *Store) Snapshot() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state.clone()
}

// Subscribe calls fn with a snapshot after every mutation until the returned
// func is called.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mutex.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mutex.Unlock()

	return func() {
		s.mutex.Lock()
		delete(s.subscribers, id)
		s.mutex.Unlock()
	}
}

// update applies mutate under the lock and then notifies subscribers outside it.
func (s *Store) update(mutate func(state *State)) {
	s.mutex.Lock()
	mutate(&s.state)
	snapshot := s.state.clone()
	subscribers := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mutex.Unlock()

	for _, fn := range subscribers {
		fn(snapshot.clone())
	}
}

func (s *Store) reset(state *State) {
	*state = State{}
}
