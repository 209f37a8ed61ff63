package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/carson-networks/pocket-planner/internal/domain"
	"github.com/carson-networks/pocket-planner/internal/money"
)

func (c *Client) FetchUserSummary(ctx context.Context) (*domain.User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodGet, "/user/summary", nil, &dto); err != nil {
		return nil, err
	}
	user := dto.toDomain()
	return &user, nil
}

// CreateSession exchanges an identity token for a session. On success the
// client keeps sending token as its session cookie.
func (c *Client) CreateSession(ctx context.Context, token string) (*domain.User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodPost, "/user/session", sessionDTO{Token: token}, &dto); err != nil {
		return nil, err
	}
	c.SetToken(token)
	user := dto.toDomain()
	return &user, nil
}

// ClearSession signs out. The local token is dropped even when the call fails.
func (c *Client) ClearSession(ctx context.Context) error {
	err := c.do(ctx, http.MethodDelete, "/user/session", nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) FetchCards(ctx context.Context) ([]domain.Card, error) {
	var dtos []cardDTO
	if err := c.do(ctx, http.MethodGet, "/card", nil, &dtos); err != nil {
		return nil, err
	}
	cards := make([]domain.Card, len(dtos))
	for i, dto := range dtos {
		cards[i] = dto.toDomain()
	}
	return cards, nil
}

func (c *Client) CreateCard(ctx context.Context, card NewCard) (*domain.Card, error) {
	var dto cardDTO
	err := c.do(ctx, http.MethodPost, "/card", createCardDTO{
		Name:        card.Name,
		CardType:    string(card.Type),
		CreditLimit: money.OptionalToCents(card.CreditLimit),
	}, &dto)
	if err != nil {
		return nil, err
	}
	created := dto.toDomain()
	return &created, nil
}

func (c *Client) DeleteCard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/card/"+url.PathEscape(id), nil, nil)
}

func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	var dtos []categoryDTO
	if err := c.do(ctx, http.MethodGet, "/category", nil, &dtos); err != nil {
		return nil, err
	}
	categories := make([]domain.Category, len(dtos))
	for i, dto := range dtos {
		categories[i] = dto.toDomain()
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, category NewCategory) (*domain.Category, error) {
	body := createCategoryDTO{Name: category.Name}
	if category.Color != "" {
		body.Color = &category.Color
	}

	var dto categoryDTO
	if err := c.do(ctx, http.MethodPost, "/category", body, &dto); err != nil {
		return nil, err
	}
	created := dto.toDomain()
	return &created, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/category/"+url.PathEscape(id), nil, nil)
}

// FetchTransactionsPage returns one page of transactions, newest first.
func (c *Client) FetchTransactionsPage(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var dtos []transactionDTO
	if err := c.do(ctx, http.MethodGet, "/transaction?"+query.Encode(), nil, &dtos); err != nil {
		return nil, err
	}
	transactions := make([]domain.Transaction, len(dtos))
	for i, dto := range dtos {
		transactions[i] = dto.toDomain()
	}
	return transactions, nil
}

func (c *Client) CreateTransaction(ctx context.Context, tx NewTransaction) (*domain.Transaction, error) {
	date := tx.Date
	if date.IsZero() {
		date = time.Now()
	}

	var dto transactionDTO
	err := c.do(ctx, http.MethodPost, "/transaction", createTransactionDTO{
		CardID:          tx.CardID,
		CategoryID:      tx.CategoryID,
		Amount:          money.ToCents(tx.Amount),
		Description:     tx.Description,
		TransactionType: string(tx.Type),
		Date:            date.UTC().Format(time.RFC3339),
	}, &dto)
	if err != nil {
		return nil, err
	}
	created := dto.toDomain()
	return &created, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transaction/"+url.PathEscape(id), nil, nil)
}
