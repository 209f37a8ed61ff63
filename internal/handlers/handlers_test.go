package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pocket-planner/internal/auth"
	"github.com/carson-networks/pocket-planner/internal/logging"
	"github.com/carson-networks/pocket-planner/internal/storage"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var statusErr huma.StatusError
	require.True(t, errors.As(err, &statusErr))
	return statusErr.GetStatus()
}

func TestToHumaError(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, http.StatusNotFound, statusOf(t, ToHumaError(ctx, fmt.Errorf("cards: %w", storage.ErrNotFound), "x")))
	assert.Equal(t, http.StatusConflict, statusOf(t, ToHumaError(ctx, storage.ErrInUse, "x")))
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, ToHumaError(ctx, errors.New("boom"), "x")))
}

func TestToHumaError_KeepsCauseOutOfResponse(t *testing.T) {
	logData := logging.NewLogData(logging.SetupLogging("api"))
	ctx := logging.WithLogData(context.Background(), logData)

	err := ToHumaError(ctx, errors.New(`pq: relation "cards" does not exist`), "failed to list cards")

	assert.Equal(t, "failed to list cards", err.Error())
	assert.Equal(t, `pq: relation "cards" does not exist`, logData.Log().Data["cause"])
}

func TestUserEmail(t *testing.T) {
	_, err := UserEmail(context.Background())
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	ctx := logging.WithLogData(context.Background(), logging.NewLogData(logging.SetupLogging("api")))
	ctx = auth.WithClaims(ctx, &auth.Claims{Email: "user@example.com"})
	email, err := UserEmail(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestTimed(t *testing.T) {
	called := false
	err := Timed(context.Background(), "noLogData", func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}
