// Package handlers holds helpers shared by the versioned API handlers.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/auth"
	"github.com/carson-networks/pocket-planner/internal/logging"
	"github.com/carson-networks/pocket-planner/internal/storage"
)

// UserEmail returns the verified caller's email, the owner key of every row.
func UserEmail(ctx context.Context) (string, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok || claims.Email == "" {
		return "", huma.NewError(http.StatusUnauthorized, "missing session")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("userEmail", claims.Email)
	}
	return claims.Email, nil
}

// ToHumaError maps storage errors onto HTTP errors. Anything unknown is a 500
// carrying only msg; the cause goes to the request log.
func ToHumaError(ctx context.Context, err error, msg string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return huma.NewError(http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrInUse):
		return huma.NewError(http.StatusConflict, "still in use")
	default:
		if logData := logging.GetLogData(ctx); logData != nil {
			logData.AddData("cause", err.Error())
		}
		return huma.NewError(http.StatusInternalServerError, msg)
	}
}

// Timed runs fn and records its duration on the request LogData when present.
func Timed(ctx context.Context, name string, fn func() error) error {
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming(name)()
	}
	return fn()
}
