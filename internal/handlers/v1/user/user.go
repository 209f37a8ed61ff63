// Package user serves the caller's identity and the cookie session.
package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/auth"
	"github.com/carson-networks/pocket-planner/internal/logging"
)

// Summary is the identity of the signed-in user.
type Summary struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type SummaryOutput struct {
	Body Summary
}

type CreateSessionInput struct {
	Body struct {
		Token string `json:"token" minLength:"1" doc:"Google id_token"`
	}
}

type CreateSessionOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      Summary
}

type DeleteSessionOutput struct {
	SetCookie string `header:"Set-Cookie"`
}

type Handler struct {
	Verifier      auth.Verifier
	SecureCookies bool
}

func NewHandler(verifier auth.Verifier, secureCookies bool) *Handler {
	return &Handler{Verifier: verifier, SecureCookies: secureCookies}
}

// Register adds the session endpoints, which are public, and the summary
// endpoint behind middlewares.
func (h *Handler) Register(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID: "get-user-summary",
		Method:      http.MethodGet,
		Path:        "/api/user/summary",
		Summary:     "Current user",
		Tags:        []string{"User"},
		Middlewares: middlewares,
	}, h.summary)

	huma.Register(api, huma.Operation{
		OperationID: "create-session",
		Method:      http.MethodPost,
		Path:        "/api/user/session",
		Summary:     "Sign in",
		Description: "Verifies a Google id_token and stores it in an HttpOnly session cookie.",
		Tags:        []string{"User"},
	}, h.createSession)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-session",
		Method:        http.MethodDelete,
		Path:          "/api/user/session",
		Summary:       "Sign out",
		Tags:          []string{"User"},
		DefaultStatus: http.StatusNoContent,
	}, h.deleteSession)
}

func fromClaims(claims *auth.Claims) Summary {
	return Summary{Email: claims.Email, Name: claims.Name, Picture: claims.Picture}
}

func (h *Handler) summary(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing session")
	}
	return &SummaryOutput{Body: fromClaims(claims)}, nil
}

func (h *Handler) createSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	claims, err := h.Verifier.Verify(ctx, input.Body.Token)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "invalid token")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("userEmail", claims.Email)
	}

	return &CreateSessionOutput{
		SetCookie: auth.SessionCookie(input.Body.Token, h.SecureCookies),
		Body:      fromClaims(claims),
	}, nil
}

func (h *Handler) deleteSession(_ context.Context, _ *struct{}) (*DeleteSessionOutput, error) {
	return &DeleteSessionOutput{SetCookie: auth.ClearSessionCookie(h.SecureCookies)}, nil
}
