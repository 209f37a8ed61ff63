package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenNotPresent = errors.New("auth token not found on the request")
	ErrInvalidKid      = errors.New("invalid key id ('kid') on token")
	ErrInvalidIssuer   = errors.New("token issuer is not accepted")
	ErrInvalidAudience = errors.New("token audience is not accepted")
)

// Issuers accepted on Google id_tokens.
var Issuers = []string{"https://accounts.google.com", "accounts.google.com"}

// Claims are the identity claims read from a verified id_token.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// Verifier turns a raw token into verified claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// VerifierFunc adapts a plain function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (*Claims, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (*Claims, error) {
	return f(ctx, token)
}

type claimsKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}
