package auth

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

const CookieName = "id_token"

// SessionCookie is the Set-Cookie value that stores token as the session.
func SessionCookie(token string, secure bool) string {
	cookie := CookieName + "=" + token + "; HttpOnly; Path=/; SameSite=Lax"
	if secure {
		cookie += "; Secure"
	}
	return cookie
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(secure bool) string {
	cookie := CookieName + "=; HttpOnly; Path=/; SameSite=Lax; Max-Age=0"
	if secure {
		cookie += "; Secure"
	}
	return cookie
}

// ExtractToken reads the session token from a Cookie header, falling back to a
// bearer Authorization header. A Cookie header holding no name=value pairs is
// taken to be the bare token.
func ExtractToken(cookieHeader, authorizationHeader string) (string, error) {
	cookieHeader = strings.TrimSpace(cookieHeader)
	for _, part := range strings.Split(cookieHeader, ";") {
		if token, ok := strings.CutPrefix(strings.TrimSpace(part), CookieName+"="); ok && token != "" {
			return token, nil
		}
	}
	if cookieHeader != "" && !strings.Contains(cookieHeader, "=") {
		return cookieHeader, nil
	}

	if token, ok := strings.CutPrefix(authorizationHeader, "Bearer "); ok && token != "" {
		return token, nil
	}

	return "", ErrTokenNotPresent
}

// Middleware rejects operations without a verifiable session with 401 and
// otherwise places the claims on the request context.
func Middleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, err := ExtractToken(ctx.Header("Cookie"), ctx.Header("Authorization"))
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := verifier.Verify(ctx.Context(), token)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid token")
			return
		}

		next(huma.WithValue(ctx, claimsKey{}, claims))
	}
}
