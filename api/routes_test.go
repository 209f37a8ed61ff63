package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pocket-planner/internal/auth"
	"github.com/carson-networks/pocket-planner/internal/client"
	"github.com/carson-networks/pocket-planner/internal/service"
	"github.com/carson-networks/pocket-planner/internal/storage"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRest() *Rest {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Rest{
		Logger:         logger,
		AllowedOrigins: []string{"http://localhost:9447"},
		DB:             okPinger{},
		Service:        service.NewService(&storage.Storage{}, nil),
		Verifier: auth.VerifierFunc(func(context.Context, string) (*auth.Claims, error) {
			return nil, errors.New("no tokens are valid here")
		}),
	}
}

func TestRouter_Status(t *testing.T) {
	srv := httptest.NewServer(newTestRest().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_ResourcesRequireSession(t *testing.T) {
	srv := httptest.NewServer(newTestRest().Router())
	defer srv.Close()

	for _, path := range []string{"/api/card", "/api/category", "/api/transaction", "/api/user/summary"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRouter_SignOutIsPublic(t *testing.T) {
	srv := httptest.NewServer(newTestRest().Router())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/user/session", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), "Max-Age=0")
}

func TestRouter_CORSAllowsConfiguredOriginWithCredentials(t *testing.T) {
	srv := httptest.NewServer(newTestRest().Router())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/card", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:9447")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:9447", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestRouter_ClientSeesPlainErrorMessage(t *testing.T) {
	srv := httptest.NewServer(newTestRest().Router())
	defer srv.Close()

	apiClient := client.New(srv.URL+"/api", srv.Client())
	apiClient.SetToken("not-a-real-token")

	_, err := apiClient.FetchCards(context.Background())

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid token", apiErr.Message)
}

func TestRouter_ErrorBodyIsPlainText(t *testing.T) {
	srv := httptest.NewServer(newTestRest().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/card")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Equal(t, auth.ErrTokenNotPresent.Error(), string(body))
}
