package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
)

type echoInput struct {
	Body struct {
		Name string `json:"name" minLength:"1"`
	}
}

type echoOutput struct {
	Body struct {
		Name string `json:"name"`
	}
}

func newTextErrorAPI(t *testing.T) humatest.TestAPI {
	_, api := humatest.New(t, APIConfig("Pocket Planner", "1.0.0"))

	huma.Register(api, huma.Operation{
		OperationID: "echo",
		Method:      http.MethodPost,
		Path:        "/echo",
	}, func(ctx context.Context, input *echoInput) (*echoOutput, error) {
		if input.Body.Name == "broken" {
			return nil, ToHumaError(ctx, errors.New("driver: bad connection"), "failed to echo")
		}
		out := &echoOutput{}
		out.Body.Name = input.Body.Name
		return out, nil
	})

	return api
}

func TestTextError_HandlerError(t *testing.T) {
	api := newTextErrorAPI(t)

	resp := api.Post("/echo", map[string]any{"name": "broken"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "text/plain", resp.Header().Get("Content-Type"))
	assert.Equal(t, "failed to echo", resp.Body.String())
}

func TestTextError_ValidationError(t *testing.T) {
	api := newTextErrorAPI(t)

	resp := api.Post("/echo", map[string]any{"name": ""})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "text/plain", resp.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(resp.Body.String(), "validation failed"), resp.Body.String())
}

func TestTextError_SuccessStaysJSON(t *testing.T) {
	api := newTextErrorAPI(t)

	resp := api.Post("/echo", map[string]any{"name": "ok"})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"name":"ok"}`, resp.Body.String())
}

func TestNewTextError(t *testing.T) {
	err := NewTextError(http.StatusBadRequest, "invalid date", errors.New("parsing time"))
	assert.Equal(t, http.StatusBadRequest, err.GetStatus())
	assert.Equal(t, "invalid date: parsing time", err.Error())

	assert.Equal(t, "not found", NewTextError(http.StatusNotFound, "not found").Error())
}
