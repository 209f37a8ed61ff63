// Package fragments renders HTML fragments from the shell's local SQLite
// database so pages keep working without the network.
package fragments

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-planner/internal/interceptor"
)

// Prefix is stripped from every route before matching.
const Prefix = "/fragments"

var ErrInvalidForm = errors.New("invalid form")

//go:embed templates/*.html
var templateFS embed.FS

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	amount      INTEGER NOT NULL,
	description TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS cards (
	id              TEXT PRIMARY KEY,
	name            TEXT    NOT NULL,
	card_type       TEXT    NOT NULL,
	credit_limit    INTEGER,
	current_balance INTEGER NOT NULL,
	position        INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS categories (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	color    TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL
);`

type Renderer struct {
	db        *sql.DB
	templates *template.Template
	logger    *logrus.Logger
}

var _ interceptor.Renderer = (*Renderer)(nil)

// New creates the local tables when missing.
func New(ctx context.Context, db *sql.DB, logger *logrus.Logger) (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create fragment tables: %w", err)
	}
	return &Renderer{db: db, templates: templates, logger: logger}, nil
}

type route struct {
	method string
	path   string
}

// Render answers the routes below. Unknown routes are a 404, which the
// interceptor treats as a miss.
func (r *Renderer) Render(ctx context.Context, req interceptor.RenderRequest) (*interceptor.Response, error) {
	path, ok := strings.CutPrefix(req.Route, Prefix)
	if !ok {
		return r.notFound(req), nil
	}
	path, _, _ = strings.Cut(path, "?")

	var (
		name string
		data any
		err  error
	)
	switch (route{req.Method, path}) {
	case route{http.MethodGet, "/transaction"}:
		name = "transactions"
		data, err = r.listTransactions(ctx)
	case route{http.MethodPost, "/transaction/add"}:
		name = "transaction"
		data, err = r.addTransaction(ctx, req.Form)
	case route{http.MethodGet, "/card"}:
		name = "cards"
		data, err = r.listCards(ctx)
	case route{http.MethodGet, "/category"}:
		name = "categories"
		data, err = r.listCategories(ctx)
	default:
		return r.notFound(req), nil
	}

	if errors.Is(err, ErrInvalidForm) {
		r.logger.WithError(err).Debug("Renderer.Render.invalid form")
		return r.html(http.StatusBadRequest, "error", err.Error())
	}
	if err != nil {
		return nil, fmt.Errorf("render %s %s: %w", req.Method, path, err)
	}
	return r.html(http.StatusOK, name, data)
}

func (r *Renderer) notFound(req interceptor.RenderRequest) *interceptor.Response {
	resp, err := r.html(http.StatusNotFound, "error", fmt.Sprintf("%s - %s route not found", req.Method, req.Route))
	if err != nil {
		return &interceptor.Response{Status: http.StatusNotFound}
	}
	return resp
}

func (r *Renderer) html(status int, name string, data any) (*interceptor.Response, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return &interceptor.Response{
		Status: status,
		Header: http.Header{"Content-Type": {"text/html; charset=utf-8"}},
		Body:   buf.Bytes(),
	}, nil
}
