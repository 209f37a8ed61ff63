package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-planner/internal/auth"
	"github.com/carson-networks/pocket-planner/internal/handlers"
	"github.com/carson-networks/pocket-planner/internal/handlers/v1/card"
	"github.com/carson-networks/pocket-planner/internal/handlers/v1/category"
	"github.com/carson-networks/pocket-planner/internal/handlers/v1/status"
	"github.com/carson-networks/pocket-planner/internal/handlers/v1/transaction"
	"github.com/carson-networks/pocket-planner/internal/handlers/v1/user"
	"github.com/carson-networks/pocket-planner/internal/logging"
	"github.com/carson-networks/pocket-planner/internal/service"
)

type Rest struct {
	Logger         *logrus.Logger
	Port           string
	AllowedOrigins []string
	SecureCookies  bool
	DB             status.Pinger
	Service        *service.Service
	Verifier       auth.Verifier
}

// Router builds the chi router with the status route and every huma operation
// mounted under /api.
func (r *Rest) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Next-Offset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	statusHandler := status.NewHandler(r.DB)
	router.Get("/api/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	config := handlers.APIConfig("Pocket Planner", "1.0.0")
	api := humachi.New(router, config)
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	authenticated := huma.Middlewares{auth.Middleware(api, r.Verifier)}
	user.NewHandler(r.Verifier, r.SecureCookies).Register(api, authenticated)
	card.NewHandler(r.Service.Card).Register(api, authenticated)
	category.NewHandler(r.Service.Category).Register(api, authenticated)
	transaction.NewHandler(r.Service.Transaction).Register(api, authenticated)

	return router
}

// Serve listens until ctx is canceled and then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
