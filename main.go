package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-planner/api"
	"github.com/carson-networks/pocket-planner/internal/auth"
	"github.com/carson-networks/pocket-planner/internal/config"
	"github.com/carson-networks/pocket-planner/internal/logging"
	"github.com/carson-networks/pocket-planner/internal/operator"
	"github.com/carson-networks/pocket-planner/internal/service"
	"github.com/carson-networks/pocket-planner/internal/storage"
)

func main() {
	logger := logging.SetupLogging("api")
	logrus.Info("pocket-planner starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logging.SetLevel(logger, envConfig.LogLevel)

	if len(envConfig.GoogleAudiences) == 0 {
		logger.Warn("main.GOOGLE_AUDIENCES is empty, every sign-in will be rejected")
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, logger, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	verifier := auth.NewJWKSVerifier(
		envConfig.GoogleJWKSURL,
		envConfig.GoogleAudiences,
		&http.Client{Timeout: 10 * time.Second},
		logger,
	)
	if err = verifier.Refresh(context.Background()); err != nil {
		// Keys are fetched again on the first token with an unknown kid.
		logger.WithError(err).Warn("auth.JWKSVerifier.Refresh")
	}
	if err = verifier.StartRefresh(envConfig.JWKSRefreshSpec); err != nil {
		logger.WithError(err).Fatal("auth.JWKSVerifier.StartRefresh")
		return
	}
	defer verifier.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:         logger,
		Port:           envConfig.APIPort,
		AllowedOrigins: envConfig.AllowedOrigins,
		SecureCookies:  envConfig.SecureCookies,
		DB:             dbStorage.DB,
		Service:        service.NewService(dbStorage, delegator),
		Verifier:       verifier,
	}
	httpRest.Serve(ctx)
}
