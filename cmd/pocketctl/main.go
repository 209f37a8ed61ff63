package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-planner/internal/config"
	"github.com/carson-networks/pocket-planner/internal/logging"
)

func main() {
	logger := logging.SetupLogging("pocketctl")

	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logging.SetLevel(logger, env.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = newApp(env, os.Stdout).RunContext(ctx, os.Args); err != nil {
		logger.WithError(err).Error("pocketctl")
		os.Exit(1)
	}
}
