package main

import (
	"fmt"

	"myfuture/internal/api"
	"myfuture/internal/session"
	"myfuture/pkg/types"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

func loadConfig() (*types.Config, error) {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.APIBaseURL == "" {
		return nil, fmt.Errorf("set API_BASE_URL")
	}

	return c, nil
}

func newLogger(config *types.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// buildSession wires the full client stack: token store, HTTP adapter,
// and the shared session store the commands act through.
func buildSession(config *types.Config, logger *logrus.Logger) (*session.Store, *api.Client, *api.TokenStore, error) {
	tokens, err := api.NewTokenStore(config)
	if err != nil {
		return nil, nil, nil, err
	}

	client := api.New(config, tokens, logger)

	return session.New(client, tokens, logger), client, tokens, nil
}
