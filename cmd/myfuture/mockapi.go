package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myfuture/internal/mockapi"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var mockAPICommand = &cli.Command{
	Name:  "mockapi",
	Usage: "Run the in-memory mock API server",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "extra-projects",
			Usage: "Number of fake projects to seed on top of the fixtures",
		},
		&cli.IntFlag{
			Name:  "extra-users",
			Usage: "Number of fake accounts to seed on top of the demo accounts",
		},
	},
	Action: serveMockAPI,
}

func serveMockAPI(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	store := mockapi.NewStore()
	if err := store.SeedDefaults(cCtx.Int("extra-projects"), cCtx.Int("extra-users")); err != nil {
		return err
	}

	srv, err := mockapi.New(config, logger, store)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.MockPort).Infof("mock api starting http://localhost:%d", config.MockPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
