package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "myfuture",
		Usage: "Client for the MyFuture civic crowdfunding platform",
		Commands: []*cli.Command{
			loginCommand,
			registerCommand,
			logoutCommand,
			whoamiCommand,
			projectsCommand,
			mockAPICommand,
			nanoidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
