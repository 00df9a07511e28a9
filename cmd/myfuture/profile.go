package main

import (
	"errors"
	"fmt"
	"strings"

	"myfuture/internal/api"
	"myfuture/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var whoamiCommand = &cli.Command{
	Name:  "whoami",
	Usage: "Show the current user's profile",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "debug", Usage: "Dump the raw user record"},
	},
	Action: func(c *cli.Context) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(config)

		store, _, tokens, err := buildSession(config, logger)
		if err != nil {
			return err
		}

		if session, err := tokens.Load(); err == nil && api.TokenExpired(session.Token) {
			return fmt.Errorf("session expired, run `myfuture login` again")
		}

		user, err := store.RefreshUser(c.Context)
		if err != nil {
			if errors.Is(err, types.ErrUnauthenticated) {
				return fmt.Errorf("not logged in, run `myfuture login` first")
			}
			return err
		}

		if c.Bool("debug") {
			pp.Println(user)
			return nil
		}

		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		fmt.Printf("Account type: %s\n", user.AccountType)
		if user.Address != "" {
			fmt.Printf("Address:      %s\n", user.Address)
		}
		fmt.Printf("Points:       %d\n", user.Points)
		if len(user.Projects) > 0 {
			fmt.Printf("Projects:     %s\n", strings.Join(user.Projects, ", "))
		}

		return nil
	},
}
