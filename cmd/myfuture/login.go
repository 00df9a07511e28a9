package main

import (
	"fmt"

	"myfuture/internal/session"
	"myfuture/pkg/types"

	"github.com/urfave/cli/v2"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in and store the session token",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
		&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
	},
	Action: func(c *cli.Context) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(config)

		store, _, _, err := buildSession(config, logger)
		if err != nil {
			return err
		}

		if err := store.Login(c.Context, c.String("email"), c.String("password")); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		user := store.User()
		fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)

		return nil
	},
}

var registerCommand = &cli.Command{
	Name:  "register",
	Usage: "Create a new account",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
		&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true},
		&cli.StringFlag{Name: "account-type", Value: string(types.AccountTypeCitizen), Usage: "citizen or government"},
		&cli.StringFlag{Name: "phone"},
		&cli.StringFlag{Name: "birthdate", Usage: "YYYY-MM-DD"},
		&cli.StringFlag{Name: "address"},
	},
	Action: func(c *cli.Context) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(config)

		store, _, _, err := buildSession(config, logger)
		if err != nil {
			return err
		}

		input := registerInput(c)
		if err := store.Register(c.Context, input); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Printf("Registered %s. Run `myfuture login` to start a session.\n", input.Email)

		return nil
	},
}

func registerInput(c *cli.Context) session.RegisterInput {
	return session.RegisterInput{
		Email:       c.String("email"),
		Password:    c.String("password"),
		Name:        c.String("name"),
		PhoneNumber: c.String("phone"),
		Birthdate:   c.String("birthdate"),
		Address:     c.String("address"),
		AccountType: types.AccountType(c.String("account-type")),
	}
}

var logoutCommand = &cli.Command{
	Name:  "logout",
	Usage: "Clear the stored session token",
	Action: func(c *cli.Context) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(config)

		store, _, _, err := buildSession(config, logger)
		if err != nil {
			return err
		}

		if err := store.Logout(); err != nil {
			return err
		}

		fmt.Println("Logged out.")

		return nil
	},
}
