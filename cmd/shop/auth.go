package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and store the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}

			result, err := e.client.Login(c.Context, e.cfg.AuthEndpoints("login"),
				c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			if err := e.session.SignIn(result.Token, result.Profile); err != nil {
				return err
			}

			fmt.Printf("Signed in as %s.\n", result.Profile.Email)
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account, then sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}

			err = e.client.Register(c.Context, e.cfg.AuthEndpoints("register"),
				c.String("name"), c.String("email"), c.String("password"))
			if err != nil {
				return err
			}

			result, err := e.client.Login(c.Context, e.cfg.AuthEndpoints("login"),
				c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			if err := e.session.SignIn(result.Token, result.Profile); err != nil {
				return err
			}

			fmt.Printf("Account created. Signed in as %s.\n", result.Profile.Email)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored session",
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			e.session.SignOut()
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in user",
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}

			if _, ok := e.session.Token(); !ok {
				fmt.Println("You are not signed in.")
				return nil
			}

			profile := e.session.Profile()
			if profile == nil {
				fmt.Println("Signed in, but the stored profile could not be read.")
				return nil
			}

			fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
			if profile.Avatar != "" {
				fmt.Println("Avatar:", profile.Avatar)
			}
			return nil
		},
	}
}
