package main

import (
	"context"
	"fmt"
	"io"

	"walletwatch/internal/session"
	"walletwatch/internal/ui"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Wrapper for survey functions to allow mocking in tests
var askOneFunc = survey.AskOne

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the dashboard",
	Long:  `Exchanges your credentials for a session and caches the bearer token locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer app.Close()
		return runLogin(cmd.Context(), app, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account e-mail")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

func runLogin(ctx context.Context, app *App, out io.Writer) error {
	email := loginEmail
	password := loginPassword

	if email == "" {
		if err := askOneFunc(&survey.Input{Message: "E-mail:"}, &email, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}
	if password == "" {
		if err := askOneFunc(&survey.Password{Message: "Password:"}, &password, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if err := app.Session.SignIn(ctx, session.Credentials{Email: email, Password: password}); err != nil {
		fmt.Fprintln(out, ui.RenderError(err.Error()))
		exit(1)
		return nil
	}

	state := app.Session.State()
	if !state.Authenticated {
		fmt.Fprintln(out, ui.RenderError("Sign-in did not establish a session."))
		exit(1)
		return nil
	}

	fmt.Fprintln(out, ui.RenderSuccess(fmt.Sprintf("Signed in as %s.", state.User.DisplayName())))
	return nil
}
