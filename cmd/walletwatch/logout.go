package main

import (
	"context"
	"fmt"
	"io"

	"walletwatch/internal/ui"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the cached session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer app.Close()
		return runLogout(cmd.Context(), app, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(ctx context.Context, app *App, out io.Writer) error {
	app.Session.SignOut(ctx)
	fmt.Fprintln(out, ui.RenderSuccess("Signed out."))
	return nil
}
