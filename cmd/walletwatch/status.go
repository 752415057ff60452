package main

import (
	"context"
	"fmt"
	"io"

	"walletwatch/internal/ui"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Long:  `Probes the backend for session validity and prints the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer app.Close()
		return runStatus(cmd.Context(), app, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(ctx context.Context, app *App, out io.Writer) error {
	app.Session.CheckAuth(ctx)
	fmt.Fprint(out, ui.RenderStatus(app.Session.State()))
	return nil
}
