package main

import (
	"context"
	"fmt"
	"io"

	"walletwatch/internal/blocklist"
	"walletwatch/internal/ui"

	"github.com/spf13/cobra"
)

var blocklistCmd = &cobra.Command{
	Use:   "blocklist",
	Short: "Manage the blocked-address list",
}

var blocklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the blocklist, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer app.Close()
		return runBlocklistList(cmd.Context(), app, cmd.OutOrStdout())
	},
}

var blocklistAddCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "Block a wallet address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer app.Close()
		return runBlocklistAdd(cmd.Context(), app, cmd.OutOrStdout(), args[0])
	},
}

var blocklistRemoveCmd = &cobra.Command{
	Use:   "remove <address|id>",
	Short: "Remove an address from the blocklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer app.Close()
		return runBlocklistRemove(cmd.Context(), app, cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(blocklistCmd)
	blocklistCmd.AddCommand(blocklistListCmd)
	blocklistCmd.AddCommand(blocklistAddCmd)
	blocklistCmd.AddCommand(blocklistRemoveCmd)
}

func runBlocklistList(ctx context.Context, app *App, out io.Writer) error {
	app.Blocklist.Load(ctx)
	fmt.Fprint(out, ui.RenderBlocklist(app.Blocklist.Entries()))
	return nil
}

func runBlocklistAdd(ctx context.Context, app *App, out io.Writer, address string) error {
	// Load first so the duplicate check sees the server's current list.
	app.Blocklist.Load(ctx)

	if err := app.Blocklist.Add(ctx, address); err != nil {
		fmt.Fprintln(out, ui.RenderError(err.Error()))
		exit(1)
		return nil
	}

	fmt.Fprintln(out, ui.RenderSuccess("Address blocked."))
	return nil
}

func runBlocklistRemove(ctx context.Context, app *App, out io.Writer, target string) error {
	app.Blocklist.Load(ctx)

	// Prefer a cached entry so deletes carry the server identifier when known.
	entry := blocklist.NewEntry(target)
	for _, cached := range app.Blocklist.Entries() {
		if cached.Address == target || (cached.ID != nil && *cached.ID == target) {
			entry = cached
			break
		}
	}

	if err := app.Blocklist.Remove(ctx, entry); err != nil {
		fmt.Fprintln(out, ui.RenderError(err.Error()))
		exit(1)
		return nil
	}

	fmt.Fprintln(out, ui.RenderSuccess("Address removed."))
	return nil
}
