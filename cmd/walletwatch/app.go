package main

import (
	"fmt"
	"io"

	"walletwatch/internal/api"
	"walletwatch/internal/blocklist"
	"walletwatch/internal/session"
	"walletwatch/internal/store"
	"walletwatch/internal/telemetry"
	"walletwatch/internal/ui"

	"github.com/spf13/viper"
)

// App is the composition root: it owns the gateway, the durable cache, the
// session manager and the blocklist synchronizer, and injects them into the
// commands. Session state is never reached through ambient globals.
type App struct {
	Gateway   *api.Client
	Cache     store.Store
	Session   *session.Manager
	Blocklist *blocklist.Synchronizer
}

// newApp wires the client core from configuration. out receives the
// authorization-lost notice, the CLI's counterpart of the hard redirect to
// the sign-in page.
func newApp(out io.Writer) (*App, error) {
	cache, err := store.NewStore(store.Config{
		Type:             viper.GetString("store.type"),
		ConnectionString: viper.GetString("store.dsn"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session cache: %w", err)
	}

	gateway := api.NewClient(viper.GetString("api.url"))

	sess := session.NewManager(gateway, cache)
	sess.OnAuthLost(func() {
		fmt.Fprintln(out, ui.RenderError("Session expired. Run 'walletwatch login' to sign in again."))
	})
	sess.Restore()

	sync := blocklist.NewSynchronizer(gateway)
	sync.RollbackOnError = viper.GetBool("blocklist.rollback_on_error")

	if viper.GetBool("metrics.enabled") {
		addr := viper.GetString("metrics.addr")
		go func() {
			if err := telemetry.StartMetricsServer(addr); err != nil {
				telemetry.LogError("metrics server stopped", err)
			}
		}()
	}

	return &App{
		Gateway:   gateway,
		Cache:     cache,
		Session:   sess,
		Blocklist: sync,
	}, nil
}

// Close releases the gateway observer and the cache connection.
func (a *App) Close() {
	a.Session.Close()
	if err := a.Cache.Close(); err != nil {
		telemetry.LogError("failed to close session cache", err)
	}
}
