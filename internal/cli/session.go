package cli

import (
	"context"
	"fmt"

	"github.com/Saba3939/oneday-todo/internal/api"
	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/config"
	"github.com/Saba3939/oneday-todo/internal/logger"
	"github.com/Saba3939/oneday-todo/internal/reconcile"
	"github.com/Saba3939/oneday-todo/internal/store"
	"github.com/Saba3939/oneday-todo/internal/store/local"
	"github.com/Saba3939/oneday-todo/internal/tui"
)

// openStore picks the task backend once per invocation: the API client when
// a saved session exists, the guest store otherwise. Command code never
// branches on auth state after this.
func openStore() (store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("Failed to load config, using defaults", logger.F("error", err))
		cfg = config.DefaultConfig()
	}

	client, err := api.NewClient(cfg.ServerURL)
	if err == nil && client.IsLoggedIn() {
		logger.Info("Using remote store", logger.F("server", cfg.ServerURL))
		return client, func() {}, nil
	}

	path, err := local.DefaultPath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate guest database: %w", err)
	}
	kv, err := local.OpenKV(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open guest database: %w", err)
	}
	logger.Info("Using guest store", logger.F("path", path))
	return local.New(kv), func() { _ = kv.Close() }, nil
}

// apiClient returns the client only when a session is saved. Commands that
// need the server (stats, logout) call this instead of openStore.
func apiClient() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	client, err := api.NewClient(cfg.ServerURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// reconcileDay runs the day-boundary check against the store and, when the
// marker is behind today, shows the carry-over dialog. The marker is always
// stamped afterwards, even when the dialog is dismissed.
func reconcileDay(ctx context.Context, st store.Store) error {
	flow := reconcile.New(st)
	today := clock.Today()

	needsInput, err := flow.Check(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to check day boundary: %w", err)
	}
	if !needsInput {
		return nil
	}

	selected, err := tui.RunCarryOver(flow.Pending(), flow.FirstRun())
	if err != nil {
		return err
	}

	outcome, err := flow.Apply(ctx, selected)
	if err != nil {
		return fmt.Errorf("failed to apply carry-over: %w", err)
	}

	logger.Info("Carry-over applied",
		logger.F("carried", outcome.CarriedOver),
		logger.F("discarded", outcome.Discarded),
		logger.F("failed", len(outcome.Failed)))

	if outcome.CarriedOver > 0 {
		fmt.Printf("Carried over %d task(s).\n", outcome.CarriedOver)
	}
	if outcome.Discarded > 0 {
		fmt.Printf("Cleared %d task(s) from previous days.\n", outcome.Discarded)
	}
	for _, content := range outcome.Failed {
		fmt.Printf("⚠️  Could not carry over %q: daily limit reached\n", content)
	}
	return nil
}
