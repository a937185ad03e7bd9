package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/config"
	"github.com/marcusbikes/storefront/pkg/lint"
	"github.com/marcusbikes/storefront/pkg/logging"
	"github.com/marcusbikes/storefront/pkg/orders"
	"github.com/marcusbikes/storefront/pkg/pubsub"
	"github.com/marcusbikes/storefront/pkg/watcher"
	"github.com/marcusbikes/storefront/pkg/web"
)

func main() {
	// Parse command-line flags
	f := pflag.NewFlagSet("storefront", pflag.ExitOnError)
	f.String("catalog", "./catalog", "Path to the catalog directory")
	f.Int("port", 8080, "Port for the HTTP server")
	f.String("admin-token", "", "Bearer token for the admin API (empty disables it)")
	f.Bool("watch", false, "Reload the catalog when its files change")
	f.String("verbosity", "", "Log level (debug, info, warn, error)")
	f.CountP("verbose", "v", "Increase log verbosity (-v for debug)")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logging.SetLevel(logLevel(cfg))

	ctx := context.Background()

	store := catalog.NewStore()
	orderStore := orders.NewStore()
	publisher := pubsub.NewSSEPublisher()
	runner := lint.NewRunner(cfg.CatalogDir, store, publisher)

	// The server configures the status topic buffering, so it exists before
	// the first pipeline run publishes anything.
	server := web.NewServer(store, orderStore, publisher, runner, cfg.AdminToken)

	// Initial load. A failure here is fatal; later reload failures keep the
	// previous catalog.
	if err := runner.Run(ctx, lint.ReloadOptions{Reason: "startup"}); err != nil {
		logging.Fatal("initial catalog load failed", "dir", cfg.CatalogDir, "error", err)
	}

	if cfg.Watch {
		if err := startWatcher(ctx, cfg.CatalogDir, runner); err != nil {
			logging.Fatal("failed to watch catalog directory", "dir", cfg.CatalogDir, "error", err)
		}
	}

	if err := server.Start(cfg.Port); err != nil {
		logging.Fatal("server failed", "error", err)
	}
}

// startWatcher wires the fsnotify watcher through the debouncer into the
// reload pipeline.
func startWatcher(ctx context.Context, dir string, runner *lint.Runner) error {
	cw, err := watcher.NewCatalogWatcher(dir)
	if err != nil {
		return err
	}
	if err := cw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(cw.Events(), 500*time.Millisecond, 5*time.Second)
	debouncer.Start(ctx)

	go func() {
		for event := range debouncer.Output() {
			reason := "catalog file changed"
			if event.Type == watcher.ChangeTypeInventory {
				reason = "inventory file changed"
			}
			if err := runner.Run(ctx, lint.ReloadOptions{Reason: reason}); err != nil {
				logging.Error("catalog reload failed", "error", err)
			}
		}
	}()

	return nil
}

func logLevel(cfg *config.Config) slog.Level {
	if cfg.VerboseCnt > 0 {
		return slog.LevelDebug
	}
	switch cfg.Verbosity {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
