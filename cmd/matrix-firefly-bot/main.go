package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pwinckles/matrix-firefly-bot/pkg/app"

	"github.com/joho/godotenv"
	"github.com/vmkteam/embedlog"
)

const appName = "matrix-firefly-bot"

var (
	flConfigPath = flag.String("config", "config.yml", "path to config file")
	flVerbose    = flag.Bool("verbose", false, "enable debug output")
	flJSONLogs   = flag.Bool("json", false, "log in JSON format")
)

func main() {
	flag.Parse()

	sl := embedlog.NewLogger(*flVerbose, *flJSONLogs)
	ctx := context.Background()

	// secrets may come from a .env file instead of the config
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		sl.Error(ctx, "failed to load .env file", "err", err)
	}

	cfg, err := app.LoadConfig(*flConfigPath)
	if err != nil {
		exitOnError(ctx, sl, err)
	}
	if err := cfg.Validate(); err != nil {
		exitOnError(ctx, sl, err)
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(appName, sl, cfg)
	if err != nil {
		exitOnError(ctx, sl, err)
	}

	go func() {
		<-ctx.Done()
		sl.Print(ctx, "shutting down", "app", appName)
		if err := a.Shutdown(15 * time.Second); err != nil {
			sl.Error(ctx, "shutdown failed", "err", err)
		}
	}()

	sl.Print(ctx, "starting", "app", appName)
	if err := a.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitOnError(ctx, sl, err)
	}
}

func exitOnError(ctx context.Context, sl embedlog.Logger, err error) {
	sl.Error(ctx, fmt.Sprintf("%s failed", appName), "err", err)
	os.Exit(1)
}
