package app

import (
	"context"
	"time"

	"github.com/pwinckles/matrix-firefly-bot/pkg/firefly"
	"github.com/pwinckles/matrix-firefly-bot/pkg/ledger"
	"github.com/pwinckles/matrix-firefly-bot/pkg/matrix"

	"github.com/labstack/echo/v4"
	"github.com/vmkteam/appkit"
	"github.com/vmkteam/embedlog"
)

type App struct {
	embedlog.Logger
	appName string
	cfg     Config
	echo    *echo.Echo
	firefly *firefly.Client
	bot     *matrix.Bot
}

func New(appName string, sl embedlog.Logger, cfg Config) (*App, error) {
	a := &App{
		appName: appName,
		cfg:     cfg,
		echo:    appkit.NewEcho(),
		Logger:  sl,
	}

	a.firefly = firefly.NewClient(firefly.ClientConfig{
		BaseURL: cfg.Firefly.URL,
		APIKey:  cfg.Firefly.APIKey,
	})

	manager := ledger.NewManager(a.firefly, cfg.Firefly.SourceAccountID, sl)

	bot, err := matrix.New(matrix.Config{
		HomeserverURL: cfg.Matrix.HomeserverURL,
		Username:      cfg.Matrix.Username,
		Password:      cfg.Matrix.Password,
		RoomID:        cfg.Matrix.RoomID,
		Debug:         cfg.Matrix.Debug,
	}, manager, sl)
	if err != nil {
		return nil, err
	}
	a.bot = bot

	return a, nil
}

// Run is a function that runs application.
func (a *App) Run(ctx context.Context) error {
	a.registerMetrics()
	a.registerDebugHandlers()
	a.registerMetadata()

	go func() {
		if err := a.bot.Start(ctx); err != nil {
			a.Error(ctx, "matrix bot error", "err", err)
		}
	}()

	return a.runHTTPServer(ctx, a.cfg.Server.Host, a.cfg.Server.Port)
}

// Shutdown is a function that gracefully stops the bot and HTTP server.
func (a *App) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.bot.Stop(ctx)

	return a.echo.Shutdown(ctx)
}

// registerMetadata is a function that registers meta info from service.
func (a *App) registerMetadata() {
	opts := appkit.MetadataOpts{
		HasPublicAPI:  false, // no public API, only the Matrix bot
		HasPrivateAPI: false,
		Services: []appkit.ServiceMetadata{
			// bot runs asynchronously in a separate goroutine
			appkit.NewServiceMetadata("matrix-bot", appkit.MetadataServiceTypeAsync),
		},
	}

	md := appkit.NewMetadataManager(opts)
	md.RegisterMetrics()

	a.echo.GET("/debug/metadata", md.Handler)
}
